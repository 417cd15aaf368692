package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"smarthire/candidate-ranker/internal/repositories"
)

var ErrWorkerStopped = errors.New("worker stopped, cannot enqueue job")

// Worker owns the background execution of ranking runs. EnqueueJob performs
// the at-most-one-in-flight claim before queueing, so a second request for a
// job already queued or processing is rejected with
// repositories.ErrRankingInProgress.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uint) error
}

type worker struct {
	procRepo      repositories.ProcessingJobRepository
	ranker        RankingService
	jobQueue      chan uint
	concurrency   int
	pollInterval  time.Duration
	staleClaimAge time.Duration
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewWorker(
	procRepo repositories.ProcessingJobRepository,
	ranker RankingService,
	concurrency int,
	pollInterval time.Duration,
	staleClaimAge time.Duration,
) Worker {
	return &worker{
		procRepo:      procRepo,
		ranker:        ranker,
		jobQueue:      make(chan uint, 100),
		concurrency:   concurrency,
		pollInterval:  pollInterval,
		staleClaimAge: staleClaimAge,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Pick up claims a previous process left behind
	w.wg.Add(1)
	go w.pollStaleClaims()

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker. The claim is the single cross-run guard: it
// upserts the processing-job row to queued, or fails when a run for the job
// is already in flight.
func (w *worker) EnqueueJob(jobID uint) error {
	if err := w.procRepo.Claim(jobID); err != nil {
		return err
	}

	select {
	case w.jobQueue <- jobID:
		log.Printf("📥 Ranking job %d enqueued\n", jobID)
		return nil
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %d\n", jobID)
		return ErrWorkerStopped
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case jobID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing ranking job %d\n", workerID, jobID)
			if err := w.ranker.RunRanking(ctx, jobID); err != nil {
				log.Printf("❌ Worker #%d failed ranking job %d: %v\n", workerID, jobID, err)
			} else {
				log.Printf("✅ Worker #%d completed ranking job %d\n", workerID, jobID)
			}
		}
	}
}

// pollStaleClaims re-enqueues queued claims that never reached a worker,
// which happens when the process restarts between claim and run. A claim
// still waiting in the in-process queue can cross the staleness threshold
// too; the duplicate dispatch is harmless because the run only proceeds
// after winning the queued-to-processing transition.
func (w *worker) pollStaleClaims() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			stale, err := w.procRepo.FindStaleQueued(w.staleClaimAge)
			if err != nil {
				log.Printf("⚠️  Failed to fetch stale queued jobs: %v\n", err)
				continue
			}

			for _, job := range stale {
				select {
				case w.jobQueue <- job.JobID:
					log.Printf("📥 Re-enqueued stale ranking job %d\n", job.JobID)
				case <-w.stopChan:
					return
				}
			}
		}
	}
}
