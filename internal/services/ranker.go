package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"smarthire/candidate-ranker/internal/models"
	"smarthire/candidate-ranker/internal/repositories"
)

// CandidateScorer abstracts the scoring engine for the orchestrator.
type CandidateScorer interface {
	Score(ctx context.Context, profile *models.CandidateProfile, req *models.JobRequirements) models.ScoreResult
}

// RankingService drives a full ranking run for one job: load requirements
// and pending candidates, normalize → score → feedback → persist per
// candidate, then assign rank positions and finalize the job status.
type RankingService interface {
	RunRanking(ctx context.Context, jobID uint) error
}

type rankingService struct {
	jobRepo     repositories.JobRepository
	appRepo     repositories.ApplicationRepository
	rankingRepo repositories.RankingRepository
	procRepo    repositories.ProcessingJobRepository
	normalizer  CandidateNormalizer
	scorer      CandidateScorer
	feedback    FeedbackGenerator
	limiter     *rate.Limiter
}

func NewRankingService(
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	rankingRepo repositories.RankingRepository,
	procRepo repositories.ProcessingJobRepository,
	normalizer CandidateNormalizer,
	scorer CandidateScorer,
	feedback FeedbackGenerator,
	pacingInterval time.Duration,
) RankingService {
	// Token bucket keeps the effective call rate to the language model
	// service bounded between candidates.
	limit := rate.Inf
	if pacingInterval > 0 {
		limit = rate.Every(pacingInterval)
	}

	return &rankingService{
		jobRepo:     jobRepo,
		appRepo:     appRepo,
		rankingRepo: rankingRepo,
		procRepo:    procRepo,
		normalizer:  normalizer,
		scorer:      scorer,
		feedback:    feedback,
		limiter:     rate.NewLimiter(limit, 1),
	}
}

type scoredCandidate struct {
	applicationID uint
	totalScore    float64
}

// RunRanking implements RankingService.
func (s *rankingService) RunRanking(ctx context.Context, jobID uint) error {
	if err := s.procRepo.MarkProcessing(jobID); err != nil {
		if errors.Is(err, repositories.ErrRankingInProgress) {
			// Another dispatch already took this claim, or the run finished
			// before a stale re-enqueue reached us. Nothing to do.
			log.Printf("⚠️  Skipping duplicate dispatch for job %d\n", jobID)
			return nil
		}
		return fmt.Errorf("failed to mark job %d processing: %w", jobID, err)
	}

	log.Printf("🔄 Starting ranking run for job %d\n", jobID)

	req, err := s.jobRepo.FindRequirements(jobID)
	if err != nil {
		return s.fail(jobID, fmt.Errorf("failed to load job requirements: %w", err))
	}

	apps, err := s.appRepo.FindPendingByJob(jobID)
	if err != nil {
		return s.fail(jobID, fmt.Errorf("failed to load pending candidates: %w", err))
	}

	total := len(apps)
	if err := s.procRepo.SetTotalCandidates(jobID, total); err != nil {
		return s.fail(jobID, fmt.Errorf("failed to record candidate count: %w", err))
	}

	var ranked []scoredCandidate
	skipped := 0

	for i, app := range apps {
		if sc, ok := s.processCandidate(ctx, app, req); ok {
			ranked = append(ranked, sc)
		} else {
			skipped++
		}

		// Persisted immediately so external pollers see monotonic progress.
		progress := (i + 1) * 100 / total
		if err := s.procRepo.UpdateProgress(jobID, progress); err != nil {
			log.Printf("⚠️  Failed to update progress for job %d: %v\n", jobID, err)
		}

		if i < total-1 {
			if err := s.limiter.Wait(ctx); err != nil {
				log.Printf("⚠️  Pacing wait interrupted for job %d: %v\n", jobID, err)
			}
		}
	}

	// Stable sort: candidates with equal scores keep input order, so the
	// earlier candidate gets the better rank.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].totalScore > ranked[j].totalScore
	})

	for position, candidate := range ranked {
		if err := s.rankingRepo.UpdateRankPosition(jobID, candidate.applicationID, position+1); err != nil {
			return s.fail(jobID, fmt.Errorf("failed to assign rank positions: %w", err))
		}
	}

	if err := s.appRepo.MarkRanked(jobID); err != nil {
		return s.fail(jobID, fmt.Errorf("failed to mark applications ranked: %w", err))
	}

	if err := s.procRepo.MarkCompleted(jobID, skipped); err != nil {
		return fmt.Errorf("failed to finalize job %d: %w", jobID, err)
	}

	log.Printf("✅ Ranking completed for job %d: %d ranked, %d skipped of %d candidates\n",
		jobID, len(ranked), skipped, total)
	return nil
}

// processCandidate runs normalize → score → feedback → persist for one
// candidate. Failures are logged and reported as not-ranked; they never
// abort the batch.
func (s *rankingService) processCandidate(ctx context.Context, app models.Application, req *models.JobRequirements) (scoredCandidate, bool) {
	profile, err := s.normalizer.Normalize(ctx, app)
	if err != nil {
		log.Printf("⚠️  Skipping application %d: normalization failed: %v\n", app.ID, err)
		return scoredCandidate{}, false
	}

	scores := s.scorer.Score(ctx, profile, req)
	feedback := s.feedback.Generate(ctx, profile, req, scores)

	breakdown, err := json.Marshal(scores)
	if err != nil {
		log.Printf("⚠️  Skipping application %d: failed to encode score breakdown: %v\n", app.ID, err)
		return scoredCandidate{}, false
	}

	ranking := &models.Ranking{
		JobID:           app.JobID,
		ApplicationID:   app.ID,
		CandidateID:     app.CandidateID,
		SkillScore:      scores.SkillScore,
		EducationScore:  scores.EducationScore,
		ExperienceScore: scores.ExperienceScore,
		TotalScore:      scores.TotalScore,
		RankPosition:    0,
		ScoreBreakdown:  string(breakdown),
	}
	if err := s.rankingRepo.UpsertRanking(ranking); err != nil {
		log.Printf("⚠️  Skipping application %d: failed to persist ranking: %v\n", app.ID, err)
		return scoredCandidate{}, false
	}

	if err := s.rankingRepo.UpsertFeedback(&models.Feedback{
		ApplicationID:     app.ID,
		Strengths:         feedback.Strengths,
		MissingSkills:     feedback.MissingSkills,
		Suggestions:       feedback.Suggestions,
		OverallAssessment: feedback.OverallAssessment,
	}); err != nil {
		log.Printf("⚠️  Skipping application %d: failed to persist feedback: %v\n", app.ID, err)
		return scoredCandidate{}, false
	}

	return scoredCandidate{applicationID: app.ID, totalScore: scores.TotalScore}, true
}

// fail transitions the job to its terminal failed state with the captured
// error message.
func (s *rankingService) fail(jobID uint, runErr error) error {
	log.Printf("❌ Ranking failed for job %d: %v\n", jobID, runErr)
	if err := s.procRepo.MarkFailed(jobID, runErr.Error()); err != nil {
		log.Printf("❌ Failed to record failure for job %d: %v\n", jobID, err)
	}
	return runErr
}
