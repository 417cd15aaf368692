package repositories

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smarthire/candidate-ranker/internal/models"
)

var (
	ErrRankingInProgress = errors.New("ranking already in progress for this job")
	ErrJobStatusNotFound = errors.New("no ranking process found for this job")
)

type ProcessingJobRepository interface {
	Claim(jobID uint) error
	MarkProcessing(jobID uint) error
	SetTotalCandidates(jobID uint, total int) error
	UpdateProgress(jobID uint, progress int) error
	MarkCompleted(jobID uint, skipped int) error
	MarkFailed(jobID uint, errorMsg string) error
	FindByJobID(jobID uint) (*models.ProcessingJob, error)
	FindStaleQueued(olderThan time.Duration) ([]models.ProcessingJob, error)
}

type processingJobRepository struct {
	db *gorm.DB
}

func NewProcessingJobRepository(db *gorm.DB) ProcessingJobRepository {
	return &processingJobRepository{db: db}
}

// Claim implements ProcessingJobRepository. It is the at-most-one-in-flight
// gate: the row is upserted to queued unless a queued or processing row for
// the same job already exists, in which case ErrRankingInProgress is
// returned and nothing changes.
func (r *processingJobRepository) Claim(jobID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.ProcessingJob
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("job_id = ?", jobID).
			First(&existing).Error
		if err == nil && existing.Status.InFlight() {
			return ErrRankingInProgress
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check processing job: %w", err)
		}

		row := models.ProcessingJob{
			JobID:     jobID,
			Status:    models.StatusQueued,
			Progress:  0,
			UpdatedAt: time.Now(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "job_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"status":             models.StatusQueued,
				"progress":           0,
				"total_candidates":   0,
				"skipped_candidates": 0,
				"error_message":      nil,
				"started_at":         nil,
				"completed_at":       nil,
				"updated_at":         time.Now(),
			}),
		}).Create(&row).Error; err != nil {
			return fmt.Errorf("failed to claim processing job: %w", err)
		}

		return nil
	})
}

// MarkProcessing implements ProcessingJobRepository. The transition is
// conditional on the claim still being queued, so a duplicate dispatch of the
// same job (two workers, or a stale-claim re-enqueue racing an in-flight run)
// finds zero rows and gets ErrRankingInProgress instead of restarting the row.
func (r *processingJobRepository) MarkProcessing(jobID uint) error {
	now := time.Now()
	res := r.db.Model(&models.ProcessingJob{}).
		Where("job_id = ? AND status = ?", jobID, models.StatusQueued).
		Updates(map[string]interface{}{
			"status":             models.StatusProcessing,
			"progress":           0,
			"total_candidates":   0,
			"skipped_candidates": 0,
			"error_message":      nil,
			"started_at":         now,
			"completed_at":       nil,
			"updated_at":         now,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to mark processing: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRankingInProgress
	}

	return nil
}

// SetTotalCandidates implements ProcessingJobRepository.
func (r *processingJobRepository) SetTotalCandidates(jobID uint, total int) error {
	err := r.db.Model(&models.ProcessingJob{}).
		Where("job_id = ? AND status = ?", jobID, models.StatusProcessing).
		Updates(map[string]interface{}{
			"total_candidates": total,
			"updated_at":       time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to set total candidates: %w", err)
	}

	return nil
}

// UpdateProgress implements ProcessingJobRepository. Persisted per candidate
// so pollers observe monotonic progress.
func (r *processingJobRepository) UpdateProgress(jobID uint, progress int) error {
	err := r.db.Model(&models.ProcessingJob{}).
		Where("job_id = ? AND status = ?", jobID, models.StatusProcessing).
		Updates(map[string]interface{}{
			"progress":   progress,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	return nil
}

// MarkCompleted implements ProcessingJobRepository.
func (r *processingJobRepository) MarkCompleted(jobID uint, skipped int) error {
	now := time.Now()
	err := r.db.Model(&models.ProcessingJob{}).
		Where("job_id = ? AND status = ?", jobID, models.StatusProcessing).
		Updates(map[string]interface{}{
			"status":             models.StatusCompleted,
			"progress":           100,
			"skipped_candidates": skipped,
			"completed_at":       now,
			"updated_at":         now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark completed: %w", err)
	}

	return nil
}

// MarkFailed implements ProcessingJobRepository. Terminal; failed jobs are
// only re-invokable from scratch by a new claim. Only in-flight rows can
// fail, so a late failure write never overwrites a completed row.
func (r *processingJobRepository) MarkFailed(jobID uint, errorMsg string) error {
	now := time.Now()
	err := r.db.Model(&models.ProcessingJob{}).
		Where("job_id = ? AND status IN ?", jobID,
			[]models.ProcessingStatus{models.StatusQueued, models.StatusProcessing}).
		Updates(map[string]interface{}{
			"status":        models.StatusFailed,
			"error_message": errorMsg,
			"completed_at":  now,
			"updated_at":    now,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark failed: %w", err)
	}

	return nil
}

// FindByJobID implements ProcessingJobRepository.
func (r *processingJobRepository) FindByJobID(jobID uint) (*models.ProcessingJob, error) {
	var job models.ProcessingJob
	if err := r.db.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobStatusNotFound
		}
		return nil, fmt.Errorf("failed to find processing job: %w", err)
	}

	return &job, nil
}

// FindStaleQueued implements ProcessingJobRepository. Used by the worker
// poller to pick up claims left behind by a previous process; fresh claims
// are excluded so in-flight queue entries are not duplicated.
func (r *processingJobRepository) FindStaleQueued(olderThan time.Duration) ([]models.ProcessingJob, error) {
	var jobs []models.ProcessingJob
	cutoff := time.Now().Add(-olderThan)
	err := r.db.
		Where("status = ? AND updated_at < ?", models.StatusQueued, cutoff).
		Order("updated_at ASC").
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find stale queued jobs: %w", err)
	}

	return jobs, nil
}
