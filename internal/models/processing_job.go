package models

import (
	"time"

	"github.com/google/uuid"
)

type ProcessingStatus string

const (
	StatusQueued     ProcessingStatus = "queued"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// InFlight reports whether a ranking run for this status is still owned by a
// worker. A new run request must be rejected while a job is in flight.
func (s ProcessingStatus) InFlight() bool {
	return s == StatusQueued || s == StatusProcessing
}

// ProcessingJob is the single externally observable record of a ranking run.
// One logical row per job id; re-running a job overwrites it.
type ProcessingJob struct {
	ID                uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID             uint             `gorm:"not null;uniqueIndex" json:"job_id"`
	Status            ProcessingStatus `gorm:"not null;default:'queued'" json:"status"`
	Progress          int              `gorm:"default:0" json:"progress"`
	TotalCandidates   int              `gorm:"default:0" json:"total_candidates"`
	SkippedCandidates int              `gorm:"default:0" json:"skipped_candidates"`
	ErrorMessage      *string          `gorm:"type:text" json:"error_message,omitempty"`
	StartedAt         *time.Time       `gorm:"type:timestamp" json:"started_at,omitempty"`
	CompletedAt       *time.Time       `gorm:"type:timestamp" json:"completed_at,omitempty"`
	CreatedAt         time.Time        `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (ProcessingJob) TableName() string {
	return "processing_jobs"
}
