package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smarthire/candidate-ranker/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	FindRequirements(jobID uint) (*models.JobRequirements, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// FindRequirements implements JobRepository. The requirement columns are
// stored as JSON text; a row that exists but fails to decode is treated as a
// fatal condition for the run, not as a missing job.
func (r *jobRepository) FindRequirements(jobID uint) (*models.JobRequirements, error) {
	var job models.Job
	if err := r.db.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	req := &models.JobRequirements{
		JobID: job.ID,
		Title: job.Title,
	}

	if job.RequiredSkills != "" {
		if err := json.Unmarshal([]byte(job.RequiredSkills), &req.RequiredSkills); err != nil {
			return nil, fmt.Errorf("failed to decode required_skills for job %d: %w", jobID, err)
		}
	}
	if job.RequiredEducation != "" {
		if err := json.Unmarshal([]byte(job.RequiredEducation), &req.RequiredEducation); err != nil {
			return nil, fmt.Errorf("failed to decode required_education for job %d: %w", jobID, err)
		}
	}
	if job.RequiredExperience != "" {
		if err := json.Unmarshal([]byte(job.RequiredExperience), &req.RequiredExperience); err != nil {
			return nil, fmt.Errorf("failed to decode required_experience for job %d: %w", jobID, err)
		}
	}

	return req, nil
}
