package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"smarthire/candidate-ranker/internal/models"
)

type ApplicationRepository interface {
	FindPendingByJob(jobID uint) ([]models.Application, error)
	LoadCandidateRows(applicationID uint) ([]models.Skill, []models.Education, []models.Experience, error)
	MarkRanked(jobID uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// FindPendingByJob implements ApplicationRepository. The returned order is
// the ranking input order; ties in total score keep it.
func (r *applicationRepository) FindPendingByJob(jobID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("job_id = ? AND status = ?", jobID, models.ApplicationPending).
		Order("id ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending applications: %w", err)
	}

	return apps, nil
}

// LoadCandidateRows implements ApplicationRepository. Missing child rows are
// not an error; empty slices are valid profile input.
func (r *applicationRepository) LoadCandidateRows(applicationID uint) ([]models.Skill, []models.Education, []models.Experience, error) {
	var skills []models.Skill
	if err := r.db.Where("application_id = ?", applicationID).Find(&skills).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load skills: %w", err)
	}

	var education []models.Education
	if err := r.db.Where("application_id = ?", applicationID).Find(&education).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load education: %w", err)
	}

	var experience []models.Experience
	if err := r.db.Where("application_id = ?", applicationID).Find(&experience).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load experience: %w", err)
	}

	return skills, education, experience, nil
}

// MarkRanked implements ApplicationRepository.
func (r *applicationRepository) MarkRanked(jobID uint) error {
	err := r.db.Model(&models.Application{}).
		Where("job_id = ? AND status = ?", jobID, models.ApplicationPending).
		Updates(map[string]interface{}{
			"status":     models.ApplicationRanked,
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark applications ranked: %w", err)
	}

	return nil
}
