package repositories

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"smarthire/candidate-ranker/internal/models"
)

type RankingRepository interface {
	UpsertRanking(ranking *models.Ranking) error
	UpdateRankPosition(jobID, applicationID uint, position int) error
	UpsertFeedback(feedback *models.Feedback) error
	FindByJob(jobID uint) ([]models.Ranking, error)
}

type rankingRepository struct {
	db *gorm.DB
}

func NewRankingRepository(db *gorm.DB) RankingRepository {
	return &rankingRepository{db: db}
}

// UpsertRanking implements RankingRepository. Keyed by (job_id,
// application_id) so re-running a job overwrites scores instead of appending
// rows. The rank position is left untouched here; it is assigned in a
// separate pass once the whole batch is scored.
func (r *rankingRepository) UpsertRanking(ranking *models.Ranking) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "job_id"}, {Name: "application_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"candidate_id",
			"skill_score",
			"education_score",
			"experience_score",
			"total_score",
			"score_breakdown",
			"updated_at",
		}),
	}).Create(ranking).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ranking: %w", err)
	}

	return nil
}

// UpdateRankPosition implements RankingRepository.
func (r *rankingRepository) UpdateRankPosition(jobID, applicationID uint, position int) error {
	result := r.db.Model(&models.Ranking{}).
		Where("job_id = ? AND application_id = ?", jobID, applicationID).
		Updates(map[string]interface{}{
			"rank_position": position,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update rank position: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("ranking not found for job %d application %d", jobID, applicationID)
	}

	return nil
}

// UpsertFeedback implements RankingRepository. One feedback row per
// application, overwritten on re-runs.
func (r *rankingRepository) UpsertFeedback(feedback *models.Feedback) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "application_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"strengths",
			"missing_skills",
			"suggestions",
			"overall_assessment",
			"updated_at",
		}),
	}).Create(feedback).Error
	if err != nil {
		return fmt.Errorf("failed to upsert feedback: %w", err)
	}

	return nil
}

// FindByJob implements RankingRepository. Only ranked candidates are
// returned; rows still at position 0 were skipped during the run.
func (r *rankingRepository) FindByJob(jobID uint) ([]models.Ranking, error) {
	var rankings []models.Ranking
	err := r.db.
		Where("job_id = ? AND rank_position > 0", jobID).
		Order("rank_position ASC").
		Find(&rankings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find rankings: %w", err)
	}

	return rankings, nil
}
