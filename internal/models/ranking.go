package models

import (
	"time"

	"github.com/google/uuid"
)

type Ranking struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobID           uint      `gorm:"not null;uniqueIndex:idx_rankings_job_application" json:"job_id"`
	ApplicationID   uint      `gorm:"not null;uniqueIndex:idx_rankings_job_application" json:"application_id"`
	CandidateID     uint      `gorm:"not null" json:"candidate_id"`
	SkillScore      float64   `gorm:"type:decimal(5,2)" json:"skill_score"`
	EducationScore  float64   `gorm:"type:decimal(5,2)" json:"education_score"`
	ExperienceScore float64   `gorm:"type:decimal(5,2)" json:"experience_score"`
	TotalScore      float64   `gorm:"type:decimal(5,2)" json:"total_score"`
	RankPosition    int       `gorm:"default:0" json:"rank_position"`
	ScoreBreakdown  string    `gorm:"type:text" json:"score_breakdown"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Ranking) TableName() string {
	return "rankings"
}

type Feedback struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ApplicationID     uint      `gorm:"not null;uniqueIndex" json:"application_id"`
	Strengths         string    `gorm:"type:text" json:"strengths"`
	MissingSkills     string    `gorm:"type:text" json:"missing_skills"`
	Suggestions       string    `gorm:"type:text" json:"suggestions"`
	OverallAssessment string    `gorm:"type:text" json:"overall_assessment"`
	CreatedAt         time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt         time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}
