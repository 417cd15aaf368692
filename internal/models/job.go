package models

import (
	"time"
)

type Job struct {
	ID                 uint      `gorm:"primary_key" json:"id"`
	Title              string    `gorm:"type:text;not null" json:"title"`
	RequiredSkills     string    `gorm:"type:text" json:"required_skills"`
	RequiredEducation  string    `gorm:"type:text" json:"required_education"`
	RequiredExperience string    `gorm:"type:text" json:"required_experience"`
	CreatedAt          time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// JobRequirements is the decoded, read-only view of a Job's requirement
// columns. Loaded once per ranking run.
type JobRequirements struct {
	JobID              uint
	Title              string
	RequiredSkills     []string
	RequiredEducation  []string
	RequiredExperience ExperienceRequirement
}

type ExperienceRequirement struct {
	MinYears       int      `json:"min_years"`
	PreferredRoles []string `json:"preferred_roles"`
}
