package models

import (
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending ApplicationStatus = "pending"
	ApplicationRanked  ApplicationStatus = "ranked"
)

type ApplicationSource string

const (
	// SourceApplication is a structured application whose skills, education
	// and experience already live in the relational child tables.
	SourceApplication ApplicationSource = "application"
	// SourceResumeUpload is a recruiter-uploaded resume file represented as a
	// first-class application; its profile is extracted by the language model.
	SourceResumeUpload ApplicationSource = "resume_upload"
)

type Application struct {
	ID          uint              `gorm:"primary_key" json:"id"`
	JobID       uint              `gorm:"not null;index" json:"job_id"`
	CandidateID uint              `gorm:"not null" json:"candidate_id"`
	Status      ApplicationStatus `gorm:"not null;default:'pending'" json:"status"`
	Source      ApplicationSource `gorm:"not null;default:'application'" json:"source"`
	ResumeFile  *string           `gorm:"type:text" json:"resume_file,omitempty"`
	CreatedAt   time.Time         `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}

type Skill struct {
	ID                uint   `gorm:"primary_key" json:"id"`
	ApplicationID     uint   `gorm:"not null;index" json:"application_id"`
	SkillName         string `gorm:"type:text;not null" json:"skill_name"`
	ProficiencyLevel  string `gorm:"type:text" json:"proficiency_level"`
	YearsOfExperience int    `gorm:"default:0" json:"years_of_experience"`
}

func (Skill) TableName() string {
	return "skills"
}

type Education struct {
	ID             uint     `gorm:"primary_key" json:"id"`
	ApplicationID  uint     `gorm:"not null;index" json:"application_id"`
	Degree         string   `gorm:"type:text" json:"degree"`
	FieldOfStudy   string   `gorm:"type:text" json:"field_of_study"`
	Institution    string   `gorm:"type:text" json:"institution"`
	GraduationYear *int     `json:"graduation_year,omitempty"`
	GPA            *float64 `gorm:"type:decimal(3,2)" json:"gpa,omitempty"`
}

func (Education) TableName() string {
	return "education"
}

type Experience struct {
	ID             uint   `gorm:"primary_key" json:"id"`
	ApplicationID  uint   `gorm:"not null;index" json:"application_id"`
	JobTitle       string `gorm:"type:text" json:"job_title"`
	Company        string `gorm:"type:text" json:"company"`
	DurationMonths int    `gorm:"default:0" json:"duration_months"`
	StartDate      string `gorm:"type:text" json:"start_date"`
	EndDate        string `gorm:"type:text" json:"end_date"`
	IsCurrent      bool   `gorm:"default:false" json:"is_current"`
	Description    string `gorm:"type:text" json:"description"`
}

func (Experience) TableName() string {
	return "experience"
}
