package models

// CandidateProfile is the canonical shape every candidate is normalized into
// before scoring, regardless of whether the data came from a structured
// application or from a freshly extracted resume upload. Lists may be empty
// but are never nil.
type CandidateProfile struct {
	CandidateID   uint
	ApplicationID uint
	Source        ApplicationSource
	Skills        []SkillEntry
	Education     []EducationEntry
	Experience    []ExperienceEntry
}

type SkillEntry struct {
	SkillName         string
	ProficiencyLevel  string
	YearsOfExperience int
}

type EducationEntry struct {
	Degree         string
	FieldOfStudy   string
	Institution    string
	GraduationYear *int
	GPA            *float64
}

type ExperienceEntry struct {
	JobTitle       string
	Company        string
	DurationMonths int
	StartDate      string
	EndDate        string
	IsCurrent      bool
	Description    string
}

// ScoreResult holds the three sub-scores and their weighted total, each in
// [0, 100]. TotalScore is always recomputed from the sub-scores.
type ScoreResult struct {
	SkillScore      float64 `json:"skill_score"`
	EducationScore  float64 `json:"education_score"`
	ExperienceScore float64 `json:"experience_score"`
	TotalScore      float64 `json:"total_score"`
}

// FeedbackResult is the per-candidate qualitative feedback. Fields are never
// empty; a deterministic fallback is substituted when generation fails.
type FeedbackResult struct {
	Strengths         string `json:"strengths"`
	MissingSkills     string `json:"missing_skills"`
	Suggestions       string `json:"suggestions"`
	OverallAssessment string `json:"overall_assessment"`
}
