package models

import "time"

type StartRankingResponse struct {
	JobID  uint   `json:"job_id"`
	Status string `json:"status"`
}

type RankingStatusResponse struct {
	JobID             uint       `json:"job_id"`
	Status            string     `json:"status"`
	Progress          int        `json:"progress"`
	TotalCandidates   int        `json:"total_candidates"`
	SkippedCandidates int        `json:"skipped_candidates"`
	ErrorMessage      *string    `json:"error_message,omitempty"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

type RankingEntryResponse struct {
	ApplicationID   uint    `json:"application_id"`
	CandidateID     uint    `json:"candidate_id"`
	RankPosition    int     `json:"rank_position"`
	SkillScore      float64 `json:"skill_score"`
	EducationScore  float64 `json:"education_score"`
	ExperienceScore float64 `json:"experience_score"`
	TotalScore      float64 `json:"total_score"`
}
