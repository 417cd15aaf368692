package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"smarthire/candidate-ranker/internal/models"
	"smarthire/candidate-ranker/internal/repositories"
)

type StatusHandler struct {
	procRepo    repositories.ProcessingJobRepository
	rankingRepo repositories.RankingRepository
}

func NewStatusHandler(
	procRepo repositories.ProcessingJobRepository,
	rankingRepo repositories.RankingRepository,
) *StatusHandler {
	return &StatusHandler{
		procRepo:    procRepo,
		rankingRepo: rankingRepo,
	}
}

// HandleGetStatus handles GET /jobs/:jobID/ranking-status
func (h *StatusHandler) HandleGetStatus(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	job, err := h.procRepo.FindByJobID(jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobStatusNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No ranking process found for this job",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get ranking status",
		})
	}

	return c.JSON(models.RankingStatusResponse{
		JobID:             job.JobID,
		Status:            string(job.Status),
		Progress:          job.Progress,
		TotalCandidates:   job.TotalCandidates,
		SkippedCandidates: job.SkippedCandidates,
		ErrorMessage:      job.ErrorMessage,
		StartedAt:         job.StartedAt,
		CompletedAt:       job.CompletedAt,
	})
}

// HandleGetRankings handles GET /jobs/:jobID/rankings
func (h *StatusHandler) HandleGetRankings(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	rankings, err := h.rankingRepo.FindByJob(jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get rankings",
		})
	}

	entries := make([]models.RankingEntryResponse, 0, len(rankings))
	for _, r := range rankings {
		entries = append(entries, models.RankingEntryResponse{
			ApplicationID:   r.ApplicationID,
			CandidateID:     r.CandidateID,
			RankPosition:    r.RankPosition,
			SkillScore:      r.SkillScore,
			EducationScore:  r.EducationScore,
			ExperienceScore: r.ExperienceScore,
			TotalScore:      r.TotalScore,
		})
	}

	return c.JSON(fiber.Map{
		"job_id":   jobID,
		"rankings": entries,
	})
}
