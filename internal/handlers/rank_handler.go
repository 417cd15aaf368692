package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"smarthire/candidate-ranker/internal/models"
	"smarthire/candidate-ranker/internal/repositories"
	"smarthire/candidate-ranker/internal/services"
)

type RankHandler struct {
	worker services.Worker
}

func NewRankHandler(worker services.Worker) *RankHandler {
	return &RankHandler{
		worker: worker,
	}
}

// HandleStartRanking handles POST /jobs/:jobID/rank
func (h *RankHandler) HandleStartRanking(c *fiber.Ctx) error {
	jobID, err := parseJobID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	if err := h.worker.EnqueueJob(jobID); err != nil {
		if errors.Is(err, repositories.ErrRankingInProgress) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Ranking is already in progress for this job",
			})
		}
		if errors.Is(err, services.ErrWorkerStopped) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "Service is shutting down",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to start ranking",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(models.StartRankingResponse{
		JobID:  jobID,
		Status: string(models.StatusQueued),
	})
}

func parseJobID(c *fiber.Ctx) (uint, error) {
	jobID, err := strconv.ParseUint(c.Params("jobID"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(jobID), nil
}
