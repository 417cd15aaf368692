package services

import (
	"context"
	"log"

	"smarthire/candidate-ranker/internal/models"
)

// FeedbackGenerator produces per-candidate qualitative feedback. It never
// fails: any service or parse error substitutes a deterministic fallback.
type FeedbackGenerator interface {
	Generate(ctx context.Context, profile *models.CandidateProfile, req *models.JobRequirements, scores models.ScoreResult) models.FeedbackResult
}

type feedbackGenerator struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewFeedbackGenerator(gemini GeminiService, maxRetries int) FeedbackGenerator {
	return &feedbackGenerator{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// Generate implements FeedbackGenerator.
func (g *feedbackGenerator) Generate(ctx context.Context, profile *models.CandidateProfile, req *models.JobRequirements, scores models.ScoreResult) models.FeedbackResult {
	prompt := g.promptBuilder.BuildFeedbackPrompt(profile, req, scores)

	response, err := g.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, g.maxRetries)
	if err != nil {
		log.Printf("⚠️  Feedback generation failed for application %d: %v\n", profile.ApplicationID, err)
		return serviceFallbackFeedback()
	}

	var feedback models.FeedbackResult
	if err := parseJSONResponse(response, &feedback); err != nil {
		log.Printf("⚠️  Failed to parse feedback for application %d: %v\n", profile.ApplicationID, err)
		return parseFallbackFeedback()
	}

	return feedback
}

// parseFallbackFeedback is substituted when the model answered but the
// response is not the expected JSON shape.
func parseFallbackFeedback() models.FeedbackResult {
	return models.FeedbackResult{
		Strengths:         "Your experience shows relevant background",
		MissingSkills:     "Consider developing additional technical skills",
		Suggestions:       "Focus on gaining more hands-on experience",
		OverallAssessment: "Continue developing your skills for better alignment",
	}
}

// serviceFallbackFeedback is substituted when the model call itself failed.
func serviceFallbackFeedback() models.FeedbackResult {
	return models.FeedbackResult{
		Strengths:         "Your application has been reviewed",
		MissingSkills:     "Review the job requirements for skill gaps",
		Suggestions:       "Continue learning and gaining experience",
		OverallAssessment: "Thank you for your interest in this position",
	}
}
