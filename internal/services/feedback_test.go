package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"smarthire/candidate-ranker/internal/models"
)

type stubGemini struct {
	response string
	err      error
	prompts  []string
}

func (s *stubGemini) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, _ int) (string, error) {
	return s.GenerateText(ctx, prompt, temperature)
}

func feedbackFixtures() (*models.CandidateProfile, *models.JobRequirements, models.ScoreResult) {
	profile := &models.CandidateProfile{
		ApplicationID: 11,
		Skills:        skillEntries("python", "sql"),
		Education: []models.EducationEntry{
			{Degree: "BSc", FieldOfStudy: "Computer Science"},
		},
		Experience: []models.ExperienceEntry{
			{JobTitle: "Backend Developer", Company: "Acme"},
		},
	}
	req := &models.JobRequirements{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"python", "sql", "docker"},
	}
	scores := models.ScoreResult{
		SkillScore:      70,
		EducationScore:  80,
		ExperienceScore: 60,
		TotalScore:      70,
	}
	return profile, req, scores
}

func TestGenerateFeedback_ParsesModelResponse(t *testing.T) {
	gemini := &stubGemini{response: "```json\n" + `{
		"strengths": "Strong Python background",
		"missing_skills": "Docker experience is missing",
		"suggestions": "Build a containerized side project",
		"overall_assessment": "Good fit with some gaps"
	}` + "\n```"}
	generator := NewFeedbackGenerator(gemini, 3)

	profile, req, scores := feedbackFixtures()
	feedback := generator.Generate(context.Background(), profile, req, scores)

	assert.Equal(t, "Strong Python background", feedback.Strengths)
	assert.Equal(t, "Docker experience is missing", feedback.MissingSkills)
	assert.Equal(t, "Build a containerized side project", feedback.Suggestions)
	assert.Equal(t, "Good fit with some gaps", feedback.OverallAssessment)
}

func TestGenerateFeedback_PromptContainsProfileAndScores(t *testing.T) {
	gemini := &stubGemini{response: `{"strengths":"s","missing_skills":"m","suggestions":"g","overall_assessment":"o"}`}
	generator := NewFeedbackGenerator(gemini, 3)

	profile, req, scores := feedbackFixtures()
	generator.Generate(context.Background(), profile, req, scores)

	assert.Len(t, gemini.prompts, 1)
	prompt := gemini.prompts[0]
	assert.Contains(t, prompt, "python, sql")
	assert.Contains(t, prompt, "BSc in Computer Science")
	assert.Contains(t, prompt, "Backend Developer at Acme")
	assert.Contains(t, prompt, "70.0%")
}

func TestGenerateFeedback_ServiceFailureFallback(t *testing.T) {
	gemini := &stubGemini{err: errors.New("rate limited")}
	generator := NewFeedbackGenerator(gemini, 3)

	profile, req, scores := feedbackFixtures()
	feedback := generator.Generate(context.Background(), profile, req, scores)

	assert.Equal(t, serviceFallbackFeedback(), feedback)
	assert.NotEmpty(t, feedback.Strengths)
	assert.NotEmpty(t, feedback.OverallAssessment)
}

func TestGenerateFeedback_MalformedResponseFallback(t *testing.T) {
	gemini := &stubGemini{response: "I am sorry, I cannot produce JSON today."}
	generator := NewFeedbackGenerator(gemini, 3)

	profile, req, scores := feedbackFixtures()
	feedback := generator.Generate(context.Background(), profile, req, scores)

	assert.Equal(t, parseFallbackFeedback(), feedback)
	assert.NotEmpty(t, feedback.MissingSkills)
	assert.NotEmpty(t, feedback.Suggestions)
}
