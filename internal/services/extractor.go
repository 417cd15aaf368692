package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// RawResume is the fixed extraction schema the language model must follow.
// Field names deliberately differ from the canonical profile; the normalizer
// owns the renaming pass.
type RawResume struct {
	PersonalInfo   RawPersonalInfo `json:"personal_info"`
	Skills         []RawSkill      `json:"skills"`
	Education      []RawEducation  `json:"education"`
	Experience     []RawExperience `json:"experience"`
	Projects       []RawProject    `json:"projects"`
	Certifications []string        `json:"certifications"`
}

type RawPersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

type RawSkill struct {
	Name            string  `json:"name"`
	Level           string  `json:"level"`
	ExperienceYears float64 `json:"experience_years"`
}

type RawEducation struct {
	Degree      string   `json:"degree"`
	Field       string   `json:"field"`
	Institution string   `json:"institution"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	GPA         *float64 `json:"gpa"`
}

type RawExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type RawProject struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ResumeExtractor is the resume-extraction contract of the language model
// service: plain resume text in, structured extraction out.
type ResumeExtractor interface {
	Extract(ctx context.Context, resumeText string) (*RawResume, error)
}

type geminiExtractor struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewResumeExtractor(gemini GeminiService, maxRetries int) ResumeExtractor {
	return &geminiExtractor{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

// Extract implements ResumeExtractor.
func (e *geminiExtractor) Extract(ctx context.Context, resumeText string) (*RawResume, error) {
	prompt := e.promptBuilder.BuildResumeExtractionPrompt(resumeText)

	response, err := e.gemini.GenerateTextWithRetry(ctx, prompt, 0.1, e.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate extraction: %w", err)
	}

	var raw RawResume
	if err := parseJSONResponse(response, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	return &raw, nil
}

func parseJSONResponse(response string, target interface{}) error {
	// Try to extract JSON from response (LLM might wrap it in markdown)
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON tries to extract JSON from text that might contain markdown or other formatting
func extractJSON(text string) string {
	// Remove markdown code blocks
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	// Find JSON object or array boundaries
	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
