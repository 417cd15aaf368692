package services

import (
	"fmt"
	"strings"

	"smarthire/candidate-ranker/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates the prompt for the fixed-schema resume
// extraction contract.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract structured data from the resume text below.

RESUME TEXT:
%s

Return ONLY a JSON object with exactly this structure:
{
  "personal_info": {
    "name": "<full name>",
    "email": "<email or empty string>",
    "phone": "<phone or empty string>",
    "location": "<location or empty string>"
  },
  "skills": [
    {"name": "<skill name>", "level": "<beginner|intermediate|advanced|expert>", "experience_years": <number>}
  ],
  "education": [
    {"degree": "<degree>", "field": "<field of study>", "institution": "<institution>", "start_date": "<year>", "end_date": "<year>", "gpa": <number or null>}
  ],
  "experience": [
    {"title": "<job title>", "company": "<company>", "start_date": "<YYYY or YYYY-MM>", "end_date": "<YYYY or YYYY-MM or Present>", "description": "<brief description>"}
  ],
  "projects": [
    {"name": "<project name>", "description": "<brief description>", "technologies": ["<tech>"]}
  ],
  "certifications": ["<certification name>"]
}

Use "Present" as end_date for current positions. Use empty arrays for sections not present in the resume. Do not invent data that is not in the text.`,
		resumeText)
}

// BuildFeedbackPrompt creates the prompt for per-candidate feedback
// generation.
func (pb *PromptBuilder) BuildFeedbackPrompt(profile *models.CandidateProfile, req *models.JobRequirements, scores models.ScoreResult) string {
	skills := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		skills = append(skills, s.SkillName)
	}

	education := make([]string, 0, len(profile.Education))
	for _, e := range profile.Education {
		education = append(education, fmt.Sprintf("%s in %s", e.Degree, e.FieldOfStudy))
	}

	experience := make([]string, 0, len(profile.Experience))
	for _, e := range profile.Experience {
		experience = append(experience, fmt.Sprintf("%s at %s", e.JobTitle, e.Company))
	}

	return fmt.Sprintf(`As an expert career counselor, provide constructive feedback for a job applicant.

Candidate Profile:
- Skills: %s
- Education: %s
- Experience: %s

Job Requirements:
- Required Skills: %s

Scores:
- Skill Match: %.1f%%
- Education Match: %.1f%%
- Experience Match: %.1f%%
- Total Score: %.1f%%

Provide feedback in the following JSON format:
{
  "strengths": "List the candidate's key strengths for this role",
  "missing_skills": "Identify important skills that are missing or need improvement",
  "suggestions": "Provide actionable suggestions for improvement",
  "overall_assessment": "Give an overall assessment of fit for this role"
}

Be encouraging but realistic. Focus on specific, actionable advice.`,
		strings.Join(skills, ", "),
		strings.Join(education, ", "),
		strings.Join(experience, ", "),
		strings.Join(req.RequiredSkills, ", "),
		scores.SkillScore,
		scores.EducationScore,
		scores.ExperienceScore,
		scores.TotalScore)
}
