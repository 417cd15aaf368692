package services

import (
	"context"
	"log"
	"math"
	"strings"

	"smarthire/candidate-ranker/internal/models"
)

// Score weights: 40% skills, 30% education, 30% experience.
const (
	skillWeight      = 0.4
	educationWeight  = 0.3
	experienceWeight = 0.3

	keywordWeight  = 0.7
	semanticWeight = 0.3

	yearsWeight = 0.6
	roleWeight  = 0.4
)

var (
	strongFieldKeywords = []string{"computer science", "software engineering", "information technology"}
	weakFieldKeywords   = []string{"engineering", "science"}
)

// Embedder is the embedding contract of the language model service.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// Scorer computes candidate fitness scores. Apart from the embedding call
// behind the semantic skill component it is pure: no side effects, empty
// profile fields are valid input and score 0.
type Scorer struct {
	embedder Embedder
}

func NewScorer(embedder Embedder) *Scorer {
	return &Scorer{embedder: embedder}
}

// Score computes all three sub-scores and their weighted total.
func (s *Scorer) Score(ctx context.Context, profile *models.CandidateProfile, req *models.JobRequirements) models.ScoreResult {
	result := models.ScoreResult{
		SkillScore:      s.SkillScore(ctx, profile.Skills, req.RequiredSkills),
		EducationScore:  EducationScore(profile.Education, req.RequiredEducation),
		ExperienceScore: ExperienceScore(profile.Experience, req.RequiredExperience),
	}
	result.TotalScore = result.SkillScore*skillWeight +
		result.EducationScore*educationWeight +
		result.ExperienceScore*experienceWeight

	return result
}

// SkillScore combines exact keyword matching with an embedding-based
// semantic fallback. When every required skill matches verbatim the semantic
// component is defined as 100 and the embedding call is skipped.
func (s *Scorer) SkillScore(ctx context.Context, skills []models.SkillEntry, required []string) float64 {
	if len(skills) == 0 || len(required) == 0 {
		return 0.0
	}

	candidateNames := make([]string, 0, len(skills))
	candidateSet := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		name := strings.ToLower(skill.SkillName)
		candidateNames = append(candidateNames, name)
		candidateSet[name] = struct{}{}
	}

	requiredNames := make([]string, 0, len(required))
	matchedSet := make(map[string]struct{})
	for _, name := range required {
		name = strings.ToLower(name)
		requiredNames = append(requiredNames, name)
		if _, ok := candidateSet[name]; ok {
			matchedSet[name] = struct{}{}
		}
	}

	keywordScore := float64(len(matchedSet)) / float64(len(requiredNames)) * 100

	var semanticScore float64
	if len(matchedSet) < len(requiredNames) {
		semanticScore = s.semanticScore(ctx,
			strings.Join(candidateNames, " "),
			strings.Join(requiredNames, " "))
	} else {
		semanticScore = 100
	}

	return math.Min(keywordScore*keywordWeight+semanticScore*semanticWeight, 100.0)
}

// semanticScore is cosine similarity of the two skill texts scaled to
// [0, 100]. Embedding failures degrade to 0 rather than failing the
// candidate.
func (s *Scorer) semanticScore(ctx context.Context, candidateText, requiredText string) float64 {
	candidateEmbedding, err := s.embedder.GenerateEmbedding(ctx, candidateText)
	if err != nil {
		log.Printf("⚠️  Failed to embed candidate skills: %v\n", err)
		return 0
	}

	requiredEmbedding, err := s.embedder.GenerateEmbedding(ctx, requiredText)
	if err != nil {
		log.Printf("⚠️  Failed to embed required skills: %v\n", err)
		return 0
	}

	return CosineSimilarity(candidateEmbedding, requiredEmbedding) * 100
}

// EducationScore sums a 50/30/20 ladder per required descriptor: 50 for a
// degree match in either containment direction, then 30 for a strong
// field-of-study keyword or 20 for a weak one (first match wins). Capped at
// 100.
func EducationScore(education []models.EducationEntry, required []string) float64 {
	if len(education) == 0 || len(required) == 0 {
		return 0.0
	}

	degrees := make([]string, 0, len(education))
	fields := make([]string, 0, len(education))
	for _, edu := range education {
		if degree := strings.ToLower(strings.TrimSpace(edu.Degree)); degree != "" {
			degrees = append(degrees, degree)
		}
		if field := strings.ToLower(strings.TrimSpace(edu.FieldOfStudy)); field != "" {
			fields = append(fields, field)
		}
	}

	score := 0.0
	for _, req := range required {
		reqLower := strings.ToLower(strings.TrimSpace(req))
		if reqLower == "" {
			// An empty descriptor would match every degree by containment.
			continue
		}

		for _, degree := range degrees {
			if strings.Contains(reqLower, degree) || strings.Contains(degree, reqLower) {
				score += 50
				break
			}
		}

		for _, field := range fields {
			if containsAny(field, strongFieldKeywords) {
				score += 30
				break
			}
			if containsAny(field, weakFieldKeywords) {
				score += 20
				break
			}
		}
	}

	return math.Min(score, 100.0)
}

// ExperienceScore weights total months of experience against the minimum
// years requirement and job titles against the preferred roles. A
// requirement of zero minimum years scores a fixed 50, as does an empty
// preferred-role list.
func ExperienceScore(experience []models.ExperienceEntry, req models.ExperienceRequirement) float64 {
	if len(experience) == 0 {
		return 0.0
	}

	totalMonths := 0
	for _, exp := range experience {
		totalMonths += exp.DurationMonths
	}

	yearsScore := 50.0
	if req.MinYears > 0 {
		yearsScore = math.Min(float64(totalMonths)/12/float64(req.MinYears)*100, 100)
	}

	roleScore := 50.0
	if len(req.PreferredRoles) > 0 {
		roleScore = 0
		for _, role := range req.PreferredRoles {
			keywords := strings.Fields(strings.ToLower(role))
			for _, exp := range experience {
				if containsAny(strings.ToLower(exp.JobTitle), keywords) {
					roleScore = 50
					break
				}
			}
			if roleScore > 0 {
				break
			}
		}
	}

	return yearsScore*yearsWeight + roleScore*roleWeight
}

// CosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either has zero norm or the dimensions differ.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
