package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"smarthire/candidate-ranker/internal/models"
)

type stubEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (s *stubEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func skillEntries(names ...string) []models.SkillEntry {
	skills := make([]models.SkillEntry, 0, len(names))
	for _, name := range names {
		skills = append(skills, models.SkillEntry{SkillName: name, ProficiencyLevel: "intermediate"})
	}
	return skills
}

func TestSkillScore_FullKeywordCoverage(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("embedding service down")}
	scorer := NewScorer(embedder)

	score := scorer.SkillScore(context.Background(),
		skillEntries("Go", "Docker", "Python"),
		[]string{"go", "docker"})

	// Semantic component is defined as 100 when every required skill
	// matched; no embedding call should happen.
	assert.Equal(t, 100.0, score)
	assert.Equal(t, 0, embedder.calls)
}

func TestSkillScore_PartialMatchEmbeddingUnavailable(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("embedding service down")}
	scorer := NewScorer(embedder)

	score := scorer.SkillScore(context.Background(),
		skillEntries("python"),
		[]string{"python", "sql"})

	// keyword_score = 1/2 * 100 = 50, semantic degrades to 0:
	// 50*0.7 + 0*0.3 = 35
	assert.InDelta(t, 35.0, score, 0.001)
}

func TestSkillScore_PartialMatchWithSemantic(t *testing.T) {
	vec := []float32{0.5, 0.5, 0.1}
	embedder := &stubEmbedder{vectors: map[string][]float32{
		"python":     vec,
		"python sql": vec,
	}}
	scorer := NewScorer(embedder)

	score := scorer.SkillScore(context.Background(),
		skillEntries("Python"),
		[]string{"python", "sql"})

	// Identical embeddings: cosine = 1, semantic = 100:
	// 50*0.7 + 100*0.3 = 65
	assert.InDelta(t, 65.0, score, 0.001)
	assert.Equal(t, 2, embedder.calls)
}

func TestSkillScore_CaseInsensitiveMatching(t *testing.T) {
	scorer := NewScorer(&stubEmbedder{})

	score := scorer.SkillScore(context.Background(),
		skillEntries("PYTHON", "Sql"),
		[]string{"Python", "sql"})

	assert.Equal(t, 100.0, score)
}

func TestSkillScore_EmptyInputs(t *testing.T) {
	scorer := NewScorer(&stubEmbedder{})

	assert.Equal(t, 0.0, scorer.SkillScore(context.Background(), nil, []string{"go"}))
	assert.Equal(t, 0.0, scorer.SkillScore(context.Background(), skillEntries("go"), nil))
}

func TestEducationScore_DegreeAndStrongField(t *testing.T) {
	education := []models.EducationEntry{
		{Degree: "Bachelor's Degree", FieldOfStudy: "Computer Science"},
	}

	score := EducationScore(education, []string{"Bachelor's Degree in Computer Science"})

	// Degree is a substring of the descriptor (+50), field matches a strong
	// keyword (+30).
	assert.Equal(t, 80.0, score)
}

func TestEducationScore_WeakFieldKeywordOnly(t *testing.T) {
	education := []models.EducationEntry{
		{Degree: "Diploma", FieldOfStudy: "Mechanical Engineering"},
	}

	score := EducationScore(education, []string{"Bachelor's in Computer Science"})

	assert.Equal(t, 20.0, score)
}

func TestEducationScore_StrongKeywordWinsOverWeak(t *testing.T) {
	education := []models.EducationEntry{
		{Degree: "MSc", FieldOfStudy: "Software Engineering"},
	}

	score := EducationScore(education, []string{"Master's in Software Engineering"})

	// "software engineering" fires the 30 branch; the 20 branch must not
	// also fire for the same descriptor. Degree "msc" is not contained
	// either way, so only the field contributes.
	assert.Equal(t, 30.0, score)
}

func TestEducationScore_CappedAt100(t *testing.T) {
	education := []models.EducationEntry{
		{Degree: "Bachelor", FieldOfStudy: "Computer Science"},
	}
	required := []string{
		"Bachelor of Science",
		"Bachelor of Engineering",
	}

	score := EducationScore(education, required)

	// Two descriptors at 50+30 each would be 160 uncapped.
	assert.Equal(t, 100.0, score)
}

func TestEducationScore_EmptyInputs(t *testing.T) {
	assert.Equal(t, 0.0, EducationScore(nil, []string{"Bachelor"}))
	assert.Equal(t, 0.0, EducationScore([]models.EducationEntry{{Degree: "BSc"}}, nil))
}

func TestEducationScore_EmptyDescriptorAwardsNothing(t *testing.T) {
	education := []models.EducationEntry{
		{Degree: "Bachelor", FieldOfStudy: "Computer Science"},
	}

	// "" is contained in every degree string; a blank descriptor must not
	// hand out the ladder points.
	assert.Equal(t, 0.0, EducationScore(education, []string{""}))
	assert.Equal(t, 0.0, EducationScore(education, []string{"   "}))

	// A blank descriptor alongside a real one contributes nothing extra.
	score := EducationScore(education, []string{"", "Bachelor of Science"})
	assert.Equal(t, 80.0, score)
}

func TestExperienceScore_MinYearsZeroIsFixed50(t *testing.T) {
	experience := []models.ExperienceEntry{
		{JobTitle: "Engineer", DurationMonths: 240},
	}
	req := models.ExperienceRequirement{MinYears: 0}

	score := ExperienceScore(experience, req)

	// years_score fixed at 50 regardless of experience, role_score 50 with
	// no preferred roles: 50*0.6 + 50*0.4 = 50
	assert.Equal(t, 50.0, score)
}

func TestExperienceScore_YearsCapped(t *testing.T) {
	experience := []models.ExperienceEntry{
		{JobTitle: "Engineer", DurationMonths: 72},
	}
	req := models.ExperienceRequirement{MinYears: 2}

	score := ExperienceScore(experience, req)

	// 72 months against 2 required years caps years_score at 100.
	assert.InDelta(t, 100*0.6+50*0.4, score, 0.001)
}

func TestExperienceScore_PreferredRoleKeywordMatch(t *testing.T) {
	experience := []models.ExperienceEntry{
		{JobTitle: "Backend Developer", DurationMonths: 36},
	}
	req := models.ExperienceRequirement{
		MinYears:       2,
		PreferredRoles: []string{"backend engineer"},
	}

	score := ExperienceScore(experience, req)

	// years: min(36/12/2*100, 100) = 100; role: "backend" keyword matches.
	assert.InDelta(t, 100*0.6+50*0.4, score, 0.001)
}

func TestExperienceScore_NoPreferredRoleMatch(t *testing.T) {
	experience := []models.ExperienceEntry{
		{JobTitle: "Graphic Designer", DurationMonths: 24},
	}
	req := models.ExperienceRequirement{
		MinYears:       2,
		PreferredRoles: []string{"backend engineer"},
	}

	score := ExperienceScore(experience, req)

	assert.InDelta(t, 100*0.6+0*0.4, score, 0.001)
}

func TestExperienceScore_EmptyExperience(t *testing.T) {
	score := ExperienceScore(nil, models.ExperienceRequirement{MinYears: 2})

	assert.Equal(t, 0.0, score)
}

func TestScore_DocumentedFormulaEndToEnd(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("embedding unavailable")}
	scorer := NewScorer(embedder)

	profile := &models.CandidateProfile{
		Skills: skillEntries("python"),
		Experience: []models.ExperienceEntry{
			{JobTitle: "Backend Developer", DurationMonths: 36},
		},
		Education: []models.EducationEntry{},
	}
	req := &models.JobRequirements{
		RequiredSkills: []string{"python", "sql"},
		RequiredExperience: models.ExperienceRequirement{
			MinYears:       2,
			PreferredRoles: []string{"backend engineer"},
		},
	}

	result := scorer.Score(context.Background(), profile, req)

	assert.InDelta(t, 35.0, result.SkillScore, 0.001)
	assert.Equal(t, 0.0, result.EducationScore)
	assert.InDelta(t, 80.0, result.ExperienceScore, 0.001)
	// total = 35*0.4 + 0*0.3 + 80*0.3
	assert.InDelta(t, 38.0, result.TotalScore, 0.001)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{1, 2, 3}), 0.0001)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 0.0001)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 0.0001)
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
}
