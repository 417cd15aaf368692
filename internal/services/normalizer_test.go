package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smarthire/candidate-ranker/internal/models"
)

type rowsAppRepo struct {
	skills     []models.Skill
	education  []models.Education
	experience []models.Experience
	err        error
}

func (r *rowsAppRepo) FindPendingByJob(uint) ([]models.Application, error) { return nil, nil }

func (r *rowsAppRepo) LoadCandidateRows(uint) ([]models.Skill, []models.Education, []models.Experience, error) {
	return r.skills, r.education, r.experience, r.err
}

func (r *rowsAppRepo) MarkRanked(uint) error { return nil }

type stubPDF struct {
	text string
	err  error
}

func (s *stubPDF) ExtractText(string) (string, error) { return s.text, s.err }

type stubExtractor struct {
	raw *RawResume
	err error
}

func (s *stubExtractor) Extract(context.Context, string) (*RawResume, error) {
	return s.raw, s.err
}

func newTestNormalizer(repo *rowsAppRepo, pdf *stubPDF, extractor *stubExtractor) *candidateNormalizer {
	return &candidateNormalizer{
		appRepo:   repo,
		pdfParser: pdf,
		extractor: extractor,
		now:       func() time.Time { return time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC) },
	}
}

func uploadApplication() models.Application {
	path := "/uploads/resume.pdf"
	return models.Application{
		ID:          7,
		JobID:       1,
		CandidateID: 42,
		Source:      models.SourceResumeUpload,
		ResumeFile:  &path,
	}
}

func TestNormalize_StructuredPassThrough(t *testing.T) {
	year := 2020
	repo := &rowsAppRepo{
		skills: []models.Skill{
			{SkillName: "Go", ProficiencyLevel: "advanced", YearsOfExperience: 4},
			{SkillName: "SQL"}, // missing proficiency gets defaulted
		},
		education: []models.Education{
			{Degree: "BSc", FieldOfStudy: "Computer Science", GraduationYear: &year},
		},
		experience: []models.Experience{
			{JobTitle: "Backend Developer", Company: "Acme", DurationMonths: 24},
		},
	}
	normalizer := newTestNormalizer(repo, &stubPDF{}, &stubExtractor{})

	profile, err := normalizer.Normalize(context.Background(), models.Application{
		ID:          3,
		CandidateID: 9,
		Source:      models.SourceApplication,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(9), profile.CandidateID)
	assert.Equal(t, uint(3), profile.ApplicationID)
	require.Len(t, profile.Skills, 2)
	assert.Equal(t, "advanced", profile.Skills[0].ProficiencyLevel)
	assert.Equal(t, "intermediate", profile.Skills[1].ProficiencyLevel)
	require.Len(t, profile.Education, 1)
	assert.Equal(t, 2020, *profile.Education[0].GraduationYear)
	require.Len(t, profile.Experience, 1)
	assert.Equal(t, 24, profile.Experience[0].DurationMonths)
}

func TestNormalize_StructuredLoadFailure(t *testing.T) {
	repo := &rowsAppRepo{err: errors.New("db down")}
	normalizer := newTestNormalizer(repo, &stubPDF{}, &stubExtractor{})

	_, err := normalizer.Normalize(context.Background(), models.Application{
		ID:     3,
		Source: models.SourceApplication,
	})

	assert.Error(t, err)
}

func TestNormalize_ResumeUploadFieldMapping(t *testing.T) {
	gpa := 3.6
	extractor := &stubExtractor{raw: &RawResume{
		Skills: []RawSkill{
			{Name: "JavaScript", Level: "expert", ExperienceYears: 5},
			{Name: "React"}, // missing level gets defaulted
		},
		Education: []RawEducation{
			{Degree: "B.Tech", Field: "Computer Science", Institution: "Tech University", EndDate: "2024", GPA: &gpa},
			{Degree: "MBA", Field: "Business", EndDate: "TBD"},
		},
		Experience: []RawExperience{
			{Title: "Software Engineer", Company: "Tech Corp", StartDate: "2020", EndDate: "2024"},
			{Title: "Senior Engineer", Company: "Tech Corp", StartDate: "2024-01", EndDate: "Present"},
			{Title: "Intern", Company: "Startup", StartDate: "", EndDate: "2019"},
		},
	}}
	normalizer := newTestNormalizer(&rowsAppRepo{}, &stubPDF{text: "resume text"}, extractor)

	profile, err := normalizer.Normalize(context.Background(), uploadApplication())

	require.NoError(t, err)

	require.Len(t, profile.Skills, 2)
	assert.Equal(t, "JavaScript", profile.Skills[0].SkillName)
	assert.Equal(t, "expert", profile.Skills[0].ProficiencyLevel)
	assert.Equal(t, 5, profile.Skills[0].YearsOfExperience)
	assert.Equal(t, "intermediate", profile.Skills[1].ProficiencyLevel)

	require.Len(t, profile.Education, 2)
	assert.Equal(t, "Computer Science", profile.Education[0].FieldOfStudy)
	require.NotNil(t, profile.Education[0].GraduationYear)
	assert.Equal(t, 2024, *profile.Education[0].GraduationYear)
	assert.Nil(t, profile.Education[1].GraduationYear) // "TBD" parses to nil, not a crash

	require.Len(t, profile.Experience, 3)
	assert.Equal(t, "Software Engineer", profile.Experience[0].JobTitle)
	assert.Equal(t, 48, profile.Experience[0].DurationMonths)
	assert.False(t, profile.Experience[0].IsCurrent)
	// "Present" substitutes the current calendar year (2026 in this test)
	assert.Equal(t, 24, profile.Experience[1].DurationMonths)
	assert.True(t, profile.Experience[1].IsCurrent)
	// Unparseable start date falls back to the fixed default
	assert.Equal(t, 12, profile.Experience[2].DurationMonths)
}

func TestNormalize_ResumeExtractionFailureYieldsEmptyProfile(t *testing.T) {
	extractor := &stubExtractor{err: errors.New("model unavailable")}
	normalizer := newTestNormalizer(&rowsAppRepo{}, &stubPDF{text: "resume text"}, extractor)

	profile, err := normalizer.Normalize(context.Background(), uploadApplication())

	require.NoError(t, err)
	assert.Empty(t, profile.Skills)
	assert.Empty(t, profile.Education)
	assert.Empty(t, profile.Experience)
	assert.NotNil(t, profile.Skills)
	assert.NotNil(t, profile.Education)
	assert.NotNil(t, profile.Experience)
}

func TestNormalize_ResumeTextExtractionFailureYieldsEmptyProfile(t *testing.T) {
	normalizer := newTestNormalizer(&rowsAppRepo{}, &stubPDF{err: errors.New("corrupt pdf")}, &stubExtractor{})

	profile, err := normalizer.Normalize(context.Background(), uploadApplication())

	require.NoError(t, err)
	assert.Empty(t, profile.Skills)
}

func TestNormalize_ResumeUploadWithoutFile(t *testing.T) {
	normalizer := newTestNormalizer(&rowsAppRepo{}, &stubPDF{}, &stubExtractor{})

	app := uploadApplication()
	app.ResumeFile = nil
	profile, err := normalizer.Normalize(context.Background(), app)

	require.NoError(t, err)
	assert.Empty(t, profile.Skills)
}

func TestParseYear(t *testing.T) {
	year := parseYear("2024")
	require.NotNil(t, year)
	assert.Equal(t, 2024, *year)

	year = parseYear("2024-06")
	require.NotNil(t, year)
	assert.Equal(t, 2024, *year)

	assert.Nil(t, parseYear("TBD"))
	assert.Nil(t, parseYear(""))
}

func TestDurationMonths(t *testing.T) {
	assert.Equal(t, 36, durationMonths("2020", "2023", 2026))
	assert.Equal(t, 72, durationMonths("2020-03", "Present", 2026))
	assert.Equal(t, 12, durationMonths("", "2023", 2026))
	assert.Equal(t, 12, durationMonths("unknown", "2023", 2026))
	assert.Equal(t, 12, durationMonths("2020", "ongoing", 2026))
}
