package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"smarthire/candidate-ranker/internal/models"
	"smarthire/candidate-ranker/internal/repositories"
)

const (
	defaultProficiency    = "intermediate"
	defaultDurationMonths = 12
	presentSentinel       = "Present"
	resumeTextLimit       = 40000
)

// CandidateNormalizer converts either source shape of a candidate into the
// canonical profile the scoring engine consumes.
type CandidateNormalizer interface {
	Normalize(ctx context.Context, app models.Application) (*models.CandidateProfile, error)
}

type candidateNormalizer struct {
	appRepo   repositories.ApplicationRepository
	pdfParser PDFParserService
	extractor ResumeExtractor
	now       func() time.Time
}

func NewCandidateNormalizer(
	appRepo repositories.ApplicationRepository,
	pdfParser PDFParserService,
	extractor ResumeExtractor,
) CandidateNormalizer {
	return &candidateNormalizer{
		appRepo:   appRepo,
		pdfParser: pdfParser,
		extractor: extractor,
		now:       time.Now,
	}
}

// Normalize implements CandidateNormalizer.
func (n *candidateNormalizer) Normalize(ctx context.Context, app models.Application) (*models.CandidateProfile, error) {
	profile := &models.CandidateProfile{
		CandidateID:   app.CandidateID,
		ApplicationID: app.ID,
		Source:        app.Source,
		Skills:        []models.SkillEntry{},
		Education:     []models.EducationEntry{},
		Experience:    []models.ExperienceEntry{},
	}

	if app.Source == models.SourceResumeUpload {
		n.fillFromResume(ctx, app, profile)
		return profile, nil
	}

	return n.fillFromRows(app, profile)
}

// fillFromRows handles the structured-application path: the child tables are
// already in canonical shape, so this is a pass-through with default-filling.
func (n *candidateNormalizer) fillFromRows(app models.Application, profile *models.CandidateProfile) (*models.CandidateProfile, error) {
	skills, education, experience, err := n.appRepo.LoadCandidateRows(app.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate rows for application %d: %w", app.ID, err)
	}

	for _, s := range skills {
		level := s.ProficiencyLevel
		if level == "" {
			level = defaultProficiency
		}
		profile.Skills = append(profile.Skills, models.SkillEntry{
			SkillName:         s.SkillName,
			ProficiencyLevel:  level,
			YearsOfExperience: s.YearsOfExperience,
		})
	}

	for _, e := range education {
		profile.Education = append(profile.Education, models.EducationEntry{
			Degree:         e.Degree,
			FieldOfStudy:   e.FieldOfStudy,
			Institution:    e.Institution,
			GraduationYear: e.GraduationYear,
			GPA:            e.GPA,
		})
	}

	for _, e := range experience {
		profile.Experience = append(profile.Experience, models.ExperienceEntry{
			JobTitle:       e.JobTitle,
			Company:        e.Company,
			DurationMonths: e.DurationMonths,
			StartDate:      e.StartDate,
			EndDate:        e.EndDate,
			IsCurrent:      e.IsCurrent,
			Description:    e.Description,
		})
	}

	return profile, nil
}

// fillFromResume handles the upload path: extract text, ask the language
// model for the fixed-schema extraction, then rename and reshape into the
// canonical profile. Any extraction failure leaves the profile lists empty
// so the candidate scores low instead of failing the batch.
func (n *candidateNormalizer) fillFromResume(ctx context.Context, app models.Application, profile *models.CandidateProfile) {
	if app.ResumeFile == nil || *app.ResumeFile == "" {
		log.Printf("⚠️  Application %d has no resume file, scoring on empty profile\n", app.ID)
		return
	}

	text, err := n.pdfParser.ExtractText(*app.ResumeFile)
	if err != nil {
		log.Printf("⚠️  Failed to extract text from resume for application %d: %v\n", app.ID, err)
		return
	}

	raw, err := n.extractor.Extract(ctx, PrepareResumeText(text, resumeTextLimit))
	if err != nil {
		log.Printf("⚠️  Failed to extract resume data for application %d: %v\n", app.ID, err)
		return
	}

	for _, s := range raw.Skills {
		level := s.Level
		if level == "" {
			level = defaultProficiency
		}
		profile.Skills = append(profile.Skills, models.SkillEntry{
			SkillName:         s.Name,
			ProficiencyLevel:  level,
			YearsOfExperience: int(s.ExperienceYears),
		})
	}

	for _, e := range raw.Education {
		profile.Education = append(profile.Education, models.EducationEntry{
			Degree:         e.Degree,
			FieldOfStudy:   e.Field,
			Institution:    e.Institution,
			GraduationYear: parseYear(e.EndDate),
			GPA:            e.GPA,
		})
	}

	currentYear := n.now().Year()
	for _, e := range raw.Experience {
		profile.Experience = append(profile.Experience, models.ExperienceEntry{
			JobTitle:       e.Title,
			Company:        e.Company,
			DurationMonths: durationMonths(e.StartDate, e.EndDate, currentYear),
			StartDate:      e.StartDate,
			EndDate:        e.EndDate,
			IsCurrent:      e.EndDate == presentSentinel,
			Description:    e.Description,
		})
	}

	log.Printf("✅ Resume mapped for application %d: %d skills, %d education, %d experience\n",
		app.ID, len(profile.Skills), len(profile.Education), len(profile.Experience))
}

// parseYear extracts the year component of a date string like "2024" or
// "2024-06". Unparseable input yields nil, never an error.
func parseYear(date string) *int {
	year, ok := yearPrefix(date)
	if !ok {
		return nil
	}
	return &year
}

// durationMonths derives a duration from the year components of two date
// strings. The "Present" sentinel substitutes the current calendar year; any
// parse failure falls back to a fixed default.
func durationMonths(startDate, endDate string, currentYear int) int {
	startYear, ok := yearPrefix(startDate)
	if !ok {
		return defaultDurationMonths
	}

	endYear := currentYear
	if endDate != presentSentinel {
		endYear, ok = yearPrefix(endDate)
		if !ok {
			return defaultDurationMonths
		}
	}

	return (endYear - startYear) * 12
}

func yearPrefix(date string) (int, bool) {
	part := strings.TrimSpace(strings.SplitN(date, "-", 2)[0])
	year, err := strconv.Atoi(part)
	if err != nil {
		return 0, false
	}
	return year, true
}
