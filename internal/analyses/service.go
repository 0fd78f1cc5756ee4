package analyses

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/ats"
	"resume-optimizer/internal/documents"
	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/keywords"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/telemetry"
)

// Composite weighting: keyword match carries 60% of the final score,
// compatibility 40%.
const (
	keywordWeight = 0.6
	atsWeight     = 0.4
)

// Service runs the analysis pipeline and persists its results.
type Service struct {
	Matcher   *keywords.Matcher
	Repo      Repo
	Docs      *documents.Service
	Suggester Suggester
}

// Analyze scores resume text against the job description and audits the
// parsed document, in parallel (the two computations share no data), then
// combines both into the weighted composite. Pure function of its inputs
// aside from the measured duration.
func (s *Service) Analyze(ctx context.Context, resumeText string, doc extract.ParsedDocument, jobDescription string) CompositeResult {
	start := time.Now()

	var (
		match  keywords.MatchResult
		report ats.Report
		wg     sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		match = s.Matcher.Score(resumeText, jobDescription)
	}()
	go func() {
		defer wg.Done()
		report = ats.Check(doc)
	}()
	wg.Wait()

	result := CompositeResult{
		Keyword:         match,
		ATS:             report,
		FinalMatchScore: compositeScore(match.Score, report.Score),
	}

	if s.Suggester != nil {
		suggestions, err := s.Suggester.Suggest(ctx, resumeText, jobDescription, match.MissingKeywords, report.Issues)
		if err != nil {
			telemetry.Warn("analysis.suggester_skipped", map[string]any{"error": err.Error()})
		} else {
			result.Suggestions = suggestions
		}
	}

	result.ProcessingTimeMs = time.Since(start).Milliseconds()
	return result
}

// Run analyzes a stored document against a job description and persists the
// analysis record.
func (s *Service) Run(ctx context.Context, userID string, doc documents.Document, jobDescription, jobTitle, companyName string) (Analysis, error) {
	if jobDescription == "" {
		return Analysis{}, ErrInvalidInput
	}

	result := s.Analyze(ctx, doc.RawText, doc.Parsed(), jobDescription)

	analysis := Analysis{
		ID:               uuid.NewString(),
		UserID:           userID,
		DocumentID:       doc.ID,
		JobDescription:   jobDescription,
		JobTitle:         jobTitle,
		CompanyName:      companyName,
		MatchScore:       result.FinalMatchScore,
		ATSScore:         result.ATS.Score,
		KeywordScore:     result.Keyword.Score,
		MatchingKeywords: result.Keyword.MatchedKeywords,
		MissingKeywords:  result.Keyword.MissingKeywords,
		ATSIssues:        result.ATS.Issues,
		Suggestions:      result.Suggestions,
		ProcessingTimeMs: result.ProcessingTimeMs,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, err
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(float64(analysis.ProcessingTimeMs))

	telemetry.Info("analysis.completed", map[string]any{
		"user_id":       userID,
		"document_id":   doc.ID,
		"analysis_id":   analysis.ID,
		"match_score":   analysis.MatchScore,
		"ats_score":     analysis.ATSScore,
		"keyword_score": analysis.KeywordScore,
		"duration_ms":   analysis.ProcessingTimeMs,
	})
	return analysis, nil
}

// Get returns a user's analysis by ID.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	if analysisID == "" {
		return Analysis{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, analysisID)
}

// List returns a user's analyses, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// compositeScore applies the fixed weighting and rounds to two decimals.
func compositeScore(keywordScore, atsScore int) float64 {
	weighted := float64(keywordScore)*keywordWeight + float64(atsScore)*atsWeight
	return math.Round(weighted*100) / 100
}
