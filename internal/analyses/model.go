package analyses

import (
	"time"

	"resume-optimizer/internal/ats"
	"resume-optimizer/internal/keywords"
)

// CompositeResult is the engine's output for one analysis run: the keyword
// match, the compatibility report, the weighted final score, and the measured
// wall-clock duration. It is recomputed per request and never mutated.
type CompositeResult struct {
	Keyword          keywords.MatchResult
	ATS              ats.Report
	FinalMatchScore  float64
	Suggestions      []Suggestion
	ProcessingTimeMs int64
}

// Analysis is one persisted analysis record, keyed by owner and document.
type Analysis struct {
	ID               string
	UserID           string
	DocumentID       string
	JobDescription   string
	JobTitle         string
	CompanyName      string
	MatchScore       float64
	ATSScore         int
	KeywordScore     int
	MatchingKeywords []string
	MissingKeywords  []string
	ATSIssues        []ats.Issue
	Suggestions      []Suggestion
	ProcessingTimeMs int64
	CreatedAt        time.Time
}
