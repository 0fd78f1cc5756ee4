package analyses

// CompositeAnalysisDTO is the wire shape of a completed analysis.
// semantic_similarity mirrors the keyword match score for clients that
// still read the older field name.
type CompositeAnalysisDTO struct {
	AnalysisID         string       `json:"analysis_id"`
	DocumentID         string       `json:"document_id"`
	MatchScore         float64      `json:"match_score"`
	ATSScore           int          `json:"ats_score"`
	SemanticSimilarity int          `json:"semantic_similarity"`
	MatchingKeywords   []string     `json:"matching_keywords"`
	MissingKeywords    []string     `json:"missing_keywords"`
	ATSIssues          IssueList    `json:"ats_issues"`
	Suggestions        []Suggestion `json:"suggestions"`
	ProcessingTimeMs   int64        `json:"processing_time_ms"`
	CreatedAt          string       `json:"created_at"`
}

// ToDTO converts a stored analysis into its wire shape, normalizing nil
// slices to empty ones so clients always see arrays.
func ToDTO(analysis Analysis) CompositeAnalysisDTO {
	matching := analysis.MatchingKeywords
	if matching == nil {
		matching = []string{}
	}
	missing := analysis.MissingKeywords
	if missing == nil {
		missing = []string{}
	}
	issues := IssueList(analysis.ATSIssues)
	if issues == nil {
		issues = IssueList{}
	}
	suggestions := analysis.Suggestions
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return CompositeAnalysisDTO{
		AnalysisID:         analysis.ID,
		DocumentID:         analysis.DocumentID,
		MatchScore:         analysis.MatchScore,
		ATSScore:           analysis.ATSScore,
		SemanticSimilarity: analysis.KeywordScore,
		MatchingKeywords:   matching,
		MissingKeywords:    missing,
		ATSIssues:          issues,
		Suggestions:        suggestions,
		ProcessingTimeMs:   analysis.ProcessingTimeMs,
		CreatedAt:          analysis.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}
