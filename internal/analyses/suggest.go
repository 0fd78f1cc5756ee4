package analyses

import (
	"context"

	"resume-optimizer/internal/ats"
)

// Suggestion is one piece of improvement advice from an external
// post-processor.
type Suggestion struct {
	Type       string `json:"type"`
	Priority   string `json:"priority"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Example    string `json:"example,omitempty"`
}

// Suggester is an optional post-processor consulted after scoring. The
// pipeline never depends on it: a nil Suggester or a failing call leaves the
// scores, keyword lists, and issues of the result untouched.
type Suggester interface {
	Suggest(ctx context.Context, resumeText, jobDescription string, missingKeywords []string, issues []ats.Issue) ([]Suggestion, error)
}
