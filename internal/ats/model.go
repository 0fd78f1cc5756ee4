package ats

// Severity grades how badly an issue hurts machine parsing of a resume.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Score deductions per issue severity and the fixed pass threshold.
const (
	highDeduction   = 10
	mediumDeduction = 5
	lowDeduction    = 2

	// PassThreshold is the score at or above which a resume passes the
	// compatibility check.
	PassThreshold = 70
)

// Issue is one compatibility finding. The two variants are SectionIssue and
// FormattingIssue.
type Issue interface {
	IssueSeverity() Severity
	IssueRecommendation() string
}

// SectionIssue flags a critical resume section that is absent or empty.
type SectionIssue struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Section        string   `json:"section"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

func (i SectionIssue) IssueSeverity() Severity     { return i.Severity }
func (i SectionIssue) IssueRecommendation() string { return i.Recommendation }

// FormattingIssue flags a raw-text pattern that trips resume parsers.
type FormattingIssue struct {
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Check          string   `json:"issue"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

func (i FormattingIssue) IssueSeverity() Severity     { return i.Severity }
func (i FormattingIssue) IssueRecommendation() string { return i.Recommendation }

// Report is the outcome of a compatibility check. Issues keep evaluation
// order: section findings in table order, then formatting findings in rule
// order; Recommendations mirrors that order.
type Report struct {
	Score           int      `json:"ats_score"`
	Issues          []Issue  `json:"issues"`
	IssueCount      int      `json:"issue_count"`
	Recommendations []string `json:"recommendations"`
	Passed          bool     `json:"passed"`
}

func deduction(severity Severity) int {
	switch severity {
	case SeverityHigh:
		return highDeduction
	case SeverityMedium:
		return mediumDeduction
	default:
		return lowDeduction
	}
}
