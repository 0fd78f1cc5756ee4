package keywords

import (
	"regexp"
	"strings"
)

// jobKeywordLimit is how many keywords the job description contributes to a
// match calculation.
const jobKeywordLimit = 20

// MatchResult quantifies keyword overlap between a resume and a job
// description. Matched and missing preserve keyword relevance order and
// always partition the extracted set: MatchedCount+MissingCount ==
// TotalKeywords.
type MatchResult struct {
	Score           int      `json:"score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	TotalKeywords   int      `json:"total_keywords"`
	MatchedCount    int      `json:"matched_count"`
	MissingCount    int      `json:"missing_count"`
}

// Matcher scores resume text against job-description keywords.
type Matcher struct {
	Extractor *Extractor
}

// Score extracts up to 20 keywords from the job description and tests each
// for word-boundary presence in the lowercased resume text, so "java" never
// matches inside "javascript". Empty inputs and keyword-less job descriptions
// produce the defined zero result, not an error.
func (m *Matcher) Score(resumeText, jobDescription string) MatchResult {
	if resumeText == "" || jobDescription == "" {
		return zeroMatchResult()
	}

	jobKeywords := m.Extractor.Extract(jobDescription, jobKeywordLimit)
	if len(jobKeywords) == 0 {
		return zeroMatchResult()
	}

	resumeLower := strings.ToLower(resumeText)

	matched := []string{}
	missing := []string{}
	for _, keyword := range jobKeywords {
		pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(keyword)) + `\b`)
		if pattern.MatchString(resumeLower) {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}

	total := len(jobKeywords)
	return MatchResult{
		Score:           len(matched) * 100 / total,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		TotalKeywords:   total,
		MatchedCount:    len(matched),
		MissingCount:    len(missing),
	}
}

func zeroMatchResult() MatchResult {
	return MatchResult{
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
	}
}
