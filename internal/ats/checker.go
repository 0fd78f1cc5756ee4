package ats

import (
	"regexp"
	"strings"

	"resume-optimizer/internal/extract"
)

const (
	issueTypeMissingSection = "missing_section"
	issueTypeFormatting     = "formatting_issue"
)

// sectionRule describes one critical section and how its absence is reported.
// Adding a section check is a table change, not a code change.
type sectionRule struct {
	key            string
	severity       Severity
	message        string
	recommendation string
}

// Fixed evaluation order. "summary" is audited even though the extractor's
// section scanner never emits that key; its absence always fires today.
var sectionRules = []sectionRule{
	{
		key:            extract.SectionExperience,
		severity:       SeverityHigh,
		message:        "Missing 'Experience' section",
		recommendation: "Add a detailed work experience section with job titles, companies, dates, and key achievements",
	},
	{
		key:            extract.SectionEducation,
		severity:       SeverityHigh,
		message:        "Missing 'Education' section",
		recommendation: "Add an education section with degrees, institutions, and graduation dates",
	},
	{
		key:            extract.SectionSkills,
		severity:       SeverityMedium,
		message:        "Missing 'Skills' section",
		recommendation: "Add a skills section listing relevant technical and soft skills",
	},
	{
		key:            "summary",
		severity:       SeverityLow,
		message:        "Missing 'Summary' or 'Objective' section",
		recommendation: "Consider adding a professional summary or career objective at the top of your resume",
	},
}

// formattingRule fires when its pattern matches the raw text or any keyword
// occurs in the lowercased raw text. Rules are independent: several may fire
// on the same text.
type formattingRule struct {
	check          string
	severity       Severity
	message        string
	recommendation string
	pattern        *regexp.Regexp
	keywords       []string
}

var formattingRules = []formattingRule{
	{
		check:          "special_characters",
		severity:       SeverityMedium,
		message:        "Special characters or bullets detected in resume",
		recommendation: "Use simple text for section headings (e.g., 'EXPERIENCE' instead of '● Experience')",
		pattern:        regexp.MustCompile(`[✓✔✗✘●•○◦▪▫◾◽⬛⬜]`),
	},
	{
		check:          "table_columns",
		severity:       SeverityLow,
		message:        "Resume may contain tables or columns",
		recommendation: "Avoid tables and multi-column layouts; use simple single-column format for better ATS compatibility",
		pattern:        regexp.MustCompile(`\|\s*.*\s*\|`),
		keywords:       []string{"table", "column"},
	},
	{
		check:          "images_graphics",
		severity:       SeverityMedium,
		message:        "Resume may contain images or graphics",
		recommendation: "Remove images, photos, and graphics; ATS systems cannot parse visual content",
		keywords:       []string{"image", "photo", "picture", "graphic", ".jpg", ".png", ".jpeg", ".gif"},
	},
	{
		check:          "header_footer",
		severity:       SeverityLow,
		message:        "Resume may have headers or footers",
		recommendation: "Avoid putting important information in headers or footers; ATS may not parse them correctly",
		keywords:       []string{"header", "footer"},
	},
	{
		check:          "complex_spacing",
		severity:       SeverityLow,
		message:        "Resume may have complex spacing or formatting",
		recommendation: "Use consistent single spaces between words; avoid excessive spacing for alignment",
		pattern:        regexp.MustCompile(`\s{3,}`),
	},
}

// Check audits a parsed document for compatibility with resume-screening
// software: section presence first, then raw-text formatting.
func Check(doc extract.ParsedDocument) Report {
	issues := checkSections(doc.Sections)
	issues = append(issues, checkFormatting(doc.RawText)...)

	score := scoreIssues(issues)
	recommendations := make([]string, 0, len(issues))
	for _, issue := range issues {
		recommendations = append(recommendations, issue.IssueRecommendation())
	}

	return Report{
		Score:           score,
		Issues:          issues,
		IssueCount:      len(issues),
		Recommendations: recommendations,
		Passed:          score >= PassThreshold,
	}
}

func checkSections(sections map[string][]string) []Issue {
	issues := []Issue{}
	for _, rule := range sectionRules {
		if len(sections[rule.key]) > 0 {
			continue
		}
		issues = append(issues, SectionIssue{
			Type:           issueTypeMissingSection,
			Severity:       rule.severity,
			Section:        titleCase(rule.key),
			Message:        rule.message,
			Recommendation: rule.recommendation,
		})
	}
	return issues
}

func checkFormatting(text string) []Issue {
	issues := []Issue{}
	if text == "" {
		return issues
	}
	lower := strings.ToLower(text)
	for _, rule := range formattingRules {
		if !rule.fires(text, lower) {
			continue
		}
		issues = append(issues, FormattingIssue{
			Type:           issueTypeFormatting,
			Severity:       rule.severity,
			Check:          rule.check,
			Message:        rule.message,
			Recommendation: rule.recommendation,
		})
	}
	return issues
}

func (r formattingRule) fires(text, lower string) bool {
	if r.pattern != nil && r.pattern.MatchString(text) {
		return true
	}
	for _, keyword := range r.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// scoreIssues starts at 100, deducts per severity, and clamps to [0,100].
func scoreIssues(issues []Issue) int {
	score := 100
	for _, issue := range issues {
		score -= deduction(issue.IssueSeverity())
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func titleCase(key string) string {
	if key == "" {
		return key
	}
	return strings.ToUpper(key[:1]) + key[1:]
}
