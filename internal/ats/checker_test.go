package ats

import (
	"strings"
	"testing"

	"resume-optimizer/internal/extract"
)

func docWithSections(raw string, keys ...string) extract.ParsedDocument {
	sections := map[string][]string{}
	for _, key := range extract.SectionKeys {
		sections[key] = []string{}
	}
	for _, key := range keys {
		sections[key] = []string{"content"}
	}
	return extract.ParsedDocument{RawText: raw, Sections: sections}
}

func TestCheck_AllSectionsMissing(t *testing.T) {
	report := Check(docWithSections("plain resume text"))

	if report.IssueCount != 4 {
		t.Fatalf("issue count = %d, want 4", report.IssueCount)
	}
	wantOrder := []string{"Experience", "Education", "Skills", "Summary"}
	for i, issue := range report.Issues {
		si, ok := issue.(SectionIssue)
		if !ok {
			t.Fatalf("issue %d is %T, want SectionIssue", i, issue)
		}
		if si.Section != wantOrder[i] {
			t.Errorf("issue %d section = %q, want %q", i, si.Section, wantOrder[i])
		}
	}
	// 100 - 10 - 10 - 5 - 2
	if report.Score != 73 {
		t.Errorf("score = %d, want 73", report.Score)
	}
	if !report.Passed {
		t.Error("73 should pass at threshold 70")
	}
}

func TestCheck_SummaryAlwaysFlagged(t *testing.T) {
	report := Check(docWithSections("clean text", extract.SectionKeys...))

	if report.IssueCount != 1 {
		t.Fatalf("issues = %+v, want only the summary issue", report.Issues)
	}
	si, ok := report.Issues[0].(SectionIssue)
	if !ok || si.Section != "Summary" || si.Severity != SeverityLow {
		t.Errorf("issue = %+v", report.Issues[0])
	}
	if report.Score != 98 {
		t.Errorf("score = %d, want 98", report.Score)
	}
}

func TestCheck_FormattingRulesFireIndependently(t *testing.T) {
	raw := "● Experience\nphoto: headshot.jpg\nname | title | city\nsee page footer\ncol1   col2"
	report := Check(docWithSections(raw, extract.SectionKeys...))

	var checks []string
	for _, issue := range report.Issues {
		if fi, ok := issue.(FormattingIssue); ok {
			checks = append(checks, fi.Check)
		}
	}
	want := []string{"special_characters", "table_columns", "images_graphics", "header_footer", "complex_spacing"}
	if strings.Join(checks, ",") != strings.Join(want, ",") {
		t.Errorf("formatting checks = %v, want %v in rule order", checks, want)
	}
}

func TestCheck_EmptyRawTextHasNoFormattingIssues(t *testing.T) {
	report := Check(docWithSections("", extract.SectionKeys...))
	for _, issue := range report.Issues {
		if _, ok := issue.(FormattingIssue); ok {
			t.Errorf("unexpected formatting issue %+v for empty text", issue)
		}
	}
}

func TestScoreIssues(t *testing.T) {
	high := SectionIssue{Severity: SeverityHigh}
	medium := SectionIssue{Severity: SeverityMedium}
	low := FormattingIssue{Severity: SeverityLow}

	cases := []struct {
		name   string
		issues []Issue
		want   int
	}{
		{"none", []Issue{}, 100},
		{"two high", []Issue{high, high}, 80},
		{"mixed", []Issue{high, medium, low}, 83},
		{"clamped", manyIssues(high, 20), 0},
	}
	for _, tc := range cases {
		if got := scoreIssues(tc.issues); got != tc.want {
			t.Errorf("%s: score = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestPassedTracksThreshold(t *testing.T) {
	for n := 0; n <= 12; n++ {
		report := reportForHighIssues(n)
		if report.Passed != (report.Score >= PassThreshold) {
			t.Errorf("n=%d: passed=%v with score=%d", n, report.Passed, report.Score)
		}
	}
}

func TestRecommendationsMirrorIssueOrder(t *testing.T) {
	report := Check(docWithSections("photo of a table   layout"))
	if len(report.Recommendations) != len(report.Issues) {
		t.Fatalf("recommendations = %d, issues = %d", len(report.Recommendations), len(report.Issues))
	}
	for i, issue := range report.Issues {
		if report.Recommendations[i] != issue.IssueRecommendation() {
			t.Errorf("recommendation %d out of order", i)
		}
	}
}

func manyIssues(issue Issue, n int) []Issue {
	out := make([]Issue, n)
	for i := range out {
		out[i] = issue
	}
	return out
}

func reportForHighIssues(n int) Report {
	issues := manyIssues(SectionIssue{Severity: SeverityHigh}, n)
	score := scoreIssues(issues)
	return Report{Score: score, Issues: issues, Passed: score >= PassThreshold}
}
