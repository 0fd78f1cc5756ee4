package analyses

import (
	"encoding/json"
	"fmt"

	"resume-optimizer/internal/ats"
)

// IssueList is a slice of issue variants that survives a JSON round trip:
// each element carries a "type" tag naming its concrete shape.
type IssueList []ats.Issue

func (l IssueList) MarshalJSON() ([]byte, error) {
	return marshalIssues(l)
}

func (l *IssueList) UnmarshalJSON(data []byte) error {
	issues, err := unmarshalIssues(data)
	if err != nil {
		return err
	}
	*l = issues
	return nil
}

// Issue variants round-trip through jsonb by their "type" tag.
func marshalIssues(issues []ats.Issue) ([]byte, error) {
	if issues == nil {
		issues = []ats.Issue{}
	}
	return json.Marshal(issues)
}

func unmarshalIssues(data []byte) ([]ats.Issue, error) {
	if len(data) == 0 {
		return []ats.Issue{}, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	issues := make([]ats.Issue, 0, len(raw))
	for _, item := range raw {
		var tag struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(item, &tag); err != nil {
			return nil, err
		}
		switch tag.Type {
		case "missing_section":
			var issue ats.SectionIssue
			if err := json.Unmarshal(item, &issue); err != nil {
				return nil, err
			}
			issues = append(issues, issue)
		case "formatting_issue":
			var issue ats.FormattingIssue
			if err := json.Unmarshal(item, &issue); err != nil {
				return nil, err
			}
			issues = append(issues, issue)
		default:
			return nil, fmt.Errorf("unknown issue type %q", tag.Type)
		}
	}
	return issues, nil
}
