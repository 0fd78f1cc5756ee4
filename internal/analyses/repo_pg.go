package analyses

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres. Keyword lists, issues, and
// suggestions are stored as jsonb.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, document_id, job_description, job_title, company_name, match_score, ats_score, keyword_score, matching_keywords, missing_keywords, ats_issues, suggestions, processing_time_ms, created_at`

// Create inserts a new analysis record.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO analyses (
    id,
    user_id,
    document_id,
    job_description,
    job_title,
    company_name,
    match_score,
    ats_score,
    keyword_score,
    matching_keywords,
    missing_keywords,
    ats_issues,
    suggestions,
    processing_time_ms,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	matchingJSON, err := marshalStrings(analysis.MatchingKeywords)
	if err != nil {
		return err
	}
	missingJSON, err := marshalStrings(analysis.MissingKeywords)
	if err != nil {
		return err
	}
	issuesJSON, err := marshalIssues(analysis.ATSIssues)
	if err != nil {
		return fmt.Errorf("marshal issues: %w", err)
	}
	suggestionsJSON, err := json.Marshal(analysis.Suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		analysis.ID,
		analysis.UserID,
		analysis.DocumentID,
		analysis.JobDescription,
		analysis.JobTitle,
		analysis.CompanyName,
		analysis.MatchScore,
		analysis.ATSScore,
		analysis.KeywordScore,
		matchingJSON,
		missingJSON,
		issuesJSON,
		suggestionsJSON,
		analysis.ProcessingTimeMs,
		analysis.CreatedAt,
	)
	return err
}

// GetByID fetches a user's analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID, analysisID string) (Analysis, error) {
	query := `
SELECT ` + selectColumns + `
FROM analyses
WHERE user_id = $1 AND id = $2
LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, userID, analysisID)
	analysis, err := scanAnalysis(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	return analysis, nil
}

// ListByUser returns a page of a user's analyses, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	query := `
SELECT ` + selectColumns + `
FROM analyses
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := []Analysis{}
	for rows.Next() {
		analysis, err := scanAnalysis(rows.Scan)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	return analyses, rows.Err()
}

func scanAnalysis(scan func(dest ...any) error) (Analysis, error) {
	var analysis Analysis
	var jobTitle, companyName sql.NullString
	var matchingJSON, missingJSON, issuesJSON, suggestionsJSON []byte

	err := scan(
		&analysis.ID,
		&analysis.UserID,
		&analysis.DocumentID,
		&analysis.JobDescription,
		&jobTitle,
		&companyName,
		&analysis.MatchScore,
		&analysis.ATSScore,
		&analysis.KeywordScore,
		&matchingJSON,
		&missingJSON,
		&issuesJSON,
		&suggestionsJSON,
		&analysis.ProcessingTimeMs,
		&analysis.CreatedAt,
	)
	if err != nil {
		return Analysis{}, err
	}
	analysis.JobTitle = jobTitle.String
	analysis.CompanyName = companyName.String

	if analysis.MatchingKeywords, err = unmarshalStrings(matchingJSON); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal matching keywords: %w", err)
	}
	if analysis.MissingKeywords, err = unmarshalStrings(missingJSON); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal missing keywords: %w", err)
	}
	if analysis.ATSIssues, err = unmarshalIssues(issuesJSON); err != nil {
		return Analysis{}, fmt.Errorf("unmarshal issues: %w", err)
	}
	if len(suggestionsJSON) > 0 {
		if err := json.Unmarshal(suggestionsJSON, &analysis.Suggestions); err != nil {
			return Analysis{}, fmt.Errorf("unmarshal suggestions: %w", err)
		}
	}
	return analysis, nil
}

func marshalStrings(list []string) ([]byte, error) {
	if list == nil {
		list = []string{}
	}
	return json.Marshal(list)
}

func unmarshalStrings(data []byte) ([]string, error) {
	if len(data) == 0 {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
