package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resume-optimizer/internal/extract"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document. Contact and sections are stored as jsonb.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id,
    user_id,
    file_name,
    file_type,
    size_bytes,
    file_hash,
    storage_key,
    raw_text,
    contact,
    sections,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	contactJSON, err := json.Marshal(doc.Contact)
	if err != nil {
		return fmt.Errorf("marshal contact: %w", err)
	}
	sectionsJSON, err := json.Marshal(doc.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.FileType,
		doc.SizeBytes,
		doc.FileHash,
		doc.StorageKey,
		doc.RawText,
		contactJSON,
		sectionsJSON,
		doc.CreatedAt,
	)
	return err
}

const selectColumns = `id, user_id, file_name, file_type, size_bytes, file_hash, storage_key, raw_text, contact, sections, created_at`

// GetByID fetches a document by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	query := `
SELECT ` + selectColumns + `
FROM documents
WHERE user_id = $1 AND id = $2
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID, documentID))
}

// GetByHash fetches the latest document with the given content hash.
func (r *PGRepo) GetByHash(ctx context.Context, userID, fileHash string) (Document, error) {
	query := `
SELECT ` + selectColumns + `
FROM documents
WHERE user_id = $1 AND file_hash = $2
ORDER BY created_at DESC
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, userID, fileHash))
}

func (r *PGRepo) scanOne(row *sql.Row) (Document, error) {
	var doc Document
	var contactJSON, sectionsJSON []byte
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.FileType,
		&doc.SizeBytes,
		&doc.FileHash,
		&doc.StorageKey,
		&doc.RawText,
		&contactJSON,
		&sectionsJSON,
		&doc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	if len(contactJSON) > 0 {
		if err := json.Unmarshal(contactJSON, &doc.Contact); err != nil {
			return Document{}, fmt.Errorf("unmarshal contact: %w", err)
		}
	}
	if len(sectionsJSON) > 0 {
		if err := json.Unmarshal(sectionsJSON, &doc.Sections); err != nil {
			return Document{}, fmt.Errorf("unmarshal sections: %w", err)
		}
	}
	if doc.Sections == nil {
		doc.Sections = map[string][]string{}
	}
	for _, key := range extract.SectionKeys {
		if doc.Sections[key] == nil {
			doc.Sections[key] = []string{}
		}
	}
	return doc, nil
}
