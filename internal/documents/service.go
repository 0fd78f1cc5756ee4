package documents

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-optimizer/internal/extract"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/telemetry"
)

// Service contains business logic for documents.
type Service struct {
	Store object.ObjectStore
	Repo  Repo
}

// Upload stores the original bytes, parses them once, and persists the
// document. A re-upload of identical bytes by the same user reuses the
// stored document instead of parsing again; the second return reports reuse.
func (s *Service) Upload(ctx context.Context, userID, fileName, declaredType string, data []byte) (Document, bool, error) {
	if fileName == "" || len(data) == 0 {
		return Document{}, false, ErrInvalidInput
	}

	fileHash := hashBytes(data)
	if existing, err := s.Repo.GetByHash(ctx, userID, fileHash); err == nil {
		metrics.IncDocumentReused()
		telemetry.Info("documents.reused", map[string]any{
			"user_id":     userID,
			"document_id": existing.ID,
			"file_hash":   fileHash[:16],
		})
		return existing, true, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Document{}, false, err
	}

	parsed, err := extract.Parse(data, declaredType)
	if err != nil {
		return Document{}, false, err
	}

	storageKey, size, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, false, fmt.Errorf("store upload: %w", err)
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		FileType:   declaredType,
		SizeBytes:  size,
		FileHash:   fileHash,
		StorageKey: storageKey,
		RawText:    parsed.RawText,
		Contact:    parsed.Contact,
		Sections:   parsed.Sections,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, false, err
	}
	metrics.IncDocumentUploaded()
	return doc, false, nil
}

// Get returns a user's document by ID.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if documentID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
