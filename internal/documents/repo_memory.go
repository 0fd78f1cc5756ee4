package documents

import (
	"context"
	"sync"
)

// MemoryRepo stores documents in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Document
	byHash map[string]string // userID+"/"+hash -> document ID
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Document),
		byHash: make(map[string]string),
	}
}

// Create stores the document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[doc.ID] = doc
	r.byHash[hashKey(doc.UserID, doc.FileHash)] = doc.ID
	return nil
}

// GetByID returns a user's document by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.byID[documentID]
	if !ok || doc.UserID != userID {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// GetByHash returns a user's document matching the content hash.
func (r *MemoryRepo) GetByHash(ctx context.Context, userID, fileHash string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byHash[hashKey(userID, fileHash)]
	if !ok {
		return Document{}, ErrNotFound
	}
	return r.byID[id], nil
}

func hashKey(userID, fileHash string) string {
	return userID + "/" + fileHash
}
