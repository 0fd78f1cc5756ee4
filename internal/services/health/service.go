package health

import (
	"context"
	"database/sql"
	"time"
)

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. A nil db means the app runs
// on in-memory repositories and the database check is skipped.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status returns a health payload including database reachability.
func (s *Service) Status(ctx context.Context) map[string]any {
	status := map[string]any{"ok": true}
	if s.DB == nil {
		status["database"] = "off"
		return status
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		status["ok"] = false
		status["database"] = "down"
		return status
	}
	status["database"] = "up"
	return status
}
