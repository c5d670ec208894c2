package ports

import (
	"context"

	"printshop/internal/core/domain"
)

// SessionStore persists the auth token and cached user across restarts.
// Save and Clear write both values or neither.
type SessionStore interface {
	// Load returns nil without error when no session is stored.
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Clear(ctx context.Context) error
}
