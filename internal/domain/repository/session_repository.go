package repository

import (
	"context"

	"go-telemedicine/internal/domain/entity"
)

// SessionRepository maps session token IDs to the identity they point at.
// Find returns (nil, nil) for unknown or expired sessions.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Find(ctx context.Context, kind entity.SessionKind, tokenID string) (*entity.Session, error)
	Delete(ctx context.Context, kind entity.SessionKind, tokenID string) error
}
