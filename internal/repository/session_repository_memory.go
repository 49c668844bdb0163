package repository

import (
	"context"
	"sync"

	"go-telemedicine/internal/domain/entity"
	domainRepo "go-telemedicine/internal/domain/repository"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]entity.Session
}

func NewMemorySessionRepository() domainRepo.SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]entity.Session),
	}
}

func (r *memorySessionRepository) Save(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionKey(session.Kind, session.TokenID)] = *session
	return nil
}

func (r *memorySessionRepository) Find(_ context.Context, kind entity.SessionKind, tokenID string) (*entity.Session, error) {
	key := sessionKey(kind, tokenID)

	r.mu.RLock()
	session, ok := r.sessions[key]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if session.IsExpired(now()) {
		r.mu.Lock()
		delete(r.sessions, key)
		r.mu.Unlock()
		return nil, nil
	}
	return &session, nil
}

func (r *memorySessionRepository) Delete(_ context.Context, kind entity.SessionKind, tokenID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionKey(kind, tokenID))
	return nil
}
