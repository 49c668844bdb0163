package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-telemedicine/internal/domain/entity"
	domainRepo "go-telemedicine/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type redisSessionRepository struct {
	redisClient *redis.Client
}

func NewRedisSessionRepository(redisClient *redis.Client) domainRepo.SessionRepository {
	return &redisSessionRepository{redisClient: redisClient}
}

// sessionKey builds the store key, e.g. "doctor_session:<token id>"
func sessionKey(kind entity.SessionKind, tokenID string) string {
	return fmt.Sprintf("%s_session:%s", kind, tokenID)
}

func (r *redisSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if session.ExpiresAt.IsZero() {
		ttl = 0
	} else if ttl <= 0 {
		return nil
	}

	key := sessionKey(session.Kind, session.TokenID)
	if err := r.redisClient.Set(ctx, key, session.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("store session %s: %w", key, err)
	}
	return nil
}

func (r *redisSessionRepository) Find(ctx context.Context, kind entity.SessionKind, tokenID string) (*entity.Session, error) {
	key := sessionKey(kind, tokenID)

	userID, err := r.redisClient.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("load session %s: %w", key, err)
	}

	session := &entity.Session{
		TokenID: tokenID,
		Kind:    kind,
		UserID:  userID,
	}
	if ttl, err := r.redisClient.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		session.ExpiresAt = time.Now().Add(ttl)
	}
	return session, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, kind entity.SessionKind, tokenID string) error {
	return r.redisClient.Del(ctx, sessionKey(kind, tokenID)).Err()
}
