package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSessionDestroy signals the backing store failed to remove a session.
var ErrSessionDestroy = errors.New("failed to destroy session")

// Identity is the minimal authenticated state kept server-side. User
// data is re-fetched from the database per request, so there is no
// denormalized snapshot to resynchronize after profile mutations.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	RoleID int       `json:"role_id"`
}

// SessionStore issues and resolves opaque session tokens. The client
// only ever holds the token in a cookie.
type SessionStore interface {
	Start(ctx context.Context, identity Identity) (string, error)
	// Get returns nil, nil for unknown or expired tokens.
	Get(ctx context.Context, token string) (*Identity, error)
	Destroy(ctx context.Context, token string) error
}

type redisSessionStore struct {
	client *redis.Client
	log    *logrus.Logger
	ttl    time.Duration
}

// NewRedisSessionStore creates a session store with an absolute TTL per
// session; lookups do not extend the expiry.
func NewRedisSessionStore(client *redis.Client, log *logrus.Logger, ttl time.Duration) SessionStore {
	return &redisSessionStore{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func (s *redisSessionStore) Start(ctx context.Context, identity Identity) (string, error) {
	token := uuid.New().String()

	payload, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, sessionKey(token), payload, s.ttl).Err(); err != nil {
		s.log.Warnf("Failed to store session in Redis: %+v", err)
		return "", err
	}

	return token, nil
}

func (s *redisSessionStore) Get(ctx context.Context, token string) (*Identity, error) {
	payload, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.log.Warnf("Failed to read session from Redis: %+v", err)
		return nil, err
	}

	var identity Identity
	if err := json.Unmarshal([]byte(payload), &identity); err != nil {
		return nil, err
	}

	return &identity, nil
}

func (s *redisSessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		s.log.Warnf("Failed to delete session from Redis: %+v", err)
		return ErrSessionDestroy
	}
	return nil
}
