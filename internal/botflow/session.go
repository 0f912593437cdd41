package botflow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore persists one Draft per chat with a TTL, so an abandoned
// conversation expires instead of lingering in process memory.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(chatID int64) string {
	return fmt.Sprintf("botflow:session:%d", chatID)
}

// Get returns the chat's draft, or an idle one when no session exists.
func (s *SessionStore) Get(ctx context.Context, chatID int64) (*Draft, error) {
	data, err := s.rdb.Get(ctx, sessionKey(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Draft{State: StateIdle}, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &draft, nil
}

func (s *SessionStore) Save(ctx context.Context, chatID int64, draft *Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(chatID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context, chatID int64) error {
	if err := s.rdb.Del(ctx, sessionKey(chatID)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
