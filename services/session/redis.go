// File: services/session/redis.go
package session

import (
	"context"
	"encoding/json"
	"time"

	"schedulo/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "chat:session:"

// RedisStore keeps conversation state in Redis with a sliding TTL: every
// write refreshes the expiry, so an active conversation never ages out
// mid-dialogue.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*models.ConversationState, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return models.NewConversationState(), nil
	}
	if err != nil {
		return nil, err
	}
	var state models.ConversationState
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, err
	}
	if state.Stage == "" {
		state.Stage = models.StageInitial
	}
	return &state, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID string, state *models.ConversationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+sessionID, b, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}
