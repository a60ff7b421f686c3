package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"MacroPulse/internal/domain/models"
	domrepo "MacroPulse/internal/domain/repository"
)

const regimeTrackerKey = "regime_tracker"

// RedisStateStore persists regime tracker state in Redis so transition
// detection survives process restarts.
type RedisStateStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStateStore(client *redis.Client, prefix string) domrepo.StateStore {
	if prefix == "" {
		prefix = "macropulse"
	}
	return &RedisStateStore{client: client, prefix: prefix}
}

func (s *RedisStateStore) key() string {
	return fmt.Sprintf("%s:%s", s.prefix, regimeTrackerKey)
}

func (s *RedisStateStore) Load(ctx context.Context) (models.RegimeTrackerState, bool, error) {
	var state models.RegimeTrackerState

	raw, err := s.client.Get(ctx, s.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return state, false, nil
	}
	if err != nil {
		return state, false, fmt.Errorf("load tracker state: %w", err)
	}

	if err := json.Unmarshal(raw, &state); err != nil {
		return state, false, fmt.Errorf("decode tracker state: %w", err)
	}
	return state, true, nil
}

func (s *RedisStateStore) Save(ctx context.Context, state models.RegimeTrackerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode tracker state: %w", err)
	}
	// No TTL: the tracker state is authoritative until the next transition.
	if err := s.client.Set(ctx, s.key(), raw, 0).Err(); err != nil {
		return fmt.Errorf("save tracker state: %w", err)
	}
	return nil
}
