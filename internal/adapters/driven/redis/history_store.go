package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cityzenmag/search-core/internal/core/domain"
	"github.com/cityzenmag/search-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchHistoryStore = (*HistoryStore)(nil)

const (
	// Fixed keys for the two persisted structures
	historyKey = "cityzenmag:search:history"
	popularKey = "cityzenmag:search:popular"
)

// HistoryStore implements driven.SearchHistoryStore using Redis. The
// history is stored as a JSON string array, the popularity counters as a
// JSON array of [query, count] pairs.
type HistoryStore struct {
	client *redis.Client
}

// NewHistoryStore creates a new Redis-backed HistoryStore
func NewHistoryStore(client *redis.Client) *HistoryStore {
	return &HistoryStore{client: client}
}

// Load reads both structures; missing keys yield empty slices
func (s *HistoryStore) Load(ctx context.Context) ([]string, []domain.PopularEntry, error) {
	var history []string
	data, err := s.client.Get(ctx, historyKey).Bytes()
	switch {
	case err == redis.Nil:
		// No history recorded yet
	case err != nil:
		return nil, nil, fmt.Errorf("%w: loading search history: %v", domain.ErrPersistence, err)
	default:
		if err := json.Unmarshal(data, &history); err != nil {
			return nil, nil, fmt.Errorf("%w: decoding search history: %v", domain.ErrPersistence, err)
		}
	}

	var popular []domain.PopularEntry
	data, err = s.client.Get(ctx, popularKey).Bytes()
	switch {
	case err == redis.Nil:
	case err != nil:
		return nil, nil, fmt.Errorf("%w: loading popular searches: %v", domain.ErrPersistence, err)
	default:
		if err := json.Unmarshal(data, &popular); err != nil {
			return nil, nil, fmt.Errorf("%w: decoding popular searches: %v", domain.ErrPersistence, err)
		}
	}

	return history, popular, nil
}

// Save writes both structures atomically via a pipeline
func (s *HistoryStore) Save(ctx context.Context, history []string, popular []domain.PopularEntry) error {
	historyData, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("%w: encoding search history: %v", domain.ErrPersistence, err)
	}
	popularData, err := json.Marshal(popular)
	if err != nil {
		return fmt.Errorf("%w: encoding popular searches: %v", domain.ErrPersistence, err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, historyKey, historyData, 0)
	pipe.Set(ctx, popularKey, popularData, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: saving search history: %v", domain.ErrPersistence, err)
	}
	return nil
}

// Ping checks if Redis is reachable
func (s *HistoryStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Clear removes both persisted structures
func (s *HistoryStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, historyKey, popularKey).Err(); err != nil {
		return fmt.Errorf("%w: clearing search history: %v", domain.ErrPersistence, err)
	}
	return nil
}
