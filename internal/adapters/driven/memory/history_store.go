// Package memory provides a non-durable SearchHistoryStore used when no
// Redis instance is configured. State lives for the process lifetime only.
package memory

import (
	"context"
	"sync"

	"github.com/cityzenmag/search-core/internal/core/domain"
	"github.com/cityzenmag/search-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchHistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-process SearchHistoryStore
type HistoryStore struct {
	mu      sync.Mutex
	history []string
	popular []domain.PopularEntry
}

// NewHistoryStore creates a new in-memory HistoryStore
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

func (s *HistoryStore) Load(_ context.Context) ([]string, []domain.PopularEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.history...), append([]domain.PopularEntry(nil), s.popular...), nil
}

func (s *HistoryStore) Save(_ context.Context, history []string, popular []domain.PopularEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]string(nil), history...)
	s.popular = append([]domain.PopularEntry(nil), popular...)
	return nil
}

func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.popular = nil
	return nil
}
