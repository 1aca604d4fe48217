package mocks

import (
	"context"
	"sync"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

// MockHistoryStore is an in-memory mock of SearchHistoryStore for testing
type MockHistoryStore struct {
	mu      sync.Mutex
	history []string
	popular []domain.PopularEntry

	LoadErr  error
	SaveErr  error
	ClearErr error

	saves  int
	clears int
}

// NewMockHistoryStore creates a new MockHistoryStore
func NewMockHistoryStore() *MockHistoryStore {
	return &MockHistoryStore{}
}

// Seed preloads the store with persisted state
func (m *MockHistoryStore) Seed(history []string, popular []domain.PopularEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append([]string(nil), history...)
	m.popular = append([]domain.PopularEntry(nil), popular...)
}

// Saves returns how many times Save was called
func (m *MockHistoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Clears returns how many times Clear was called
func (m *MockHistoryStore) Clears() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clears
}

// Persisted returns the currently stored structures
func (m *MockHistoryStore) Persisted() ([]string, []domain.PopularEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.history...), append([]domain.PopularEntry(nil), m.popular...)
}

func (m *MockHistoryStore) Load(ctx context.Context) ([]string, []domain.PopularEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, nil, m.LoadErr
	}
	return append([]string(nil), m.history...), append([]domain.PopularEntry(nil), m.popular...), nil
}

func (m *MockHistoryStore) Save(ctx context.Context, history []string, popular []domain.PopularEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.history = append([]string(nil), history...)
	m.popular = append([]domain.PopularEntry(nil), popular...)
	return nil
}

func (m *MockHistoryStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clears++
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.history = nil
	m.popular = nil
	return nil
}
