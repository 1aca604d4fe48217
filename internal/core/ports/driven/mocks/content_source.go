package mocks

import (
	"context"
	"sync"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

// MockContentSource is a mock implementation of ContentSource for testing
type MockContentSource struct {
	mu      sync.Mutex
	set     *domain.ContentSet
	err     error
	fetches int
}

// NewMockContentSource creates a new MockContentSource
func NewMockContentSource() *MockContentSource {
	return &MockContentSource{set: &domain.ContentSet{}}
}

// SetContent sets the collections returned by FetchContent
func (m *MockContentSource) SetContent(set *domain.ContentSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.set = set
}

// SetError makes FetchContent fail with the given error
func (m *MockContentSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Fetches returns how many times FetchContent was called
func (m *MockContentSource) Fetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

func (m *MockContentSource) FetchContent(ctx context.Context) (*domain.ContentSet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return m.set, nil
}
