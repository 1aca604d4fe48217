package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/cityzenmag/search-core/internal/core/domain"
	"github.com/cityzenmag/search-core/internal/core/ports/driven"
	"github.com/cityzenmag/search-core/internal/core/ports/driving"
)

// Ensure historyTracker implements SearchHistoryService
var _ driving.SearchHistoryService = (*historyTracker)(nil)

const (
	// historyLimit caps the stored history list
	historyLimit = 50

	// historyViewLimit and popularViewLimit cap the reader-facing views
	historyViewLimit = 10
	popularViewLimit = 10

	// Queries whose trimmed length is minQueryRunes or fewer are ignored
	minQueryRunes = 2
)

// historyTracker records searches into an in-memory history list and
// popularity counters, mirroring both to the durable store. Store
// failures are logged and swallowed: history is a convenience, losing it
// must never break a search.
type historyTracker struct {
	mu      sync.Mutex
	store   driven.SearchHistoryStore
	logger  *slog.Logger
	history []string
	popular []domain.PopularEntry
}

// NewHistoryTracker creates a SearchHistoryService backed by the given
// store, loading any previously persisted state
func NewHistoryTracker(ctx context.Context, store driven.SearchHistoryStore, logger *slog.Logger) driving.SearchHistoryService {
	if logger == nil {
		logger = slog.Default()
	}

	t := &historyTracker{
		store:  store,
		logger: logger,
	}

	history, popular, err := store.Load(ctx)
	if err != nil {
		logger.Warn("search history load failed, starting empty", "error", err)
		return t
	}
	if len(history) > historyLimit {
		history = history[:historyLimit]
	}
	t.history = history
	t.popular = popular
	return t
}

// RecordSearch prepends the raw query to the history and bumps its
// frequency counter, then persists both structures. Queries that trim to
// 2 runes or fewer are ignored.
func (t *historyTracker) RecordSearch(ctx context.Context, query string) {
	if utf8.RuneCountInString(strings.TrimSpace(query)) <= minQueryRunes {
		return
	}

	t.mu.Lock()
	t.history = append([]string{query}, t.history...)
	if len(t.history) > historyLimit {
		t.history = t.history[:historyLimit]
	}

	found := false
	for i := range t.popular {
		if t.popular[i].Query == query {
			t.popular[i].Count++
			found = true
			break
		}
	}
	if !found {
		t.popular = append(t.popular, domain.PopularEntry{Query: query, Count: 1})
	}

	history := append([]string(nil), t.history...)
	popular := append([]domain.PopularEntry(nil), t.popular...)
	t.mu.Unlock()

	if err := t.store.Save(ctx, history, popular); err != nil {
		t.logger.Warn("search history save failed", "error", err)
	}
}

// SearchHistory returns the most recent recorded queries, newest first,
// capped at 10. Duplicates are retained.
func (t *historyTracker) SearchHistory() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.history)
	if n > historyViewLimit {
		n = historyViewLimit
	}
	return append([]string(nil), t.history[:n]...)
}

// PopularSearches returns up to 10 queries by descending frequency.
// Ties keep their insertion order.
func (t *historyTracker) PopularSearches() []string {
	t.mu.Lock()
	entries := append([]domain.PopularEntry(nil), t.popular...)
	t.mu.Unlock()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	n := len(entries)
	if n > popularViewLimit {
		n = popularViewLimit
	}
	queries := make([]string, 0, n)
	for _, entry := range entries[:n] {
		queries = append(queries, entry.Query)
	}
	return queries
}

// ClearSearchHistory resets both structures and removes the persisted
// copies
func (t *historyTracker) ClearSearchHistory(ctx context.Context) {
	t.mu.Lock()
	t.history = nil
	t.popular = nil
	t.mu.Unlock()

	if err := t.store.Clear(ctx); err != nil {
		t.logger.Warn("search history clear failed", "error", err)
	}
}
