package driving

import (
	"context"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

// SearchService is the query engine over the in-memory unified index.
// Lifecycle: construct, then IndexContent at least once, then Search.
type SearchService interface {
	// IndexContent fully rebuilds the index from the given collections.
	// On failure the previous index is left in place and no partial
	// index is exposed.
	IndexContent(ctx context.Context, set *domain.ContentSet) error

	// Search runs the query pipeline (filter, score, sort, paginate)
	// and returns the assembled response. Returns ErrNotIndexed before
	// the first successful IndexContent.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// Suggest returns query completions from popular searches and the
	// static domain vocabulary
	Suggest(ctx context.Context, query string, limit int) ([]string, error)

	// Indexed reports whether at least one indexing pass has succeeded
	Indexed() bool
}

// SearchHistoryService tracks recorded queries and their frequencies
type SearchHistoryService interface {
	// RecordSearch records a query; no-op when its trimmed length is
	// too short to be meaningful
	RecordSearch(ctx context.Context, query string)

	// SearchHistory returns the most recent recorded queries, newest first
	SearchHistory() []string

	// PopularSearches returns queries ordered by descending frequency
	PopularSearches() []string

	// ClearSearchHistory empties both structures and their persisted copies
	ClearSearchHistory(ctx context.Context)
}

// SearchSession orchestrates content loading, indexing and searching for
// one UI-facing session
type SearchSession interface {
	// Reindex fetches the content collections and rebuilds the index
	Reindex(ctx context.Context) error

	// Search delegates to the engine, tracking loading/error state
	Search(ctx context.Context, query string, opts domain.SearchOptions) (*domain.SearchResponse, error)

	// SearchDebounced schedules a search after a short quiet period,
	// superseding any previously pending one
	SearchDebounced(ctx context.Context, query string, opts domain.SearchOptions, deliver func(*domain.SearchResponse, error))

	// State returns a snapshot of the session state
	State() domain.SearchState

	// Watch periodically refetches content and reindexes when the
	// collection sizes change. Blocks until the context is cancelled.
	Watch(ctx context.Context)
}
