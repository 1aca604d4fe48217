package driven

import (
	"context"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

// SearchHistoryStore persists the search history list and the popularity
// counters under two fixed keys. It is the only state that survives a
// process restart. Load/save failures are non-fatal to callers: history is
// a convenience feature, not core correctness.
type SearchHistoryStore interface {
	// Load reads both structures; a missing key yields empty slices
	Load(ctx context.Context) (history []string, popular []domain.PopularEntry, err error)

	// Save writes both structures, replacing previous values
	Save(ctx context.Context, history []string, popular []domain.PopularEntry) error

	// Clear removes both persisted structures
	Clear(ctx context.Context) error
}
