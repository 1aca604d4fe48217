package driven

import (
	"context"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

// ContentSource supplies the five published content collections the index
// is built from. Implementations read already-stored content; the core
// never triggers an upstream sync.
type ContentSource interface {
	// FetchContent reads all five collections
	FetchContent(ctx context.Context) (*domain.ContentSet, error)
}
