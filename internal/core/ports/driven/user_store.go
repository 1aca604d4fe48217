package driven

import (
	"context"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

// UserStore handles back-office account persistence
type UserStore interface {
	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *domain.User) error

	// Count returns the total number of users
	Count(ctx context.Context) (int, error)
}
