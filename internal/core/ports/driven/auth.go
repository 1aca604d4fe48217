package driven

import "github.com/cityzenmag/search-core/internal/core/domain"

// AuthAdapter handles password hashing and token operations
type AuthAdapter interface {
	// HashPassword generates a hash from a plaintext password
	HashPassword(password string) (string, error)

	// VerifyPassword checks if a password matches a hash
	VerifyPassword(password, hash string) bool

	// GenerateToken creates a signed token from domain claims
	GenerateToken(claims *domain.TokenClaims) (string, error)

	// ValidateToken parses and verifies a token, returning its claims
	ValidateToken(token string) (*domain.TokenClaims, error)
}
