package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

func testAdapter() *Adapter {
	// MinCost keeps the hashing fast in tests
	return NewAdapterWithCost("test-secret", bcrypt.MinCost)
}

func testClaims(ttl time.Duration) *domain.TokenClaims {
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    "user-1",
		Email:     "redaction@cityzenmag.sn",
		Role:      domain.RoleAdmin,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

func TestAdapter_HashAndVerifyPassword(t *testing.T) {
	adapter := testAdapter()

	hash, err := adapter.HashPassword("s3cret-passphrase")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "s3cret-passphrase" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !adapter.VerifyPassword("s3cret-passphrase", hash) {
		t.Error("expected correct password to verify")
	}
	if adapter.VerifyPassword("wrong-password", hash) {
		t.Error("expected wrong password to fail verification")
	}
}

func TestAdapter_TokenRoundTrip(t *testing.T) {
	adapter := testAdapter()
	claims := testClaims(time.Hour)

	token, err := adapter.GenerateToken(claims)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	parsed, err := adapter.ValidateToken(token)
	if err != nil {
		t.Fatalf("unexpected error validating token: %v", err)
	}
	if parsed.UserID != claims.UserID {
		t.Errorf("expected user ID %s, got %s", claims.UserID, parsed.UserID)
	}
	if parsed.Email != claims.Email {
		t.Errorf("expected email %s, got %s", claims.Email, parsed.Email)
	}
	if parsed.Role != domain.RoleAdmin {
		t.Errorf("expected role admin, got %s", parsed.Role)
	}
}

func TestAdapter_ValidateToken_Expired(t *testing.T) {
	adapter := testAdapter()
	claims := testClaims(-time.Hour)

	token, err := adapter.GenerateToken(claims)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := adapter.ValidateToken(token); err != domain.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAdapter_ValidateToken_WrongSecret(t *testing.T) {
	token, err := testAdapter().GenerateToken(testClaims(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	other := NewAdapterWithCost("other-secret", bcrypt.MinCost)
	if _, err := other.ValidateToken(token); err != domain.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAdapter_ValidateToken_Garbage(t *testing.T) {
	if _, err := testAdapter().ValidateToken("not.a.token"); err != domain.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
