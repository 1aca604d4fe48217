package services

import (
	"context"
	"testing"
	"time"

	"github.com/cityzenmag/search-core/internal/core/domain"
	"github.com/cityzenmag/search-core/internal/core/ports/driven/mocks"
)

// stubAuthAdapter avoids real bcrypt/JWT work in service tests
type stubAuthAdapter struct{}

func (stubAuthAdapter) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubAuthAdapter) VerifyPassword(password, hash string) bool {
	return hash == "hashed:"+password
}

func (stubAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	return "token-for-" + claims.UserID, nil
}

func (stubAuthAdapter) ValidateToken(token string) (*domain.TokenClaims, error) {
	if token != "token-for-user-1" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{
		UserID:    "user-1",
		Email:     "redaction@cityzenmag.sn",
		Role:      domain.RoleAdmin,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil
}

func seededUserStore() *mocks.MockUserStore {
	store := mocks.NewMockUserStore()
	_ = store.Save(context.Background(), &domain.User{
		ID:           "user-1",
		Email:        "redaction@cityzenmag.sn",
		PasswordHash: "hashed:s3cret",
		Name:         "Rédaction",
		Role:         domain.RoleAdmin,
		Active:       true,
	})
	_ = store.Save(context.Background(), &domain.User{
		ID:           "user-2",
		Email:        "ancien@cityzenmag.sn",
		PasswordHash: "hashed:s3cret",
		Role:         domain.RoleEditor,
		Active:       false,
	})
	return store
}

func TestAuthService_Authenticate(t *testing.T) {
	svc := NewAuthService(seededUserStore(), stubAuthAdapter{})

	response, err := svc.Authenticate(context.Background(), domain.LoginRequest{
		Email:    "redaction@cityzenmag.sn",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Token != "token-for-user-1" {
		t.Errorf("unexpected token %q", response.Token)
	}
	if response.User == nil || response.User.ID != "user-1" {
		t.Errorf("unexpected user summary: %+v", response.User)
	}
	if !response.ExpiresAt.After(time.Now()) {
		t.Error("expected a future expiry")
	}
}

func TestAuthService_Authenticate_Failures(t *testing.T) {
	svc := NewAuthService(seededUserStore(), stubAuthAdapter{})

	tests := []struct {
		name     string
		request  domain.LoginRequest
		expected error
	}{
		{
			name:     "missing email",
			request:  domain.LoginRequest{Password: "s3cret"},
			expected: domain.ErrInvalidInput,
		},
		{
			name:     "missing password",
			request:  domain.LoginRequest{Email: "redaction@cityzenmag.sn"},
			expected: domain.ErrInvalidInput,
		},
		{
			name:     "unknown account",
			request:  domain.LoginRequest{Email: "inconnu@cityzenmag.sn", Password: "s3cret"},
			expected: domain.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			request:  domain.LoginRequest{Email: "redaction@cityzenmag.sn", Password: "wrong"},
			expected: domain.ErrInvalidCredentials,
		},
		{
			name:     "disabled account",
			request:  domain.LoginRequest{Email: "ancien@cityzenmag.sn", Password: "s3cret"},
			expected: domain.ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Authenticate(context.Background(), tt.request); err != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	svc := NewAuthService(seededUserStore(), stubAuthAdapter{})

	authCtx, err := svc.ValidateToken(context.Background(), "token-for-user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if authCtx.UserID != "user-1" || !authCtx.IsAdmin() {
		t.Errorf("unexpected auth context: %+v", authCtx)
	}

	if _, err := svc.ValidateToken(context.Background(), "garbage"); err != domain.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
