package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cityzenmag/search-core/internal/core/domain"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{
			name:     "valid bearer token",
			header:   "Bearer abc123",
			expected: "abc123",
		},
		{
			name:     "lowercase bearer",
			header:   "bearer token123",
			expected: "token123",
		},
		{
			name:     "empty header",
			header:   "",
			expected: "",
		},
		{
			name:     "no bearer prefix",
			header:   "token123",
			expected: "",
		},
		{
			name:     "basic auth",
			header:   "Basic dXNlcjpwYXNz",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			result := extractBearerToken(req)
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestGetAuthContext(t *testing.T) {
	if result := GetAuthContext(context.Background()); result != nil {
		t.Error("expected nil for context without auth")
	}

	authCtx := &domain.AuthContext{UserID: "user-1", Role: domain.RoleAdmin}
	ctx := context.WithValue(context.Background(), authContextKey, authCtx)
	if result := GetAuthContext(ctx); result == nil || result.UserID != "user-1" {
		t.Errorf("expected auth context for user-1, got %v", result)
	}
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	mockAuth := &mockAuthService{
		validateTokenFn: func(ctx context.Context, token string) (*domain.AuthContext, error) {
			switch token {
			case "valid-token":
				return &domain.AuthContext{UserID: "user-1", Role: domain.RoleEditor}, nil
			case "expired-token":
				return nil, domain.ErrTokenExpired
			default:
				return nil, domain.ErrTokenInvalid
			}
		},
	}
	middleware := NewAuthMiddleware(mockAuth)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetAuthContext(r.Context()) == nil {
			t.Error("expected auth context in request context")
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{"valid token", "Bearer valid-token", http.StatusOK},
		{"expired token", "Bearer expired-token", http.StatusUnauthorized},
		{"invalid token", "Bearer garbage", http.StatusUnauthorized},
		{"missing token", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			middleware.Authenticate(next).ServeHTTP(rr, req)

			if rr.Code != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, rr.Code)
			}
		})
	}
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	middleware := NewAuthMiddleware(&mockAuthService{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin allowed", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), authContextKey,
			&domain.AuthContext{UserID: "user-1", Role: domain.RoleAdmin})
		req := httptest.NewRequest("DELETE", "/", nil).WithContext(ctx)
		rr := httptest.NewRecorder()

		middleware.RequireAdmin(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rr.Code)
		}
	})

	t.Run("editor forbidden", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), authContextKey,
			&domain.AuthContext{UserID: "user-2", Role: domain.RoleEditor})
		req := httptest.NewRequest("DELETE", "/", nil).WithContext(ctx)
		rr := httptest.NewRecorder()

		middleware.RequireAdmin(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rr.Code)
		}
	})

	t.Run("no auth context", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/", nil)
		rr := httptest.NewRecorder()

		middleware.RequireAdmin(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rr.Code)
		}
	})
}
