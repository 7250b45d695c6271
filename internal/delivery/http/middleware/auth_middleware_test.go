package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func testJWTService() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// The DB-backed user lookup runs last; every case here fails before reaching
// it, so the middleware is wired with a nil DB.
func TestAuthenticateRejections(t *testing.T) {
	jwtService := testJWTService()
	redisClient := testRedis(t)
	m := NewAuthMiddleware(jwtService, redisClient, nil, nil)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})

	userID := uuid.New()
	accessToken, _, err := jwtService.GenerateAccessToken(userID, "user@example.com", 3)
	if err != nil {
		t.Fatalf("generate access token: %v", err)
	}
	refreshToken, _, err := jwtService.GenerateRefreshToken(userID, "user@example.com", 3)
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not.a.token"},
		{"refresh token on access route", "Bearer " + refreshToken},
		{"revoked token", "Bearer " + accessToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			m.Authenticate(next).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestAuthenticateRevokedAfterLogout(t *testing.T) {
	jwtService := testJWTService()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	m := NewAuthMiddleware(jwtService, redisClient, nil, nil)

	userID := uuid.New()
	accessToken, tokenID, err := jwtService.GenerateAccessToken(userID, "user@example.com", 3)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	// Seed the token the way login does, then revoke it the way logout does
	key := fmt.Sprintf("access_token:%s:%s", userID.String(), tokenID)
	if err := redisClient.Set(t.Context(), key, "valid", time.Minute).Err(); err != nil {
		t.Fatalf("seed redis: %v", err)
	}
	if err := redisClient.Del(t.Context(), key).Err(); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()

	m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
