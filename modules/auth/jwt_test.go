package auth

import (
	"errors"
	"testing"
	"time"
)

func testJWTManager(accessTTL time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{
		SecretKey:            "test-secret-key",
		AccessTokenDuration:  accessTTL,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "task-dashboard-test",
	})
}

func TestJWTManager_AccessTokenRoundTrip(t *testing.T) {
	manager := testJWTManager(15 * time.Minute)

	token, err := manager.GenerateAccessToken("user-42", "dash@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := manager.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("UserID = %q, want user-42", claims.UserID)
	}
	if claims.Email != "dash@example.com" {
		t.Errorf("Email = %q, want dash@example.com", claims.Email)
	}
	if claims.TokenType != "access" {
		t.Errorf("TokenType = %q, want access", claims.TokenType)
	}
}

func TestJWTManager_TokenTypeIsEnforced(t *testing.T) {
	manager := testJWTManager(15 * time.Minute)

	access, err := manager.GenerateAccessToken("user-42", "dash@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	refresh, err := manager.GenerateRefreshToken("user-42", "dash@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	// A refresh token must not pass as an access token, nor vice versa.
	if _, err := manager.ValidateAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateAccessToken(refresh) error = %v, want %v", err, ErrInvalidToken)
	}
	if _, err := manager.ValidateRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateRefreshToken(access) error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManager_RejectsForgedAndExpiredTokens(t *testing.T) {
	manager := testJWTManager(15 * time.Minute)

	if _, err := manager.ValidateToken("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken(garbage) error = %v, want %v", err, ErrInvalidToken)
	}

	// Token signed with a different secret.
	other := NewJWTManager(JWTConfig{
		SecretKey:            "different-secret",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 24 * time.Hour,
		Issuer:               "task-dashboard-test",
	})
	forged, err := other.GenerateAccessToken("user-42", "dash@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := manager.ValidateToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ValidateToken(forged) error = %v, want %v", err, ErrInvalidToken)
	}

	// Token already past its expiry.
	expiredManager := testJWTManager(-1 * time.Minute)
	expired, err := expiredManager.GenerateAccessToken("user-42", "dash@example.com")
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	if _, err := expiredManager.ValidateToken(expired); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("ValidateToken(expired) error = %v, want %v", err, ErrExpiredToken)
	}
}
