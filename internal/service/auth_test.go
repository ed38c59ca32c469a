package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/eventboard/backend/internal/config"
	"github.com/eventboard/backend/internal/db"
	"github.com/eventboard/backend/internal/model"
	"github.com/golang-jwt/jwt/v5"
)

func newTestAuthService(t *testing.T, secret string) (*AuthService, *db.Memory) {
	t.Helper()
	repo := db.NewMemory()
	svc, err := NewAuthService(repo, config.AuthConfig{JWTSecret: secret})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc, repo
}

func signHS256(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return signed
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(db.NewMemory(), config.AuthConfig{})
	if !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}

func TestNewAuthServiceRejectsInsecureSameSite(t *testing.T) {
	_, err := NewAuthService(db.NewMemory(), config.AuthConfig{
		JWTSecret:      "abc",
		CookieSecure:   "false",
		CookieSameSite: "none",
	})
	if !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}

func TestVerifyTokenMatchingSecret(t *testing.T) {
	svc, _ := newTestAuthService(t, "abc")
	token := signHS256(t, "abc", jwt.MapClaims{"userId": 42})

	identity, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if identity.UserID != "42" {
		t.Fatalf("UserID = %q, want 42", identity.UserID)
	}
	want := map[string]any{"userId": float64(42)}
	if !reflect.DeepEqual(identity.Claims, want) {
		t.Fatalf("Claims = %#v, want %#v", identity.Claims, want)
	}
}

func TestVerifyTokenRejections(t *testing.T) {
	svc, _ := newTestAuthService(t, "abc")
	past := time.Now().Add(-time.Minute).Unix()

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userId": 42}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "wrong-secret", token: signHS256(t, "xyz", jwt.MapClaims{"userId": 42})},
		{name: "expired", token: signHS256(t, "abc", jwt.MapClaims{"userId": 42, "exp": past})},
		{name: "malformed", token: "not-a-token"},
		{name: "alg-none", token: noneToken},
		{name: "empty", token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := svc.VerifyToken(tt.token)
			if !errors.Is(err, ErrInvalidCredential) {
				t.Fatalf("VerifyToken() err = %v, want ErrInvalidCredential", err)
			}
			if identity != nil {
				t.Fatalf("expected nil identity, got %+v", identity)
			}
		})
	}
}

func TestVerifyTokenIsRepeatable(t *testing.T) {
	svc, _ := newTestAuthService(t, "abc")
	token := signHS256(t, "abc", jwt.MapClaims{
		"userId":   "u-1",
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	first, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("first VerifyToken: %v", err)
	}
	second, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("second VerifyToken: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identities differ: %+v vs %+v", first, second)
	}
	if first.Username != "alice" {
		t.Fatalf("Username = %q", first.Username)
	}
}

func TestLoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService(t, "abc")

	if err := svc.EnsureAdmin(ctx, "admin", "correct-horse"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	// second call is a no-op
	if err := svc.EnsureAdmin(ctx, "admin", "correct-horse"); err != nil {
		t.Fatalf("EnsureAdmin again: %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "admin", "wrong-password"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "nobody", "whatever1"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unknown user, got %v", err)
	}

	access, refresh, expiresIn, err := svc.Login(ctx, "admin", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if expiresIn != int64(time.Hour.Seconds()) {
		t.Fatalf("expiresIn = %d", expiresIn)
	}

	identity, err := svc.VerifyToken(access)
	if err != nil {
		t.Fatalf("VerifyToken(issued): %v", err)
	}
	if identity.Username != "admin" || identity.UserID == "" {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if _, ok := identity.Claims["exp"]; !ok {
		t.Fatalf("issued token carries no exp claim")
	}

	_, rotated, _, err := svc.Refresh(ctx, refresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated == refresh {
		t.Fatalf("refresh token was not rotated")
	}
	if _, _, _, err := svc.Refresh(ctx, refresh); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected reuse of rotated token to fail, got %v", err)
	}

	if err := svc.Logout(ctx, rotated); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, _, _, err := svc.Refresh(ctx, rotated); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected revoked token to fail, got %v", err)
	}
}

func TestClaimString(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
		want   string
	}{
		{name: "string-user-id", claims: jwt.MapClaims{"userId": "abc"}, want: "abc"},
		{name: "numeric-user-id", claims: jwt.MapClaims{"userId": float64(1234567890)}, want: "1234567890"},
		{name: "subject-fallback", claims: jwt.MapClaims{"sub": "s-1"}, want: "s-1"},
		{name: "absent", claims: jwt.MapClaims{}, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := claimString(tt.claims, "userId", "sub"); got != tt.want {
				t.Fatalf("claimString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoginTrimsUsername(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestAuthService(t, "abc")

	users := NewUserService(repo)
	created, err := users.CreateUser(ctx, model.CreateUserRequest{Username: " alice ", Password: "alice-password"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.Username != "alice" {
		t.Fatalf("stored username = %q, want alice", created.Username)
	}

	for _, username := range []string{"alice", " alice ", "\talice"} {
		if _, _, _, err := svc.Login(ctx, username, "alice-password"); err != nil {
			t.Fatalf("Login(%q): %v", username, err)
		}
	}
	if _, _, _, err := svc.Login(ctx, "   ", "alice-password"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank username, got %v", err)
	}
}
