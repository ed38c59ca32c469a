package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/eventboard/backend/internal/config"
	"github.com/eventboard/backend/internal/db"
	"github.com/eventboard/backend/internal/model"
	"github.com/eventboard/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type gateRecorder struct {
	calls    int
	identity *model.Identity
	fromCtx  *model.Identity
}

func newGateRouter(t *testing.T, secret string) (*gin.Engine, *gateRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, err := service.NewAuthService(db.NewMemory(), config.AuthConfig{JWTSecret: secret})
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	rec := &gateRecorder{}
	r := gin.New()
	r.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		rec.calls++
		rec.identity = GetIdentity(c)
		rec.fromCtx, _ = IdentityFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})
	return r, rec
}

func mint(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return signed
}

func doGate(r http.Handler, header string, set bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if set {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body model.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Message
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	r, rec := newGateRouter(t, "abc")

	for _, tc := range []struct {
		name   string
		header string
		set    bool
	}{
		{name: "absent", set: false},
		{name: "empty", header: "", set: true},
		{name: "blank", header: "   ", set: true},
		{name: "bare-bearer", header: "Bearer ", set: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := doGate(r, tc.header, tc.set)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if msg := decodeMessage(t, w); msg != "You cannot access this operation without a token!" {
				t.Fatalf("unexpected message %q", msg)
			}
		})
	}
	if rec.calls != 0 {
		t.Fatalf("downstream handler invoked %d times", rec.calls)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	r, rec := newGateRouter(t, "xyz")

	tests := []struct {
		name  string
		token string
	}{
		{name: "signed-with-other-secret", token: mint(t, "abc", jwt.MapClaims{"userId": 42})},
		{name: "expired", token: mint(t, "xyz", jwt.MapClaims{"userId": 42, "exp": time.Now().Add(-time.Hour).Unix()})},
		{name: "malformed", token: "abc.def.ghi"},
		{name: "garbage", token: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doGate(r, tt.token, true)
			if w.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", w.Code)
			}
			if msg := decodeMessage(t, w); msg != "Invalid token provided!" {
				t.Fatalf("unexpected message %q", msg)
			}
		})
	}
	if rec.calls != 0 {
		t.Fatalf("downstream handler invoked %d times", rec.calls)
	}
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	r, rec := newGateRouter(t, "abc")
	token := mint(t, "abc", jwt.MapClaims{"userId": 42})

	w := doGate(r, token, true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", w.Code, w.Body.String())
	}
	if rec.calls != 1 {
		t.Fatalf("downstream handler invoked %d times, want 1", rec.calls)
	}

	want := map[string]any{"userId": float64(42)}
	if rec.identity == nil || !reflect.DeepEqual(rec.identity.Claims, want) {
		t.Fatalf("gin identity = %+v, want claims %v", rec.identity, want)
	}
	if rec.identity.UserID != "42" {
		t.Fatalf("UserID = %q", rec.identity.UserID)
	}
	if rec.fromCtx != rec.identity {
		t.Fatalf("request context identity differs from gin identity")
	}
}

func TestAuthMiddlewareAcceptsBearerPrefix(t *testing.T) {
	r, rec := newGateRouter(t, "abc")
	token := mint(t, "abc", jwt.MapClaims{"userId": "u-1", "exp": time.Now().Add(time.Hour).Unix()})

	w := doGate(r, "Bearer "+token, true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if rec.identity == nil || rec.identity.UserID != "u-1" {
		t.Fatalf("unexpected identity %+v", rec.identity)
	}
}

func TestAuthMiddlewareSameTokenTwice(t *testing.T) {
	r, rec := newGateRouter(t, "abc")
	token := mint(t, "abc", jwt.MapClaims{"userId": 7, "username": "ann"})

	doGate(r, token, true)
	first := rec.identity
	doGate(r, token, true)
	second := rec.identity

	if rec.calls != 2 {
		t.Fatalf("calls = %d, want 2", rec.calls)
	}
	if first == second {
		t.Fatalf("identity must be request scoped, got shared pointer")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identities differ: %+v vs %+v", first, second)
	}
}

func TestCredentialFromHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "tok", want: "tok"},
		{in: "  tok  ", want: "tok"},
		{in: "Bearer tok", want: "tok"},
		{in: "Bearer    tok", want: "tok"},
		{in: "bearer tok", want: "bearer tok"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		if got := credentialFromHeader(tt.in); got != tt.want {
			t.Fatalf("credentialFromHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://app.test"}, true))
	r.POST("/events", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/events", nil)
	req.Header.Set("Origin", "http://app.test")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://app.test" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Authorization, Content-Type" {
		t.Fatalf("Access-Control-Allow-Headers = %q", got)
	}
}

func TestAuthMiddlewareAuditLogOmitsSecrets(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	const secret = "gate-signing-secret"
	r, rec := newGateRouter(t, secret)

	claims := jwt.MapClaims{"userId": "user-7f3a91", "username": "carol-quartz", "exp": time.Now().Add(time.Hour).Unix()}
	valid := mint(t, secret, claims)
	forged := mint(t, "other-signing-secret", jwt.MapClaims{"userId": "user-b2c4d6", "username": "mallory-onyx"})

	if w := doGate(r, valid, true); w.Code != http.StatusNoContent {
		t.Fatalf("valid token: expected 204, got %d", w.Code)
	}
	if w := doGate(r, "Bearer "+forged, true); w.Code != http.StatusForbidden {
		t.Fatalf("forged token: expected 403, got %d", w.Code)
	}
	if rec.calls != 1 {
		t.Fatalf("downstream handler invoked %d times, want 1", rec.calls)
	}

	out := buf.String()
	for _, outcome := range []string{`"outcome":"authenticated"`, `"outcome":"invalid"`} {
		if !strings.Contains(out, outcome) {
			t.Fatalf("audit log missing %s: %s", outcome, out)
		}
	}

	leaks := []string{
		secret, "other-signing-secret",
		valid, forged,
		"user-7f3a91", "carol-quartz",
		"user-b2c4d6", "mallory-onyx",
	}
	for _, part := range strings.Split(valid, ".") {
		leaks = append(leaks, part)
	}
	for _, leak := range leaks {
		if strings.Contains(out, leak) {
			t.Fatalf("audit log contains %q: %s", leak, out)
		}
	}
}
