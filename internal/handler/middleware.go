package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/eventboard/backend/internal/metrics"
	"github.com/eventboard/backend/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	identityKey  = "identity"
	requestIDKey = "request_id"

	requestIDHeader = "X-Request-ID"

	msgTokenRequired = "You cannot access this operation without a token!"
	msgTokenInvalid  = "Invalid token provided!"
)

type tokenVerifier interface {
	VerifyToken(raw string) (*model.Identity, error)
}

// AuthMiddleware gates a route on the Authorization header. The header holds
// the signed token itself; a "Bearer " prefix is accepted and stripped.
// A missing token answers 401, any verification failure 403.
func AuthMiddleware(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		raw := credentialFromHeader(c.GetHeader("Authorization"))
		if raw == "" {
			auditAuth(c, "missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Message: msgTokenRequired})
			return
		}

		identity, err := verifier.VerifyToken(raw)
		if err != nil {
			auditAuth(c, "invalid")
			c.AbortWithStatusJSON(http.StatusForbidden, model.ErrorResponse{Message: msgTokenInvalid})
			return
		}

		c.Set(identityKey, identity)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
		auditAuth(c, "authenticated")
		c.Next()
	}
}

func GetIdentity(c *gin.Context) *model.Identity {
	if value, ok := c.Get(identityKey); ok {
		if identity, ok := value.(*model.Identity); ok {
			return identity
		}
	}
	return nil
}

func credentialFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "Bearer" {
		return ""
	}
	if rest, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(rest)
	}
	return header
}

// auditAuth records the gate decision. Only the outcome and request metadata
// are logged; tokens, secrets and claims never are.
func auditAuth(c *gin.Context, outcome string) {
	metrics.AuthDecisions.WithLabelValues(outcome).Inc()
	slog.InfoContext(c.Request.Context(), "auth decision",
		"request_id", c.GetString(requestIDKey),
		"method", c.Request.Method,
		"route", c.FullPath(),
		"outcome", outcome,
	)
}

// RequestID tags every request with a fresh random identifier. Client supplied
// ids are ignored so log lines cannot be forged.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.InfoContext(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"route", routeLabel(c),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeLabel(c)
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		metrics.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func routeLabel(c *gin.Context) string {
	if route := c.FullPath(); route != "" {
		return route
	}
	return "unmatched"
}

func CORSMiddleware(allowedOrigins []string, allowCredentials bool) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if _, ok := originMap[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
				if allowCredentials {
					c.Header("Access-Control-Allow-Credentials", "true")
				}
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				c.Header("Access-Control-Expose-Headers", requestIDHeader)
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
