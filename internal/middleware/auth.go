package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/stockroom/stockroom/internal/auth"
)

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger      *slog.Logger
	TokenSecret string
	TokenIssuer string
}

// Auth returns a middleware that gates requests behind a bearer token.
// Verification is stateless: the signed token alone proves identity, and
// the store is never consulted. The trade-off is that a token cannot be
// revoked before its natural expiry.
//
// On success the verified identity is attached to the request context.
// Missing or malformed headers, bad signatures, expired tokens, and tokens
// without a user identity all get the same 401 response.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := extractBearerToken(r)
			if !ok {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_or_malformed_header"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			claims, err := auth.VerifyToken(cfg.TokenSecret, cfg.TokenIssuer, raw)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			identity := &auth.Identity{
				UserID: claims.UserID,
				Email:  claims.Email,
			}

			ctx := auth.ContextWithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken pulls the token out of an "Authorization: Bearer <token>"
// header. Reports false for any other header shape.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", false
	}

	return token, true
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"Invalid or missing bearer token"}`))
}
