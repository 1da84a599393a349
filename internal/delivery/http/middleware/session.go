package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"seminarbooking/internal/adapters/auth"
	"seminarbooking/internal/domain"
)

// WithSession returns a wrapper that resolves the Bearer token, if any, into
// the request context: full-account tokens set the authenticated user,
// one-time tokens set the guest identity. Requests without a token pass
// through unchanged; registration endpoints decide themselves whether an
// identity is required.
func WithSession(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				next(w, r)
				return
			}
			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				next(w, r)
				return
			}
			userID, oneTime, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("ignoring invalid session token", "err", err)
				next(w, r)
				return
			}
			ctx := r.Context()
			if oneTime {
				ctx = auth.WithOneTimeUser(ctx, userID)
			} else {
				ctx = auth.WithAuthenticatedUser(ctx, userID)
			}
			next(w, r.WithContext(ctx))
		}
	}
}
