package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type contextKey struct{}

var claimsKey contextKey

// ClaimsFromContext returns the authenticated identity attached by the
// Guard, or false when the request did not pass through it.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}

// Guard gates protected routes. Each request is evaluated independently:
// extract the bearer credential, verify it, optionally check the role,
// then attach the claims to the request context. No state survives across
// requests.
type Guard struct {
	verifier *Verifier
	logger   *zap.SugaredLogger
}

func NewGuard(verifier *Verifier, logger *zap.SugaredLogger) *Guard {
	return &Guard{verifier: verifier, logger: logger}
}

// Require wraps next so it only runs for authenticated requests. When
// roles are given, the token's role must match one of them; a valid
// identity with the wrong role gets 403, distinct from the 401 used for
// every authentication failure.
func (g *Guard) Require(next http.HandlerFunc, roles ...Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			g.reject(w, http.StatusUnauthorized, "authentication required")
			return
		}

		claims, err := g.verifier.VerifyAccess(token)
		if err != nil {
			// same response for malformed, expired and tampered tokens
			g.logger.Debugw("token rejected", "path", r.URL.Path)
			g.reject(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			g.logger.Debugw("role denied", "path", r.URL.Path, "role", claims.Role)
			g.reject(w, http.StatusForbidden, "insufficient permissions")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	}
}

// bearerToken extracts the credential from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", false
	}
	const prefix = "bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(prefix):])
	return token, token != ""
}

func roleAllowed(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func (g *Guard) reject(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}
