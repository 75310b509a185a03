package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingSecret indicates a signing or verification attempt with an
	// empty secret. This is a configuration problem, not a token problem.
	ErrMissingSecret = errors.New("jwt secret is not configured")

	// ErrInvalidToken covers every per-request verification failure:
	// malformed structure, tampered or wrong-secret signature, and expiry.
	// The causes are deliberately not distinguishable by the caller.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// tokenClaims is the wire shape of a signed token payload.
type tokenClaims struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}

// Sign seals claims into a compact HS256-signed token valid for ttl.
// Given identical inputs the output varies only with the issued-at
// timestamp.
func Sign(c Claims, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	now := time.Now()
	tc := tokenClaims{
		UserID: c.ID,
		Email:  c.Email,
		Role:   c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString([]byte(secret))
}

// Verify checks the signature against secret and that the token has not
// expired, returning the embedded claims. Any failure comes back as
// ErrInvalidToken; the underlying jwt error never escapes, so callers
// (and clients) cannot tell a bad signature from an expired token.
func Verify(token, secret string) (Claims, error) {
	if secret == "" {
		return Claims{}, ErrMissingSecret
	}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return Claims{ID: tc.UserID, Email: tc.Email, Role: tc.Role}, nil
}
