package auth

import (
	"github.com/vkportfolio/service-core-go/internal/user/entity"
)

// Issuer mints access/refresh token pairs for authenticated users.
type Issuer struct {
	cfg Config
}

func NewIssuer(cfg Config) *Issuer {
	return &Issuer{cfg: cfg}
}

// Issue derives a token pair from a user record. Only the minimal
// identity fields go into the claims; the full record (password hash
// included) never reaches a token. Both tokens carry identical claims and
// differ only in signing secret and lifetime.
func (i *Issuer) Issue(u *entity.User) (TokenPair, error) {
	return i.IssueFromClaims(Claims{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Role:  Role(u.Role),
	})
}

// IssueFromClaims signs a fresh pair for an already-verified identity.
// The refresh flow uses this to rotate tokens without a database lookup.
func (i *Issuer) IssueFromClaims(c Claims) (TokenPair, error) {
	access, err := Sign(c, i.cfg.AccessSecret, i.cfg.AccessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := Sign(c, i.cfg.RefreshSecret, i.cfg.RefreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
