package auth

// Role is the coarse authorization level carried inside a token.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Claims is the minimal identity snapshot embedded in both token kinds.
// It is captured at issuance time and is not refreshed from the database
// on verification, so it can go stale after a role or email change until
// the user re-authenticates.
type Claims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
