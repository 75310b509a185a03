package auth

// Verifier validates incoming token strings, selecting the secret by
// token kind. Both methods report only ErrInvalidToken on failure;
// callers must not assume finer-grained detail exists.
type Verifier struct {
	cfg Config
}

func NewVerifier(cfg Config) *Verifier {
	return &Verifier{cfg: cfg}
}

// VerifyAccess validates an access token and returns its claims.
func (v *Verifier) VerifyAccess(token string) (Claims, error) {
	return Verify(token, v.cfg.AccessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims. The
// refresh secret already falls back to the access secret at config load,
// so no fallback happens here.
func (v *Verifier) VerifyRefresh(token string) (Claims, error) {
	return Verify(token, v.cfg.RefreshSecret)
}
