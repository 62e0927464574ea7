package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidToken   = errors.New("invalid_token")
	ErrTokenExpired   = errors.New("token_expired")
	ErrSubjectMissing = errors.New("subject_missing")
)

// Identity is the authenticated principal as supplied by the external
// identity provider: an opaque subject, an optional email, and whatever
// metadata the provider attached (display-name and avatar hints live here).
type Identity struct {
	ID       string
	Email    string
	Metadata map[string]any
}

// FromToken parses and validates a bearer token and extracts the identity.
// Provider metadata is read from the "user_metadata" claim when present.
func FromToken(parser TokenParser, token string, nowFn func() time.Time) (*Identity, error) {
	if parser == nil {
		return nil, ErrInvalidToken
	}
	if nowFn == nil {
		nowFn = time.Now
	}
	tok, claims, err := parser.Parse(token)
	if err != nil || tok == nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if exp, err := claims.GetExpirationTime(); err != nil || exp == nil || nowFn().After(exp.Time) {
		return nil, ErrTokenExpired
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrSubjectMissing
	}
	email, _ := claims["email"].(string)
	metadata, _ := claims["user_metadata"].(map[string]any)
	return &Identity{ID: sub, Email: email, Metadata: metadata}, nil
}
