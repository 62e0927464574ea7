package auth

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jasveersingh-de/opportunity/config"
)

// TokenParser verifies tokens issued by the identity provider. This service
// never signs tokens of its own.
type TokenParser interface {
	Parse(token string) (*jwt.Token, jwt.MapClaims, error)
}

type tokenParser struct {
	cfg       *config.Config
	hmacKey   []byte
	publicKey *rsa.PublicKey
}

func NewParser(cfg *config.Config) (TokenParser, error) {
	p := &tokenParser{cfg: cfg}
	if cfg.JWTSecret != "" {
		p.hmacKey = []byte(cfg.JWTSecret)
		return p, nil
	}
	if cfg.JWTPublicKey != "" {
		pub, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.JWTPublicKey))
		if err != nil {
			return nil, err
		}
		p.publicKey = pub
		return p, nil
	}
	return nil, errors.New("jwt secret or public key required")
}

func (p *tokenParser) Parse(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithAudience(p.cfg.JWTAudience), jwt.WithIssuer(p.cfg.JWTIssuer), jwt.WithLeeway(30*time.Second))
	token, err := parser.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if p.hmacKey != nil {
			return p.hmacKey, nil
		}
		return p.publicKey, nil
	})
	return token, claims, err
}
