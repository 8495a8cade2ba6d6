// Package token issues and verifies signed, stateless identity tokens.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/messagely/server/internal/errs"
)

// Claims is the identity asserted by a token.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Service signs and verifies identity tokens with an HS256 key held only by
// the server process. No issued-token state is kept; revocation is not supported.
type Service struct {
	signKey []byte
	ttl     time.Duration
}

// New constructs a token service with the given signing key and token lifetime.
func New(signKey []byte, ttl time.Duration) *Service {
	return &Service{signKey: signKey, ttl: ttl}
}

// Issue creates a signed token asserting the given username.
func (s *Service) Issue(username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.signKey)
}

// Verify validates the token and returns its claims. Tampering, a wrong
// signing method, expiry, or a missing username claim all map to
// errs.ErrUnauthenticated rather than surfacing parser internals.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.signKey, nil
	}, jwt.WithLeeway(30*time.Second))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token: %w", errs.ErrUnauthenticated)
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("empty username claim: %w", errs.ErrUnauthenticated)
	}
	return &claims, nil
}
