// Package auth issues and verifies the HS256 access tokens that carry a
// user's name and roles.
package auth

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pkordes/talentrail/internal/domain"
)

const issuer = "talentrail"

var (
	// ErrTokenExpired is returned for a well-formed token past its expiry.
	ErrTokenExpired = fmt.Errorf("%w: token expired", domain.ErrUnauthorized)

	// ErrTokenInvalid is returned for any token that fails verification.
	ErrTokenInvalid = fmt.Errorf("%w: token invalid", domain.ErrUnauthorized)
)

// Claims is the payload of an access token.
type Claims struct {
	Username string        `json:"username"`
	Roles    []domain.Role `json:"roles"`

	jwtlib.RegisteredClaims
}

// HasRole reports whether the token grants any of roles.
func (c Claims) HasRole(roles ...domain.Role) bool {
	return domain.User{Username: c.Username, Roles: c.Roles}.HasRole(roles...)
}

// TokenService signs and verifies access tokens with one shared secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a service signing with secret; tokens live for ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a signed token for u.
func (s *TokenService) Issue(u domain.User) (string, error) {
	if len(s.secret) == 0 || s.ttl <= 0 {
		return "", errors.New("auth.TokenService.Issue: signing secret and ttl must be configured")
	}
	now := s.now().UTC()
	c := Claims{
		Username: u.Username,
		Roles:    u.Roles,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   u.Username,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth.TokenService.Issue: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, algorithm, issuer and expiry of token and
// returns its claims.
func (s *TokenService) Verify(token string) (Claims, error) {
	p := jwtlib.NewParser(
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(issuer),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(s.now),
	)

	var c Claims
	tok, err := p.ParseWithClaims(token, &c, func(*jwtlib.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if tok == nil || !tok.Valid || c.Username == "" {
		return Claims{}, ErrTokenInvalid
	}
	return c, nil
}
