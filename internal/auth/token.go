package auth

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of an issued token: subject, an optional
// comma-joined roles claim, issued-at and expiry.
type Claims struct {
	Roles string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenProvider signs and verifies bearer tokens with HMAC-SHA-256 under a
// single shared secret. It holds no mutable state and is safe for
// concurrent use by all requests.
type TokenProvider struct {
	key      []byte
	validity time.Duration
}

// NewTokenProvider derives the signing key from the configured secret text.
// The secret is expanded through base64 so that arbitrary-length input still
// yields deterministic key bytes for the HMAC.
func NewTokenProvider(secret string, validity time.Duration) *TokenProvider {
	return &TokenProvider{
		key:      []byte(base64.StdEncoding.EncodeToString([]byte(secret))),
		validity: validity,
	}
}

// Encode issues a signed token for the principal. The roles claim is
// embedded only when the authority set is non-empty.
func (t *TokenProvider) Encode(p Principal, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.validity)),
		},
	}
	if len(p.Authorities) > 0 {
		claims.Roles = strings.Join(p.Authorities, ",")
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Decode parses and verifies a token, returning its claims. Failures are
// classified as ErrTokenMalformed, ErrSignatureInvalid or ErrTokenExpired.
func (t *TokenProvider) Decode(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(tok *jwt.Token) (interface{}, error) {
			if tok.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return t.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, classify(err)
	}
	return claims, nil
}

// Validate reports whether the token decodes and verifies. A blank string
// is simply invalid.
func (t *TokenProvider) Validate(token string) bool {
	_, err := t.Decode(token)
	return err == nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}
