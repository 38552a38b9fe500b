// Package identity issues and validates the JWTs every transport authenticates with.
package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSecret is used only when no secret is configured, matching the teacher's
// original fallback. Production deployments must set one via internal/config.
const DefaultSecret = "secret"

// TokenTTL is how long an issued token remains valid.
const TokenTTL = 24 * time.Hour

// Issuer signs and later validates tokens against a single shared secret.
type Issuer struct {
	secret []byte
}

// NewIssuer creates an Issuer. An empty secret falls back to DefaultSecret.
func NewIssuer(secret string) *Issuer {
	if secret == "" {
		secret = DefaultSecret
	}
	return &Issuer{secret: []byte(secret)}
}

// Secret returns the raw key bytes, for wiring into echo-jwt's own verifier.
func (i *Issuer) Secret() []byte {
	return i.secret
}

// Issue signs a token carrying the user's ID and display name.
func (i *Issuer) Issue(userID, username string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": username,
		"exp":  time.Now().Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Parse validates a signed token and returns its claims.
func (i *Issuer) Parse(signed string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(signed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}
