// Package auth verifies access tokens issued by the external identity provider.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated owner and the profile display fields carried by the token
type Identity struct {
	OwnerID     string
	Email       string
	DisplayName string
}

// ErrInvalidToken is returned for tokens that fail signature, expiry or claim checks
var ErrInvalidToken = errors.New("invalid token")

// TokenValidator validates HS256 access tokens
type TokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator creates a validator for tokens signed with secret
//
// When issuer is non-empty, the "iss" claim must match it.
func NewTokenValidator(secret, issuer string) *TokenValidator {
	return &TokenValidator{
		secret: []byte(secret),
		issuer: issuer,
	}
}

// ValidateAccessToken parses the token and returns the identity in its claims
//
// The owner id is read from "sub"; "email" and "name" are optional.
func (v *TokenValidator) ValidateAccessToken(tokenString string) (*Identity, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	// Refresh tokens carry type=refresh and must not be accepted here
	if tokenType, ok := claims["type"].(string); ok && tokenType != "access" {
		return nil, fmt.Errorf("%w: token is not an access token", ErrInvalidToken)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: subject not found in token", ErrInvalidToken)
	}

	identity := &Identity{OwnerID: sub}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.DisplayName = name
	}

	return identity, nil
}

// GenerateAccessToken signs a short-lived access token for identity
//
// Tokens normally come from the identity provider; this is used by tests and local tooling.
func (v *TokenValidator) GenerateAccessToken(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  identity.OwnerID,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
		"type": "access",
	}
	if identity.Email != "" {
		claims["email"] = identity.Email
	}
	if identity.DisplayName != "" {
		claims["name"] = identity.DisplayName
	}
	if v.issuer != "" {
		claims["iss"] = v.issuer
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}
