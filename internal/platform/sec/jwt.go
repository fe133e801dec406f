// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer and into the request authentication middleware.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Errors

// Typed verification failures. The authentication middleware branches on
// these to decide what to log; every one of them degrades the request to
// anonymous rather than rejecting it.
var (
	// ErrTokenMalformed is returned when the string is not a parseable JWT.
	ErrTokenMalformed = errors.New("sec: token is malformed")

	// ErrTokenSignature is returned when the signature does not match the
	// configured secret.
	ErrTokenSignature = errors.New("sec: token signature is invalid")

	// ErrTokenExpired is returned when the token's exp claim is in the past.
	ErrTokenExpired = errors.New("sec: token has expired")
)

// AuthClaims represents the payload embedded inside a JWT access token.
//
// # Why custom claims?
//
// By embedding the username (subject) and roles directly inside the JWT, any
// instance of the API can authenticate a request without shared session
// state. Roles in the claim mirror the authorities granted at issue time;
// the middleware still resolves the subject against the credential store so
// that a role change takes effect on the next request, not the next login.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Roles carries the granted authorities, e.g. ["ROLE_ADMIN"].
	Roles []string `json:"roles"`
}

// TokenService handles generation and verification of JWT tokens using a
// symmetric HS256 secret.
//
// # Concurrency
//
// The secret and expiration are fixed at construction and never mutated, so a
// single TokenService is safe for unsynchronized concurrent use.
type TokenService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewTokenService creates a new TokenService.
//
// The secret is the process-wide signing key: rotating it invalidates every
// outstanding token, which is the accepted trade-off of stateless HMAC
// verification.
func NewTokenService(secret string, expiration time.Duration, issuer string) (*TokenService, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}
	if expiration <= 0 {
		return nil, fmt.Errorf("sec: token expiration must be positive, got %s", expiration)
	}

	return &TokenService{
		secret:     []byte(secret),
		expiration: expiration,
		issuer:     issuer,
	}, nil
}

/*
Issue creates a signed access token for the given subject.

Description: Builds a claim set with subject, roles, issued-at = now and
expires-at = now + configured expiration, then signs it with HS256.

Parameters:
  - subject: string (the username)
  - roles: []string (granted authorities, order preserved)
  - now: time.Time (caller-supplied clock, keeps expiry checks testable)

Returns:
  - string: Compact URL-safe JWT
  - error: Signing failures
*/
func (service *TokenService) Issue(subject string, roles []string, now time.Time) (string, error) {
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(service.expiration)),
		},
		Roles: roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

/*
Verify checks the signature and validity of a JWT string.

Description: Recomputes the HMAC against the configured secret and validates
the registered claims.

Parameters:
  - tokenString: string

Returns:
  - *AuthClaims: Decoded claim set (subject, roles, timestamps)
  - error: ErrTokenMalformed, ErrTokenSignature or ErrTokenExpired
*/
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Pin the algorithm family. A token whose header names anything but
		// HMAC must fail verification even if its signature would match.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	})

	if err != nil {
		return nil, classifyTokenError(err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// Expiration returns the configured access-token time-to-live.
func (service *TokenService) Expiration() time.Duration {
	return service.expiration
}

// classifyTokenError maps jwt/v5 sentinel errors onto this package's typed
// verification failures.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrTokenSignature, err)
	default:
		// Unparseable strings, bad segment counts, unexpected algorithms and
		// empty claims all land here.
		return fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
}
