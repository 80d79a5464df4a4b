// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth issues and validates the bearer tokens that protect the
// owner-only API surface. Tokens are signed JWTs carrying the user ID;
// there are no server-side sessions to invalidate.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 24 * time.Hour

// TokenService signs and verifies API tokens.
type TokenService struct {
	ja  *jwtauth.JWTAuth
	ttl time.Duration
}

// NewTokenService creates a token service signing with HS256.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TokenService{
		ja:  jwtauth.New("HS256", []byte(secret), nil),
		ttl: ttl,
	}
}

// Issue returns a signed token for the given user.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	claims := map[string]interface{}{
		"user_id": userID.String(),
	}
	jwtauth.SetIssuedNow(claims)
	jwtauth.SetExpiryIn(claims, s.ttl)

	_, token, err := s.ja.Encode(claims)
	if err != nil {
		return "", fmt.Errorf("encode token: %w", err)
	}
	return token, nil
}

// Verifier parses and validates the token from the Authorization header
// (or jwt cookie) and stores the result in the request context. It does
// not reject requests; pair it with Authenticator on protected routes.
func (s *TokenService) Verifier() func(http.Handler) http.Handler {
	return jwtauth.Verifier(s.ja)
}

// Authenticator rejects requests whose context carries no valid token.
func (s *TokenService) Authenticator(next http.Handler) http.Handler {
	return jwtauth.Authenticator(next)
}

// UserID extracts the authenticated user's ID from the request context.
// Only meaningful behind the Verifier and Authenticator middleware.
func UserID(ctx context.Context) (uuid.UUID, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("token from context: %w", err)
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("token missing user_id claim")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse user_id claim: %w", err)
	}
	return id, nil
}
