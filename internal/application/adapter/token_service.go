// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the claims contained in an access token.
type TokenClaims struct {
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations. Tokens are
// issued by an external identity provider; GenerateAccessToken exists for
// development and tests.
type TokenService interface {
	// GenerateAccessToken signs a new access token for userID.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
