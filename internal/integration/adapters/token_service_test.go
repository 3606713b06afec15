package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/finance-tracker/ledger/internal/domain/error"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(context.Background(), userID)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestTokenService_Rejects(t *testing.T) {
	userID := uuid.New()
	signer := NewTokenService("secret", time.Hour)
	other := NewTokenService("other-secret", time.Hour)

	token, err := signer.GenerateAccessToken(context.Background(), userID)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		UserID:    userID.String(),
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)

	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, CustomClaims{
		UserID:    userID.String(),
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	refreshToken, err := refresh.SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		expected error
	}{
		{name: "wrong secret", token: token, expected: domainerror.ErrInvalidToken},
		{name: "garbage", token: "not-a-jwt", expected: domainerror.ErrInvalidToken},
		{name: "expired", token: expiredToken, expected: domainerror.ErrExpiredToken},
		{name: "wrong token type", token: refreshToken, expected: domainerror.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := signer
			if tt.name == "wrong secret" {
				validator = other
			}
			_, err := validator.ValidateAccessToken(context.Background(), tt.token)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
