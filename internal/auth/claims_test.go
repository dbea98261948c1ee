package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.Claims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func TestParseClaims(t *testing.T) {
	t.Run("Numeric user id", func(t *testing.T) {
		tok := signed(t, jwt.MapClaims{"user_id": 42, "email": "ana@example.com"})

		claims, err := ParseClaims(tok)
		require.NoError(t, err)
		assert.Equal(t, "42", claims.BuyerID())
		assert.Equal(t, "ana@example.com", claims.Email)
	})

	t.Run("String user id", func(t *testing.T) {
		tok := signed(t, jwt.MapClaims{"user_id": "u-7"})

		claims, err := ParseClaims(tok)
		require.NoError(t, err)
		assert.Equal(t, "u-7", claims.BuyerID())
	})

	t.Run("Subject fallback", func(t *testing.T) {
		tok := signed(t, jwt.RegisteredClaims{Subject: "sub-1"})

		claims, err := ParseClaims(tok)
		require.NoError(t, err)
		assert.Equal(t, "sub-1", claims.BuyerID())
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ParseClaims("")
		assert.ErrorIs(t, err, ErrNoAccessToken)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := ParseClaims("not-a-jwt")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})
}

func TestClaims_ExpiresWithin(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Second))}}
	assert.True(t, c.ExpiresWithin(now, time.Minute))
	assert.False(t, c.ExpiresWithin(now, 10*time.Second))

	assert.False(t, (&Claims{}).ExpiresWithin(now, time.Hour))
}
