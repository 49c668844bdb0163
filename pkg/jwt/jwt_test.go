package jwt

import (
	"testing"
	"time"

	"go-telemedicine/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret", SessionExpiry: time.Hour})

	token, tokenID, expiresAt, err := svc.GenerateSessionToken("doctor", 4)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 4, claims.UserID)
	assert.Equal(t, "doctor", claims.Kind)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestJWTService_Rejects(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "secret", SessionExpiry: time.Hour})
	token, _, _, err := svc.GenerateSessionToken("patient", 1)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "other", SessionExpiry: time.Hour})
		_, err := other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewJWTService(config.JWTConfig{Secret: "secret", SessionExpiry: time.Hour})
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.Error(t, err)
	})
}
