package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(expiry time.Duration) *JWTManager {
	return NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: expiry, Issuer: "uni-portal"})
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := newTestManager(time.Hour)

	issued, err := m.GenerateToken(7, "alice", "student", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, time.Minute)

	claims, err := m.ValidateToken(issued.Value)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, 2, claims.TokenVersion)
	assert.Equal(t, issued.JTI, claims.ID)
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	m := newTestManager(time.Hour)

	a, err := m.GenerateToken(1, "alice", "student", 0)
	require.NoError(t, err)
	b, err := m.GenerateToken(1, "alice", "student", 0)
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestValidateToken_Rejections(t *testing.T) {
	m := newTestManager(time.Hour)
	issued, err := m.GenerateToken(1, "alice", "student", 0)
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager(JWTConfig{Secret: "other", Expiry: time.Hour, Issuer: "uni-portal"})
		_, err := other.ValidateToken(issued.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: time.Hour, Issuer: "someone-else"})
		_, err := other.ValidateToken(issued.Value)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := newTestManager(-time.Minute)
		old, err := expired.GenerateToken(1, "alice", "student", 0)
		require.NoError(t, err)
		_, err = m.ValidateToken(old.Value)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewJWTManager_DefaultExpiry(t *testing.T) {
	m := NewJWTManager(JWTConfig{Secret: "s"})
	assert.Equal(t, 24*time.Hour, m.Expiry())
}
