package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)

	access, exp, err := m.GenerateAccessToken("user-1", "session-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "session-1", claims.SessionID)

	refresh, _, err := m.GenerateRefreshToken("user-1", "session-1")
	require.NoError(t, err)
	claims, err = m.ParseRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestJWTKeysAreNotInterchangeable(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	access, _, err := m.GenerateAccessToken("user-1", "session-1")
	require.NoError(t, err)
	_, err = m.ParseRefreshToken(access)
	require.Error(t, err)

	refresh, _, err := m.GenerateRefreshToken("user-1", "session-1")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(refresh)
	require.Error(t, err)
}

func TestJWTRejectsExpiredAndGarbage(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	expired, _, err := m.GenerateAccessToken("user-1", "session-1")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(expired)
	require.Error(t, err)

	_, err = m.ParseAccessToken("not-a-token")
	require.Error(t, err)
}
