package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice", 24)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)

	username, err := ParseAccessToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", username)
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice", -1)
	require.NoError(t, err)

	_, err = ParseAccessToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "alice", 24)
	require.NoError(t, err)

	_, err = ParseAccessToken("some-other-secret", tok.Token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenMalformed(t *testing.T) {
	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ParseAccessToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "raw=%q", raw)
	}
}
