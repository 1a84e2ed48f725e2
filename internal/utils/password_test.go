package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "secret1", hash, "hash must not be the plaintext")

	assert.True(t, VerifyPassword(hash, "secret1"))
	assert.False(t, VerifyPassword(hash, "secret2"))
	assert.False(t, VerifyPassword("", "secret1"))
}
