package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	h1, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "fresh salt per call")
	assert.NotContains(t, h1, "correct horse")
	assert.True(t, VerifyPassword(h1, "correct horse"))
	assert.True(t, VerifyPassword(h2, "correct horse"))
}

func TestVerifyPassword_Mismatch(t *testing.T) {
	h, err := HashPassword("password-one", bcrypt.MinCost)
	require.NoError(t, err)

	assert.False(t, VerifyPassword(h, "password-two"))
	assert.False(t, VerifyPassword(h, ""))
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	for _, h := range []string{"", "not-a-hash", "$2a$10$short"} {
		assert.False(t, VerifyPassword(h, "whatever"), "hash %q", h)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("a", MaxPasswordBytes+1), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = HashPassword(strings.Repeat("€", 25), bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrPasswordTooLong, "limit counts bytes, not runes")

	h, err := HashPassword(strings.Repeat("a", MaxPasswordBytes), bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(h, strings.Repeat("a", MaxPasswordBytes)))
	assert.False(t, VerifyPassword(h, strings.Repeat("a", MaxPasswordBytes+1)))
}

func TestHashPassword_BadCost(t *testing.T) {
	_, err := HashPassword("pw", bcrypt.MaxCost+1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bcrypt:")
	assert.NotErrorIs(t, err, ErrPasswordTooLong)
}
