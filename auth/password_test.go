package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	h1, err := HashPassword("pw1")
	require.NoError(t, err)
	h2, err := HashPassword("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", h1)
	assert.NotEqual(t, h1, h2, "same plaintext must hash to different values")

	ok, err := CheckPassword(h1, "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(h2, "pw2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_LegacyPBKDF2(t *testing.T) {
	stored := "pbkdf2:sha256:1000$Ab12Cd34$310bd6b208b4050aa2ed972b410c9b245bdc7e18353af396a5324d7d76ba497f"

	ok, err := CheckPassword(stored, "pw1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(stored, "pw2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckPassword_MalformedLegacy(t *testing.T) {
	for _, stored := range []string{
		"pbkdf2:sha256$salt$00",
		"pbkdf2:md5:1000$salt$00",
		"pbkdf2:sha256:abc$salt$00",
		"pbkdf2:sha256:1000$salt$zz",
		"pbkdf2:sha256:1000",
	} {
		_, err := CheckPassword(stored, "pw1")
		assert.ErrorIs(t, err, ErrUnknownHashFormat, stored)
	}
}
