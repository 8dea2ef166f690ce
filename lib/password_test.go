package lib

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// small parameters keep the tests fast
func encodeForTest(t *testing.T, password string) string {
	t.Helper()
	hash, err := EncodeArgon2Hash(password, 1024, 1, 1, 32, 16)
	require.NoError(t, err)
	return hash
}

func TestEncodeArgon2Hash(t *testing.T) {
	hash := encodeForTest(t, "correct horse")

	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, hash, "correct horse")
	assert.NotEqual(t, hash, encodeForTest(t, "correct horse"), "salt must differ per hash")
}

func TestVerifyArgon2Hash(t *testing.T) {
	hash := encodeForTest(t, "correct horse")

	ok, err := VerifyArgon2Hash("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyArgon2Hash("battery staple", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDecodeArgon2Hash(t *testing.T) {
	t.Run("round trips parameters", func(t *testing.T) {
		parts, err := DecodeArgon2Hash(encodeForTest(t, "pw"))

		require.NoError(t, err)
		assert.Equal(t, uint32(1024), parts.Memory)
		assert.Equal(t, uint32(1), parts.Time)
		assert.Equal(t, uint8(1), parts.Threads)
		assert.Equal(t, uint32(32), parts.KeyLen)
		assert.Len(t, parts.Salt, 16)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		for _, in := range []string{"", "plain", "$bcrypt$v=19$m=1,t=1,p=1$a$b", "$argon2id$v=19$garbage$a$b"} {
			_, err := DecodeArgon2Hash(in)
			assert.ErrorIs(t, err, ErrInvalidHash, in)
		}
	})

	t.Run("rejects other versions", func(t *testing.T) {
		_, err := DecodeArgon2Hash("$argon2id$v=16$m=1024,t=1,p=1$c2FsdA$aGFzaA")

		assert.ErrorIs(t, err, ErrIncompatibleVersion)
	})
}

func TestCSRFTokensMatch(t *testing.T) {
	token, err := GenerateCSRFToken()
	require.NoError(t, err)

	assert.True(t, CSRFTokensMatch(token, token))
	assert.False(t, CSRFTokensMatch(token, token+"x"))
	assert.False(t, CSRFTokensMatch("", ""))
}
