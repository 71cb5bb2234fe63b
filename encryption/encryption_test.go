package encryption

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "this-is-a-32-byte-key-for-test!!"

func TestNewCipher(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		errorType error
	}{
		{name: "valid key", key: testKey},
		{name: "exactly minimum length", key: strings.Repeat("a", MinKeyLength)},
		{name: "longer than minimum", key: strings.Repeat("a", MinKeyLength+10)},
		{name: "key too short", key: "short", errorType: ErrInvalidKeyLength},
		{name: "empty key", key: "", errorType: ErrInvalidKeyLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCipher([]byte(tt.key))
			if tt.errorType != nil {
				assert.ErrorIs(t, err, tt.errorType)
				assert.Nil(t, c)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, c)
		})
	}
}

func TestNewCipherFromEnv(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv(EnvKeyName, "")
		_, err := NewCipherFromEnv()
		assert.ErrorIs(t, err, ErrKeyNotFound)
	})

	t.Run("present", func(t *testing.T) {
		t.Setenv(EnvKeyName, testKey)
		c, err := NewCipherFromEnv()
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

func TestCipher_RoundTrip(t *testing.T) {
	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)

	for _, plaintext := range []string{"email@to", "ünïcödé", strings.Repeat("x", 4096)} {
		sealed, err := c.Encrypt(plaintext)
		require.NoError(t, err)
		assert.True(t, IsSealed(sealed))
		assert.NotContains(t, sealed, plaintext)

		opened, err := c.Decrypt(sealed)
		require.NoError(t, err)
		assert.Equal(t, plaintext, opened)
	}
}

func TestCipher_NonceIsRandom(t *testing.T) {
	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)

	a, err := c.Encrypt("same")
	require.NoError(t, err)
	b, err := c.Encrypt("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCipher_EmptyString(t *testing.T) {
	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)

	sealed, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", sealed)

	opened, err := c.Decrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", opened)
}

func TestCipher_DecryptErrors(t *testing.T) {
	c, err := NewCipher([]byte(testKey))
	require.NoError(t, err)
	other, err := NewCipher([]byte(strings.Repeat("k", MinKeyLength)))
	require.NoError(t, err)

	sealed, err := c.Encrypt("secret")
	require.NoError(t, err)

	_, err = other.Decrypt(sealed)
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = c.Decrypt("plaintext")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = c.Decrypt(prefix + "!!!not-base64")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)

	_, err = c.Decrypt(prefix + "AAAA")
	assert.ErrorIs(t, err, ErrInvalidCiphertext)
}
