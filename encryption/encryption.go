// Package encryption seals sensitive preference values with AES-256-GCM.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	// MinKeyLength is the minimum accepted length of key material in bytes.
	MinKeyLength = 32
	// EnvKeyName is the environment variable read by NewCipherFromEnv.
	EnvKeyName = "RECEIPTPREFS_ENCRYPTION_KEY"

	// prefix marks sealed values so they can be told apart from plaintext.
	prefix = "enc:v1:"
)

var (
	// ErrInvalidKeyLength is returned when the key material is too short.
	ErrInvalidKeyLength = errors.New("encryption key must be at least 32 bytes")
	// ErrKeyNotFound is returned when EnvKeyName is not set.
	ErrKeyNotFound = errors.New("encryption key not found in environment variable " + EnvKeyName)
	// ErrEncryptionFailed is returned when sealing fails.
	ErrEncryptionFailed = errors.New("encryption operation failed")
	// ErrDecryptionFailed is returned when opening fails, including on a
	// wrong key or tampered ciphertext.
	ErrDecryptionFailed = errors.New("decryption operation failed")
	// ErrInvalidCiphertext is returned for values that were not produced by Encrypt.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
)

// Cipher seals and opens strings. The AES key is the SHA-256 of the key
// material, so any material of at least MinKeyLength bytes is accepted.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a Cipher from key material.
func NewCipher(keyMaterial []byte) (*Cipher, error) {
	if len(keyMaterial) < MinKeyLength {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKeyLength, len(keyMaterial))
	}
	key := sha256.Sum256(keyMaterial)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionFailed, err)
	}
	return &Cipher{aead: aead}, nil
}

// NewCipherFromEnv creates a Cipher from the EnvKeyName environment variable.
func NewCipherFromEnv() (*Cipher, error) {
	keyStr := os.Getenv(EnvKeyName)
	if keyStr == "" {
		return nil, ErrKeyNotFound
	}
	return NewCipher([]byte(keyStr))
}

// Encrypt returns "enc:v1:" followed by base64(nonce || ciphertext).
// The empty string is returned unchanged.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: nonce: %v", ErrEncryptionFailed, err)
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return prefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	if !IsSealed(encoded) {
		return "", ErrInvalidCiphertext
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(encoded, prefix))
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrInvalidCiphertext, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return string(plaintext), nil
}

// IsSealed reports whether s looks like a value produced by Encrypt.
func IsSealed(s string) bool {
	return strings.HasPrefix(s, prefix)
}
