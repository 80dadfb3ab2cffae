package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
)

// Cipher encrypts and decrypts secret content under the server content key.
// It uses AES-256-GCM, so a tampered ciphertext or nonce fails decryption
// instead of yielding garbage plaintext. The per-call random nonce plays the
// IV role: it is generated fresh for every Encrypt and never reused.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher obtains the content key from the provider and prepares the AEAD.
// The key is read once; the provider is not consulted again.
func NewCipher(provider KeyProvider) (*Cipher, error) {
	key, err := provider.ContentKey()
	if err != nil {
		return nil, fmt.Errorf("content key: %w", err)
	}
	if len(key) != ContentKeySize {
		return nil, fmt.Errorf("%w: content key must be %d bytes", common.ErrorInvalidInput, ContentKeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("cipher init: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt encrypts plaintext and returns the ciphertext and nonce, both
// base64-encoded. Empty plaintext is rejected with ErrorInvalidInput.
func (c *Cipher) Encrypt(plaintext string) (ciphertext string, nonce string, err error) {
	if plaintext == "" {
		return "", "", fmt.Errorf("%w: plaintext is empty", common.ErrorInvalidInput)
	}

	n := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(n); err != nil {
		return "", "", fmt.Errorf("nonce generation: %w", err)
	}

	sealed := c.aead.Seal(nil, n, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), base64.StdEncoding.EncodeToString(n), nil
}

// Decrypt reverses Encrypt. Empty or undecodable arguments yield
// ErrorInvalidInput; a ciphertext/nonce pair the AEAD rejects (wrong length,
// authentication failure after tampering, key mismatch) yields
// ErrDecryptionFailed. The raw GCM error is never surfaced.
func (c *Cipher) Decrypt(ciphertext string, nonce string) (string, error) {
	if ciphertext == "" {
		return "", fmt.Errorf("%w: ciphertext is empty", common.ErrorInvalidInput)
	}
	if nonce == "" {
		return "", fmt.Errorf("%w: nonce is empty", common.ErrorInvalidInput)
	}

	sealed, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not valid base64", common.ErrorInvalidInput)
	}
	n, err := base64.StdEncoding.DecodeString(nonce)
	if err != nil {
		return "", fmt.Errorf("%w: nonce is not valid base64", common.ErrorInvalidInput)
	}

	if len(n) != c.aead.NonceSize() {
		return "", common.ErrDecryptionFailed
	}

	plaintext, err := c.aead.Open(nil, n, sealed, nil)
	if err != nil {
		return "", common.ErrDecryptionFailed
	}

	return string(plaintext), nil
}
