// Package cryptox implements the two stateless security transforms of
// Vaultkeep: content encryption (AES-256-GCM) and password hashing
// (PBKDF2-HMAC-SHA256). Both are safe for concurrent use.
package cryptox

import (
	"fmt"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
)

// ContentKeySize is the required symmetric key length (AES-256).
const ContentKeySize = 32

// KeyProvider supplies the symmetric content-encryption key. Abstracting the
// source lets the cipher stay unchanged when the key moves from static config
// to a KMS or per-user wrapping scheme.
type KeyProvider interface {
	// ContentKey returns the 32-byte key used for secret content encryption.
	ContentKey() ([]byte, error)
}

// StaticKeyProvider holds a key loaded once at process start, typically from
// configuration. The slice is copied on construction so later mutation of the
// source cannot change the key mid-flight.
type StaticKeyProvider struct {
	key []byte
}

// NewStaticKeyProvider validates the key length and returns a provider.
func NewStaticKeyProvider(key []byte) (*StaticKeyProvider, error) {
	if len(key) != ContentKeySize {
		return nil, fmt.Errorf("%w: encryption key must be %d bytes, got %d",
			common.ErrorInvalidInput, ContentKeySize, len(key))
	}
	k := make([]byte, ContentKeySize)
	copy(k, key)
	return &StaticKeyProvider{key: k}, nil
}

func (p *StaticKeyProvider) ContentKey() ([]byte, error) {
	return p.key, nil
}
