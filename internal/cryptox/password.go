package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

// Password hashing policy. Stored hashes are self-describing
// ("iterations.salt.key"), so Verify honors whatever iteration count a hash
// declares and DefaultIterations can be raised without migrating old rows.
const (
	saltSize          = 16
	keySize           = 32
	DefaultIterations = 10000
)

// PasswordHasher derives and verifies salted PBKDF2-HMAC-SHA256 password
// hashes in the format "{iterations}.{base64 salt}.{base64 key}".
type PasswordHasher struct {
	iterations int
}

// NewPasswordHasher returns a hasher with the default work factor.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{iterations: DefaultIterations}
}

// Hash derives a hash string from password using a fresh random salt.
// An empty password is rejected with ErrorInvalidInput.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is empty", common.ErrorInvalidInput)
	}

	salt := common.GenerateRandByteArray(saltSize)
	key := pbkdf2.Key([]byte(password), salt, h.iterations, keySize, sha256.New)

	return fmt.Sprintf("%d.%s.%s",
		h.iterations,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	), nil
}

// Verify re-derives a key with the parameters stored in hash and compares it
// against the stored key in constant time. Empty arguments are
// ErrorInvalidInput; a hash that does not parse verifies as false without
// error, so a corrupted stored hash cannot be told apart from a wrong
// password.
func (h *PasswordHasher) Verify(password string, hash string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("%w: password is empty", common.ErrorInvalidInput)
	}
	if hash == "" {
		return false, fmt.Errorf("%w: hash is empty", common.ErrorInvalidInput)
	}

	parts := strings.Split(hash, ".")
	if len(parts) != 3 {
		return false, nil
	}

	iterations, err := strconv.Atoi(parts[0])
	if err != nil || iterations <= 0 {
		return false, nil
	}
	salt, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false, nil
	}
	key, err := base64.StdEncoding.DecodeString(parts[2])
	if err != nil {
		return false, nil
	}

	candidate := pbkdf2.Key([]byte(password), salt, iterations, len(key), sha256.New)

	return subtle.ConstantTimeCompare(candidate, key) == 1, nil
}
