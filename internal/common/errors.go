// Package common defines shared constants and sentinel errors used across
// client and server layers of Vaultkeep. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors. A secret that exists but belongs to another
	// user is reported as ErrorNotFound as well.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInvalidInput = errors.New("invalid input")

	// Auth errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Crypto errors.
	ErrDecryptionFailed = errors.New("decryption failed")
)
