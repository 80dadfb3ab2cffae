package models

import "time"

// User is the identity record. PasswordHash is an opaque self-describing
// string ("iterations.salt.key"); only cryptox knows its structure.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
