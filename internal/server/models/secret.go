package models

import "time"

// Secret is an owned content record. Content and Nonce are base64 strings
// produced by cryptox.Cipher and are only ever written together; the server
// never stores plaintext content. UserID is set at creation and never changes.
type Secret struct {
	ID        string
	UserID    string
	Title     string
	Content   string
	Nonce     string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
