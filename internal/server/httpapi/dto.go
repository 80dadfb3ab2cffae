package httpapi

import (
	"time"

	"github.com/dmitrijs2005/vaultkeep/internal/server/models"
	"github.com/dmitrijs2005/vaultkeep/internal/server/services"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type secretRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// secretListItem deliberately has no content field: listings never carry
// plaintext or ciphertext.
type secretListItem struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type secretDetail struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type profileResponse struct {
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	TotalSecrets int64      `json:"totalSecrets"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func toSecretListItem(s *models.Secret) secretListItem {
	return secretListItem{
		ID:        s.ID,
		Title:     s.Title,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSecretDetail(s *models.Secret, content string) secretDetail {
	return secretDetail{
		ID:        s.ID,
		Title:     s.Title,
		Content:   content,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toAuthResponse(username string, session *services.Session) authResponse {
	return authResponse{
		Token:     session.Token,
		Username:  username,
		ExpiresAt: session.ExpiresAt,
	}
}
