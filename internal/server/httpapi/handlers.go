// Package httpapi is the HTTP boundary of the server: routing, the bearer
// token guard, JSON request/response shaping, and the translation of the core
// error taxonomy into status codes. No business logic lives here.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/vaultkeep/internal/logging"
	"github.com/dmitrijs2005/vaultkeep/internal/server/models"
	"github.com/dmitrijs2005/vaultkeep/internal/server/services"
	"github.com/go-chi/chi/v5"
)

// UserProvider is the slice of the user service the handlers consume.
type UserProvider interface {
	Register(ctx context.Context, username, email, password string) (*models.User, *services.Session, error)
	Login(ctx context.Context, username, password string) (*models.User, *services.Session, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	GetProfile(ctx context.Context, userID string) (*services.Profile, error)
}

// SecretProvider is the slice of the secret service the handlers consume.
// Every method takes the owner id extracted from the validated token.
type SecretProvider interface {
	List(ctx context.Context, ownerID string) ([]*models.Secret, error)
	Get(ctx context.Context, id, ownerID string) (*models.Secret, string, error)
	Create(ctx context.Context, ownerID, title, content string) (*models.Secret, error)
	Update(ctx context.Context, id, ownerID, title, content string) (*models.Secret, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// Pinger reports backend storage health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	users   UserProvider
	secrets SecretProvider
	pinger  Pinger
	logger  logging.Logger
}

func NewHandler(users UserProvider, secrets SecretProvider, pinger Pinger, logger logging.Logger) *Handler {
	return &Handler{
		users:   users,
		secrets: secrets,
		pinger:  pinger,
		logger:  logger.With("module", "httpapi"),
	}
}

func decodeBody(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, session, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Warn(r.Context(), "registration failed", "username", req.Username, "error", err)
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user registered", "username", user.Username)
	writeJSON(w, http.StatusOK, toAuthResponse(user.Username, session))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	user, session, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "user logged in", "username", user.Username)
	writeJSON(w, http.StatusOK, toAuthResponse(user.Username, session))
}

func (h *Handler) listSecrets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.secrets.List(r.Context(), userID)
	if err != nil {
		h.logger.Error(r.Context(), "error listing secrets", "error", err)
		writeServiceError(w, err)
		return
	}

	items := make([]secretListItem, 0, len(result))
	for _, s := range result {
		items = append(items, toSecretListItem(s))
	}

	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getSecret(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	secret, content, err := h.secrets.Get(r.Context(), id, userID)
	if err != nil {
		h.logger.Error(r.Context(), "error retrieving secret", "secret_id", id, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSecretDetail(secret, content))
}

func (h *Handler) createSecret(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req secretRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	secret, err := h.secrets.Create(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "secret created", "secret_id", secret.ID, "user_id", userID)
	writeJSON(w, http.StatusCreated, toSecretListItem(secret))
}

func (h *Handler) updateSecret(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req secretRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	id := chi.URLParam(r, "id")
	secret, err := h.secrets.Update(r.Context(), id, userID, req.Title, req.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "secret updated", "secret_id", id, "user_id", userID)
	writeJSON(w, http.StatusOK, toSecretListItem(secret))
}

func (h *Handler) deleteSecret(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.secrets.Delete(r.Context(), id, userID); err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "secret deleted", "secret_id", id, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	profile, err := h.users.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Username:     profile.Username,
		Email:        profile.Email,
		CreatedAt:    profile.CreatedAt,
		LastLoginAt:  profile.LastLoginAt,
		TotalSecrets: profile.TotalSecrets,
	})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changePasswordRequest
	if !decodeBody(r, &req) {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.users.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	h.logger.Info(r.Context(), "password changed", "user_id", userID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "password changed successfully"})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type healthBody struct {
		Status    string    `json:"status"`
		Timestamp time.Time `json:"timestamp"`
		Database  string    `json:"database"`
	}

	if err := h.pinger.PingContext(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, healthBody{
			Status:    "unhealthy",
			Timestamp: time.Now().UTC(),
			Database:  "disconnected",
		})
		return
	}

	writeJSON(w, http.StatusOK, healthBody{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Database:  "connected",
	})
}
