// Package api implements the HTTP client for the Vaultkeep server. It keeps
// the session token obtained at login and attaches it to every subsequent
// request. Server-side error statuses are mapped back onto the shared
// sentinel errors so the CLI can branch with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
)

// ErrUnavailable indicates the server could not be reached at all, as opposed
// to an error response it returned.
var ErrUnavailable = errors.New("server unavailable")

// AuthResult is the reply to register and login calls.
type AuthResult struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SecretListItem is a secret as rendered in listings: no content.
type SecretListItem struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// SecretDetail is a single secret with its decrypted content.
type SecretDetail struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Profile is the account summary.
type Profile struct {
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	TotalSecrets int64      `json:"totalSecrets"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Client talks to the Vaultkeep HTTP API.
type Client struct {
	baseURL  string
	http     *http.Client
	token    string
	username string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// IsAuthenticated reports whether a session token is held.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// Username returns the name of the logged-in user, empty when logged out.
func (c *Client) Username() string {
	return c.username
}

// Logout drops the session token. Tokens are stateless, so there is nothing
// to tell the server.
func (c *Client) Logout() {
	c.token = ""
	c.username = ""
}

// Register creates an account and starts a session with the returned token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}

	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", body, &result); err != nil {
		return nil, err
	}

	c.token = result.Token
	c.username = result.Username
	return &result, nil
}

// Login authenticates and stores the session token for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "password": password}

	var result AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &result); err != nil {
		return nil, err
	}

	c.token = result.Token
	c.username = result.Username
	return &result, nil
}

// ListSecrets returns the caller's secrets, newest first, without content.
func (c *Client) ListSecrets(ctx context.Context) ([]SecretListItem, error) {
	var result []SecretListItem
	if err := c.doJSON(ctx, http.MethodGet, "/api/secrets", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSecret fetches one secret with its decrypted content.
func (c *Client) GetSecret(ctx context.Context, id string) (*SecretDetail, error) {
	var result SecretDetail
	if err := c.doJSON(ctx, http.MethodGet, "/api/secrets/"+id, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateSecret stores a new secret.
func (c *Client) CreateSecret(ctx context.Context, title, content string) (*SecretListItem, error) {
	body := map[string]string{"title": title, "content": content}

	var result SecretListItem
	if err := c.doJSON(ctx, http.MethodPost, "/api/secrets", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateSecret rewrites a secret's title and content.
func (c *Client) UpdateSecret(ctx context.Context, id, title, content string) (*SecretListItem, error) {
	body := map[string]string{"title": title, "content": content}

	var result SecretListItem
	if err := c.doJSON(ctx, http.MethodPut, "/api/secrets/"+id, body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteSecret removes a secret.
func (c *Client) DeleteSecret(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/secrets/"+id, nil, nil)
}

// GetProfile returns the account summary.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var result Profile
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.doJSON(ctx, http.MethodPost, "/api/user/change-password", body, nil)
}

// Ping checks server reachability via the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/health", nil, nil)
}

// doJSON performs one API round trip: encode body, attach the bearer token if
// held, map transport failures to ErrUnavailable and error statuses to the
// shared sentinels, and decode the reply into out when given.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(common.AuthHeaderName, common.AuthSchemePrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return statusError(resp.StatusCode, eb.Error)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("response decode error: %w", err)
		}
	}

	return nil
}

func statusError(status int, message string) error {
	if message == "" {
		message = http.StatusText(status)
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorInvalidInput, message)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, message)
	default:
		return fmt.Errorf("%w: %s", common.ErrorInternal, message)
	}
}
