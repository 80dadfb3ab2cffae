package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
)

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if body["username"] != "alice" || body["password"] != "pw" {
			t.Fatalf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(AuthResult{Token: "tok-123", Username: "alice", ExpiresAt: time.Now().Add(time.Hour)})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	result, err := c.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.Token != "tok-123" {
		t.Fatalf("unexpected token: %q", result.Token)
	}
	if !c.IsAuthenticated() || c.Username() != "alice" {
		t.Fatalf("session not stored")
	}

	c.Logout()
	if c.IsAuthenticated() || c.Username() != "" {
		t.Fatalf("session not dropped")
	}
}

func TestLogin_WrongCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(errorBody{Error: "unauthorized"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	_, err := c.Login(context.Background(), "alice", "wrong")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("want common.ErrorUnauthorized, got %v", err)
	}
	if c.IsAuthenticated() {
		t.Fatalf("token must not be stored on failure")
	}
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(errorBody{Error: "user with this username or email already exists"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	_, err := c.Register(context.Background(), "alice", "alice@example.com", "pw")
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestListSecrets_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-123" {
			t.Fatalf("unexpected auth header: %q", got)
		}
		json.NewEncoder(w).Encode([]SecretListItem{{ID: "s-1", Title: "note"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.token = "tok-123"

	items, err := c.ListSecrets(context.Background())
	if err != nil {
		t.Fatalf("ListSecrets error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "s-1" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestGetSecret_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(errorBody{Error: "not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.token = "tok-123"

	_, err := c.GetSecret(context.Background(), "missing")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreateSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode error: %v", err)
		}
		if body["title"] != "note" || body["content"] != "hello" {
			t.Fatalf("unexpected body: %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SecretListItem{ID: "s-1", Title: "note"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.token = "tok-123"

	item, err := c.CreateSecret(context.Background(), "note", "hello")
	if err != nil {
		t.Fatalf("CreateSecret error: %v", err)
	}
	if item.ID != "s-1" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestDeleteSecret_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.token = "tok-123"

	if err := c.DeleteSecret(context.Background(), "s-1"); err != nil {
		t.Fatalf("DeleteSecret error: %v", err)
	}
}

func TestPing_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	c := NewClient(srv.URL, time.Second)

	err := c.Ping(context.Background())
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("want ErrUnavailable, got %v", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorBody{Error: "invalid input: current password is incorrect"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	c.token = "tok-123"

	err := c.ChangePassword(context.Background(), "wrong", "new")
	if !errors.Is(err, common.ErrorInvalidInput) {
		t.Fatalf("want common.ErrorInvalidInput, got %v", err)
	}
}
