package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
	"github.com/dmitrijs2005/vaultkeep/internal/cryptox"
	"github.com/dmitrijs2005/vaultkeep/internal/server/models"
)

func newTestCipher(t *testing.T, key string) *cryptox.Cipher {
	t.Helper()
	provider, err := cryptox.NewStaticKeyProvider([]byte(key))
	if err != nil {
		t.Fatalf("NewStaticKeyProvider error: %v", err)
	}
	c, err := cryptox.NewCipher(provider)
	if err != nil {
		t.Fatalf("NewCipher error: %v", err)
	}
	return c
}

func TestSecretCreate_EncryptsContent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cipher := newTestCipher(t, "0123456789abcdef0123456789abcdef")
	repo := &fakeSecretsRepo{}
	s := NewSecretService(db, &fakeRepoManager{s: repo}, cipher)

	created, err := s.Create(context.Background(), "u-1", "my note", "top secret text")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" || created.UserID != "u-1" || created.Title != "my note" {
		t.Fatalf("unexpected secret: %+v", created)
	}

	stored := repo.createdWith
	if stored == nil {
		t.Fatalf("nothing stored")
	}
	if stored.Content == "top secret text" || strings.Contains(stored.Content, "top secret") {
		t.Fatalf("plaintext reached the repository: %q", stored.Content)
	}
	if stored.Nonce == "" {
		t.Fatalf("nonce not stored")
	}

	plaintext, err := cipher.Decrypt(stored.Content, stored.Nonce)
	if err != nil {
		t.Fatalf("Decrypt error: %v", err)
	}
	if plaintext != "top secret text" {
		t.Fatalf("round trip mismatch: %q", plaintext)
	}
}

func TestSecretCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cipher := newTestCipher(t, "0123456789abcdef0123456789abcdef")
	s := NewSecretService(db, &fakeRepoManager{s: &fakeSecretsRepo{}}, cipher)

	tests := []struct {
		name    string
		title   string
		content string
	}{
		{name: "empty title", title: "", content: "text"},
		{name: "empty content", title: "note", content: ""},
		{name: "title too long", title: strings.Repeat("x", 256), content: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), "u-1", tt.title, tt.content)
			if !errors.Is(err, common.ErrorInvalidInput) {
				t.Fatalf("want common.ErrorInvalidInput, got %v", err)
			}
		})
	}
}

func TestSecretGet_RoundTrip(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cipher := newTestCipher(t, "0123456789abcdef0123456789abcdef")
	ciphertext, nonce, err := cipher.Encrypt("hello vault")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	repo := &fakeSecretsRepo{
		getOut: &models.Secret{ID: "s-1", UserID: "u-1", Title: "note", Content: ciphertext, Nonce: nonce},
	}
	s := NewSecretService(db, &fakeRepoManager{s: repo}, cipher)

	secret, plaintext, err := s.Get(context.Background(), "s-1", "u-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if secret.ID != "s-1" || plaintext != "hello vault" {
		t.Fatalf("unexpected result: %+v / %q", secret, plaintext)
	}
}

func TestSecretGet_WrongOwner(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cipher := newTestCipher(t, "0123456789abcdef0123456789abcdef")
	repo := &fakeSecretsRepo{getErr: common.ErrorNotFound}
	s := NewSecretService(db, &fakeRepoManager{s: repo}, cipher)

	_, _, err := s.Get(context.Background(), "s-1", "u-2")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSecretGet_KeyMismatch(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	// Content encrypted under one key, service configured with another.
	writer := newTestCipher(t, "0123456789abcdef0123456789abcdef")
	ciphertext, nonce, err := writer.Encrypt("hello vault")
	if err != nil {
		t.Fatalf("Encrypt error: %v", err)
	}

	reader := newTestCipher(t, "fedcba9876543210fedcba9876543210")
	repo := &fakeSecretsRepo{
		getOut: &models.Secret{ID: "s-1", UserID: "u-1", Content: ciphertext, Nonce: nonce},
	}
	s := NewSecretService(db, &fakeRepoManager{s: repo}, reader)

	_, _, err = s.Get(context.Background(), "s-1", "u-1")
	if !errors.Is(err, common.ErrDecryptionFailed) {
		t.Fatalf("want common.ErrDecryptionFailed, got %v", err)
	}
}

func TestSecretUpdate_ReEncrypts(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cipher := newTestCipher(t, "0123456789abcdef0123456789abcdef")
	repo := &fakeSecretsRepo{}
	s := NewSecretService(db, &fakeRepoManager{s: repo}, cipher)

	updated, err := s.Update(context.Background(), "s-1", "u-1", "renamed", "new text")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Title != "renamed" || updated.Content == "new text" {
		t.Fatalf("unexpected secret: %+v", updated)
	}

	plaintext, err := cipher.Decrypt(updated.Content, updated.Nonce)
	if err != nil || plaintext != "new text" {
		t.Fatalf("round trip mismatch: %q err=%v", plaintext, err)
	}
}

func TestSecretUpdate_WrongOwner(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cipher := newTestCipher(t, "0123456789abcdef0123456789abcdef")
	repo := &fakeSecretsRepo{updateErr: common.ErrorNotFound}
	s := NewSecretService(db, &fakeRepoManager{s: repo}, cipher)

	_, err := s.Update(context.Background(), "s-1", "u-2", "renamed", "new text")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestSecretDelete(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cipher := newTestCipher(t, "0123456789abcdef0123456789abcdef")

	t.Run("success", func(t *testing.T) {
		s := NewSecretService(db, &fakeRepoManager{s: &fakeSecretsRepo{deleteOut: true}}, cipher)
		if err := s.Delete(context.Background(), "s-1", "u-1"); err != nil {
			t.Fatalf("Delete error: %v", err)
		}
	})

	t.Run("miss", func(t *testing.T) {
		s := NewSecretService(db, &fakeRepoManager{s: &fakeSecretsRepo{deleteOut: false}}, cipher)
		err := s.Delete(context.Background(), "s-1", "u-2")
		if !errors.Is(err, common.ErrorNotFound) {
			t.Fatalf("want common.ErrorNotFound, got %v", err)
		}
	})
}

func TestSecretList(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	cipher := newTestCipher(t, "0123456789abcdef0123456789abcdef")
	repo := &fakeSecretsRepo{
		listOut: []*models.Secret{
			{ID: "s-2", UserID: "u-1", Title: "newer"},
			{ID: "s-1", UserID: "u-1", Title: "older"},
		},
	}
	s := NewSecretService(db, &fakeRepoManager{s: repo}, cipher)

	got, err := s.List(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "s-2" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
