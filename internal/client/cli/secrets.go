package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// List prints the user's secrets, newest first. Content is never shown here;
// use Show for a single secret.
func (a *App) List(ctx context.Context) error {
	items, err := a.api.ListSecrets(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if len(items) == 0 {
		fmt.Println("No secrets yet. Use 'add' to create one.")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  %s  (created %s)\n", item.ID, item.Title, item.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// Show fetches one secret and prints its decrypted content.
func (a *App) Show(ctx context.Context, id string) error {
	secret, err := a.api.GetSecret(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Title: %s\n", secret.Title)
	fmt.Printf("Content:\n%s\n", secret.Content)
	return nil
}

// Add prompts for a title and content and stores a new secret.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return err
	}

	content, err := getMultiline(a.reader, "Enter secret text:", os.Stdout)
	if err != nil {
		return err
	}

	item, err := a.api.CreateSecret(ctx, title, content)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Saved as %s\n", item.ID)
	return nil
}

// Edit prompts for a new title and content and rewrites the secret.
func (a *App) Edit(ctx context.Context, id string) error {
	title, err := getSimpleText(a.reader, "Enter new title", os.Stdout)
	if err != nil {
		return err
	}

	content, err := getMultiline(a.reader, "Enter new secret text:", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.api.UpdateSecret(ctx, id, title, content); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println("Updated")
	return nil
}

// Delete removes a secret.
func (a *App) Delete(ctx context.Context, id string) error {
	if err := a.api.DeleteSecret(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println("Deleted")
	return nil
}

// Profile prints the account summary.
func (a *App) Profile(ctx context.Context) error {
	profile, err := a.api.GetProfile(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Printf("Username: %s\n", profile.Username)
	fmt.Printf("Email:    %s\n", profile.Email)
	fmt.Printf("Member since: %s\n", profile.CreatedAt.Format("2006-01-02"))
	if profile.LastLoginAt != nil {
		fmt.Printf("Last login:   %s\n", profile.LastLoginAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("Secrets stored: %d\n", profile.TotalSecrets)
	return nil
}
