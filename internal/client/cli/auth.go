package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/vaultkeep/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline

// Register prompts for a username, email and password and creates an
// account. On success the client holds a session immediately; no separate
// login is required. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result, err := a.api.Register(ctx, username, email, string(password))
	if err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Registered and logged in as %s\n", result.Username)
	return nil
}

// Login prompts for credentials and authenticates against the server.
// The password byte slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	fmt.Printf("Logged in as %s\n", result.Username)
	return nil
}

// Logout drops the local session.
func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	fmt.Println("Logged out")
	return nil
}

// ChangePassword prompts for the current and new passwords and submits the
// change. Both password byte slices are wiped before returning.
func (a *App) ChangePassword(ctx context.Context) error {
	current, err := getPassword(os.Stdout, "Enter current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword(os.Stdout, "Enter new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.api.ChangePassword(ctx, string(current), string(next)); err != nil {
		log.Printf("Password change unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Password changed")
	return nil
}
