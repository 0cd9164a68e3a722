package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vkarpenko/credo/internal/client/api"
	"github.com/vkarpenko/credo/internal/client/session"
	"github.com/vkarpenko/credo/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) rememberUser(u *api.User) {
	if u == nil {
		return
	}
	err := a.store.SetProfile(&session.Profile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		AvatarKey: u.AvatarKey,
	})
	if err != nil {
		fmt.Println("Warning: could not cache profile:", err)
	}
}

func printAPIError(err error) {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		fmt.Println("Error:", apiErr.Message)
		for field, msg := range apiErr.Fields {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		return
	}
	if errors.Is(err, api.ErrUnavailable) {
		fmt.Println("Server unavailable, try again later.")
		return
	}
	if errors.Is(err, api.ErrUnauthorized) {
		fmt.Println("Session expired, please login again.")
		return
	}
	fmt.Println("Error:", err)
}

func (a *App) register(ctx context.Context) {
	if !a.requireNoSession() {
		return
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	username, err := getSimpleText(a.reader, "Enter username (optional)", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer common.WipeByteArray(password)

	result, err := a.client.Register(ctx, &api.RegisterParams{
		Email:     email,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(password),
	})
	if err != nil {
		printAPIError(err)
		return
	}

	a.rememberUser(result.User)
	fmt.Println("Registered and signed in as", result.User.Email)
}

func (a *App) login(ctx context.Context) {
	if !a.requireNoSession() {
		return
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer common.WipeByteArray(password)

	result, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		printAPIError(err)
		return
	}

	a.rememberUser(result.User)
	fmt.Println("Signed in as", result.User.Email)
}

func (a *App) logout(ctx context.Context) {
	// the server acknowledgement is best effort; the local session is
	// cleared regardless
	if err := a.client.Logout(ctx); err != nil {
		fmt.Println("Warning: server logout failed:", err)
	}
	if err := a.store.Clear(); err != nil {
		fmt.Println("Error clearing session:", err)
		return
	}
	fmt.Println("Signed out.")
}
