package cli

import (
	"context"
	"fmt"
)

func (a *App) me(ctx context.Context) {
	if !a.requireSession() {
		return
	}

	user, err := a.client.Me(ctx)
	if err != nil {
		printAPIError(err)
		return
	}

	a.rememberUser(user)

	fmt.Println("id:       ", user.ID)
	fmt.Println("email:    ", user.Email)
	if user.Username != "" {
		fmt.Println("username: ", user.Username)
	}
	if user.FirstName != "" || user.LastName != "" {
		fmt.Println("name:     ", user.FirstName, user.LastName)
	}
	if user.Bio != "" {
		fmt.Println("bio:      ", user.Bio)
	}
	if user.LastLoginAt != nil {
		fmt.Println("last seen:", user.LastLoginAt.Format("2006-01-02 15:04:05"))
	}
}

// whoami shows the locally cached profile without a server round trip.
func (a *App) whoami() {
	p, err := a.store.Profile()
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	if p == nil {
		fmt.Println("Not signed in.")
		return
	}
	fmt.Println("id:    ", p.ID)
	fmt.Println("email: ", p.Email)
	if p.Username != "" {
		fmt.Println("username:", p.Username)
	}
}

func (a *App) ping(ctx context.Context) {
	if err := a.client.Ping(ctx); err != nil {
		printAPIError(err)
		return
	}
	fmt.Println("pong")
}
