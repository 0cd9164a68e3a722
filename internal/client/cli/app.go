// Package cli implements the interactive Credo client shell.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/vkarpenko/credo/internal/client/api"
	"github.com/vkarpenko/credo/internal/client/config"
	"github.com/vkarpenko/credo/internal/client/guard"
	"github.com/vkarpenko/credo/internal/client/session"
)

type App struct {
	config *config.Config
	client api.Client
	store  session.Store
	guard  *guard.Guard
	reader *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	store, err := session.NewFileStore(c.StateDir)
	if err != nil {
		return nil, fmt.Errorf("initializing session store: %w", err)
	}

	return &App{
		config: c,
		client: api.NewHTTPClient(c, store),
		store:  store,
		guard:  guard.New(),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()
	a.Root(ctx)
}

// requireSession refreshes the guard from the store and reports whether
// a protected command may proceed.
func (a *App) requireSession() bool {
	state, err := a.guard.Check(a.store)
	if err != nil {
		fmt.Println("Cannot read session state:", err)
		return false
	}
	d := guard.DecideProtected(state, "login")
	if d.Action != guard.ActionRender {
		fmt.Printf("You are not signed in. Run '%s' first.\n", d.Target)
		return false
	}
	return true
}

// requireNoSession is the inverse gate for register and login.
func (a *App) requireNoSession() bool {
	state, err := a.guard.Check(a.store)
	if err != nil {
		fmt.Println("Cannot read session state:", err)
		return false
	}
	d := guard.DecideEntry(state, "me")
	if d.Action != guard.ActionRender {
		fmt.Println("You are already signed in. Run 'logout' first.")
		return false
	}
	return true
}

func (a *App) currentUsername() string {
	p, err := a.store.Profile()
	if err != nil || p == nil {
		return ""
	}
	if p.Username != "" {
		return p.Username
	}
	return p.Email
}
