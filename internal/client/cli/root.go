package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/vkarpenko/credo/internal/client/guard"
)

func (a *App) getStatus() string {
	if name := a.currentUsername(); name != "" {
		return fmt.Sprintf("(%s)", name)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {

	fmt.Println("Welcome to Credo CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("credo %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			a.help()
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout(ctx)
		case "me":
			a.me(ctx)
		case "whoami":
			a.whoami()
		case "setavatar":
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			a.setAvatar(ctx, path)
		case "avatar":
			a.avatarURL(ctx)
		case "ping":
			a.ping(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (a *App) help() {
	state, err := a.guard.Check(a.store)
	if err == nil && state == guard.StateAuthenticated {
		fmt.Println("Available commands: me, whoami, setavatar, avatar, ping, logout, exit")
		return
	}
	fmt.Println("Available commands: register, login, ping, exit")
}
