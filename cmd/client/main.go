package main

import (
	"context"
	"log"
	"os"

	"github.com/vkarpenko/credo/internal/buildinfo"
	"github.com/vkarpenko/credo/internal/client/cli"
	"github.com/vkarpenko/credo/internal/client/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
