// Command assetkit builds save files and encrypts text assets for the game.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/formless-game/assetkit/internal/commands"
	"github.com/formless-game/assetkit/internal/config"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "unknown"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config.Config

	if err := commands.NewRootCommand(&cfg, version).ExecuteContext(ctx); err != nil {
		return 1
	}

	return 0
}
