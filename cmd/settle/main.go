package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/settle-dev/settle/internal/commands"
)

func main() {
	// Pick up a local .env if present; existing environment wins.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
