package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/loykin/pagesbadge/cmd/pagesbadge/commands"
	"github.com/loykin/pagesbadge/cmd/pagesbadge/config"
)

func main() {
	// .env is optional; real environment variables take precedence over it.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			exitHandler.LogFatalError(err, "failed to load .env")
		}
	}
	if err := commands.NewRootCmd(config.NewViper()).Execute(); err != nil {
		exitHandler.LogFatalError(err, "command execution failed")
	}
}
