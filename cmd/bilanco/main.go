package main

import (
	"os"

	"github.com/bilanco-dev/bilanco/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
