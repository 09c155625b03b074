package main

import (
	"os"

	"github.com/tutorledger/tutorledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
