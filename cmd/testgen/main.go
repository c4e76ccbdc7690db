package main

import (
	"os"

	"github.com/toyz/testgen/cmd/testgen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
