package main

import (
	"os"

	"github.com/rustyeddy/mastermind/cmd/mastermind/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
