package main

import (
	"os"

	"github.com/devkwon/stocksage/cmd/stocksage/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
