package main

import (
	"os"

	"github.com/rustyeddy/traderater/cmd/traderater/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
