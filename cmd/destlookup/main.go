package main

import (
	"os"

	"github.com/go-i2p/i2cp-lookupdest/cmd/destlookup/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
