package main

import (
	"os"

	"github.com/pocketbuddy/pocketbuddy-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
