package main

import (
	"os"

	"github.com/flightdeck360/flightdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
