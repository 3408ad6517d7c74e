package cmd

import (
	"fmt"

	"github.com/go-drift/canvas/pkg/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Show the CLI version and the oldest host bridge version it can talk to.",
		Usage: "canvas version",
		Run:   runVersion,
	})
}

func runVersion(args []string) error {
	fmt.Fprintf(stdout, "canvas CLI version %s (built %s)\n", Version, BuildTime)
	fmt.Fprintf(stdout, "minimum bridge version %s\n", config.MinBridgeVersion)
	return nil
}
