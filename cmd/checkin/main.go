package main

import (
	"fmt"
	"os"

	"stock-checkin/internal/cli"
	"stock-checkin/internal/config"
	"stock-checkin/internal/logging"
)

func main() {
	// The config directory flag has to be resolved before cobra runs so the
	// loaded config can be injected into command construction.
	configDir := ""
	for i, arg := range os.Args[1:] {
		if arg == "--config" && i+2 < len(os.Args) {
			configDir = os.Args[i+2]
		}
	}

	logger := logging.NewLogger()

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rootCmd := cli.NewRootCmd(cfg, logger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
