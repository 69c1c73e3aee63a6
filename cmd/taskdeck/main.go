// Package main is the entry point for the taskdeck CLI.
package main

import (
	"fmt"
	"os"

	"github.com/shwilliamson/taskdeck/internal/app"
	"github.com/shwilliamson/taskdeck/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// The config path must be known before the container exists, so the
	// flag is resolved from the raw arguments and registered again on
	// the root command for help output.
	configPath := configPathFromArgs(os.Args[1:])

	container, err := app.New(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	rootCmd := cli.NewRootCommand(container, version)
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: $TASKDECK_CONFIG or ~/.config/taskdeck/config.toml)")
	return rootCmd.Execute()
}

// configPathFromArgs extracts the --config value from raw arguments.
func configPathFromArgs(args []string) string {
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			return args[i+1]
		}
		if len(arg) > len("--config=") && arg[:len("--config=")] == "--config=" {
			return arg[len("--config="):]
		}
	}
	return ""
}
