// Package main is the entry point for the premium-estimator CLI.
package main

import (
	"os"

	"premium-estimator/cmd/cli/cmd"
	"premium-estimator/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
