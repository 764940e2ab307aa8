// Package main provides the profile_migrate command, which rewrites the
// resources of every profile in a profiles JSON file into weighted objects.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		// Failures of the migration itself were already reported on stdout
		if !errors.Is(err, errMigrationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
