// Package main provides the sqlserde CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/sqlserde/internal/cli"

	// Register adapters.
	_ "github.com/leapstack-labs/sqlserde/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
