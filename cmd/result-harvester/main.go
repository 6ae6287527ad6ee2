/*
PURPOSE:
  Entry point for the Result Harvester application.
  Initializes the CLI root command and executes it.

REQUIREMENTS:
  User-specified:
  - Must serve as the single binary entry point.
  - Must handle top-level errors gracefully.

ARCHITECTURE INTEGRATION:
  - Calls: internal/cli.Execute()
  - Depends on: internal/cli package

ERROR HANDLING:
  - Explicit error check on Execute(); exit code 1 on failure.

IMPLEMENTATION RULES:
  - Critical: Keep main() minimal. All logic belongs in internal/ packages.

USAGE:
  go build -o result-harvester ./cmd/result-harvester
  ./result-harvester [command] [flags]

RELATED FILES:
  - internal/cli/root.go - The actual root command definition.
*/

package main

import (
	"fmt"
	"os"

	"github.com/daryltucker/result-harvester/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
