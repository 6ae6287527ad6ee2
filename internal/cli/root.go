/*
PURPOSE:
  Defines the root Cobra command for the Result Harvester CLI.
  Handles global flags, config loading and logger setup.

REQUIREMENTS:
  User-specified:
  - Provide a CLI interface.
  - Support global flags like --config.

  Implementation-discovered:
  - Needs to expose an Execute() function for main.go.
  - Config and logger must be ready before any subcommand runs.

ARCHITECTURE INTEGRATION:
  - Called by: cmd/result-harvester/main.go
  - Calls: Child commands (scan, process, tool)

ERROR HANDLING:
  - Returns error to main.go for exit code handling.

IMPLEMENTATION RULES:
  - Use `PersistentFlags()` for flags available to all subcommands.
  - Keep Run logic in subcommands.

USAGE:
  Called by main.go.

RELATED FILES:
  - cmd/result-harvester/main.go
  - internal/config/config.go
*/

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/daryltucker/result-harvester/internal/config"
	"github.com/daryltucker/result-harvester/internal/output"
)

var (
	// cfgFile stores the path to the config file (if specified via flag)
	cfgFile   string
	logLevel  string
	logFormat string

	// cfg is loaded once per invocation in PersistentPreRunE.
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:           "result-harvester",
		Short:         "Collect experiment metrics from run folders into one report",
		Long:          `Scans run<N> folders, reads the last row of every results/<model>/<dataset>/result/metrics.csv and writes a combined final_result.csv.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				loaded.LogLevel = logLevel
			}
			if logFormat != "" {
				loaded.LogFormat = logFormat
			}
			if err := output.Configure(loaded.LogLevel, loaded.LogFormat, os.Stderr); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./harvester.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text, json")
}

// basePath returns the positional or flag base path, falling back to config.
func basePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return cfg.BasePath
}
