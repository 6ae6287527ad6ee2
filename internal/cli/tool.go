/*
PURPOSE:
  The tool command group: lists configured external tools and runs one of
  them as a batch job over input files.

ARCHITECTURE INTEGRATION:
  - Calls: internal/jobs.Runner
  - Tools come from the "tools" section of the config file.

ERROR HANDLING:
  - Unknown tool and job failures are returned to cobra unchanged.

USAGE:
  result-harvester tool list
  result-harvester tool run resize a.png b.png --width 512
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/result-harvester/internal/jobs"
)

var jobSpec jobs.Spec

var toolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Run external image and file tools",
}

var toolListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range jobs.NewRunner(cfg.Tools).Names() {
			t := cfg.Tools[name]
			fmt.Fprintf(out, "- %s: %s %v\n", name, t.Command, t.Args)
		}
		return nil
	},
}

var toolRunCmd = &cobra.Command{
	Use:   "run <tool> <file>...",
	Short: "Run a configured tool over files and wait for it to finish",
	Example: `  result-harvester tool run resize a.png b.png --width 512 --height 512 --quality 90
  result-harvester tool run binary-invert masks/*.png`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := jobs.NewRunner(cfg.Tools).Run(cmd.Context(), args[0], args[1:], jobSpec)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s finished %d files in %s (job %s)\n", res.Tool, res.Files, res.Duration, res.ID)
		return nil
	},
}

func init() {
	toolRunCmd.Flags().StringVar(&jobSpec.Mode, "mode", "", "Tool mode (e.g. resize mode)")
	toolRunCmd.Flags().IntVar(&jobSpec.Width, "width", 0, "Target width")
	toolRunCmd.Flags().IntVar(&jobSpec.Height, "height", 0, "Target height")
	toolRunCmd.Flags().IntVar(&jobSpec.Quality, "quality", 0, "Output quality")
	toolRunCmd.Flags().StringSliceVar(&jobSpec.Flags, "flag", nil, "Extra flags passed verbatim to the tool")

	toolCmd.AddCommand(toolListCmd)
	toolCmd.AddCommand(toolRunCmd)
	rootCmd.AddCommand(toolCmd)
}
