/*
PURPOSE:
  The scan command: lists run folders under a base path with a
  completeness marker.

REQUIREMENTS:
  User-specified:
  - Human-readable table by default, raw JSON with --json.

ARCHITECTURE INTEGRATION:
  - Calls: engine.Scan
  - Styling: lipgloss

USAGE:
  result-harvester scan /data/experiments
  result-harvester scan --json
*/

package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/daryltucker/result-harvester/internal/engine"
	"github.com/daryltucker/result-harvester/internal/model"
)

var (
	scanJSON bool

	headerStyle     = lipgloss.NewStyle().Bold(true)
	nameStyle       = lipgloss.NewStyle().Width(14)
	completeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))  // Green
	incompleteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")) // Orange
)

var scanCmd = &cobra.Command{
	Use:   "scan [base-path]",
	Short: "List run folders and whether they have results",
	Example: `  # Scan the configured base path
  result-harvester scan

  # Scan a directory and print the raw response
  result-harvester scan /data/experiments --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var base string
		if len(args) == 1 {
			base = args[0]
		}
		res, err := engine.Scan(basePath(base))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if scanJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		}

		fmt.Fprintln(out, headerStyle.Render(nameStyle.Render("RUN")+"STATUS"))
		for _, f := range res.Folders {
			fmt.Fprintln(out, nameStyle.Render(f.Name)+renderStatus(f.Status))
		}
		fmt.Fprintf(out, "%d run folders\n", res.Total)
		return nil
	},
}

func renderStatus(s model.RunStatus) string {
	if s == model.StatusComplete {
		return completeStyle.Render(string(s))
	}
	return incompleteStyle.Render(string(s))
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Print the scan result as JSON")
}
