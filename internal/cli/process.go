/*
PURPOSE:
  The process command: aggregates the selected run folders into
  <base>/final_result.csv and prints the batch log.

REQUIREMENTS:
  User-specified:
  - Runs are processed in the order given on the command line.
  - --all selects every complete run, ordered by run number.

  Implementation-discovered:
  - Flags override per_run_report and json_report from the config file.

ARCHITECTURE INTEGRATION:
  - Calls: engine.Scan, engine.Process

ERROR HANDLING:
  - Only a missing base path or an empty selection fails the command.
  - Per-run problems appear in the printed log.

USAGE:
  result-harvester process run1 run3 --base /data/exp
  result-harvester process --all
*/

package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/result-harvester/internal/engine"
)

var (
	processBase    string
	processAll     bool
	perRunOverride bool
	jsonOverride   bool
)

var processCmd = &cobra.Command{
	Use:   "process [run...]",
	Short: "Aggregate metrics from run folders into final_result.csv",
	Long: `Processes the given run folders in order and writes <base>/final_result.csv.

For each run, every results/<model>/<dataset>/result/metrics.csv is read and its
last row is taken as the authoritative result. Datasets with missing or broken
metrics are skipped and reported in the log; a broken run never stops the batch.`,
	Example: `  # Process two runs under the current directory
  result-harvester process run1 run3

  # Process every run that has results
  result-harvester process --base /data/experiments --all`,
	RunE: func(cmd *cobra.Command, args []string) error {
		base := basePath(processBase)

		if cmd.Flags().Changed("per-run-report") {
			cfg.PerRunReport = perRunOverride
		}
		if cmd.Flags().Changed("json-report") {
			cfg.JSONReport = jsonOverride
		}

		selected := args
		if processAll {
			res, err := engine.Scan(base)
			if err != nil {
				return err
			}
			selected = nil
			for _, f := range res.Folders {
				if f.HasResults {
					selected = append(selected, f.Name)
				}
			}
		}
		if len(selected) == 0 {
			return errors.New("no run folders selected (pass run names or --all)")
		}

		log, err := engine.Process(cfg, base, selected)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), log)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)
	processCmd.Flags().StringVarP(&processBase, "base", "b", "", "Base directory containing run folders (overrides config)")
	processCmd.Flags().BoolVar(&processAll, "all", false, "Process every run folder that has a results directory")
	processCmd.Flags().BoolVar(&perRunOverride, "per-run-report", true, "Also write final_result.csv inside each run's final-result directory")
	processCmd.Flags().BoolVar(&jsonOverride, "json-report", false, "Also write final_result.jsonl next to the report")
}
