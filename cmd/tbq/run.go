package main

import (
	"context"
	"fmt"

	"github.com/franz/trackbench/internal/catalog"
	"github.com/franz/trackbench/internal/report"
	"github.com/franz/trackbench/internal/util"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every catalog entry as a batch",
	Long: `Run all catalog entries (optionally one tier) against the loaded
table. An entry that fails is reported with its name and the batch
continues; the command exits non-zero if any entry failed.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("tier", "", "only run one tier (easy, medium, advanced)")
	runCmd.Flags().StringP("format", "f", "table", "output format: table, json, csv")
	runCmd.Flags().Bool("results", false, "print each entry's result, not just counts")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	applyLogFlags()

	var tier catalog.Tier
	if s, _ := cmd.Flags().GetString("tier"); s != "" {
		var err error
		if tier, err = catalog.ParseTier(s); err != nil {
			return err
		}
	}
	format, _ := cmd.Flags().GetString("format")
	showResults, _ := cmd.Flags().GetBool("results")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	summary := report.NewRunSummary()

	for entry := range catalog.List(tier) {
		result, err := catalog.Run(ctx, st.DB(), entry)
		if err != nil {
			util.ErrorLog("%v", err)
			summary.AddFailure(entry.Name, err)
			continue
		}

		summary.AddSuccess(len(result.Rows))
		if showResults {
			util.InfoLog("=== %s (%s) ===", entry.Name, entry.Tier)
			if err := renderResult(cmd.OutOrStdout(), result, format); err != nil {
				return err
			}
		} else {
			util.InfoLog("%-28s %s: %d rows", entry.Name, entry.Tier, len(result.Rows))
		}
	}

	summary.Print()
	if summary.Failed() {
		return fmt.Errorf("%d of %d entries failed", len(summary.Failures), summary.Entries())
	}
	return nil
}
