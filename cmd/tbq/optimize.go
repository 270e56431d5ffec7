package main

import (
	"context"
	"fmt"

	"github.com/franz/trackbench/internal/bench"
	"github.com/franz/trackbench/internal/catalog"
	"github.com/franz/trackbench/internal/util"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize <name>",
	Short: "Measure a catalog entry before and after indexing a column",
	Long: `Run the named catalog entry twice: once as-is, then again after
creating a single-column index. Prints both measurements, the execution
plans, and the speed-up ratio (baseline execution time over indexed
execution time).

The created index is left in place; re-running the comparison skips
creation rather than building a duplicate. On small datasets the timings
are noise-dominated and the ratio should not be read as a verdict.

Do not run this concurrently with queries: indexing is a serialized
phase, like provisioning.`,
	Example: `  tbq optimize top-tracks-per-artist --column views
  tbq optimize above-average-liveness --column liveness`,
	Args: cobra.ExactArgs(1),
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().String("column", "", "column to index (required)")
	optimizeCmd.MarkFlagRequired("column")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	applyLogFlags()

	entry, err := catalog.Get(args[0])
	if err != nil {
		return err
	}
	column, _ := cmd.Flags().GetString("column")

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	comparison, err := bench.Compare(ctx, st, entry, column)
	if err != nil {
		return err
	}

	printComparison(comparison)
	return nil
}

func printComparison(c *bench.Comparison) {
	util.InfoLog("=== Optimization Report %s ===", c.ID)
	util.InfoLog("Entry:  %s", c.Entry)
	util.InfoLog("Column: %s (index %s)", c.Column, c.IndexName)
	if !c.IndexCreated {
		util.WarnLog("Index already existed; creation skipped")
	}

	printMeasurement("Baseline", c.Baseline)
	printMeasurement("Indexed", c.Indexed)

	fmt.Printf("\nSpeed-up: %.2fx (baseline %.3fms / indexed %.3fms)\n",
		c.Speedup, c.Baseline.ExecutionMS, c.Indexed.ExecutionMS)
}

func printMeasurement(label string, m bench.Measurement) {
	fmt.Printf("\n%s:\n", label)
	fmt.Printf("  planning_ms:  %.3f\n", m.PlanningMS)
	fmt.Printf("  execution_ms: %.3f\n", m.ExecutionMS)
	for _, line := range m.Plan {
		fmt.Printf("  plan: %s\n", line)
	}
}
