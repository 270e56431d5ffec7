package main

import (
	"context"

	"github.com/franz/trackbench/internal/catalog"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <name>",
	Short: "Run one catalog entry and print its result",
	Long: `Run a single catalog entry by name against the loaded tracks table.

Results are read-only: no catalog entry ever mutates the table. For
ranked entries, ties are broken by track name so results are stable on
this engine.`,
	Example: `  tbq query top-tracks-per-artist
  tbq query above-average-liveness --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runQueryCmd,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringP("format", "f", "table", "output format: table, json, csv")
}

func runQueryCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	applyLogFlags()

	entry, err := catalog.Get(args[0])
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	result, err := catalog.Run(ctx, st.DB(), entry)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return renderResult(cmd.OutOrStdout(), result, format)
}
