package main

import (
	"github.com/franz/trackbench/internal/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog of practice queries",
	Long: `List every catalog entry with its tier and intent. Entries appear in
catalog order: easy first, then medium, then advanced.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("tier", "", "only show one tier (easy, medium, advanced)")
}

func runList(cmd *cobra.Command, args []string) error {
	applyLogFlags()

	var tier catalog.Tier
	if s, _ := cmd.Flags().GetString("tier"); s != "" {
		var err error
		if tier, err = catalog.ParseTier(s); err != nil {
			return err
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Tier", "Intent"})

	for entry := range catalog.List(tier) {
		t.AppendRow(table.Row{entry.Name, entry.Tier, entry.Intent})
	}

	t.Render()
	return nil
}
