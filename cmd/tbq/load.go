package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/franz/trackbench/internal/load"
	"github.com/franz/trackbench/internal/util"
	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load [dataset.csv]",
	Short: "Bulk-load track rows into the tracks table",
	Long: `Load rows into the provisioned tracks table.

With a CSV argument, the file's header must match the schema's column
order exactly; empty fields load as NULL.

With --from-tags, a directory of audio files is walked instead and one
row per file is inserted from its embedded tags (artist/track/album
only; audio features stay NULL).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().String("from-tags", "", "import from a directory of tagged audio files")
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	applyLogFlags()

	tagsDir, _ := cmd.Flags().GetString("from-tags")
	if (len(args) == 0) == (tagsDir == "") {
		return fmt.Errorf("provide either a CSV file or --from-tags <dir>")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	var result *load.Result
	if tagsDir != "" {
		util.InfoLog("Importing tags from %s", tagsDir)
		result, err = load.ImportTags(ctx, st, tagsDir)
	} else {
		util.InfoLog("Loading dataset %s", args[0])
		result, err = load.LoadCSV(ctx, st, args[0])
	}
	if err != nil {
		return err
	}

	util.SuccessLog("Loaded %s rows in %v",
		humanize.Comma(result.RowsLoaded), result.Duration.Round(time.Millisecond))
	if result.RowsSkipped > 0 {
		util.WarnLog("Skipped %s rows", humanize.Comma(result.RowsSkipped))
	}

	total, err := st.CountTracks(ctx)
	if err != nil {
		return err
	}
	util.InfoLog("Table now holds %s rows", humanize.Comma(total))
	util.InfoLog("Next step: tbq list")
	return nil
}
