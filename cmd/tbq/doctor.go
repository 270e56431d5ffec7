package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/franz/trackbench/internal/store"
	"github.com/franz/trackbench/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the environment and database",
	Long: `Run diagnostic checks to ensure tbq can operate correctly.

This command checks:
- SQLite engine version
- Database file accessibility and integrity
- Presence and column layout of the tracks table
- Row count and existing indexes

Use this command to troubleshoot issues before running queries.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	applyLogFlags()
	util.InfoLog("=== TBQ Doctor - System Diagnostics ===")
	util.InfoLog("")

	ctx := context.Background()
	dbPath := viper.GetString("db")

	results := []checkResult{
		checkSQLite(),
		checkDatabaseFile(dbPath),
	}
	results = append(results, checkTracksTable(ctx, dbPath)...)

	hasErrors := false
	for _, r := range results {
		switch {
		case r.error:
			hasErrors = true
			util.ErrorLog("✗ %s: %s", r.name, r.message)
		case r.warning:
			util.WarnLog("! %s: %s", r.name, r.message)
		default:
			util.SuccessLog("✓ %s: %s", r.name, r.message)
		}
	}

	util.InfoLog("")
	if hasErrors {
		return fmt.Errorf("diagnostics found problems")
	}
	util.SuccessLog("All checks passed")
	return nil
}

func checkSQLite() checkResult {
	version := store.SQLiteVersion()
	if version == "" {
		return checkResult{name: "SQLite", message: "engine not available", error: true}
	}
	return checkResult{name: "SQLite", message: "version " + version}
}

func checkDatabaseFile(dbPath string) checkResult {
	info, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return checkResult{
			name:    "Database",
			message: fmt.Sprintf("%s does not exist yet (run 'tbq provision')", dbPath),
			warning: true,
		}
	}
	if err != nil {
		return checkResult{name: "Database", message: err.Error(), error: true}
	}
	return checkResult{
		name:    "Database",
		message: fmt.Sprintf("%s (%s)", dbPath, humanize.Bytes(uint64(info.Size()))),
	}
}

func checkTracksTable(ctx context.Context, dbPath string) []checkResult {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return []checkResult{{name: "Connection", message: err.Error(), error: true}}
	}
	defer st.Close()

	var results []checkResult

	if err := st.CheckIntegrity(ctx); err != nil {
		results = append(results, checkResult{name: "Integrity", message: err.Error(), error: true})
		return results
	}
	results = append(results, checkResult{name: "Integrity", message: "ok"})

	cols, err := st.Columns(ctx)
	if err != nil || len(cols) == 0 {
		results = append(results, checkResult{
			name:    "Tracks table",
			message: "missing (run 'tbq provision')",
			warning: true,
		})
		return results
	}
	results = append(results, checkResult{
		name:    "Tracks table",
		message: fmt.Sprintf("%d columns", len(cols)),
	})

	count, err := st.CountTracks(ctx)
	if err != nil {
		results = append(results, checkResult{name: "Row count", message: err.Error(), error: true})
	} else if count == 0 {
		results = append(results, checkResult{
			name:    "Row count",
			message: "table is empty (run 'tbq load')",
			warning: true,
		})
	} else {
		results = append(results, checkResult{
			name:    "Row count",
			message: humanize.Comma(count) + " rows",
		})
	}

	indexes, err := st.Indexes(ctx)
	if err != nil {
		results = append(results, checkResult{name: "Indexes", message: err.Error(), error: true})
	} else if len(indexes) == 0 {
		results = append(results, checkResult{name: "Indexes", message: "none"})
	} else {
		results = append(results, checkResult{
			name:    "Indexes",
			message: strings.Join(indexes, ", "),
		})
	}

	return results
}
