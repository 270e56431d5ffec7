// Package load fills the tracks table from external tabular sources.
package load

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/franz/trackbench/internal/store"
	"github.com/franz/trackbench/internal/util"
	"github.com/jmoiron/sqlx"
	"github.com/schollz/progressbar/v3"
)

// Result summarizes a bulk load
type Result struct {
	RowsLoaded  int64
	RowsSkipped int64
	Duration    time.Duration
}

var (
	textColumns = map[string]bool{
		"artist": true, "track": true, "album": true,
		"album_type": true, "most_played_on": true,
	}
	boolColumns = map[string]bool{
		"licensed": true, "official_video": true,
	}
)

// LoadCSV bulk-loads a delimited file into the tracks table. The header
// row must match the declared column order exactly; it is the contract
// between the dataset and the schema. All rows go in within a single
// transaction. Empty fields become NULL; rows with unparseable numeric
// fields are skipped and counted, not fatal.
func LoadCSV(ctx context.Context, st *store.Store, path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	bar := newProgressBar("Loading")
	start := time.Now()
	result := &Result{}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(store.TrackColumns)), ", ")
	insertSQL := fmt.Sprintf("INSERT INTO tracks (%s) VALUES (%s)",
		strings.Join(store.TrackColumns, ", "), placeholders)

	err = st.Transaction(ctx, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, insertSQL)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for {
			record, err := r.Read()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read record: %w", err)
			}

			values, ok := convertRecord(record)
			if !ok {
				result.RowsSkipped++
				continue
			}

			if _, err := stmt.ExecContext(ctx, values...); err != nil {
				return fmt.Errorf("failed to insert row %d: %w", result.RowsLoaded+1, err)
			}
			result.RowsLoaded++
			if bar != nil {
				bar.Add(1)
			}
		}
		return nil
	})
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

// checkHeader verifies the dataset column order matches the schema
func checkHeader(header []string) error {
	if len(header) != len(store.TrackColumns) {
		return fmt.Errorf("dataset has %d columns, schema declares %d",
			len(header), len(store.TrackColumns))
	}
	for i, want := range store.TrackColumns {
		got := strings.TrimSpace(strings.ToLower(header[i]))
		if got != want {
			return fmt.Errorf("dataset column %d is %q, schema declares %q", i, header[i], want)
		}
	}
	return nil
}

// convertRecord maps CSV fields to driver values in schema column order.
// Returns ok = false when a numeric field cannot be parsed.
func convertRecord(record []string) ([]any, bool) {
	values := make([]any, len(store.TrackColumns))
	for i, col := range store.TrackColumns {
		field := strings.TrimSpace(record[i])
		if field == "" {
			values[i] = nil
			continue
		}

		switch {
		case textColumns[col]:
			values[i] = field
		case boolColumns[col]:
			b, ok := parseBool(field)
			if !ok {
				return nil, false
			}
			values[i] = b
		default:
			f, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, false
			}
			values[i] = f
		}
	}
	return values, true
}

// parseBool accepts the spellings seen in the wild: True/False, 1/0
func parseBool(s string) (int, bool) {
	switch strings.ToLower(s) {
	case "true", "1":
		return 1, true
	case "false", "0":
		return 0, true
	}
	return 0, false
}

// newProgressBar returns an indeterminate progress bar on a TTY, nil otherwise
func newProgressBar(description string) *progressbar.ProgressBar {
	if !util.IsTerminal(os.Stderr.Fd()) || util.IsQuiet() {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(barWidth()),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("rows"),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

// barWidth sizes the bar to half the terminal, capped at 40 columns
func barWidth() int {
	width := util.GetTerminalWidth() / 2
	if width > 40 {
		width = 40
	}
	return width
}
