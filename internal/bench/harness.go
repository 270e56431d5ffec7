// Package bench measures catalog queries before and after creating a
// supporting index and reports the speed-up.
package bench

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/franz/trackbench/internal/catalog"
	"github.com/franz/trackbench/internal/store"
	"github.com/franz/trackbench/internal/util"
	"github.com/google/uuid"
)

// Measurement holds the timings of a single query run
type Measurement struct {
	PlanningMS  float64
	ExecutionMS float64

	// Plan is the engine's EXPLAIN QUERY PLAN output, one line per step.
	Plan []string
}

// Comparison pairs two measurements of the same entry taken before and
// after an index was created on a column. It is a diagnostic report only
// and is never persisted.
type Comparison struct {
	ID        string
	Entry     string
	Column    string
	IndexName string
	Baseline  Measurement
	Indexed   Measurement

	// Speedup is baseline execution time over indexed execution time.
	Speedup float64

	// IndexCreated is false when the index already existed and creation
	// was skipped.
	IndexCreated bool
}

// Measure runs the entry once and reports how long the engine took to
// plan (prepare) and to execute it, plus the chosen execution plan.
// It never mutates the schema.
func Measure(ctx context.Context, st *store.Store, entry catalog.Entry) (Measurement, error) {
	var m Measurement

	planStart := time.Now()
	stmt, err := st.DB().PreparexContext(ctx, entry.SQL)
	if err != nil {
		return m, &util.QueryError{Entry: entry.Name, Err: err}
	}
	defer stmt.Close()
	m.PlanningMS = millis(time.Since(planStart))

	plan, err := explainPlan(ctx, st, entry.SQL)
	if err != nil {
		return m, &util.QueryError{Entry: entry.Name, Err: err}
	}
	m.Plan = plan

	execStart := time.Now()
	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return m, &util.QueryError{Entry: entry.Name, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return m, &util.QueryError{Entry: entry.Name, Err: err}
	}
	discard := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range discard {
		ptrs[i] = &discard[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return m, &util.QueryError{Entry: entry.Name, Err: err}
		}
	}
	if err := rows.Err(); err != nil {
		return m, &util.QueryError{Entry: entry.Name, Err: err}
	}
	m.ExecutionMS = millis(time.Since(execStart))

	return m, nil
}

// ApplyIndex creates a single-column index idx_tracks_<column> on the
// tracks table. Creation is skipped (created = false, no error) when the
// index already exists; a missing column is an IndexError.
func ApplyIndex(ctx context.Context, st *store.Store, column string) (created bool, name string, err error) {
	name = "idx_tracks_" + column

	ok, err := st.HasColumn(ctx, column)
	if err != nil {
		return false, name, &util.IndexError{Column: column, Err: err}
	}
	if !ok {
		return false, name, &util.IndexError{Column: column, Err: errors.New("no such column in tracks")}
	}

	exists, err := st.HasIndex(ctx, name)
	if err != nil {
		return false, name, &util.IndexError{Column: column, Err: err}
	}
	if exists {
		return false, name, nil
	}

	ddl := fmt.Sprintf("CREATE INDEX %s ON tracks(%s)", name, column)
	if _, err := st.DB().ExecContext(ctx, ddl); err != nil {
		return false, name, &util.IndexError{Column: column, Err: err}
	}
	return true, name, nil
}

// Compare measures the entry, applies the index, and measures again.
// The created index is left in place, so rerunning the comparison skips
// creation instead of stacking duplicate indexes. Timings on small
// datasets are noise-dominated; callers judging the speed-up should do so
// only on data large enough for the index to matter.
func Compare(ctx context.Context, st *store.Store, entry catalog.Entry, column string) (*Comparison, error) {
	baseline, err := Measure(ctx, st, entry)
	if err != nil {
		return nil, err
	}

	created, name, err := ApplyIndex(ctx, st, column)
	if err != nil {
		return nil, err
	}

	indexed, err := Measure(ctx, st, entry)
	if err != nil {
		return nil, err
	}

	c := &Comparison{
		ID:           uuid.NewString(),
		Entry:        entry.Name,
		Column:       column,
		IndexName:    name,
		Baseline:     baseline,
		Indexed:      indexed,
		IndexCreated: created,
	}
	if indexed.ExecutionMS > 0 {
		c.Speedup = baseline.ExecutionMS / indexed.ExecutionMS
	}
	return c, nil
}

// explainPlan collects the engine's EXPLAIN QUERY PLAN rows for a query
func explainPlan(ctx context.Context, st *store.Store, query string) ([]string, error) {
	rows, err := st.DB().QueryContext(ctx, "EXPLAIN QUERY PLAN "+query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plan []string
	for rows.Next() {
		var id, parent, notused int
		var detail string
		if err := rows.Scan(&id, &parent, &notused, &detail); err != nil {
			return nil, err
		}
		plan = append(plan, detail)
	}
	return plan, rows.Err()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
