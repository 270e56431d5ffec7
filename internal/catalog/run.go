package catalog

import (
	"context"

	"github.com/franz/trackbench/internal/util"
	"github.com/jmoiron/sqlx"
)

// Result is a materialized query result. Columns come from the driver and
// match the entry's declared shape; Rows hold driver values with []byte
// converted to string.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Run executes an entry against the given connection and materializes the
// result. Entries are pure reads: running one never mutates the table.
// Engine failures come back as a QueryError naming the entry.
func Run(ctx context.Context, db *sqlx.DB, entry Entry) (*Result, error) {
	rows, err := db.QueryContext(ctx, entry.SQL)
	if err != nil {
		return nil, &util.QueryError{Entry: entry.Name, Err: err}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, &util.QueryError{Entry: entry.Name, Err: err}
	}

	result := &Result{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &util.QueryError{Entry: entry.Name, Err: err}
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, &util.QueryError{Entry: entry.Name, Err: err}
	}

	return result, nil
}
