package util

import "fmt"

// SchemaError indicates the engine rejected a DDL statement during
// provisioning. Provisioning is atomic, so a SchemaError means the table
// was left in its previous state.
type SchemaError struct {
	Detail string
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error (%s): %v", e.Detail, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// QueryError indicates a catalog entry failed to prepare or execute.
// It always names the entry so batch runs can report it and continue.
type QueryError struct {
	Entry string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error in %q: %v", e.Entry, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// IndexError indicates index DDL failed, e.g. the target column does not
// exist. Aborts the optimization run for that entry only.
type IndexError struct {
	Column string
	Err    error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index error on column %q: %v", e.Column, e.Err)
}

func (e *IndexError) Unwrap() error { return e.Err }

// ConnectionError indicates the engine is unreachable. Surfaced
// immediately; any retry policy belongs to the caller, not the core.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }
