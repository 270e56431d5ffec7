package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/franz/trackbench/internal/catalog"
	"github.com/jedib0t/go-pretty/v6/table"
)

// renderResult writes a materialized catalog result in the chosen format
func renderResult(w io.Writer, result *catalog.Result, format string) error {
	switch format {
	case "json":
		return renderJSON(w, result)
	case "csv":
		return renderCSV(w, result)
	case "table", "":
		return renderTable(w, result)
	}
	return fmt.Errorf("unknown output format %q (want table, json or csv)", format)
}

func renderTable(w io.Writer, result *catalog.Result) error {
	if len(result.Rows) == 0 {
		fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(result.Columns))
	for i, col := range result.Columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, values := range result.Rows {
		row := make(table.Row, len(values))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		t.AppendRow(row)
	}

	t.Render()
	fmt.Fprintf(w, "(%d rows)\n", len(result.Rows))
	return nil
}

func renderJSON(w io.Writer, result *catalog.Result) error {
	out := make([]map[string]any, 0, len(result.Rows))
	for _, values := range result.Rows {
		row := make(map[string]any, len(result.Columns))
		for i, col := range result.Columns {
			row[col] = values[i]
		}
		out = append(out, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, result *catalog.Result) error {
	fmt.Fprintln(w, strings.Join(result.Columns, ","))
	for _, values := range result.Rows {
		fields := make([]string, len(values))
		for i, v := range values {
			fields[i] = escapeCSV(formatValue(v))
		}
		fmt.Fprintln(w, strings.Join(fields, ","))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
