package main

import (
	"strings"
	"testing"

	"github.com/franz/trackbench/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *catalog.Result {
	return &catalog.Result{
		Columns: []string{"artist", "views"},
		Rows: [][]any{
			{"A", 300.0},
			{nil, 100.0},
		},
	}
}

func TestRenderTable(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, renderResult(&buf, sampleResult(), "table"))

	out := buf.String()
	assert.Contains(t, out, "ARTIST")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderTableEmpty(t *testing.T) {
	var buf strings.Builder
	empty := &catalog.Result{Columns: []string{"artist"}}
	require.NoError(t, renderResult(&buf, empty, "table"))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, renderResult(&buf, sampleResult(), "json"))

	out := buf.String()
	assert.Contains(t, out, `"artist": "A"`)
	assert.Contains(t, out, `"artist": null`)
}

func TestRenderCSV(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, renderResult(&buf, sampleResult(), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "artist,views", lines[0])
	assert.Equal(t, "A,300", lines[1])
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf strings.Builder
	err := renderResult(&buf, sampleResult(), "xml")
	assert.Error(t, err)
}

func TestEscapeCSV(t *testing.T) {
	assert.Equal(t, "plain", escapeCSV("plain"))
	assert.Equal(t, `"a,b"`, escapeCSV("a,b"))
	assert.Equal(t, `"say ""hi"""`, escapeCSV(`say "hi"`))
}
