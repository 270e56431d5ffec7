// Package report summarizes batch catalog runs.
package report

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/franz/trackbench/internal/util"
)

// EntryFailure records one catalog entry that failed during a batch run
type EntryFailure struct {
	Entry string
	Err   error
}

// RunSummary accumulates the outcome of running catalog entries in a
// batch. A failing entry never aborts the batch; it is recorded here and
// the remaining entries still execute.
type RunSummary struct {
	Started   time.Time
	Succeeded int
	TotalRows int64
	Failures  []EntryFailure
}

// NewRunSummary starts an empty summary
func NewRunSummary() *RunSummary {
	return &RunSummary{Started: time.Now()}
}

// AddSuccess records a completed entry and its row count
func (s *RunSummary) AddSuccess(rows int) {
	s.Succeeded++
	s.TotalRows += int64(rows)
}

// AddFailure records a failed entry
func (s *RunSummary) AddFailure(entry string, err error) {
	s.Failures = append(s.Failures, EntryFailure{Entry: entry, Err: err})
}

// Entries returns how many entries the batch attempted
func (s *RunSummary) Entries() int {
	return s.Succeeded + len(s.Failures)
}

// Failed reports whether any entry failed
func (s *RunSummary) Failed() bool {
	return len(s.Failures) > 0
}

// Print logs the summary
func (s *RunSummary) Print() {
	util.InfoLog("")
	util.SuccessLog("=== Run Summary ===")
	util.InfoLog("Entries run: %d", s.Entries())
	util.InfoLog("Succeeded:   %d", s.Succeeded)
	util.InfoLog("Result rows: %s", humanize.Comma(s.TotalRows))
	util.InfoLog("Total time:  %v", time.Since(s.Started).Round(time.Millisecond))
	if s.Failed() {
		util.WarnLog("Failed:      %d", len(s.Failures))
		for _, f := range s.Failures {
			util.ErrorLog("  %s: %v", f.Entry, f.Err)
		}
	}
}
