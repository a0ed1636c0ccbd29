// Package report writes the run artifacts: the JSON report, the TSV tables
// and the terminal summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mkrivosik/atomization-scorer/internal/scorer"
)

// Agreement is the gold standard comparison block of a report.
type Agreement struct {
	// Level the alignment score was computed at: base or interval
	Level string `json:"level"`

	// Alignment F1 of the predicted atomization against the gold standard
	Alignment float64 `json:"alignment"`

	// Coverage fraction of the genome the predicted atoms span
	Coverage float64 `json:"coverage"`

	// Overall score blending alignment and coverage
	Overall float64 `json:"overall"`

	// PerClass agreement rows, present when requested
	PerClass []scorer.ClassMetrics `json:"perClass,omitempty"`
}

// Report is the full result of one scoring run.
type Report struct {
	// Assembly FASTA that was scored
	Assembly string `json:"assembly"`

	// Loci file the expectations came from
	Loci string `json:"loci"`

	// Version of the tool that produced the report
	Version string `json:"version,omitempty"`

	// Time, ex: "2026/08/24 20:41:00"
	Time string `json:"time"`

	// Execution is the number of seconds the run took
	Execution float64 `json:"execution"`

	// Atomization result with the per locus breakdown
	Atomization scorer.Score `json:"atomization"`

	// Agreement against the truth pipeline, nil when it was skipped
	Agreement *Agreement `json:"agreement,omitempty"`

	// Warnings collected along the run
	Warnings []string `json:"warnings,omitempty"`
}

// Timestamp returns the current time the way reports record it.
func Timestamp() string {
	t := time.Now()
	return fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)
}

// WriteJSON writes the report to path and returns the serialized bytes.
func WriteJSON(path string, r Report) ([]byte, error) {
	if r.Time == "" {
		r.Time = Timestamp()
	}

	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report: %v", err)
	}

	if err = os.WriteFile(path, out, 0644); err != nil {
		return out, fmt.Errorf("failed to write the report: %v", err)
	}

	return out, nil
}
