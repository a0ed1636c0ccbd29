// Package pipeline chains the external tools and the scorer into whole runs:
// representative selection, gold standard construction and full assembly
// scoring, with every artifact written into one output directory.
package pipeline

import (
	"os"

	logging "github.com/op/go-logging"
)

var log = logging.MustGetLogger("pipeline")

// Backend is the default stderr logger.
var Backend = logging.NewLogBackend(os.Stderr, "", 0)

var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05} %{shortfunc} | %{level:.6s} %{color:reset} %{message}`,
)

// BackendFormatter tags Backend with the run's log format, ready for
// logging.SetBackend.
var BackendFormatter = logging.NewBackendFormatter(Backend, format)

// Artifact names inside the output directory.
const (
	AlignmentsFile = "minimap2_alignments.paf"
	FilteredFile   = "minimap2_alignment_filtered.paf"
	TruthFile      = "true_atomization.geese"
	ReportFile     = "report.json"
	ProfilesFile   = "atomization_profiles.tsv"
)

// RepresentativesFile names the exemplar FASTA for a selection mode.
func RepresentativesFile(mode string) string {
	return mode + "_representatives.fa"
}
