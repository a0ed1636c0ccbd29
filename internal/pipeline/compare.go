package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/mkrivosik/atomization-scorer/config"
	"github.com/mkrivosik/atomization-scorer/internal/geese"
	"github.com/mkrivosik/atomization-scorer/internal/report"
	"github.com/mkrivosik/atomization-scorer/internal/scorer"
)

// Agreement scanning levels.
const (
	// LevelBase scores every base of every sequence
	LevelBase = "base"

	// LevelInterval scores whole atoms matched by overlap ratio
	LevelInterval = "interval"
)

// Comparison is the agreement between a predicted and a gold standard
// atomization at one scanning level.
type Comparison struct {
	// Level the atomizations were scanned at
	Level string

	// Counts of true positives, false positives and false negatives per class
	Counts scorer.Counts

	// Alignment is the overall F1 across classes
	Alignment float64

	// PerClass metric rows, classes ascending
	PerClass []scorer.ClassMetrics
}

// Compare scans a predicted atomization against the gold standard and writes
// the metric and status tables into outDir. Artifact names carry the level,
// base_metrics_overall.tsv and friends.
func Compare(predicted, truth []geese.Atom, outDir string, conf config.Config) (Comparison, error) {
	var (
		counts     scorer.Counts
		predStatus []scorer.AtomStatus
		trueStatus []scorer.AtomStatus
	)
	switch conf.Score.Level {
	case LevelBase:
		counts, predStatus, trueStatus = scorer.BaseLevel(predicted, truth)
	case LevelInterval:
		counts, predStatus, trueStatus = scorer.IntervalLevel(predicted, truth, conf.Score.MinOverlapRatio)
	default:
		return Comparison{}, fmt.Errorf("unknown scanning level %q, use %s or %s", conf.Score.Level, LevelBase, LevelInterval)
	}

	comp := Comparison{Level: conf.Score.Level, Counts: counts}
	comp.Alignment, comp.PerClass = scorer.Summarize(counts)

	prefix := filepath.Join(outDir, conf.Score.Level)
	if err := report.WriteMetricsOverall(prefix+"_metrics_overall.tsv", counts); err != nil {
		return comp, err
	}
	if conf.Score.PerClass {
		if err := report.WriteMetricsPerClass(prefix+"_metrics_per_class.tsv", counts); err != nil {
			return comp, err
		}
	}
	if err := report.WriteStatus(prefix+"_predicted_status.tsv", predStatus); err != nil {
		return comp, err
	}
	if err := report.WriteStatus(prefix+"_true_status.tsv", trueStatus); err != nil {
		return comp, err
	}

	log.Infof("%s level agreement F1 %.4f", conf.Score.Level, comp.Alignment)
	return comp, nil
}
