package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mkrivosik/atomization-scorer/config"
	"github.com/mkrivosik/atomization-scorer/internal/fasta"
	"github.com/mkrivosik/atomization-scorer/internal/geese"
	"github.com/mkrivosik/atomization-scorer/internal/mash"
	"github.com/mkrivosik/atomization-scorer/internal/paf"
	"github.com/mkrivosik/atomization-scorer/internal/report"
	"github.com/mkrivosik/atomization-scorer/internal/scorer"
)

// Options name the inputs of one scoring run.
type Options struct {
	// Assembly FASTA being scored
	Assembly string

	// Loci path: a GEESE atomization or a locus expectation TSV
	Loci string

	// OutDir receives every artifact
	OutDir string

	// PAF with precomputed alignments, skips the minimap2 run
	PAF string

	// Distances is a precomputed mash dist table, skips the mash run
	Distances string

	// Version stamped into the report
	Version string
}

// Score runs the whole pipeline on an assembly: build locus expectations,
// gather alignment and distance evidence, profile every locus, aggregate the
// atomization score and, when the loci came as an atomization, compare it
// against the gold standard. All artifacts land in opts.OutDir and the
// returned report mirrors report.json.
func Score(ctx context.Context, opts Options, conf config.Config) (report.Report, error) {
	start := time.Now()

	genomes, err := fasta.Read(opts.Assembly)
	if err != nil {
		return report.Report{}, err
	}
	log.Infof("read %d sequences from %s", len(genomes), opts.Assembly)

	var (
		warnings  []string
		loci      *scorer.LocusSet
		filtered  []paf.Record
		repsPath  string
		agreement *report.Agreement
	)

	if filepath.Ext(opts.Loci) == ".geese" {
		predicted, err := geese.Read(opts.Loci)
		if err != nil {
			return report.Report{}, err
		}

		truth, err := Truth(genomes, opts.Assembly, predicted, opts.OutDir, conf, opts.PAF)
		if err != nil {
			return report.Report{}, err
		}
		warnings = append(warnings, truth.Warnings...)
		filtered = truth.Filtered
		repsPath = truth.RepsPath

		if loci, err = lociFromReps(truth.Representatives); err != nil {
			return report.Report{}, err
		}

		comp, err := Compare(predicted, truth.Atoms, opts.OutDir, conf)
		if err != nil {
			return report.Report{}, err
		}
		coverage := scorer.CoverageScore(predicted, fasta.TotalLength(genomes))
		agreement = &report.Agreement{
			Level:     comp.Level,
			Alignment: comp.Alignment,
			Coverage:  coverage,
			Overall:   scorer.OverallScore(comp.Alignment, coverage, conf.Score.AlignmentWeight, conf.Score.CoverageWeight),
		}
		if conf.Score.PerClass {
			agreement.PerClass = comp.PerClass
		}
	} else {
		if loci, err = scorer.ReadLoci(opts.Loci); err != nil {
			return report.Report{}, err
		}
		if opts.PAF == "" {
			return report.Report{}, fmt.Errorf("scoring against a locus table needs precomputed alignments, pass --paf")
		}

		records, warns, err := paf.Read(opts.PAF)
		if err != nil {
			return report.Report{}, err
		}
		warnings = append(warnings, warns...)
		for _, w := range warns {
			log.Warning(w)
		}

		filtered = paf.Filter(records, conf.Align.MinIdentity, conf.Align.MinLength)
		if err := paf.Write(filepath.Join(opts.OutDir, FilteredFile), filtered); err != nil {
			return report.Report{}, err
		}
		log.Infof("%d of %d alignments survived filtering", len(filtered), len(records))
	}

	dists, warns, err := distanceEvidence(opts.Distances, repsPath, opts.Assembly)
	if err != nil {
		return report.Report{}, err
	}
	warnings = append(warnings, warns...)

	byLocus, warns := scorer.Partition(scorer.FromPAF(filtered), loci)
	warnings = append(warnings, warns...)
	for _, w := range warns {
		log.Warning(w)
	}

	weighting := scorer.Weighting{
		DivergenceThreshold: conf.Distance.DivergenceThreshold,
		MaxDistance:         conf.Distance.MaxDistance,
		MinWeight:           conf.Distance.MinWeight,
	}
	profiles, err := scorer.AnalyzeAll(ctx, loci, byLocus, dists, weighting, conf.Threads)
	if err != nil {
		return report.Report{}, err
	}

	score, err := scorer.Aggregate(loci, profiles, conf.Score.CompletenessThreshold)
	if err != nil {
		return report.Report{}, err
	}
	log.Infof("scored %d loci: %d intact, %d atomized, %d absent", len(score.Loci), score.Intact, score.Atomized, score.Absent)

	rep := report.Report{
		Assembly:    opts.Assembly,
		Loci:        opts.Loci,
		Version:     opts.Version,
		Execution:   time.Since(start).Seconds(),
		Atomization: score,
		Agreement:   agreement,
		Warnings:    warnings,
	}
	if _, err := report.WriteJSON(filepath.Join(opts.OutDir, ReportFile), rep); err != nil {
		return rep, err
	}
	if err := report.WriteProfiles(filepath.Join(opts.OutDir, ProfilesFile), score.Loci); err != nil {
		return rep, err
	}

	return rep, nil
}

// lociFromReps turns the class exemplars into locus expectations: one locus
// per class, expected length the exemplar's own span.
func lociFromReps(reps []Representative) (*scorer.LocusSet, error) {
	loci := make([]scorer.Locus, 0, len(reps))
	for _, r := range reps {
		loci = append(loci, scorer.Locus{ID: r.Header(), Length: r.Atom.Length(), Copies: 1})
	}
	return scorer.NewLocusSet(loci)
}

// distanceEvidence gathers the distance table: a precomputed file when given,
// otherwise a mash run of the representatives against the assembly. A failed
// mash run degrades to full confidence scoring with a warning, a broken
// explicit table is fatal.
func distanceEvidence(path, repsPath, assemblyPath string) (*scorer.DistanceSet, []string, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open the distance table: %w", err)
		}
		defer f.Close()

		rows, err := mash.Parse(f)
		if err != nil {
			return nil, nil, fmt.Errorf("distance table %s: %w", path, err)
		}
		return scorer.NewDistanceSet(scorer.FromMash(rows)), nil, nil
	}

	if repsPath == "" {
		log.Info("no distance evidence, every contig scored at full confidence")
		return nil, nil, nil
	}

	rows, err := mash.Dist(repsPath, assemblyPath)
	if err != nil {
		w := fmt.Sprintf("mash distances unavailable, scoring at full confidence: %v", err)
		log.Warning(w)
		return nil, []string{w}, nil
	}
	return scorer.NewDistanceSet(scorer.FromMash(rows)), nil, nil
}
