package pipeline

import (
	"path/filepath"

	"github.com/mkrivosik/atomization-scorer/config"
	"github.com/mkrivosik/atomization-scorer/internal/fasta"
	"github.com/mkrivosik/atomization-scorer/internal/geese"
	"github.com/mkrivosik/atomization-scorer/internal/minimap"
	"github.com/mkrivosik/atomization-scorer/internal/paf"
)

// TruthResult collects the gold standard pipeline's outputs.
type TruthResult struct {
	// Representatives chosen per class
	Representatives []Representative

	// RepsPath of the exemplar FASTA
	RepsPath string

	// AlignmentsPath of the raw minimap2 PAF
	AlignmentsPath string

	// FilteredPath of the PAF surviving identity and length filtering
	FilteredPath string

	// GeesePath of the gold standard atomization
	GeesePath string

	// Filtered alignment records the gold standard was built from
	Filtered []paf.Record

	// Atoms of the gold standard, on the genome axis
	Atoms []geese.Atom

	// Warnings from PAF ingestion
	Warnings []string
}

// Truth builds the gold standard atomization of the genomes: select class
// representatives from the predicted atoms, map the genomes back onto them,
// filter the hits and convert the survivors into atoms on the genome axis.
// A non-empty existingPAF skips the minimap2 run and ingests that file
// instead.
func Truth(genomes []fasta.Record, genomesPath string, predicted []geese.Atom, outDir string, conf config.Config, existingPAF string) (TruthResult, error) {
	res := TruthResult{
		RepsPath:       filepath.Join(outDir, RepresentativesFile(conf.Mode)),
		AlignmentsPath: filepath.Join(outDir, AlignmentsFile),
		FilteredPath:   filepath.Join(outDir, FilteredFile),
		GeesePath:      filepath.Join(outDir, TruthFile),
	}

	reps, err := SelectRepresentatives(genomes, predicted, conf.Mode)
	if err != nil {
		return res, err
	}
	res.Representatives = reps
	if err := WriteRepresentatives(res.RepsPath, reps); err != nil {
		return res, err
	}
	log.Infof("selected %d class representatives in %s mode", len(reps), conf.Mode)

	if existingPAF != "" {
		res.AlignmentsPath = existingPAF
		log.Infof("reusing alignments from %s", existingPAF)
	} else {
		aligner := minimap.Aligner{
			Preset:    conf.Align.Preset,
			Secondary: conf.Align.Secondary,
			Threads:   conf.Threads,
		}
		if err := aligner.Align(res.RepsPath, genomesPath, res.AlignmentsPath); err != nil {
			return res, err
		}
	}

	records, warnings, err := paf.Read(res.AlignmentsPath)
	if err != nil {
		return res, err
	}
	res.Warnings = warnings
	for _, w := range warnings {
		log.Warning(w)
	}

	res.Filtered = paf.Filter(records, conf.Align.MinIdentity, conf.Align.MinLength)
	if err := paf.Write(res.FilteredPath, res.Filtered); err != nil {
		return res, err
	}
	log.Infof("%d of %d alignments survived filtering", len(res.Filtered), len(records))

	res.Atoms = paf.GenomeAtoms(res.Filtered)
	if err := geese.Write(res.GeesePath, res.Atoms); err != nil {
		return res, err
	}

	return res, nil
}
