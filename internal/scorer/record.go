package scorer

import (
	"fmt"

	"github.com/mkrivosik/atomization-scorer/internal/mash"
	"github.com/mkrivosik/atomization-scorer/internal/paf"
)

// Alignment is one aligner hit placing part of a locus on an assembly
// contig. Coordinates are 0-based with an exclusive end. Records are
// read-only evidence once ingested.
type Alignment struct {
	// Locus the hit belongs to
	Locus string

	// Contig of the assembly the locus piece landed on
	Contig string

	// LocusStart of the hit on the locus axis
	LocusStart int

	// LocusEnd of the hit on the locus axis (exclusive)
	LocusEnd int

	// ContigStart of the hit on the contig
	ContigStart int

	// ContigEnd of the hit on the contig (exclusive)
	ContigEnd int

	// Strand of the hit: "+" or "-"
	Strand string

	// Identity of the alignment in [0, 1]
	Identity float64

	// Blocks the aligner split the hit into
	Blocks int
}

// FromPAF converts PAF records into alignment evidence. The target side of a
// record carries the locus, the query side the assembly contig.
func FromPAF(records []paf.Record) []Alignment {
	alignments := make([]Alignment, 0, len(records))
	for _, r := range records {
		alignments = append(alignments, Alignment{
			Locus:       r.Target,
			Contig:      r.Query,
			LocusStart:  r.TargetStart,
			LocusEnd:    r.TargetEnd,
			ContigStart: r.QueryStart,
			ContigEnd:   r.QueryEnd,
			Strand:      r.Strand,
			Identity:    r.Identity(),
			Blocks:      r.Blocks(),
		})
	}
	return alignments
}

// Partition groups alignments by their locus, keeping only loci in the known
// set. Records naming unknown loci come back as warnings, never dropped
// silently.
func Partition(alignments []Alignment, loci *LocusSet) (map[string][]Alignment, []string) {
	byLocus := make(map[string][]Alignment)
	var warnings []string
	for _, a := range alignments {
		if _, ok := loci.Get(a.Locus); !ok {
			warnings = append(warnings, fmt.Sprintf("alignment of %s to %s names an unknown locus", a.Locus, a.Contig))
			continue
		}
		byLocus[a.Locus] = append(byLocus[a.Locus], a)
	}
	return byLocus, warnings
}

// Distance is one pairwise divergence estimate between two sequences.
type Distance struct {
	// A is the first sequence of the pair
	A string

	// B is the second sequence of the pair
	B string

	// Value of the distance estimate, 0 meaning identical
	Value float64

	// Shared fraction of matching hashes backing the estimate
	Shared float64
}

// FromMash converts mash rows into distance records.
func FromMash(rows []mash.Distance) []Distance {
	records := make([]Distance, 0, len(rows))
	for _, r := range rows {
		records = append(records, Distance{
			A:      r.Ref,
			B:      r.Query,
			Value:  r.Distance,
			Shared: r.Shared,
		})
	}
	return records
}

// DistanceSet indexes distance records for unordered pair lookup.
type DistanceSet struct {
	pairs map[[2]string]Distance
}

// NewDistanceSet indexes records by their unordered sequence pair, the first
// record of a pair winning.
func NewDistanceSet(records []Distance) *DistanceSet {
	s := &DistanceSet{pairs: make(map[[2]string]Distance, len(records))}
	for _, d := range records {
		k := pairKey(d.A, d.B)
		if _, ok := s.pairs[k]; !ok {
			s.pairs[k] = d
		}
	}
	return s
}

// pairKey orders two identifiers so lookups work in either direction.
func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

// Lookup returns the distance between a and b regardless of direction. A nil
// set never has one, which is how a missing distance stream degrades to full
// confidence.
func (s *DistanceSet) Lookup(a, b string) (Distance, bool) {
	if s == nil {
		return Distance{}, false
	}
	d, ok := s.pairs[pairKey(a, b)]
	return d, ok
}

// Len returns the number of indexed pairs.
func (s *DistanceSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pairs)
}
