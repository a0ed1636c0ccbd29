package scorer

import (
	"fmt"
	"sort"
)

// Classifications a locus can end up with.
const (
	Intact   = "intact"
	Atomized = "atomized"
	Absent   = "absent"
)

// LocusScore is one locus's entry in the assembly breakdown.
type LocusScore struct {
	Profile

	// Classification of the locus: intact, atomized or absent
	Classification string `json:"classification"`

	// Contribution of the locus to the composite score
	Contribution float64 `json:"contribution"`
}

// Score is the assembly level atomization result.
type Score struct {
	// Composite score in [0, 1], 1 meaning every locus intact on a single
	// contig and 0 meaning every locus absent
	Composite float64 `json:"score"`

	// Intact counts loci on a single trusted contig with near full coverage
	Intact int `json:"intact"`

	// Atomized counts loci split across contigs or only partly covered
	Atomized int `json:"atomized"`

	// Absent counts loci without any alignment evidence
	Absent int `json:"absent"`

	// Loci is the per locus breakdown in ascending ID order
	Loci []LocusScore `json:"loci"`
}

// Aggregate folds adjusted profiles into the assembly score. It is a pure
// function of the profile set: input order never changes the result. Every
// known locus must be profiled exactly once and every profile must belong to
// a known locus, either violation aborts the run since the scalar would be
// silently wrong.
func Aggregate(loci *LocusSet, profiles []Profile, completeness float64) (Score, error) {
	ordered := make([]Profile, len(profiles))
	copy(ordered, profiles)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Locus < ordered[j].Locus })

	var s Score
	seen := make(map[string]bool, len(ordered))
	for _, p := range ordered {
		if _, ok := loci.Get(p.Locus); !ok {
			return Score{}, fmt.Errorf("profile for unknown locus %s", p.Locus)
		}
		if seen[p.Locus] {
			return Score{}, fmt.Errorf("locus %s profiled twice", p.Locus)
		}
		seen[p.Locus] = true

		entry := LocusScore{Profile: p}
		switch {
		case p.Coverage == 0:
			entry.Classification = Absent
			s.Absent++
		case p.Index == 0 && p.Coverage >= completeness:
			entry.Classification = Intact
			s.Intact++
		default:
			entry.Classification = Atomized
			s.Atomized++
		}
		entry.Contribution = p.Coverage / (1 + p.Index)

		s.Loci = append(s.Loci, entry)
		s.Composite += entry.Contribution
	}

	if missing := loci.Len() - len(s.Loci); missing > 0 {
		return Score{}, fmt.Errorf("%d loci missing from the profile set", missing)
	}
	if len(s.Loci) > 0 {
		s.Composite /= float64(len(s.Loci))
	}

	return s, nil
}
