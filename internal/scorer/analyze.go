package scorer

import (
	"fmt"
	"sort"
)

// span is a half open interval on a locus's coordinate axis.
type span struct {
	start int
	end   int
}

// ContigWeight is one contig's contribution to a locus profile.
type ContigWeight struct {
	// Contig identifier
	Contig string `json:"contig"`

	// Covered bases of the locus this contig accounts for on its own
	Covered int `json:"covered"`

	// Weight is the confidence in this contig's evidence, 1 meaning full
	Weight float64 `json:"weight"`

	// Distance estimate behind the weight, -1 when none exists
	Distance float64 `json:"distance"`
}

// Profile is the fragmentation profile of a single locus. Profiles are
// computed fresh each run and replaced, never patched.
type Profile struct {
	// Locus the profile describes
	Locus string `json:"locus"`

	// Expected length of the locus in bases
	Expected int `json:"expected"`

	// Contigs is the number of distinct contigs with coverage
	Contigs int `json:"contigs"`

	// Blocks is the number of merged alignment blocks across all contigs
	Blocks int `json:"blocks"`

	// Covered is the union covered length on the locus axis
	Covered int `json:"covered"`

	// Coverage is Covered over Expected, clamped to [0, 1] for scoring
	Coverage float64 `json:"coverage"`

	// RawCoverage keeps the unclamped ratio for diagnostics
	RawCoverage float64 `json:"rawCoverage"`

	// LargestSpan is the longest contiguous covered stretch
	LargestSpan int `json:"largestSpan"`

	// Gaps is the number of uncovered stretches inside the expected span
	Gaps int `json:"gaps"`

	// GapLength is the summed length of those gaps
	GapLength int `json:"gapLength"`

	// Index is the confidence weighted count of contigs beyond the first
	Index float64 `json:"index"`

	// Weights lists every contributing contig with its confidence
	Weights []ContigWeight `json:"weights,omitempty"`
}

// Analyze reduces a locus's alignment records to its fragmentation profile.
// Records must already belong to the locus and carry positive length
// intervals. Contigs all start at full confidence, Weighting.Adjust reweighs
// them with distance evidence afterwards.
func Analyze(locus Locus, records []Alignment) (Profile, error) {
	if locus.Length <= 0 {
		return Profile{}, fmt.Errorf("locus %s: expected length %d must be positive", locus.ID, locus.Length)
	}

	p := Profile{Locus: locus.ID, Expected: locus.Length}

	// opposing strands on one contig stay distinct evidence, so a tandem
	// duplication is not mistaken for contiguous coverage
	type groupKey struct {
		contig string
		strand string
	}
	groups := make(map[groupKey][]span)
	for _, a := range records {
		if a.Locus != locus.ID {
			return Profile{}, fmt.Errorf("alignment of %s handed to locus %s", a.Locus, locus.ID)
		}
		if a.LocusStart < 0 || a.LocusEnd <= a.LocusStart {
			return Profile{}, fmt.Errorf("locus %s: degenerate alignment interval [%d, %d)", locus.ID, a.LocusStart, a.LocusEnd)
		}

		k := groupKey{a.Contig, a.Strand}
		groups[k] = append(groups[k], span{a.LocusStart, a.LocusEnd})
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].contig != keys[j].contig {
			return keys[i].contig < keys[j].contig
		}
		return keys[i].strand < keys[j].strand
	})

	var all []span
	perContig := make(map[string][]span)
	for _, k := range keys {
		merged := mergeSpans(groups[k])
		p.Blocks += len(merged)
		perContig[k.contig] = append(perContig[k.contig], merged...)
		all = append(all, merged...)
	}

	contigs := make([]string, 0, len(perContig))
	for c := range perContig {
		contigs = append(contigs, c)
	}
	sort.Strings(contigs)
	p.Contigs = len(contigs)

	for _, c := range contigs {
		covered := 0
		for _, s := range mergeSpans(perContig[c]) {
			covered += s.end - s.start
		}
		p.Weights = append(p.Weights, ContigWeight{Contig: c, Covered: covered, Weight: 1, Distance: -1})
	}

	union := mergeSpans(all)
	for _, s := range union {
		p.Covered += s.end - s.start
		if l := s.end - s.start; l > p.LargestSpan {
			p.LargestSpan = l
		}
	}
	p.RawCoverage = float64(p.Covered) / float64(p.Expected)
	p.Coverage = clamp01(p.RawCoverage)
	p.Gaps, p.GapLength = gaps(union, locus.Length)

	if p.Contigs > 0 {
		p.Index = float64(p.Contigs - 1)
	}

	return p, nil
}

// mergeSpans folds overlapping or adjacent spans into disjoint covered
// intervals, taking them in midpoint order with start as the tie break.
func mergeSpans(spans []span) []span {
	if len(spans) == 0 {
		return nil
	}

	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool {
		mi, mj := sorted[i].start+sorted[i].end, sorted[j].start+sorted[j].end
		if mi != mj {
			return mi < mj
		}
		return sorted[i].start < sorted[j].start
	})

	merged := []span{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.start > last.end {
			merged = append(merged, s)
			continue
		}

		if s.end > last.end {
			last.end = s.end
		}
		if s.start < last.start {
			last.start = s.start
		}

		// a span widened to the left can reach back into its predecessors
		for len(merged) > 1 && merged[len(merged)-1].start <= merged[len(merged)-2].end {
			prev, cur := merged[len(merged)-2], merged[len(merged)-1]
			if cur.end > prev.end {
				prev.end = cur.end
			}
			if cur.start < prev.start {
				prev.start = cur.start
			}
			merged = merged[:len(merged)-1]
			merged[len(merged)-1] = prev
		}
	}

	return merged
}

// gaps counts the uncovered stretches that spans leave inside [0, length).
// The spans must be disjoint and sorted, as mergeSpans returns them.
func gaps(union []span, length int) (count, total int) {
	pos := 0
	for _, s := range union {
		start, end := s.start, s.end
		if end <= 0 || start >= length {
			continue
		}
		if start < 0 {
			start = 0
		}
		if end > length {
			end = length
		}

		if start > pos {
			count++
			total += start - pos
		}
		if end > pos {
			pos = end
		}
	}
	if pos < length {
		count++
		total += length - pos
	}
	return count, total
}

// clamp01 bounds v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
