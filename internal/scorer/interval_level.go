package scorer

import (
	"sort"

	"github.com/mkrivosik/atomization-scorer/internal/geese"
)

// IntervalLevel matches whole predicted intervals against true intervals of
// the same class on the same sequence. A prediction becomes TP when it finds
// an unused true interval whose inclusive overlap to union ratio reaches
// minOverlap; each true interval matches at most once. Unmatched predictions
// count as FP, unmatched true intervals as FN. Status rows come back in
// (start, end) order, predicted side first.
func IntervalLevel(predicted, truth []geese.Atom, minOverlap float64) (Counts, []AtomStatus, []AtomStatus) {
	counts := NewCounts()

	predSorted := sortedByPosition(predicted)
	trueSorted := sortedByPosition(truth)
	predTP := make([]bool, len(predSorted))
	trueTP := make([]bool, len(trueSorted))

	predByName := indicesByName(predSorted)
	trueByName := indicesByName(trueSorted)

	for _, name := range sequenceNames(predSorted, trueSorted) {
		trueIdx := trueByName[name]

		for _, pi := range predByName[name] {
			p := predSorted[pi]
			matched := false
			for _, ti := range trueIdx {
				t := trueSorted[ti]
				if t.Start > p.End {
					break
				}
				if trueTP[ti] || t.Class != p.Class || t.End < p.Start {
					continue
				}
				if jaccard(p.Start, p.End, t.Start, t.End) >= minOverlap {
					counts.TP[p.Class]++
					predTP[pi] = true
					trueTP[ti] = true
					matched = true
					break
				}
			}
			if !matched {
				counts.FP[p.Class]++
			}
		}

		for _, ti := range trueIdx {
			if !trueTP[ti] {
				counts.FN[trueSorted[ti].Class]++
			}
		}
	}

	return counts, statusRows(predSorted, predTP, "FP"), statusRows(trueSorted, trueTP, "FN")
}

// jaccard is the inclusive overlap of two intervals relative to their union.
func jaccard(start1, end1, start2, end2 int) float64 {
	overlapStart := max(start1, start2)
	overlapEnd := min(end1, end2)
	if overlapEnd < overlapStart {
		return 0
	}
	overlap := overlapEnd - overlapStart + 1
	union := max(end1, end2) - min(start1, start2) + 1
	return float64(overlap) / float64(union)
}

func sortedByPosition(atoms []geese.Atom) []geese.Atom {
	out := make([]geese.Atom, len(atoms))
	copy(out, atoms)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].End < out[j].End
	})
	return out
}

func indicesByName(atoms []geese.Atom) map[string][]int {
	byName := make(map[string][]int)
	for i, a := range atoms {
		byName[a.Name] = append(byName[a.Name], i)
	}
	return byName
}

func statusRows(atoms []geese.Atom, tp []bool, miss string) []AtomStatus {
	rows := make([]AtomStatus, 0, len(atoms))
	for i, a := range atoms {
		status := miss
		if tp[i] {
			status = "TP"
		}
		rows = append(rows, AtomStatus{Atom: a, Status: status})
	}
	return rows
}
