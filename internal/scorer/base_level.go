package scorer

import (
	"sort"

	"github.com/mkrivosik/atomization-scorer/internal/geese"
)

// sweepEvent marks one boundary of an atom during the base level scan.
type sweepEvent struct {
	pos       int
	open      bool
	predicted bool
	atom      geese.Atom
}

// activeAtom tracks how many open intervals of one class cover the current
// position, remembering the most recently opened one for status rows.
type activeAtom struct {
	atom  geese.Atom
	depth int
}

// BaseLevel sweeps the predicted and true atomizations of each sequence base
// by base. Bases where both sides agree on a class count as TP for that
// class, bases only the prediction covers count as FP and bases only the
// truth covers count as FN. The returned status rows record the verdict of
// every elementary segment the sweep visited, first for the predicted side
// and then for the true side.
func BaseLevel(predicted, truth []geese.Atom) (Counts, []AtomStatus, []AtomStatus) {
	counts := NewCounts()
	var predStatus, trueStatus []AtomStatus

	for _, name := range sequenceNames(predicted, truth) {
		sweepSequence(
			atomsOf(predicted, name),
			atomsOf(truth, name),
			counts,
			&predStatus,
			&trueStatus,
		)
	}
	return counts, predStatus, trueStatus
}

// sweepSequence scans one sequence. Events fire at every atom start and one
// past every atom end, so each pair of consecutive event positions bounds a
// segment with a constant set of active classes.
func sweepSequence(predicted, truth []geese.Atom, counts Counts, predStatus, trueStatus *[]AtomStatus) {
	events := make([]sweepEvent, 0, 2*(len(predicted)+len(truth)))
	for _, a := range predicted {
		events = append(events,
			sweepEvent{pos: a.Start, open: true, predicted: true, atom: a},
			sweepEvent{pos: a.End + 1, predicted: true, atom: a},
		)
	}
	for _, a := range truth {
		events = append(events,
			sweepEvent{pos: a.Start, open: true, atom: a},
			sweepEvent{pos: a.End + 1, atom: a},
		)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].pos < events[j].pos })

	activePred := make(map[int]*activeAtom)
	activeTrue := make(map[int]*activeAtom)

	prev := 0
	started := false
	for _, e := range events {
		if started && e.pos > prev {
			scoreSegment(prev, e.pos-1, activePred, activeTrue, counts, predStatus, trueStatus)
		}

		active := activeTrue
		if e.predicted {
			active = activePred
		}
		if e.open {
			if cur, ok := active[e.atom.Class]; ok {
				cur.depth++
				cur.atom = e.atom
			} else {
				active[e.atom.Class] = &activeAtom{atom: e.atom, depth: 1}
			}
		} else if cur, ok := active[e.atom.Class]; ok {
			cur.depth--
			if cur.depth <= 0 {
				delete(active, e.atom.Class)
			}
		}

		prev = e.pos
		started = true
	}
}

// scoreSegment attributes the bases of one elementary segment to the classes
// active on either side.
func scoreSegment(start, end int, activePred, activeTrue map[int]*activeAtom, counts Counts, predStatus, trueStatus *[]AtomStatus) {
	length := end - start + 1

	for _, class := range activeClasses(activePred, activeTrue) {
		p, inPred := activePred[class]
		t, inTrue := activeTrue[class]
		switch {
		case inPred && inTrue:
			counts.TP[class] += length
			*predStatus = append(*predStatus, segmentStatus(p.atom, start, end, "TP"))
			*trueStatus = append(*trueStatus, segmentStatus(t.atom, start, end, "TP"))
		case inPred:
			counts.FP[class] += length
			*predStatus = append(*predStatus, segmentStatus(p.atom, start, end, "FP"))
		case inTrue:
			counts.FN[class] += length
			*trueStatus = append(*trueStatus, segmentStatus(t.atom, start, end, "FN"))
		}
	}
}

func activeClasses(activePred, activeTrue map[int]*activeAtom) []int {
	set := make(map[int]bool, len(activePred)+len(activeTrue))
	for class := range activePred {
		set[class] = true
	}
	for class := range activeTrue {
		set[class] = true
	}

	classes := make([]int, 0, len(set))
	for class := range set {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	return classes
}

func segmentStatus(a geese.Atom, start, end int, status string) AtomStatus {
	a.Start = start
	a.End = end
	return AtomStatus{Atom: a, Status: status}
}

func atomsOf(atoms []geese.Atom, name string) []geese.Atom {
	var out []geese.Atom
	for _, a := range atoms {
		if a.Name == name {
			out = append(out, a)
		}
	}
	return out
}
