package scorer

import (
	"sort"

	"github.com/mkrivosik/atomization-scorer/internal/geese"
)

// Counts accumulates true positives, false positives and false negatives
// per atomization class, in bases or whole intervals depending on the level.
type Counts struct {
	TP map[int]int
	FP map[int]int
	FN map[int]int
}

// NewCounts returns an empty counter set.
func NewCounts() Counts {
	return Counts{TP: make(map[int]int), FP: make(map[int]int), FN: make(map[int]int)}
}

// Classes returns every class any counter saw, in ascending order.
func (c Counts) Classes() []int {
	set := make(map[int]bool)
	for cl := range c.TP {
		set[cl] = true
	}
	for cl := range c.FP {
		set[cl] = true
	}
	for cl := range c.FN {
		set[cl] = true
	}

	classes := make([]int, 0, len(set))
	for cl := range set {
		classes = append(classes, cl)
	}
	sort.Ints(classes)
	return classes
}

// Totals sums the counters across classes.
func (c Counts) Totals() (tp, fp, fn int) {
	for _, v := range c.TP {
		tp += v
	}
	for _, v := range c.FP {
		fp += v
	}
	for _, v := range c.FN {
		fn += v
	}
	return
}

// PrecisionRecallF1 derives the three rates from raw counts, zero whenever a
// denominator empties out.
func PrecisionRecallF1(tp, fp, fn int) (precision, recall, f1 float64) {
	if tp+fp > 0 {
		precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		recall = float64(tp) / float64(tp+fn)
	}
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return
}

// ClassMetrics is the agreement of a single atomization class.
type ClassMetrics struct {
	Class     int     `json:"class"`
	TP        int     `json:"tp"`
	FP        int     `json:"fp"`
	FN        int     `json:"fn"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Summarize turns counts into the overall F1 plus one row per class.
func Summarize(c Counts) (float64, []ClassMetrics) {
	tp, fp, fn := c.Totals()
	_, _, f1 := PrecisionRecallF1(tp, fp, fn)

	var rows []ClassMetrics
	for _, cl := range c.Classes() {
		p, r, cf1 := PrecisionRecallF1(c.TP[cl], c.FP[cl], c.FN[cl])
		rows = append(rows, ClassMetrics{
			Class:     cl,
			TP:        c.TP[cl],
			FP:        c.FP[cl],
			FN:        c.FN[cl],
			Precision: p,
			Recall:    r,
			F1:        cf1,
		})
	}
	return f1, rows
}

// AtomStatus is one row of an agreement status table: an interval together
// with the verdict it earned.
type AtomStatus struct {
	geese.Atom

	// Status of the interval: TP, FP or FN
	Status string
}

// sequenceNames collects the union of sequence names in both atomization
// sets, sorted so scans visit sequences deterministically.
func sequenceNames(a, b []geese.Atom) []string {
	set := make(map[string]bool)
	for _, x := range a {
		set[x.Name] = true
	}
	for _, x := range b {
		set[x.Name] = true
	}

	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
