package scorer

import (
	"math"
	"reflect"
	"testing"

	"github.com/mkrivosik/atomization-scorer/internal/geese"
)

func TestJaccard(t *testing.T) {
	type args struct {
		start1, end1 int
		start2, end2 int
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{"identical", args{0, 9, 0, 9}, 1},
		{"disjoint", args{0, 9, 20, 29}, 0},
		{"shifted by one", args{0, 9, 1, 10}, 9.0 / 11.0},
		{"contained quarter", args{0, 99, 25, 49}, 0.25},
		{"single shared base", args{0, 5, 5, 9}, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := jaccard(tt.args.start1, tt.args.end1, tt.args.start2, tt.args.end2); got != tt.want {
				t.Errorf("jaccard() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestIntervalLevel(t *testing.T) {
	predicted := []geese.Atom{
		baseAtom("sequence1", 1, 1, 0, 9),
		baseAtom("sequence1", 2, 1, 20, 30),
		baseAtom("sequence2", 3, 1, 0, 9),
	}
	truth := []geese.Atom{
		baseAtom("sequence1", 1, 1, 1, 10),
		baseAtom("sequence2", 2, 2, 0, 20),
		baseAtom("sequence2", 3, 1, 8, 20),
	}

	counts, predStatus, trueStatus := IntervalLevel(predicted, truth, 0.8)

	if want := map[int]int{1: 1}; !reflect.DeepEqual(counts.TP, want) {
		t.Errorf("TP = %v, want %v", counts.TP, want)
	}
	if want := map[int]int{1: 2}; !reflect.DeepEqual(counts.FP, want) {
		t.Errorf("FP = %v, want %v", counts.FP, want)
	}
	if want := map[int]int{1: 1, 2: 1}; !reflect.DeepEqual(counts.FN, want) {
		t.Errorf("FN = %v, want %v", counts.FN, want)
	}

	f1, perClass := Summarize(counts)
	if math.Abs(f1-1.0/3.0) > 1e-12 {
		t.Errorf("overall f1 = %f, want 1/3", f1)
	}
	if len(perClass) != 2 {
		t.Fatalf("per class rows = %d, want 2", len(perClass))
	}
	if math.Abs(perClass[0].F1-0.4) > 1e-12 {
		t.Errorf("class 1 f1 = %f, want 0.4", perClass[0].F1)
	}
	if perClass[1].F1 != 0 {
		t.Errorf("class 2 f1 = %f, want 0", perClass[1].F1)
	}

	wantPred := []AtomStatus{
		{Atom: baseAtom("sequence1", 1, 1, 0, 9), Status: "TP"},
		{Atom: baseAtom("sequence2", 3, 1, 0, 9), Status: "FP"},
		{Atom: baseAtom("sequence1", 2, 1, 20, 30), Status: "FP"},
	}
	if !reflect.DeepEqual(predStatus, wantPred) {
		t.Errorf("predicted status = %+v, want %+v", predStatus, wantPred)
	}

	wantTrue := []AtomStatus{
		{Atom: baseAtom("sequence2", 2, 2, 0, 20), Status: "FN"},
		{Atom: baseAtom("sequence1", 1, 1, 1, 10), Status: "TP"},
		{Atom: baseAtom("sequence2", 3, 1, 8, 20), Status: "FN"},
	}
	if !reflect.DeepEqual(trueStatus, wantTrue) {
		t.Errorf("true status = %+v, want %+v", trueStatus, wantTrue)
	}
}

// Tightening the overlap requirement can only lose matches.
func TestIntervalLevelOverlapRatio(t *testing.T) {
	predicted := []geese.Atom{baseAtom("sequence1", 1, 1, 0, 9)}
	truth := []geese.Atom{baseAtom("sequence1", 1, 1, 1, 10)}

	loose, _, _ := IntervalLevel(predicted, truth, 0.8)
	strict, _, _ := IntervalLevel(predicted, truth, 1.0)

	looseF1, _ := Summarize(loose)
	strictF1, _ := Summarize(strict)

	if looseF1 != 1 {
		t.Errorf("f1 at 0.8 = %f, want 1", looseF1)
	}
	if strictF1 > looseF1 {
		t.Errorf("f1 rose from %f to %f with a stricter ratio", looseF1, strictF1)
	}
	if strictF1 != 0 {
		t.Errorf("f1 at 1.0 = %f, want 0", strictF1)
	}
}

// A true interval matches at most one prediction, the leftmost one.
func TestIntervalLevelMatchesOnce(t *testing.T) {
	predicted := []geese.Atom{
		baseAtom("sequence1", 1, 1, 0, 9),
		baseAtom("sequence1", 2, 1, 0, 9),
	}
	truth := []geese.Atom{baseAtom("sequence1", 1, 1, 0, 9)}

	counts, predStatus, _ := IntervalLevel(predicted, truth, 0.8)

	if got := counts.TP[1]; got != 1 {
		t.Errorf("TP = %d, want 1", got)
	}
	if got := counts.FP[1]; got != 1 {
		t.Errorf("FP = %d, want 1", got)
	}
	if predStatus[0].Status != "TP" || predStatus[1].Status != "FP" {
		t.Errorf("status = %s, %s, want TP then FP", predStatus[0].Status, predStatus[1].Status)
	}
}
