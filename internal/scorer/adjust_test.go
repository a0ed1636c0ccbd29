package scorer

import (
	"math"
	"reflect"
	"testing"
)

func TestWeight(t *testing.T) {
	type args struct {
		w        Weighting
		distance float64
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			"identical sequences keep full confidence",
			args{Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}, 0},
			1,
		},
		{
			"at the divergence threshold",
			args{Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}, 0.05},
			1,
		},
		{
			"proportional falloff",
			args{Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}, 0.2},
			0.8,
		},
		{
			"halfway",
			args{Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}, 0.5},
			0.5,
		},
		{
			"floored at the minimum weight",
			args{Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}, 0.9},
			0.1,
		},
		{
			"beyond the maximum distance",
			args{Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}, 2},
			0.1,
		},
		{
			"wider distance scale",
			args{Weighting{DivergenceThreshold: 0.05, MaxDistance: 2, MinWeight: 0.1}, 1},
			0.5,
		},
		{
			"zero max distance falls back to one",
			args{Weighting{DivergenceThreshold: 0.05, MinWeight: 0.1}, 0.2},
			0.8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.args.w.Weight(tt.args.distance); got != tt.want {
				t.Errorf("Weight(%f) = %f, want %f", tt.args.distance, got, tt.want)
			}
		})
	}
}

// Weight must never grow when the distance does.
func TestWeightMonotonic(t *testing.T) {
	w := Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}

	prev := math.Inf(1)
	for d := 0.0; d <= 1.5; d += 0.01 {
		got := w.Weight(d)
		if got > prev {
			t.Fatalf("Weight(%f) = %f rose above %f", d, got, prev)
		}
		prev = got
	}
}

func TestAdjust(t *testing.T) {
	w := Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}
	p := Profile{
		Locus:    "geneA",
		Expected: 1000,
		Contigs:  2,
		Coverage: 1,
		Index:    1,
		Weights: []ContigWeight{
			{Contig: "contig1", Covered: 1000, Weight: 1, Distance: -1},
			{Contig: "contig2", Covered: 200, Weight: 1, Distance: -1},
		},
	}
	distances := NewDistanceSet([]Distance{{A: "geneA", B: "contig2", Value: 0.9}})

	got := w.Adjust(p, distances)

	if got.Weights[0].Weight != 1 || got.Weights[0].Distance != -1 {
		t.Errorf("contig1 = %+v, want untouched full confidence", got.Weights[0])
	}
	if got.Weights[1].Weight != 0.1 || got.Weights[1].Distance != 0.9 {
		t.Errorf("contig2 = %+v, want weight 0.1 from distance 0.9", got.Weights[1])
	}
	if math.Abs(got.Index-0.1) > 1e-9 {
		t.Errorf("Index = %f, want 0.1", got.Index)
	}

	// the input profile stays untouched
	if p.Index != 1 || p.Weights[1].Weight != 1 {
		t.Errorf("Adjust() mutated its input: %+v", p)
	}
}

func TestAdjustWithoutDistances(t *testing.T) {
	w := Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}
	p := Profile{
		Locus:   "geneA",
		Contigs: 2,
		Index:   1,
		Weights: []ContigWeight{
			{Contig: "contig1", Covered: 500, Weight: 1, Distance: -1},
			{Contig: "contig2", Covered: 500, Weight: 1, Distance: -1},
		},
	}

	got := w.Adjust(p, nil)

	if got.Index != 1 {
		t.Errorf("Index = %f, want the raw index 1 without distances", got.Index)
	}
	if !reflect.DeepEqual(got.Weights, p.Weights) {
		t.Errorf("Weights = %+v, want unchanged %+v", got.Weights, p.Weights)
	}
}

// Pushing one contig further away can only lower the index, never raise it.
func TestAdjustDistanceMonotonic(t *testing.T) {
	w := Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}
	p := Profile{
		Locus:   "geneA",
		Contigs: 2,
		Index:   1,
		Weights: []ContigWeight{
			{Contig: "contig1", Covered: 1000, Weight: 1, Distance: -1},
			{Contig: "contig2", Covered: 200, Weight: 1, Distance: -1},
		},
	}

	prev := math.Inf(1)
	for d := 0.0; d <= 1.5; d += 0.05 {
		distances := NewDistanceSet([]Distance{{A: "geneA", B: "contig2", Value: d}})
		got := w.Adjust(p, distances)
		if got.Index > prev {
			t.Fatalf("index rose to %f at distance %f", got.Index, d)
		}
		prev = got.Index
	}
	if math.Abs(prev-0.1) > 1e-9 {
		t.Errorf("index at maximal distance = %f, want the 0.1 floor", prev)
	}
}

func TestAdjustSingleDistantContig(t *testing.T) {
	w := Weighting{DivergenceThreshold: 0.05, MaxDistance: 1, MinWeight: 0.1}
	p := Profile{
		Locus:   "geneA",
		Contigs: 1,
		Weights: []ContigWeight{{Contig: "contig1", Covered: 100, Weight: 1, Distance: -1}},
	}
	distances := NewDistanceSet([]Distance{{A: "contig1", B: "geneA", Value: 0.95}})

	got := w.Adjust(p, distances)

	// a summed weight below one never turns into a negative index
	if got.Index != 0 {
		t.Errorf("Index = %f, want 0 for a single down weighted contig", got.Index)
	}
	if got.Weights[0].Weight != 0.1 {
		t.Errorf("Weight = %f, want the 0.1 floor", got.Weights[0].Weight)
	}
}
