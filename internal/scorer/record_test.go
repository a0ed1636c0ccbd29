package scorer

import (
	"reflect"
	"testing"

	"github.com/mkrivosik/atomization-scorer/internal/mash"
	"github.com/mkrivosik/atomization-scorer/internal/paf"
)

func TestFromPAF(t *testing.T) {
	records := []paf.Record{
		{
			Query:       "contig1",
			QueryLen:    5000,
			QueryStart:  100,
			QueryEnd:    1100,
			Strand:      "+",
			Target:      "genomeA|class_7",
			TargetLen:   1000,
			TargetStart: 0,
			TargetEnd:   1000,
			Matches:     990,
			BlockLen:    1000,
			MapQ:        60,
			Divergence:  0.01,
			Cigar:       "500M10D490M",
		},
	}

	got := FromPAF(records)

	want := []Alignment{
		{
			Locus:       "genomeA|class_7",
			Contig:      "contig1",
			LocusStart:  0,
			LocusEnd:    1000,
			ContigStart: 100,
			ContigEnd:   1100,
			Strand:      "+",
			Identity:    0.99,
			Blocks:      2,
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromPAF() = %+v, want %+v", got, want)
	}
}

func TestPartition(t *testing.T) {
	loci := testLoci(t, Locus{ID: "geneA", Length: 1000})
	alignments := []Alignment{
		{Locus: "geneA", Contig: "contig1", LocusStart: 0, LocusEnd: 1000, Strand: "+"},
		{Locus: "ghost", Contig: "contig2", LocusStart: 0, LocusEnd: 100, Strand: "+"},
		{Locus: "geneA", Contig: "contig2", LocusStart: 400, LocusEnd: 600, Strand: "+"},
	}

	byLocus, warnings := Partition(alignments, loci)

	if len(byLocus["geneA"]) != 2 {
		t.Errorf("geneA records = %d, want 2", len(byLocus["geneA"]))
	}
	if _, ok := byLocus["ghost"]; ok {
		t.Error("Partition() kept an unknown locus")
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want one", warnings)
	}
}

func TestFromMash(t *testing.T) {
	rows := []mash.Distance{
		{Ref: "genomeA|class_7", Query: "contig2", Distance: 0.9, PValue: 0, Shared: 0.05},
	}

	got := FromMash(rows)

	want := []Distance{{A: "genomeA|class_7", B: "contig2", Value: 0.9, Shared: 0.05}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromMash() = %+v, want %+v", got, want)
	}
}

func TestDistanceSetLookup(t *testing.T) {
	set := NewDistanceSet([]Distance{
		{A: "geneA", B: "contig2", Value: 0.9},
		{A: "contig2", B: "geneA", Value: 0.5}, // same pair, first record wins
		{A: "geneB", B: "contig1", Value: 0.2},
	})

	if set.Len() != 2 {
		t.Errorf("Len() = %d, want 2", set.Len())
	}

	d, ok := set.Lookup("geneA", "contig2")
	if !ok || d.Value != 0.9 {
		t.Errorf("Lookup(geneA, contig2) = (%+v, %t), want value 0.9", d, ok)
	}
	d, ok = set.Lookup("contig2", "geneA")
	if !ok || d.Value != 0.9 {
		t.Errorf("Lookup(contig2, geneA) = (%+v, %t), want the same pair reversed", d, ok)
	}
	if _, ok := set.Lookup("geneA", "contig1"); ok {
		t.Error("Lookup() found a pair that was never recorded")
	}
}

func TestDistanceSetNil(t *testing.T) {
	var set *DistanceSet

	if set.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for a nil set", set.Len())
	}
	if _, ok := set.Lookup("a", "b"); ok {
		t.Error("Lookup() on a nil set found a distance")
	}
}
