package scorer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNewLocusSet(t *testing.T) {
	type args struct {
		loci []Locus
	}
	tests := []struct {
		name    string
		args    args
		wantIDs []string
		wantErr bool
	}{
		{
			"sorted ids",
			args{[]Locus{
				{ID: "geneB", Length: 500},
				{ID: "geneA", Length: 1000},
			}},
			[]string{"geneA", "geneB"},
			false,
		},
		{
			"empty set",
			args{nil},
			nil,
			false,
		},
		{
			"duplicate id",
			args{[]Locus{
				{ID: "geneA", Length: 1000},
				{ID: "geneA", Length: 500},
			}},
			nil,
			true,
		},
		{
			"empty id",
			args{[]Locus{{ID: "", Length: 100}}},
			nil,
			true,
		},
		{
			"zero length",
			args{[]Locus{{ID: "geneA", Length: 0}}},
			nil,
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewLocusSet(tt.args.loci)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLocusSet() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if !reflect.DeepEqual(got.IDs(), tt.wantIDs) {
				t.Errorf("IDs() = %v, want %v", got.IDs(), tt.wantIDs)
			}
		})
	}
}

func TestNewLocusSetDefaultsCopies(t *testing.T) {
	set, err := NewLocusSet([]Locus{{ID: "geneA", Length: 100, Copies: 0}})
	if err != nil {
		t.Fatal(err)
	}

	l, ok := set.Get("geneA")
	if !ok {
		t.Fatal("Get() did not find geneA")
	}
	if l.Copies != 1 {
		t.Errorf("Copies = %d, want the default 1", l.Copies)
	}
}

func TestReadLoci(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loci.tsv")
	content := "# name\tlength\tcopies\n" +
		"geneA\t1000\t2\n" +
		"geneB 500\n" +
		"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	set, err := ReadLoci(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := set.IDs(), []string{"geneA", "geneB"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("IDs() = %v, want %v", got, want)
	}

	geneA, _ := set.Get("geneA")
	if geneA.Length != 1000 || geneA.Copies != 2 {
		t.Errorf("geneA = %+v, want length 1000, copies 2", geneA)
	}
	geneB, _ := set.Get("geneB")
	if geneB.Length != 500 || geneB.Copies != 1 {
		t.Errorf("geneB = %+v, want length 500, copies 1", geneB)
	}
}

func TestReadLociErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing length", "geneA\n"},
		{"bad length", "geneA\tlots\n"},
		{"bad copies", "geneA\t100\tmany\n"},
		{"duplicate", "geneA\t100\ngeneA\t200\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "loci.tsv")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			if _, err := ReadLoci(path); err == nil {
				t.Error("ReadLoci() expected an error")
			}
		})
	}
}

func TestReadLociMissingFile(t *testing.T) {
	if _, err := ReadLoci(filepath.Join(t.TempDir(), "nope.tsv")); err == nil {
		t.Error("ReadLoci() expected an error for a missing file")
	}
}
