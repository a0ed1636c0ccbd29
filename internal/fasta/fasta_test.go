package fasta

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genomes.fa")
	content := ">genomeA circular plasmid\nACGTACGTAC\nGTACGT\n>genomeB\nTTTTCCCC\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	want := []Record{
		{ID: "genomeA", Seq: "ACGTACGTACGTACGT"},
		{ID: "genomeB", Seq: "TTTTCCCC"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Read() = %v, want %v", got, want)
	}
}

func TestReadGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genomes.fa.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	gz := gzip.NewWriter(f)
	if _, err := gz.Write([]byte(">genomeA\nACGT\n")); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "genomeA" || got[0].Seq != "ACGT" {
		t.Errorf("Read() = %v, want genomeA ACGT", got)
	}
}

func TestReadEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.fa")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Read(path); err == nil {
		t.Error("Read() on an empty file expected an error")
	}
}

func TestWriteRead(t *testing.T) {
	records := []Record{
		{ID: "rep|class_1", Seq: "ACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGTACGT"},
		{ID: "rep|class_2", Seq: "TTTT"},
	}

	path := filepath.Join(t.TempDir(), "reps.fa")
	if err := Write(path, records); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip = %v, want %v", got, records)
	}
}

func TestIndex(t *testing.T) {
	records := []Record{{ID: "a", Seq: "ACGT"}, {ID: "b", Seq: "TT"}}

	byID, err := Index(records)
	if err != nil {
		t.Fatalf("Index() error = %v", err)
	}
	if byID["a"].Seq != "ACGT" || byID["b"].Seq != "TT" {
		t.Errorf("Index() = %v", byID)
	}

	if _, err := Index(append(records, Record{ID: "a", Seq: "GG"})); err == nil {
		t.Error("Index() with a duplicate ID expected an error")
	}
}

func TestSubsequence(t *testing.T) {
	r := Record{ID: "a", Seq: "ACGTACGT"}

	got, err := r.Subsequence(2, 5)
	if err != nil {
		t.Fatalf("Subsequence() error = %v", err)
	}
	if got != "GTAC" {
		t.Errorf("Subsequence(2, 5) = %s, want GTAC", got)
	}

	if _, err := r.Subsequence(2, 8); err == nil {
		t.Error("Subsequence() past the end expected an error")
	}
}

func TestTotalLength(t *testing.T) {
	records := []Record{{ID: "a", Seq: "ACGT"}, {ID: "b", Seq: "TTTTTT"}}
	if got := TotalLength(records); got != 10 {
		t.Errorf("TotalLength() = %d, want 10", got)
	}
}
