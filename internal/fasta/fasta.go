// Package fasta reads and writes FASTA sequence files.
package fasta

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Record is a single FASTA sequence.
type Record struct {
	// ID is the header up to the first whitespace
	ID string

	// Seq is the sequence itself
	Seq string
}

// Length returns the number of bases in the record.
func (r Record) Length() int {
	return len(r.Seq)
}

// Subsequence cuts the inclusive interval [start, end] out of the record.
func (r Record) Subsequence(start, end int) (string, error) {
	if start < 0 || end < start || end >= len(r.Seq) {
		return "", fmt.Errorf("interval [%d, %d] out of range for %s (length %d)", start, end, r.ID, len(r.Seq))
	}
	return r.Seq[start : end+1], nil
}

// gzipMagic is the two byte header of every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Read loads every sequence from the FASTA file at path. Gzipped files are
// decompressed transparently.
func Read(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FASTA file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	var in io.Reader = br
	if head, err := br.Peek(2); err == nil && bytes.Equal(head, gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		defer gz.Close()
		in = gz
	}

	t := linear.NewSeq("", nil, alphabet.DNA)
	sc := seqio.NewScanner(biofasta.NewReader(in, t))

	var records []Record
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		records = append(records, Record{ID: s.ID, Seq: s.Seq.String()})
	}
	if err := sc.Error(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no sequences in %s", path)
	}

	return records, nil
}

// Write stores records at path, wrapping sequence lines at 60 columns.
func Write(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create FASTA file: %w", err)
	}

	w := biofasta.NewWriter(f, 60)
	for _, r := range records {
		s := linear.NewSeq(r.ID, alphabet.BytesToLetters([]byte(r.Seq)), alphabet.DNA)
		if _, err := w.Write(s); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s to %s: %w", r.ID, path, err)
		}
	}
	return f.Close()
}

// Index maps sequence IDs to records. Duplicated IDs are an input error.
func Index(records []Record) (map[string]Record, error) {
	byID := make(map[string]Record, len(records))
	for _, r := range records {
		if _, ok := byID[r.ID]; ok {
			return nil, fmt.Errorf("duplicate sequence %s", r.ID)
		}
		byID[r.ID] = r
	}
	return byID, nil
}

// TotalLength sums the lengths of all records.
func TotalLength(records []Record) int {
	total := 0
	for _, r := range records {
		total += len(r.Seq)
	}
	return total
}
