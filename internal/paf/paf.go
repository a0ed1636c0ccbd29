// Package paf parses, filters and converts PAF alignment files as emitted by
// minimap2.
package paf

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mkrivosik/atomization-scorer/internal/geese"
)

// Record is a single PAF alignment line. Coordinates are 0-based with an
// exclusive end, as minimap2 writes them.
type Record struct {
	// Query sequence name
	Query string

	// QueryLen is the total length of the query sequence
	QueryLen int

	// QueryStart of the alignment on the query
	QueryStart int

	// QueryEnd of the alignment on the query (exclusive)
	QueryEnd int

	// Strand of the alignment: "+" or "-"
	Strand string

	// Target sequence name
	Target string

	// TargetLen is the total length of the target sequence
	TargetLen int

	// TargetStart of the alignment on the target
	TargetStart int

	// TargetEnd of the alignment on the target (exclusive)
	TargetEnd int

	// Matches is the number of matching bases in the alignment
	Matches int

	// BlockLen is the total alignment block length, gaps included
	BlockLen int

	// MapQ is the mapping quality
	MapQ int

	// Divergence is the gap-compressed per-base divergence from the de:f
	// tag, or -1 when the tag is absent
	Divergence float64

	// Cigar string from the cg:Z tag when present
	Cigar string

	// raw is the original line, kept so filtered files reproduce their
	// input byte for byte
	raw string
}

// Identity returns the fraction of matching bases. The de:f tag is preferred,
// records without one fall back to matches over block length.
func (r Record) Identity() float64 {
	if r.Divergence >= 0 {
		return 1.0 - r.Divergence
	}
	if r.BlockLen > 0 {
		return float64(r.Matches) / float64(r.BlockLen)
	}
	return 0
}

// Blocks counts the aligned segments of the record, one per cigar match op.
// Records without a cigar count as one block.
func (r Record) Blocks() int {
	blocks := 0
	for _, c := range r.Cigar {
		if c == 'M' {
			blocks++
		}
	}
	if blocks == 0 {
		return 1
	}
	return blocks
}

// String returns the record as a PAF line. Records read from a file are
// reproduced unchanged.
func (r Record) String() string {
	if r.raw != "" {
		return r.raw
	}

	fields := []string{
		r.Query,
		strconv.Itoa(r.QueryLen),
		strconv.Itoa(r.QueryStart),
		strconv.Itoa(r.QueryEnd),
		r.Strand,
		r.Target,
		strconv.Itoa(r.TargetLen),
		strconv.Itoa(r.TargetStart),
		strconv.Itoa(r.TargetEnd),
		strconv.Itoa(r.Matches),
		strconv.Itoa(r.BlockLen),
		strconv.Itoa(r.MapQ),
	}
	if r.Divergence >= 0 {
		fields = append(fields, "de:f:"+strconv.FormatFloat(r.Divergence, 'f', -1, 64))
	}
	if r.Cigar != "" {
		fields = append(fields, "cg:Z:"+r.Cigar)
	}
	return strings.Join(fields, "\t")
}

// Parse reads a single PAF line. Lines with fewer than 12 columns, non-numeric
// coordinates or an empty alignment interval are rejected.
func Parse(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, "\t")
	if len(fields) < 12 {
		return Record{}, fmt.Errorf("%d columns, PAF needs at least 12", len(fields))
	}

	var nums [12]int
	for _, i := range []int{1, 2, 3, 6, 7, 8, 9, 10, 11} {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return Record{}, fmt.Errorf("column %d: %q is not an integer", i+1, fields[i])
		}
		nums[i] = v
	}

	r := Record{
		Query:       fields[0],
		QueryLen:    nums[1],
		QueryStart:  nums[2],
		QueryEnd:    nums[3],
		Strand:      fields[4],
		Target:      fields[5],
		TargetLen:   nums[6],
		TargetStart: nums[7],
		TargetEnd:   nums[8],
		Matches:     nums[9],
		BlockLen:    nums[10],
		MapQ:        nums[11],
		Divergence:  -1,
		raw:         line,
	}

	if r.Strand != "+" && r.Strand != "-" {
		return Record{}, fmt.Errorf("bad strand %q", r.Strand)
	}
	if r.QueryStart < 0 || r.QueryEnd <= r.QueryStart {
		return Record{}, fmt.Errorf("empty query interval [%d, %d)", r.QueryStart, r.QueryEnd)
	}
	if r.TargetStart < 0 || r.TargetEnd <= r.TargetStart {
		return Record{}, fmt.Errorf("empty target interval [%d, %d)", r.TargetStart, r.TargetEnd)
	}

	for _, tag := range fields[12:] {
		switch {
		case strings.HasPrefix(tag, "de:f:"):
			d, err := strconv.ParseFloat(tag[len("de:f:"):], 64)
			if err != nil {
				return Record{}, fmt.Errorf("bad divergence tag %q", tag)
			}
			r.Divergence = d
		case strings.HasPrefix(tag, "cg:Z:"):
			r.Cigar = tag[len("cg:Z:"):]
		}
	}

	return r, nil
}

// Read parses the PAF file at path. Malformed lines do not fail the whole
// file, they come back as warnings so the caller can log them.
func Read(path string) (records []Record, warnings []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open PAF file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024) // cg tags of genome alignments get long

	lineNr := 0
	for sc.Scan() {
		lineNr++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		r, perr := Parse(line)
		if perr != nil {
			warnings = append(warnings, fmt.Sprintf("%s line %d: %v", path, lineNr, perr))
			continue
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return records, warnings, nil
}

// Write stores records as a PAF file at path.
func Write(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create PAF file: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, r := range records {
		fmt.Fprintln(w, r.String())
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Filter returns the records whose identity and alignment block length meet
// the given minimums.
func Filter(records []Record, minIdentity float64, minLength int) []Record {
	var keep []Record
	for _, r := range records {
		if r.Identity() >= minIdentity && r.BlockLen >= minLength {
			keep = append(keep, r)
		}
	}
	return keep
}

// classMarker separates a sequence name from its class id in representative
// FASTA headers, eg "genomeA|class_7".
const classMarker = "|class_"

// ClassHeader builds the representative header for a class cut from the
// named sequence.
func ClassHeader(name string, class int) string {
	return fmt.Sprintf("%s%s%d", name, classMarker, class)
}

// SplitClass splits a representative header into its sequence name and class.
// Headers without a class marker keep their full name and get class 0.
func SplitClass(header string) (string, int) {
	i := strings.LastIndex(header, classMarker)
	if i < 0 {
		return header, 0
	}
	class, err := strconv.Atoi(header[i+len(classMarker):])
	if err != nil {
		return header, 0
	}
	return header[:i], class
}

// ToGeese converts alignment records to atoms on the target axis, copying the
// target coordinates through unchanged.
func ToGeese(records []Record) []geese.Atom {
	atoms := make([]geese.Atom, 0, len(records))
	for _, r := range records {
		name, class := SplitClass(r.Target)
		atoms = append(atoms, geese.Atom{
			Name:   name,
			AtomNr: len(atoms) + 1,
			Class:  class,
			Strand: r.Strand,
			Start:  r.TargetStart,
			End:    r.TargetEnd,
		})
	}
	return atoms
}

// GenomeAtoms converts alignment records to atoms on the query axis: the
// stretch of genome each record covers, classed by the representative it
// hit. This is the conversion the gold standard pipeline needs, since
// agreement scanning compares atoms per genome sequence.
func GenomeAtoms(records []Record) []geese.Atom {
	atoms := make([]geese.Atom, 0, len(records))
	for _, r := range records {
		_, class := SplitClass(r.Target)
		atoms = append(atoms, geese.Atom{
			Name:   r.Query,
			AtomNr: len(atoms) + 1,
			Class:  class,
			Strand: r.Strand,
			Start:  r.QueryStart,
			End:    r.QueryEnd - 1,
		})
	}
	return atoms
}
