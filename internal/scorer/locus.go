// Package scorer turns alignment and distance evidence into per locus
// fragmentation profiles and assembly level atomization scores.
package scorer

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Locus is a named reference region whose presence in an assembly is being
// evaluated. Loci are loaded once and stay immutable for the whole run.
type Locus struct {
	// ID of the locus, eg "genomeA|class_7" for a class representative
	ID string

	// Length the locus is expected to span in bases
	Length int

	// Copies is the expected copy count. Carried through to the report
	// but not scored, fragmentation is judged on single copy assumptions.
	Copies int
}

// LocusSet is the immutable set of loci for one run, addressable by ID and
// iterable in ascending ID order.
type LocusSet struct {
	byID map[string]Locus
	ids  []string
}

// NewLocusSet validates loci and indexes them. Duplicate IDs and
// non-positive expected lengths are ingestion errors.
func NewLocusSet(loci []Locus) (*LocusSet, error) {
	s := &LocusSet{byID: make(map[string]Locus, len(loci))}
	for _, l := range loci {
		if l.ID == "" {
			return nil, fmt.Errorf("locus with an empty ID")
		}
		if l.Length <= 0 {
			return nil, fmt.Errorf("locus %s: expected length %d must be positive", l.ID, l.Length)
		}
		if _, ok := s.byID[l.ID]; ok {
			return nil, fmt.Errorf("locus %s defined twice", l.ID)
		}
		if l.Copies < 1 {
			l.Copies = 1
		}

		s.byID[l.ID] = l
		s.ids = append(s.ids, l.ID)
	}
	sort.Strings(s.ids)

	return s, nil
}

// IDs returns every locus ID in ascending order.
func (s *LocusSet) IDs() []string {
	return s.ids
}

// Get returns the locus with the given ID.
func (s *LocusSet) Get(id string) (Locus, bool) {
	l, ok := s.byID[id]
	return l, ok
}

// Len returns the number of loci in the set.
func (s *LocusSet) Len() int {
	return len(s.ids)
}

// ReadLoci loads locus definitions from a whitespace separated table of
// name, expected length and optional copy count. Lines starting with # are
// skipped.
func ReadLoci(path string) (*LocusSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open loci file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)

	var loci []Locus
	lineNr := 0
	for sc.Scan() {
		lineNr++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("%s line %d: need at least name and length", path, lineNr)
		}

		length, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad length %q", path, lineNr, fields[1])
		}

		copies := 1
		if len(fields) > 2 {
			if copies, err = strconv.Atoi(fields[2]); err != nil {
				return nil, fmt.Errorf("%s line %d: bad copy count %q", path, lineNr, fields[2])
			}
		}

		loci = append(loci, Locus{ID: fields[0], Length: length, Copies: copies})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return NewLocusSet(loci)
}
