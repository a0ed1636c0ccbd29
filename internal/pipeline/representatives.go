package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mkrivosik/atomization-scorer/internal/fasta"
	"github.com/mkrivosik/atomization-scorer/internal/geese"
	"github.com/mkrivosik/atomization-scorer/internal/mash"
	"github.com/mkrivosik/atomization-scorer/internal/paf"
)

// Representative selection modes.
const (
	// ModeFirst takes the first atom of every class
	ModeFirst = "first"

	// ModeMash picks the class medoid by pairwise mash distance
	ModeMash = "mash"
)

// Representative is the exemplar interval chosen for one atomization class.
type Representative struct {
	// Class the exemplar stands for
	Class int

	// Atom that was chosen
	Atom geese.Atom

	// Seq of the exemplar, cut out of its genome
	Seq string
}

// Header is the FASTA header the exemplar is written under, carrying the
// class id so alignments against it can be traced back.
func (r Representative) Header() string {
	return paf.ClassHeader(r.Atom.Name, r.Class)
}

// SelectRepresentatives picks one exemplar per atomization class, classes in
// ascending order. Mode first takes the first atom of a class, mode mash runs
// mash over the class members and takes the medoid, the member with the
// smallest summed distance to the rest.
func SelectRepresentatives(genomes []fasta.Record, atoms []geese.Atom, mode string) ([]Representative, error) {
	if mode != ModeFirst && mode != ModeMash {
		return nil, fmt.Errorf("unknown representative mode %q, use %s or %s", mode, ModeMash, ModeFirst)
	}

	index, err := fasta.Index(genomes)
	if err != nil {
		return nil, err
	}

	classes, byClass := geese.Classes(atoms)
	reps := make([]Representative, 0, len(classes))
	for _, class := range classes {
		members := byClass[class]

		chosen := members[0]
		if mode == ModeMash && len(members) > 1 {
			if chosen, err = mashMedoid(index, members); err != nil {
				return nil, fmt.Errorf("class %d: %w", class, err)
			}
		}

		seq, err := cut(index, chosen)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", class, err)
		}
		reps = append(reps, Representative{Class: class, Atom: chosen, Seq: seq})
	}

	return reps, nil
}

// WriteRepresentatives writes the exemplars as a FASTA, one record per class.
func WriteRepresentatives(path string, reps []Representative) error {
	records := make([]fasta.Record, 0, len(reps))
	for _, r := range reps {
		records = append(records, fasta.Record{ID: r.Header(), Seq: r.Seq})
	}
	return fasta.Write(path, records)
}

// cut extracts an atom's bases from its genome sequence.
func cut(index map[string]fasta.Record, a geese.Atom) (string, error) {
	g, ok := index[a.Name]
	if !ok {
		return "", fmt.Errorf("sequence %s is not in the assembly", a.Name)
	}

	seq, err := g.Subsequence(a.Start, a.End)
	if err != nil {
		return "", fmt.Errorf("atom %d of %s: %w", a.AtomNr, a.Name, err)
	}
	return seq, nil
}

// mashMedoid writes the class members to a scratch FASTA, compares it against
// itself with mash and returns the medoid member.
func mashMedoid(index map[string]fasta.Record, members []geese.Atom) (geese.Atom, error) {
	dir, err := os.MkdirTemp("", "atomization-mash")
	if err != nil {
		return geese.Atom{}, err
	}
	defer os.RemoveAll(dir)

	headers := make([]string, 0, len(members))
	byHeader := make(map[string]geese.Atom, len(members))
	records := make([]fasta.Record, 0, len(members))
	for _, a := range members {
		seq, err := cut(index, a)
		if err != nil {
			return geese.Atom{}, err
		}

		header := fmt.Sprintf("%s_%d", a.Name, a.AtomNr)
		if _, ok := byHeader[header]; ok {
			return geese.Atom{}, fmt.Errorf("atom %d of %s listed twice", a.AtomNr, a.Name)
		}
		headers = append(headers, header)
		byHeader[header] = a
		records = append(records, fasta.Record{ID: header, Seq: seq})
	}

	scratch := filepath.Join(dir, "class.fa")
	if err := fasta.Write(scratch, records); err != nil {
		return geese.Atom{}, err
	}

	dists, err := mash.Dist(scratch, scratch)
	if err != nil {
		return geese.Atom{}, err
	}

	return byHeader[mash.Medoid(headers, dists)], nil
}
