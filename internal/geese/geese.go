// Package geese reads and writes GEESE atomization tables: whitespace
// separated files that assign intervals of genome sequences to atomization
// classes.
package geese

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Atom is a single row of an atomization table: one interval of a genome
// sequence together with the class it was assigned to. Coordinates are
// 0-based and inclusive on both ends.
type Atom struct {
	// Name of the genome sequence the interval lies on
	Name string

	// AtomNr is the running number of the atom within its table
	AtomNr int

	// Class the interval was assigned to
	Class int

	// Strand of the assignment: "+" or "-"
	Strand string

	// Start index of the interval (inclusive)
	Start int

	// End index of the interval (inclusive)
	End int
}

// Length returns the number of bases covered by the atom.
func (a Atom) Length() int {
	return a.End - a.Start + 1
}

// columns every atomization table must carry. atom_nr and strand are
// optional and defaulted when absent.
var requiredCols = []string{"name", "class", "start", "end"}

// Read parses the GEESE file at path.
func Read(path string) ([]Atom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GEESE file: %w", err)
	}
	defer f.Close()

	atoms, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return atoms, nil
}

// Parse reads an atomization table from r. The first non-empty line is the
// header, its leading '#' is stripped, and the remaining lines are matched
// against it column by column. Rows with a negative start or an end before
// their start are rejected.
func Parse(r io.Reader) ([]Atom, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var header []string
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		header = strings.Fields(strings.TrimPrefix(line, "#"))
		break
	}
	if header == nil {
		return nil, fmt.Errorf("empty atomization table")
	}

	cols := make(map[string]int)
	for i, c := range header {
		cols[c] = i
	}

	var missing []string
	for _, c := range requiredCols {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	_, hasNr := cols["atom_nr"]
	_, hasStrand := cols["strand"]

	var atoms []Atom
	lineNr := 1
	for sc.Scan() {
		lineNr++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != len(header) {
			return nil, fmt.Errorf("line %d: %d fields, header has %d", lineNr, len(fields), len(header))
		}

		class, err := strconv.Atoi(fields[cols["class"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad class %q", lineNr, fields[cols["class"]])
		}
		start, err := strconv.Atoi(fields[cols["start"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad start %q", lineNr, fields[cols["start"]])
		}
		end, err := strconv.Atoi(fields[cols["end"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad end %q", lineNr, fields[cols["end"]])
		}
		if start < 0 || end < start {
			return nil, fmt.Errorf("line %d: degenerate interval [%d, %d]", lineNr, start, end)
		}

		a := Atom{
			Name:   fields[cols["name"]],
			AtomNr: len(atoms) + 1,
			Class:  class,
			Strand: "+",
			Start:  start,
			End:    end,
		}
		if hasNr {
			if a.AtomNr, err = strconv.Atoi(fields[cols["atom_nr"]]); err != nil {
				return nil, fmt.Errorf("line %d: bad atom_nr %q", lineNr, fields[cols["atom_nr"]])
			}
		}
		if hasStrand {
			a.Strand = fields[cols["strand"]]
		}

		atoms = append(atoms, a)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read atomization table: %w", err)
	}
	return atoms, nil
}

// Write stores atoms at path in the four column layout that the rest of the
// toolchain understands: name, class, start and end separated by tabs.
func Write(path string, atoms []Atom) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create GEESE file: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "#name\tclass\tstart\tend")
	for _, a := range atoms {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", a.Name, a.Class, a.Start, a.End)
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// Classes groups atoms by their class. The returned slice holds the classes
// in ascending order so callers can range over the map deterministically.
func Classes(atoms []Atom) ([]int, map[int][]Atom) {
	byClass := make(map[int][]Atom)
	for _, a := range atoms {
		byClass[a.Class] = append(byClass[a.Class], a)
	}

	classes := make([]int, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Ints(classes)

	return classes, byClass
}
