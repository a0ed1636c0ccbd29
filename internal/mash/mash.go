// Package mash wraps the mash binary for estimating pairwise sequence
// distances.
package mash

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Distance is one row of mash dist output: the estimated mutation distance
// between a reference and a query sequence.
type Distance struct {
	// Ref sequence name
	Ref string

	// Query sequence name
	Query string

	// Distance estimate between the two sequences
	Distance float64

	// PValue of the estimate
	PValue float64

	// Shared is the fraction of matching hashes
	Shared float64
}

// mashExec is one invocation of mash dist between two FASTA files.
type mashExec struct {
	// ref is the reference FASTA handed to mash
	ref string

	// query FASTA compared against ref
	query string

	// individual toggles -i so every sequence is sketched on its own
	// rather than the file as a whole
	individual bool
}

// run executes the external mash binary and parses its stdout.
func (m *mashExec) run() ([]Distance, error) {
	args := []string{"dist"}
	if m.individual {
		args = append(args, "-i")
	}
	args = append(args, m.ref, m.query)

	out, err := exec.Command("mash", args...).Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("failed to execute mash dist on %s and %s: %v: %s", m.ref, m.query, err, string(ee.Stderr))
		}
		return nil, fmt.Errorf("failed to execute mash dist on %s and %s: %v", m.ref, m.query, err)
	}

	return Parse(bytes.NewReader(out))
}

// Dist estimates the distance between every sequence in ref and every
// sequence in query.
func Dist(ref, query string) ([]Distance, error) {
	m := &mashExec{
		ref:        ref,
		query:      query,
		individual: true,
	}
	return m.run()
}

// Parse reads a mash dist table from r: reference, query, distance, p-value
// and shared hashes separated by tabs.
func Parse(r io.Reader) ([]Distance, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var dists []Distance
	lineNr := 0
	for sc.Scan() {
		lineNr++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return nil, fmt.Errorf("line %d: %d columns, mash dist writes 5", lineNr, len(fields))
		}

		d, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad distance %q", lineNr, fields[2])
		}
		p, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad p-value %q", lineNr, fields[3])
		}

		shared := 0.0
		if parts := strings.Split(fields[4], "/"); len(parts) == 2 {
			num, nerr := strconv.ParseFloat(parts[0], 64)
			den, derr := strconv.ParseFloat(parts[1], 64)
			if nerr == nil && derr == nil && den > 0 {
				shared = num / den
			}
		}

		dists = append(dists, Distance{
			Ref:      fields[0],
			Query:    fields[1],
			Distance: d,
			PValue:   p,
			Shared:   shared,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mash output: %w", err)
	}

	return dists, nil
}

// Sums accumulates every sequence's summed distance to all other sequences.
// Self comparisons are skipped.
func Sums(dists []Distance) map[string]float64 {
	sums := make(map[string]float64)
	for _, d := range dists {
		if d.Ref == d.Query {
			continue
		}
		sums[d.Ref] += d.Distance
		sums[d.Query] += d.Distance
	}
	return sums
}

// Medoid returns the header with the smallest summed distance to all others,
// the earliest header winning ties. Headers missing from dists count as zero
// distance.
func Medoid(headers []string, dists []Distance) string {
	sums := Sums(dists)

	best := ""
	bestSum := math.Inf(1)
	for _, h := range headers {
		if s := sums[h]; best == "" || s < bestSum {
			best, bestSum = h, s
		}
	}
	return best
}
