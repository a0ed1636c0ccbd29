package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mkrivosik/atomization-scorer/internal/scorer"
)

// ftoa renders floats the shortest way that round trips, matching how the
// metric tables have always been written.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeTSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// WriteProfiles writes the per locus breakdown as a TSV, one row per locus in
// the order the score carries them.
func WriteProfiles(path string, loci []scorer.LocusScore) error {
	header := []string{
		"locus", "classification", "expected", "covered", "coverage",
		"contigs", "blocks", "largest_span", "gaps", "gap_length",
		"index", "contribution",
	}

	rows := make([][]string, 0, len(loci))
	for _, l := range loci {
		rows = append(rows, []string{
			l.Locus,
			l.Classification,
			strconv.Itoa(l.Expected),
			strconv.Itoa(l.Covered),
			ftoa(l.Coverage),
			strconv.Itoa(l.Contigs),
			strconv.Itoa(l.Blocks),
			strconv.Itoa(l.LargestSpan),
			strconv.Itoa(l.Gaps),
			strconv.Itoa(l.GapLength),
			ftoa(l.Index),
			ftoa(l.Contribution),
		})
	}
	return writeTSV(path, header, rows)
}

// WriteMetricsOverall writes the single row agreement table.
func WriteMetricsOverall(path string, c scorer.Counts) error {
	tp, fp, fn := c.Totals()
	precision, recall, f1 := scorer.PrecisionRecallF1(tp, fp, fn)

	header := []string{"TP", "FP", "FN", "Precision", "Recall", "F1-score"}
	row := []string{
		strconv.Itoa(tp), strconv.Itoa(fp), strconv.Itoa(fn),
		ftoa(precision), ftoa(recall), ftoa(f1),
	}
	return writeTSV(path, header, [][]string{row})
}

// WriteMetricsPerClass writes one agreement row per class, ascending.
func WriteMetricsPerClass(path string, c scorer.Counts) error {
	_, perClass := scorer.Summarize(c)

	header := []string{"Class", "TP", "FP", "FN", "Precision", "Recall", "F1-score"}
	rows := make([][]string, 0, len(perClass))
	for _, m := range perClass {
		rows = append(rows, []string{
			strconv.Itoa(m.Class),
			strconv.Itoa(m.TP), strconv.Itoa(m.FP), strconv.Itoa(m.FN),
			ftoa(m.Precision), ftoa(m.Recall), ftoa(m.F1),
		})
	}
	return writeTSV(path, header, rows)
}

// WriteStatus writes the interval verdict table of one comparison side.
func WriteStatus(path string, rows []scorer.AtomStatus) error {
	header := []string{"name", "atom_nr", "class", "strand", "start", "end", "status"}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Name,
			strconv.Itoa(r.AtomNr),
			strconv.Itoa(r.Class),
			r.Strand,
			strconv.Itoa(r.Start),
			strconv.Itoa(r.End),
			r.Status,
		})
	}
	return writeTSV(path, header, out)
}
