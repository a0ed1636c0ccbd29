package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Summary renders the human readable run summary to w.
func Summary(w io.Writer, r Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Locus", "Classification", "Coverage", "Contigs", "Index"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT,
	})

	for _, l := range r.Atomization.Loci {
		table.Append([]string{
			l.Locus,
			l.Classification,
			fmt.Sprintf("%.3f", l.Coverage),
			strconv.Itoa(l.Contigs),
			fmt.Sprintf("%.3f", l.Index),
		})
	}
	table.Render()

	fmt.Fprintf(w, "\nintact %d  atomized %d  absent %d\n",
		r.Atomization.Intact, r.Atomization.Atomized, r.Atomization.Absent)
	fmt.Fprintf(w, "atomization score: %.4f\n", r.Atomization.Composite)

	if r.Agreement != nil {
		fmt.Fprintf(w, "alignment (%s level): %.4f  coverage: %.4f\n",
			r.Agreement.Level, r.Agreement.Alignment, r.Agreement.Coverage)
		fmt.Fprintf(w, "overall score result: %.4f\n", r.Agreement.Overall)
	}
}
