package minimap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAlignMissingInputs(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "reps.fa")
	if err := os.WriteFile(existing, []byte(">r\nACGT\n"), 0644); err != nil {
		t.Fatal(err)
	}

	a := Aligner{}

	err := a.Align(filepath.Join(dir, "missing.fa"), existing, filepath.Join(dir, "out.paf"))
	if err == nil || !strings.Contains(err.Error(), "target FASTA not found") {
		t.Errorf("Align() with missing target = %v, want target not found", err)
	}

	err = a.Align(existing, filepath.Join(dir, "missing.fa"), filepath.Join(dir, "out.paf"))
	if err == nil || !strings.Contains(err.Error(), "query FASTA not found") {
		t.Errorf("Align() with missing query = %v, want query not found", err)
	}
}
