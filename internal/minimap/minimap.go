// Package minimap wraps the minimap2 binary for genome to genome alignment.
package minimap

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Aligner configures a minimap2 run.
type Aligner struct {
	// Preset passed via -x, empty falls back to asm20
	Preset string

	// Secondary is the -p secondary-to-primary score ratio, values at or
	// below zero fall back to 0.1
	Secondary float64

	// Threads passed via -t, zero leaves minimap2's own default
	Threads int
}

// Align maps every sequence of query onto target and writes the alignments
// as PAF to out. The -c flag is always set so records carry base level
// cigars and divergence estimates.
func (a Aligner) Align(target, query, out string) error {
	if _, err := os.Stat(target); err != nil {
		return fmt.Errorf("target FASTA not found: %w", err)
	}
	if _, err := os.Stat(query); err != nil {
		return fmt.Errorf("query FASTA not found: %w", err)
	}

	preset := a.Preset
	if preset == "" {
		preset = "asm20"
	}
	secondary := a.Secondary
	if secondary <= 0 {
		secondary = 0.1
	}

	args := []string{
		"-x", preset,
		"-c",
		"-p", strconv.FormatFloat(secondary, 'f', -1, 64),
	}
	if a.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(a.Threads))
	}
	args = append(args, target, query)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create PAF output: %w", err)
	}

	var stderr bytes.Buffer
	cmd := exec.Command("minimap2", args...)
	cmd.Stdout = f
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		f.Close()
		return fmt.Errorf("failed to execute minimap2 on %s: %v: %s", query, err, stderr.String())
	}
	return f.Close()
}
