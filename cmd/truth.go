package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkrivosik/atomization-scorer/config"
	"github.com/mkrivosik/atomization-scorer/internal/fasta"
	"github.com/mkrivosik/atomization-scorer/internal/geese"
	"github.com/mkrivosik/atomization-scorer/internal/pipeline"
)

// truthCmd builds the gold standard without scoring anything.
var truthCmd = &cobra.Command{
	Use:   "truth <assembly.fa> <predicted.geese> <output-dir>",
	Short: "Build the gold standard atomization for an assembly",
	Long: `Select one representative per atomization class, map the assembly back onto
the representatives with minimap2, filter the alignments and write the
surviving hits as the gold standard atomization.

The representatives FASTA, the raw and filtered PAF and the gold standard
GEESE file all land in the output directory.`,
	Example:                    "  atomization-scorer truth assembly.fa predicted.geese results/",
	Args:                       cobra.ExactArgs(3),
	RunE:                       runTruth,
	SuggestionsMinimumDistance: 2,
}

func runTruth(cmd *cobra.Command, args []string) error {
	viper.BindPFlag("paf", cmd.Flags().Lookup("paf"))

	assemblyPath, geesePath, outDir := args[0], args[1], args[2]
	if err := checkExt(assemblyPath, ".fa", ".fasta", ".fa.gz", ".fasta.gz"); err != nil {
		return err
	}
	if err := checkExt(geesePath, ".geese"); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create the output directory: %w", err)
	}

	genomes, err := fasta.Read(assemblyPath)
	if err != nil {
		return err
	}
	predicted, err := geese.Read(geesePath)
	if err != nil {
		return err
	}

	res, err := pipeline.Truth(genomes, assemblyPath, predicted, outDir, config.New(), viper.GetString("paf"))
	if err != nil {
		return err
	}

	log.Infof("wrote the gold standard of %d atoms to %s", len(res.Atoms), res.GeesePath)
	return nil
}

// set flags
func init() {
	truthCmd.Flags().StringP("paf", "p", "", "precomputed PAF, skips the minimap2 run")

	RootCmd.AddCommand(truthCmd)
}
