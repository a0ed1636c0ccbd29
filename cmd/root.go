// Package cmd is for command line interactions with the atomization scorer.
package cmd

import (
	"fmt"
	"os"
	"strings"

	logging "github.com/op/go-logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkrivosik/atomization-scorer/config"
	"github.com/mkrivosik/atomization-scorer/internal/pipeline"
	"github.com/mkrivosik/atomization-scorer/internal/report"
)

var log = logging.MustGetLogger("cmd")

// RootCmd scores an assembly when called without a subcommand.
var RootCmd = &cobra.Command{
	Use:   "atomization-scorer <assembly.fa> <loci-file> <output-dir>",
	Short: "Score how atomized reference loci are in a genome assembly",
	Long: `Quantify the fragmentation of reference loci mapped onto an assembly.

The loci file is either a GEESE atomization of the assembly or a TSV of locus
expectations (name, length and an optional copy count). With a GEESE file the
full pipeline runs: class representatives are selected, mapped back onto the
assembly with minimap2, weighted by mash distance and folded into a per locus
fragmentation profile, plus an agreement comparison against the gold standard
built from the same alignments. With a TSV the alignments must be precomputed
and passed via --paf.

Every artifact, report.json included, lands in the output directory.`,
	Example:                    "  atomization-scorer assembly.fa predicted.geese results/",
	Version:                    "0.2.0",
	Args:                       cobra.ExactArgs(3),
	SuggestionsMinimumDistance: 2,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main() and only needs to happen once.
func Execute() {
	logging.SetBackend(pipeline.BackendFormatter)
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// runScore validates the positional arguments and runs the whole pipeline,
// ending with the terminal summary of the report.
func runScore(cmd *cobra.Command, args []string) error {
	viper.BindPFlag("paf", cmd.Flags().Lookup("paf"))
	viper.BindPFlag("distances", cmd.Flags().Lookup("distances"))
	viper.BindPFlag("score.level", cmd.Flags().Lookup("level"))
	viper.BindPFlag("score.per-class", cmd.Flags().Lookup("per-class"))

	assembly, loci, outDir := args[0], args[1], args[2]
	if err := checkExt(assembly, ".fa", ".fasta", ".fa.gz", ".fasta.gz"); err != nil {
		return err
	}
	if err := checkExt(loci, ".geese", ".tsv"); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create the output directory: %w", err)
	}

	opts := pipeline.Options{
		Assembly:  assembly,
		Loci:      loci,
		OutDir:    outDir,
		PAF:       viper.GetString("paf"),
		Distances: viper.GetString("distances"),
		Version:   RootCmd.Version,
	}
	rep, err := pipeline.Score(cmd.Context(), opts, config.New())
	if err != nil {
		return err
	}

	report.Summary(os.Stdout, rep)
	return nil
}

// checkExt rejects paths without one of the expected extensions.
func checkExt(path string, exts ...string) error {
	for _, e := range exts {
		if strings.HasSuffix(path, e) {
			return nil
		}
	}
	return fmt.Errorf("unrecognized extension on %s, expected one of %s", path, strings.Join(exts, ", "))
}

// loadSettings reads the YAML settings file into viper. Only the default
// file is allowed to be missing.
func loadSettings() {
	settings := viper.GetString("settings")
	if _, err := os.Stat(settings); err != nil {
		if settings != config.RootSettingsFile {
			log.Fatalf("cannot read settings %s: %v", settings, err)
		}
		return
	}

	viper.SetConfigFile(settings)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("failed to parse settings %s: %v", settings, err)
	}
	log.Debugf("settings read from %s", settings)
}

// setLogLevel silences debug output unless the run is verbose.
func setLogLevel() {
	if viper.GetBool("verbose") {
		logging.SetLevel(logging.DEBUG, "")
	} else {
		logging.SetLevel(logging.INFO, "")
	}
}

// set flags
func init() {
	RootCmd.RunE = runScore
	RootCmd.PersistentFlags().StringP("settings", "s", config.RootSettingsFile, "settings file with scoring parameters")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "whether to log debug output to stderr")
	RootCmd.PersistentFlags().StringP("mode", "m", "mash", "representative selection mode: mash or first")
	RootCmd.PersistentFlags().IntP("threads", "j", 0, "loci profiled concurrently, 0 meaning all CPUs")
	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("mode", RootCmd.PersistentFlags().Lookup("mode"))
	viper.BindPFlag("threads", RootCmd.PersistentFlags().Lookup("threads"))

	RootCmd.Flags().StringP("paf", "p", "", "precomputed PAF with locus to contig alignments")
	RootCmd.Flags().StringP("distances", "d", "", "precomputed mash dist table")
	RootCmd.Flags().StringP("level", "l", "interval", "agreement level: base or interval")
	RootCmd.Flags().BoolP("per-class", "c", false, "break the agreement metrics down per class")

	RootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setLogLevel()
		loadSettings()
	}
}
