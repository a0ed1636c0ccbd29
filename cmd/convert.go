package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkrivosik/atomization-scorer/config"
	"github.com/mkrivosik/atomization-scorer/internal/geese"
	"github.com/mkrivosik/atomization-scorer/internal/paf"
)

// convertCmd turns a PAF into an atomization table.
var convertCmd = &cobra.Command{
	Use:   "convert <alignments.paf> <output.geese>",
	Short: "Convert PAF alignments into an atomization table",
	Long: `Turn alignments against class representatives into an atomization table.
Each record becomes one atom on the representative's coordinates, with the
class picked out of the target header.`,
	Example:                    "  atomization-scorer convert minimap2_alignment_filtered.paf atoms.geese",
	Args:                       cobra.ExactArgs(2),
	RunE:                       runConvert,
	SuggestionsMinimumDistance: 2,
}

// filterCmd drops weak alignments from a PAF.
var filterCmd = &cobra.Command{
	Use:   "filter <alignments.paf> <output.paf>",
	Short: "Filter a PAF by identity and alignment length",
	Long: `Keep only alignments at or above the identity threshold and block length.
Identity comes from the de:f divergence tag when present, otherwise from the
matching base count.`,
	Example:                    "  atomization-scorer filter minimap2_alignments.paf filtered.paf",
	Args:                       cobra.ExactArgs(2),
	RunE:                       runFilter,
	SuggestionsMinimumDistance: 2,
}

func runConvert(cmd *cobra.Command, args []string) error {
	if err := checkExt(args[0], ".paf"); err != nil {
		return err
	}

	records, warnings, err := paf.Read(args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warning(w)
	}

	atoms := paf.ToGeese(records)
	if err := geese.Write(args[1], atoms); err != nil {
		return err
	}

	log.Infof("converted %d alignments into %s", len(records), args[1])
	return nil
}

func runFilter(cmd *cobra.Command, args []string) error {
	viper.BindPFlag("align.min-identity", cmd.Flags().Lookup("min-identity"))
	viper.BindPFlag("align.min-length", cmd.Flags().Lookup("min-length"))

	if err := checkExt(args[0], ".paf"); err != nil {
		return err
	}
	conf := config.New()

	records, warnings, err := paf.Read(args[0])
	if err != nil {
		return err
	}
	for _, w := range warnings {
		log.Warning(w)
	}

	kept := paf.Filter(records, conf.Align.MinIdentity, conf.Align.MinLength)
	if err := paf.Write(args[1], kept); err != nil {
		return err
	}

	log.Infof("kept %d of %d alignments", len(kept), len(records))
	return nil
}

// set flags
func init() {
	filterCmd.Flags().Float64P("min-identity", "i", 0.95, "minimum alignment identity")
	filterCmd.Flags().IntP("min-length", "n", 500, "minimum alignment block length in bases")

	RootCmd.AddCommand(convertCmd)
	RootCmd.AddCommand(filterCmd)
}
