package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mkrivosik/atomization-scorer/config"
	"github.com/mkrivosik/atomization-scorer/internal/geese"
	"github.com/mkrivosik/atomization-scorer/internal/pipeline"
)

// compareCmd scores one atomization against another without touching the
// assembly itself.
var compareCmd = &cobra.Command{
	Use:   "compare <predicted.geese> <true.geese> <output-dir>",
	Short: "Compare a predicted atomization against a gold standard",
	Long: `Scan a predicted atomization against a gold standard one and report the
agreement as precision, recall and F1, either per base or per interval.

The metric and interval status tables land in the output directory.`,
	Example:                    "  atomization-scorer compare predicted.geese true_atomization.geese results/",
	Args:                       cobra.ExactArgs(3),
	RunE:                       runCompare,
	SuggestionsMinimumDistance: 2,
}

func runCompare(cmd *cobra.Command, args []string) error {
	viper.BindPFlag("score.level", cmd.Flags().Lookup("level"))
	viper.BindPFlag("score.per-class", cmd.Flags().Lookup("per-class"))
	viper.BindPFlag("score.min-overlap-ratio", cmd.Flags().Lookup("min-overlap"))

	predictedPath, truthPath, outDir := args[0], args[1], args[2]
	if err := checkExt(predictedPath, ".geese"); err != nil {
		return err
	}
	if err := checkExt(truthPath, ".geese"); err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create the output directory: %w", err)
	}

	predicted, err := geese.Read(predictedPath)
	if err != nil {
		return err
	}
	truth, err := geese.Read(truthPath)
	if err != nil {
		return err
	}

	conf := config.New()
	comp, err := pipeline.Compare(predicted, truth, outDir, conf)
	if err != nil {
		return err
	}

	tp, fp, fn := comp.Counts.Totals()
	fmt.Printf("TP %d  FP %d  FN %d\n", tp, fp, fn)
	fmt.Printf("alignment score (%s level): %.4f\n", comp.Level, comp.Alignment)
	if conf.Score.PerClass {
		for _, m := range comp.PerClass {
			fmt.Printf("  class %d: precision %.4f  recall %.4f  F1 %.4f\n", m.Class, m.Precision, m.Recall, m.F1)
		}
	}
	return nil
}

// set flags
func init() {
	compareCmd.Flags().StringP("level", "l", "interval", "agreement level: base or interval")
	compareCmd.Flags().BoolP("per-class", "c", false, "break the agreement metrics down per class")
	compareCmd.Flags().Float64P("min-overlap", "r", 0.8, "Jaccard overlap for matching intervals")

	RootCmd.AddCommand(compareCmd)
}
