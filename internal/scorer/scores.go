package scorer

import (
	"math"

	"github.com/mkrivosik/atomization-scorer/internal/geese"
)

// CoverageScore is the fraction of the summed genome length the atoms span,
// counting each atom's inclusive length without deduplication.
func CoverageScore(atoms []geese.Atom, genomeBases int) float64 {
	if genomeBases <= 0 {
		return 0
	}

	covered := 0
	for _, a := range atoms {
		covered += a.Length()
	}
	return float64(covered) / float64(genomeBases)
}

// OverallScore blends the alignment F1 with the coverage score as a weighted
// geometric mean, clamped to [0, 1].
func OverallScore(alignment, coverage, alignmentWeight, coverageWeight float64) float64 {
	return clamp01(math.Pow(alignment, alignmentWeight) * math.Pow(coverage, coverageWeight))
}
