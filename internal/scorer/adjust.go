package scorer

// Weighting holds the thresholds that turn distance estimates into
// confidence weights on fragmentation evidence.
type Weighting struct {
	// DivergenceThreshold at or below which a contig keeps full confidence
	DivergenceThreshold float64

	// MaxDistance normalizes a distance into [0, 1] before weighting
	MaxDistance float64

	// MinWeight floors every weight so evidence is never fully erased
	MinWeight float64
}

// Weight maps a distance estimate to a confidence weight. Distances within
// the divergence threshold keep full confidence, beyond it the weight falls
// proportionally to 1 - distance/MaxDistance and never below MinWeight.
func (w Weighting) Weight(distance float64) float64 {
	if distance <= w.DivergenceThreshold {
		return 1
	}

	max := w.MaxDistance
	if max <= 0 {
		max = 1
	}

	weight := 1 - distance/max
	if weight < w.MinWeight {
		weight = w.MinWeight
	}
	if weight > 1 {
		weight = 1
	}
	return weight
}

// Adjust reweighs a profile's contig evidence against distance records and
// returns the adjusted copy, the input profile stays untouched. A contig
// without any distance estimate keeps full confidence, so a nil or empty set
// reproduces the raw index. The adjusted index is the summed contig weight
// minus one, floored at zero, making one fully trusted contig look intact
// and every further contig count by its confidence.
func (w Weighting) Adjust(p Profile, distances *DistanceSet) Profile {
	adjusted := p
	adjusted.Weights = make([]ContigWeight, len(p.Weights))

	sum := 0.0
	for i, cw := range p.Weights {
		cw.Weight = 1
		cw.Distance = -1
		if d, ok := distances.Lookup(p.Locus, cw.Contig); ok {
			cw.Distance = d.Value
			cw.Weight = w.Weight(d.Value)
		}

		adjusted.Weights[i] = cw
		sum += cw.Weight
	}

	adjusted.Index = 0
	if sum > 1 {
		adjusted.Index = sum - 1
	}
	return adjusted
}
