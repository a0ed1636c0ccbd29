package scorer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// AnalyzeAll profiles every locus of the set concurrently, one task per
// locus, and returns the adjusted profiles ordered by locus ID. Each result
// lands in a fixed slot so worker completion order never changes the
// outcome. Loci without alignments still get a profile and classify as
// absent later.
func AnalyzeAll(ctx context.Context, loci *LocusSet, byLocus map[string][]Alignment, distances *DistanceSet, w Weighting, threads int) ([]Profile, error) {
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	ids := loci.IDs()
	profiles := make([]Profile, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(threads)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			locus, _ := loci.Get(id)
			p, err := Analyze(locus, byLocus[id])
			if err != nil {
				return err
			}
			profiles[i] = w.Adjust(p, distances)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return profiles, nil
}
