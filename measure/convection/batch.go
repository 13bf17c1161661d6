package convection

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pair is one named sensor pair for [EstimateBatch].
type Pair struct {
	Name     string
	S1, S2   Signal
	Geometry Geometry
}

// PairResult holds both estimates of one pair. A failed method leaves its
// error set; the other method is unaffected.
type PairResult struct {
	Name           string
	Spectral       VelocityResult[SpectralEstimate]
	SpectralErr    error
	Correlation    VelocityResult[CorrelationEstimate]
	CorrelationErr error
}

// EstimateBatch runs both estimators for every pair, at most
// [WithConcurrency] pairs at a time. Results keep the order of pairs.
//
// Per-pair failures never abort the batch. Once ctx is done no further pairs
// are started; those pairs report ctx.Err() for both methods.
func EstimateBatch(ctx context.Context, pairs []Pair, p SpectralParams, opts ...Option) []PairResult {
	cfg := applyOptions(opts)
	results := make([]PairResult, len(pairs))

	var g errgroup.Group
	g.SetLimit(cfg.concurrency)

	for i := range pairs {
		results[i].Name = pairs[i].Name
		if err := ctx.Err(); err != nil {
			results[i].SpectralErr = err
			results[i].CorrelationErr = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].SpectralErr = err
				results[i].CorrelationErr = err
				return nil
			}
			pr := &pairs[i]
			results[i].Spectral, results[i].SpectralErr = EstimateSpectral(pr.S1, pr.S2, pr.Geometry, p)
			results[i].Correlation, results[i].CorrelationErr = EstimateCorrelation(pr.S1, pr.S2, pr.Geometry)
			return nil
		})
	}

	_ = g.Wait()
	return results
}
