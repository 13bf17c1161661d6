package convection

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-convection/dsp/conv"
	timestats "github.com/cwbudde/algo-convection/stats/time"
)

// peakTieTolerance is the relative spread within which correlation values
// count as equal when picking the peak. FFT rounding separates equal lags by
// a few ulps.
const peakTieTolerance = 1e-11

// EstimateCorrelation estimates the convection velocity from the lag of the
// cross-correlation peak.
//
// Both signals are de-meaned and correlated over every lag -(N-1)..N-1. The
// peak is the first index of maximum absolute correlation, where values that
// differ from the maximum only by rounding count as ties. A peak at lag 0
// returns ErrZeroLag together with the diagnostics.
func EstimateCorrelation(s1, s2 Signal, g Geometry) (VelocityResult[CorrelationEstimate], error) {
	var res VelocityResult[CorrelationEstimate]

	fs, err := validatePair(s1, s2)
	if err != nil {
		return res, err
	}
	if s1.Len() != s2.Len() {
		return res, fmt.Errorf("%w: signal lengths differ: %d vs %d", ErrInvalidInput, s1.Len(), s2.Len())
	}
	if err := g.Validate(); err != nil {
		return res, err
	}

	d1 := timestats.RemoveDC(s1.Samples)
	d2 := timestats.RemoveDC(s2.Samples)

	// Correlate(d2, d1)[k] = sum_n d2[n+lag]*d1[n], lag = k-(N-1).
	values, err := conv.Correlate(d2, d1)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	_, peakValue := conv.FindPeakAbs(values)
	peak, _ := conv.FindPeakAbsWithin(values, peakTieTolerance*math.Abs(peakValue))
	res.Diagnostics = CorrelationEstimate{
		Lags:       conv.Lags(len(d2), len(d1)),
		Values:     values,
		PeakIndex:  peak,
		SampleRate: fs,
	}

	delay := res.Diagnostics.TimeDelay()
	if delay == 0 {
		return res, ErrZeroLag
	}
	res.Velocity = g.Separation() / delay

	return res, nil
}
