package convection

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-convection/dsp/spectrum"
	"github.com/cwbudde/algo-convection/dsp/window"
	"github.com/cwbudde/algo-convection/stats/fit"
)

// EstimateSpectral estimates the convection velocity from the slope of the
// cross-spectral phase.
//
// The signals are split into Hann-windowed segments of p.Window samples
// overlapping by p.Overlap, and averaged into one-sided density spectra. The
// fit range ends at the last bin whose coherence reaches p.CoherenceThreshold
// and always excludes DC. A shorter signal is zero-padded to the longer one.
//
// When the spectra could be computed but no velocity follows from them
// (ErrInsufficientCoherence, ErrZeroPhaseSlope) the returned result still
// carries the diagnostics with a zero Velocity.
func EstimateSpectral(s1, s2 Signal, g Geometry, p SpectralParams) (VelocityResult[SpectralEstimate], error) {
	var res VelocityResult[SpectralEstimate]

	fs, err := validatePair(s1, s2)
	if err != nil {
		return res, err
	}
	if err := g.Validate(); err != nil {
		return res, err
	}
	if err := p.Validate(); err != nil {
		return res, err
	}
	if s1.Len() < p.Window || s2.Len() < p.Window {
		return res, fmt.Errorf("%w: window %d exceeds signal length (%d, %d)",
			ErrInvalidInput, p.Window, s1.Len(), s2.Len())
	}

	cfg := spectrum.WelchConfig{
		SegmentLength: p.Window,
		Overlap:       p.Overlap,
		SampleRate:    fs,
		Window:        window.TypeHann,
		Detrend:       spectrum.DetrendConstant,
	}

	// Welch(s2, s1) yields conj(S2)*S1: positive phase slope for a downstream
	// sensor 2.
	cs, err := spectrum.Welch(s2.Samples, s1.Samples, cfg)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	est := SpectralEstimate{
		Frequencies: cs.Frequencies,
		CSD:         cs.Pxy,
		PSD1:        cs.Pyy,
		PSD2:        cs.Pxx,
		Coherence:   cs.Coherence(),
		Threshold:   p.CoherenceThreshold,
		Segments:    cs.Segments,
	}
	res.Diagnostics = est

	cutoff := CoherenceCutoff(est.Coherence, p.CoherenceThreshold)
	if cutoff < 0 {
		return res, fmt.Errorf("%w: no bin reaches coherence %v", ErrInsufficientCoherence, p.CoherenceThreshold)
	}
	est.Cutoff = cutoff
	res.Diagnostics = est

	// Fit range [1, cutoff) needs at least two bins.
	if cutoff < 3 {
		return res, fmt.Errorf("%w: cutoff bin %d leaves %d fit points",
			ErrInsufficientCoherence, cutoff, max(cutoff-1, 0))
	}

	est.FitPhase = spectrum.UnwrapPhase(spectrum.Phase(est.CSD[1:cutoff]))

	line, err := fit.LinearFit(est.Frequencies[1:cutoff], est.FitPhase)
	if err != nil {
		res.Diagnostics = est
		if errors.Is(err, fit.ErrTooFewPoints) {
			return res, fmt.Errorf("%w: %w", ErrInsufficientCoherence, err)
		}
		return res, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	est.Slope = line.Slope
	est.Intercept = line.Intercept
	res.Diagnostics = est

	if est.Slope == 0 {
		return res, ErrZeroPhaseSlope
	}

	v := g.Separation() / est.Slope * 2 * math.Pi
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return res, fmt.Errorf("%w: non-finite velocity from slope %v", ErrInvalidInput, est.Slope)
	}
	res.Velocity = v

	return res, nil
}

// CoherenceCutoff returns the last bin index whose coherence is at least
// threshold, or -1 when no bin qualifies. Bins below the threshold before the
// returned index do not shorten the range.
func CoherenceCutoff(coherence []float64, threshold float64) int {
	for k := len(coherence) - 1; k >= 0; k-- {
		if coherence[k] >= threshold {
			return k
		}
	}
	return -1
}

// validatePair checks both signals and returns their common sampling rate.
func validatePair(s1, s2 Signal) (float64, error) {
	if err := s1.Validate(); err != nil {
		return 0, fmt.Errorf("sensor 1: %w", err)
	}
	if err := s2.Validate(); err != nil {
		return 0, fmt.Errorf("sensor 2: %w", err)
	}
	if s1.SampleRate != s2.SampleRate {
		return 0, fmt.Errorf("%w: sample rates differ: %v vs %v", ErrInvalidInput, s1.SampleRate, s2.SampleRate)
	}
	return s1.SampleRate, nil
}
