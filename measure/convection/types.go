package convection

import (
	"fmt"
	"math"
)

// DefaultCoherenceThreshold is the minimum magnitude-squared coherence a bin
// needs to extend the phase-fit range.
const DefaultCoherenceThreshold = 0.1

// Signal is a finite real-valued recording with its sampling rate in Hz.
type Signal struct {
	Samples    []float64
	SampleRate float64
}

// Len returns the number of samples.
func (s Signal) Len() int { return len(s.Samples) }

// Duration returns the signal length in seconds.
func (s Signal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / s.SampleRate
}

// Validate reports whether the signal is non-empty with a positive, finite
// sampling rate.
func (s Signal) Validate() error {
	if len(s.Samples) == 0 {
		return fmt.Errorf("%w: empty signal", ErrInvalidInput)
	}
	if !(s.SampleRate > 0) || math.IsInf(s.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be positive and finite: %v", ErrInvalidInput, s.SampleRate)
	}
	return nil
}

// Geometry holds the sensor coordinates along the flow direction in meters.
type Geometry struct {
	X1 float64
	X2 float64
}

// Separation returns X2 - X1.
func (g Geometry) Separation() float64 { return g.X2 - g.X1 }

// Validate reports ErrDegenerateGeometry for coincident or non-finite positions.
func (g Geometry) Validate() error {
	if math.IsNaN(g.X1) || math.IsNaN(g.X2) || math.IsInf(g.X1, 0) || math.IsInf(g.X2, 0) {
		return fmt.Errorf("%w: non-finite position (%v, %v)", ErrDegenerateGeometry, g.X1, g.X2)
	}
	if g.X1 == g.X2 {
		return fmt.Errorf("%w: x1 = x2 = %v", ErrDegenerateGeometry, g.X1)
	}
	return nil
}

// SpectralParams configures the Welch segmentation and the coherence gate of
// the frequency-domain estimator.
type SpectralParams struct {
	Window             int     // segment length in samples
	Overlap            int     // samples shared by consecutive segments
	CoherenceThreshold float64 // in (0, 1]
}

// DefaultSpectralParams returns half-overlapping segments of the given length
// gated at [DefaultCoherenceThreshold].
func DefaultSpectralParams(window int) SpectralParams {
	return SpectralParams{
		Window:             window,
		Overlap:            window / 2,
		CoherenceThreshold: DefaultCoherenceThreshold,
	}
}

// ParamsForResolution derives the segment length from a target frequency
// resolution: window = fs/df, overlap = window/2.
func ParamsForResolution(sampleRate, resolutionHz float64) (SpectralParams, error) {
	if !(sampleRate > 0) || !(resolutionHz > 0) || resolutionHz > sampleRate/2 {
		return SpectralParams{}, fmt.Errorf("%w: resolution %v Hz at fs=%v", ErrInvalidInput, resolutionHz, sampleRate)
	}
	return DefaultSpectralParams(int(sampleRate / resolutionHz)), nil
}

// Validate checks the segmentation and threshold.
func (p SpectralParams) Validate() error {
	switch {
	case p.Window <= 0:
		return fmt.Errorf("%w: window must be > 0: %d", ErrInvalidInput, p.Window)
	case p.Overlap <= 0:
		return fmt.Errorf("%w: overlap must be > 0: %d", ErrInvalidInput, p.Overlap)
	case p.Overlap >= p.Window:
		return fmt.Errorf("%w: overlap %d must be < window %d", ErrInvalidInput, p.Overlap, p.Window)
	case !(p.CoherenceThreshold > 0) || p.CoherenceThreshold > 1:
		return fmt.Errorf("%w: coherence threshold must be in (0, 1]: %v", ErrInvalidInput, p.CoherenceThreshold)
	}
	return nil
}

// SpectralEstimate is the diagnostic payload of the frequency-domain method.
//
// CSD holds conj(S2)*S1, so a disturbance reaching sensor 2 later produces a
// phase that grows with frequency. FitPhase is the unwrapped CSD phase over
// bins [1, Cutoff), aligned with Frequencies[1:Cutoff].
type SpectralEstimate struct {
	Frequencies []float64
	CSD         []complex128
	PSD1        []float64
	PSD2        []float64
	Coherence   []float64
	FitPhase    []float64
	Slope       float64 // rad/Hz
	Intercept   float64 // rad
	Cutoff      int
	Threshold   float64
	Segments    int
}

// FitFrequencies returns the frequency bins used by the phase fit.
func (e SpectralEstimate) FitFrequencies() []float64 {
	if e.Cutoff <= 1 || e.Cutoff > len(e.Frequencies) {
		return nil
	}
	return e.Frequencies[1:e.Cutoff]
}

// FitAt evaluates the fitted phase line at f Hz.
func (e SpectralEstimate) FitAt(f float64) float64 {
	return e.Slope*f + e.Intercept
}

// CutoffFrequency returns the frequency of the cutoff bin in Hz.
func (e SpectralEstimate) CutoffFrequency() float64 {
	if e.Cutoff < 0 || e.Cutoff >= len(e.Frequencies) {
		return 0
	}
	return e.Frequencies[e.Cutoff]
}

// CorrelationEstimate is the diagnostic payload of the time-domain method.
//
// Values[i] = sum_n d1[n]*d2[n+Lags[i]] over the de-meaned signals d1, d2.
type CorrelationEstimate struct {
	Lags       []int
	Values     []float64
	PeakIndex  int
	SampleRate float64
}

// PeakLag returns the lag in samples at the correlation peak.
func (e CorrelationEstimate) PeakLag() int {
	if e.PeakIndex < 0 || e.PeakIndex >= len(e.Lags) {
		return 0
	}
	return e.Lags[e.PeakIndex]
}

// PeakValue returns the signed correlation value at the peak.
func (e CorrelationEstimate) PeakValue() float64 {
	if e.PeakIndex < 0 || e.PeakIndex >= len(e.Values) {
		return 0
	}
	return e.Values[e.PeakIndex]
}

// TimeDelay returns the peak lag in seconds.
func (e CorrelationEstimate) TimeDelay() float64 {
	if e.SampleRate <= 0 {
		return 0
	}
	return float64(e.PeakLag()) / e.SampleRate
}

// ZeroLagValue returns the correlation at lag 0.
func (e CorrelationEstimate) ZeroLagValue() float64 {
	for i, l := range e.Lags {
		if l == 0 {
			return e.Values[i]
		}
	}
	return 0
}

// Times returns the lag axis in seconds.
func (e CorrelationEstimate) Times() []float64 {
	out := make([]float64, len(e.Lags))
	if e.SampleRate <= 0 {
		return out
	}
	for i, l := range e.Lags {
		out[i] = float64(l) / e.SampleRate
	}
	return out
}

// Estimate constrains the diagnostic payloads carried by [VelocityResult].
type Estimate interface {
	SpectralEstimate | CorrelationEstimate
}

// VelocityResult is a velocity in m/s with the diagnostics that produced it.
type VelocityResult[E Estimate] struct {
	Velocity    float64
	Diagnostics E
}
