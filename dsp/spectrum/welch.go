package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-convection/dsp/window"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Detrend selects the per-segment trend removal applied before windowing.
type Detrend int

const (
	// DetrendNone leaves segments untouched.
	DetrendNone Detrend = iota
	// DetrendConstant subtracts each segment's mean.
	DetrendConstant
)

// WelchConfig holds the parameters of Welch's averaged modified periodogram.
type WelchConfig struct {
	SegmentLength int
	Overlap       int
	SampleRate    float64
	Window        window.Type
	Detrend       Detrend
}

// DefaultWelchConfig returns a Hann-windowed, 50%-overlap, mean-detrended
// configuration for the given segment length.
func DefaultWelchConfig(sampleRate float64, segmentLength int) WelchConfig {
	return WelchConfig{
		SegmentLength: segmentLength,
		Overlap:       segmentLength / 2,
		SampleRate:    sampleRate,
		Window:        window.TypeHann,
		Detrend:       DetrendConstant,
	}
}

// Validate reports whether the configuration describes a usable segmentation.
func (c WelchConfig) Validate() error {
	if c.SegmentLength <= 0 {
		return fmt.Errorf("%w: segment length must be > 0: %d", ErrInvalidSegmentation, c.SegmentLength)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("%w: overlap must be >= 0: %d", ErrInvalidSegmentation, c.Overlap)
	}
	if c.Overlap >= c.SegmentLength {
		return fmt.Errorf("%w: overlap %d must be < segment length %d", ErrInvalidSegmentation, c.Overlap, c.SegmentLength)
	}
	if !(c.SampleRate > 0) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidSegmentation, c.SampleRate)
	}
	return nil
}

// Step returns the hop between consecutive segment starts.
func (c WelchConfig) Step() int {
	return c.SegmentLength - c.Overlap
}

// SegmentCount returns how many full segments fit into n samples.
func (c WelchConfig) SegmentCount(n int) int {
	if n < c.SegmentLength || c.Step() <= 0 {
		return 0
	}
	return (n-c.SegmentLength)/c.Step() + 1
}

// CrossSpectrum is the one-sided, density-scaled output of [Welch].
//
// Pxy is the average of conj(X)·Y over segments, so its phase is the phase of
// y relative to x.
type CrossSpectrum struct {
	Frequencies []float64
	Pxy         []complex128
	Pxx         []float64
	Pyy         []float64
	Segments    int
}

// Welch estimates the cross-spectral density of x and y together with both
// auto-spectral densities in a single pass over shared segments.
//
// The shorter input is zero-padded to the length of the longer one. Both
// inputs must hold at least one full segment.
func Welch(x, y []float64, cfg WelchConfig) (*CrossSpectrum, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x) == 0 || len(y) == 0 {
		return nil, ErrEmptyInput
	}
	if len(x) < cfg.SegmentLength || len(y) < cfg.SegmentLength {
		return nil, fmt.Errorf("%w: need %d samples, have %d and %d",
			ErrSignalTooShort, cfg.SegmentLength, len(x), len(y))
	}

	n := max(len(x), len(y))
	x = zeroPad(x, n)
	y = zeroPad(y, n)

	seg := cfg.SegmentLength
	step := cfg.Step()
	segments := cfg.SegmentCount(n)
	bins := seg/2 + 1

	win := window.Generate(cfg.Window, seg, window.WithPeriodic())
	powerGain, err := window.PowerGain(win)
	if err != nil {
		return nil, err
	}
	if powerGain == 0 {
		return nil, fmt.Errorf("%w: window has zero power", ErrInvalidSegmentation)
	}

	fft := fourier.NewFFT(seg)
	bufX := make([]float64, seg)
	bufY := make([]float64, seg)
	specX := make([]complex128, bins)
	specY := make([]complex128, bins)
	scratch := newSplit(bins)
	pow := make([]float64, bins)

	out := &CrossSpectrum{
		Frequencies: Frequencies(seg, cfg.SampleRate),
		Pxy:         make([]complex128, bins),
		Pxx:         make([]float64, bins),
		Pyy:         make([]float64, bins),
		Segments:    segments,
	}

	for s := 0; s < segments; s++ {
		off := s * step
		if err := prepareSegment(bufX, x[off:off+seg], win, cfg.Detrend); err != nil {
			return nil, err
		}
		if err := prepareSegment(bufY, y[off:off+seg], win, cfg.Detrend); err != nil {
			return nil, err
		}

		specX = fft.Coefficients(specX, bufX)
		specY = fft.Coefficients(specY, bufY)

		for k, xk := range specX {
			out.Pxy[k] += cmplx.Conj(xk) * specY[k]
		}
		scratch.powerTo(pow, specX)
		floats.Add(out.Pxx, pow)
		scratch.powerTo(pow, specY)
		floats.Add(out.Pyy, pow)
	}

	scale := 1 / (cfg.SampleRate * powerGain * float64(segments))

	// DC and, for even lengths, Nyquist have no negative-frequency twin.
	last := bins
	if seg%2 == 0 {
		last = bins - 1
	}

	for k := 0; k < bins; k++ {
		f := scale
		if k > 0 && k < last {
			f *= 2
		}
		out.Pxy[k] *= complex(f, 0)
		out.Pxx[k] *= f
		out.Pyy[k] *= f
	}

	return out, nil
}

// Coherence returns the magnitude-squared coherence |Pxy|^2 / (Pxx·Pyy).
//
// Bins without energy in either auto-spectrum report 0. Results are clamped
// to [0, 1] to absorb rounding.
func Coherence(pxy []complex128, pxx, pyy []float64) ([]float64, error) {
	if len(pxy) != len(pxx) || len(pxy) != len(pyy) {
		return nil, fmt.Errorf("%w: %d, %d, %d", ErrLengthMismatch, len(pxy), len(pxx), len(pyy))
	}

	out := make([]float64, len(pxy))
	for k, c := range pxy {
		den := pxx[k] * pyy[k]
		if !(den > 0) {
			continue
		}
		g := (real(c)*real(c) + imag(c)*imag(c)) / den
		out[k] = math.Min(math.Max(g, 0), 1)
	}
	return out, nil
}

// Coherence returns the magnitude-squared coherence of the cross spectrum.
func (cs *CrossSpectrum) Coherence() []float64 {
	out, _ := Coherence(cs.Pxy, cs.Pxx, cs.Pyy)
	return out
}

func prepareSegment(dst, src, win []float64, detrend Detrend) error {
	copy(dst, src)
	if detrend == DetrendConstant {
		floats.AddConst(-floats.Sum(src)/float64(len(src)), dst)
	}
	return window.ApplyCoefficientsInPlace(dst, win)
}

func zeroPad(x []float64, n int) []float64 {
	if len(x) >= n {
		return x
	}
	out := make([]float64, n)
	copy(out, x)
	return out
}
