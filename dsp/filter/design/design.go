package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-convection/dsp/filter/biquad"
)

const defaultQ = 1 / math.Sqrt2

// Errors returned by chain constructors.
var (
	ErrInvalidFrequency = errors.New("design: cutoff must lie in (0, fs/2)")
	ErrInvalidOrder     = errors.New("design: order must be > 0")
	ErrUnstable         = errors.New("design: unstable section")
)

// Highpass designs an RBJ highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return biquad.Coefficients{}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	b1 := -(1 + cw)
	return normalizeBiquad(-b1/2, b1, -b1/2, 1+alpha, -2*cw, 1-alpha)
}

// HighpassChain returns a ready-to-run Butterworth highpass cascade of the
// given order.
func HighpassChain(freq float64, order int, sampleRate float64) (*biquad.Chain, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}
	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return nil, fmt.Errorf("%w: %v Hz at fs=%v", ErrInvalidFrequency, freq, sampleRate)
	}

	coeffs := ButterworthHP(freq, order, sampleRate)
	for i, c := range coeffs {
		// Cutoffs far below fs round the poles onto the unit circle.
		if !c.Stable() {
			return nil, fmt.Errorf("%w: section %d of %v Hz at fs=%v", ErrUnstable, i, freq, sampleRate)
		}
	}
	return biquad.NewChain(coeffs), nil
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Coefficients{}
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
