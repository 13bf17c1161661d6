package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// split keeps a spectrum as separate real and imaginary slices, the layout
// the vecmath kernels work on.
type split struct {
	re, im []float64
}

func newSplit(n int) *split {
	return &split{re: make([]float64, n), im: make([]float64, n)}
}

func (s *split) load(in []complex128) {
	for i, c := range in {
		s.re[i] = real(c)
		s.im[i] = imag(c)
	}
}

// powerTo writes |in[k]|^2 into dst using s as scratch.
func (s *split) powerTo(dst []float64, in []complex128) {
	s.load(in)
	vecmath.Power(dst, s.re, s.im)
}

// Phase returns arg(X[k]) in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}

// UnwrapPhase returns a copy of phase with jumps larger than pi between
// neighbouring bins replaced by their complement modulo 2*pi. A jump of
// exactly +/-pi is kept as is.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]

	var correction float64
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		if math.Abs(d) > math.Pi {
			correction += wrapToPi(d) - d
		}
		out[i] = phase[i] + correction
	}
	return out
}

// wrapToPi maps d into [-pi, pi], sending positive odd multiples of pi to +pi.
func wrapToPi(d float64) float64 {
	w := math.Mod(d+math.Pi, 2*math.Pi)
	if w < 0 {
		w += 2 * math.Pi
	}
	w -= math.Pi
	if w == -math.Pi && d > 0 {
		return math.Pi
	}
	return w
}

// Frequencies returns the one-sided axis of an n-point DFT at sampleRate:
// n/2+1 bins spaced sampleRate/n apart, starting at 0.
func Frequencies(n int, sampleRate float64) []float64 {
	if n <= 0 {
		return nil
	}
	df := sampleRate / float64(n)
	out := make([]float64, n/2+1)
	for k := range out {
		out[k] = float64(k) * df
	}
	return out
}
