package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// Type selects a window shape.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
)

// Metadata lists the tabulated spectral properties of a window shape.
// ENBW is in bins, HighestSidelobe in dB.
type Metadata struct {
	Name            string
	ENBW            float64
	HighestSidelobe float64
	CoherentGain    float64
}

// Every supported shape is a generalized cosine sum
// w(x) = sum_k a[k] cos(2*pi*k*x) over x in [0, 1].
var shapes = map[Type]struct {
	meta Metadata
	a    []float64
}{
	TypeRectangular: {Metadata{"Rectangular", 1.0, -13.3, 1.0}, []float64{1}},
	TypeHann:        {Metadata{"Hann", 1.5, -31.5, 0.5}, []float64{0.5, -0.5}},
}

// Option adjusts window generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic drops the closing sample of the symmetric form, so that
// length-n windows tile an n-point DFT frame. Welch segments use it.
func WithPeriodic() Option {
	return func(c *config) { c.periodic = true }
}

// Generate returns length coefficients of shape t, or nil for length <= 0.
// Unknown shapes are rectangular.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	a := []float64{1}
	if s, ok := shapes[t]; ok {
		a = s.a
	}

	den := float64(length - 1)
	if cfg.periodic {
		den = float64(length)
	}

	out := make([]float64, length)
	for n := range out {
		x := 0.0
		if length > 1 {
			x = float64(n) / den
		}
		out[n] = cosineSum(a, x)
	}
	return out
}

func cosineSum(a []float64, x float64) float64 {
	phase := 2 * math.Pi * x
	var w float64
	for k, ak := range a {
		w += ak * math.Cos(float64(k)*phase)
	}
	return w
}

// ApplyCoefficientsInPlace multiplies samples by coeffs.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(samples), len(coeffs))
	}
	vecmath.MulBlockInPlace(samples, coeffs)
	return nil
}

// Info returns the tabulated properties of t, or the zero Metadata.
func Info(t Type) Metadata {
	return shapes[t].meta
}

func (t Type) String() string {
	if s, ok := shapes[t]; ok {
		return s.meta.Name
	}
	return "unknown"
}

// PowerGain returns sum(w^2). Density-scaled periodograms divide by
// fs*PowerGain.
func PowerGain(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, ErrEmpty
	}
	return floats.Dot(coeffs, coeffs), nil
}

// EquivalentNoiseBandwidth returns N*sum(w^2)/sum(w)^2 in bins.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, ErrEmpty
	}
	sum := floats.Sum(coeffs)
	if sum == 0 {
		return 0, ErrZeroGain
	}
	return float64(len(coeffs)) * floats.Dot(coeffs, coeffs) / (sum * sum), nil
}
