package signal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by the generators.
var (
	ErrInvalidRate   = errors.New("signal: sample rate must be positive and finite")
	ErrInvalidLength = errors.New("signal: sample count must be > 0")
	ErrInvalidLevel  = errors.New("signal: amplitude must be >= 0")
	ErrEmpty         = errors.New("signal: empty input")
)

// Generator produces reproducible test recordings at one sample rate. Every
// noise call restarts from the seed, so equal calls return equal slices.
type Generator struct {
	sampleRate float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed. The default is 1.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = seed }
}

// NewGenerator returns a generator for sampleRate Hz.
func NewGenerator(sampleRate float64, opts ...Option) (*Generator, error) {
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, sampleRate)
	}
	g := &Generator{sampleRate: sampleRate, seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g, nil
}

func (g *Generator) SampleRate() float64 { return g.sampleRate }
func (g *Generator) Seed() int64         { return g.seed }
func (g *Generator) SetSeed(seed int64)  { g.seed = seed }

func (g *Generator) newRand() *rand.Rand {
	return rand.New(rand.NewSource(g.seed))
}

// Sine returns samples of amplitude*sin(2*pi*freqHz*n/fs), starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	w := 2 * math.Pi * freqHz / g.sampleRate
	out := make([]float64, samples)
	for n := range out {
		out[n] = amplitude * math.Sin(w*float64(n))
	}
	return out, nil
}

// WhiteNoise returns uniform noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if err := checkNoise(amplitude, samples); err != nil {
		return nil, err
	}
	rng := g.newRand()
	out := make([]float64, samples)
	for n := range out {
		out[n] = amplitude * (2*rng.Float64() - 1)
	}
	return out, nil
}

// GaussianNoise returns zero-mean normal noise with standard deviation sigma.
func (g *Generator) GaussianNoise(sigma float64, samples int) ([]float64, error) {
	if err := checkNoise(sigma, samples); err != nil {
		return nil, err
	}
	rng := g.newRand()
	out := make([]float64, samples)
	for n := range out {
		out[n] = sigma * rng.NormFloat64()
	}
	return out, nil
}

func checkNoise(level float64, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if level < 0 || math.IsNaN(level) {
		return fmt.Errorf("%w: %v", ErrInvalidLevel, level)
	}
	return nil
}

// Normalize returns a copy of data scaled so that its largest magnitude is
// targetPeak. All-zero input stays zero.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if targetPeak < 0 || math.IsNaN(targetPeak) {
		return nil, fmt.Errorf("%w: target peak %v", ErrInvalidLevel, targetPeak)
	}

	out := make([]float64, len(data))
	peak := math.Max(floats.Max(data), -floats.Min(data))
	if peak == 0 {
		return out, nil
	}
	floats.ScaleTo(out, targetPeak/peak, data)
	return out, nil
}
