package convection

import (
	"fmt"
	"runtime"
)

type config struct {
	threshold   float64
	concurrency int
}

func defaultConfig() config {
	return config{
		threshold:   DefaultCoherenceThreshold,
		concurrency: runtime.GOMAXPROCS(0),
	}
}

// Option configures a [Calculator] or [EstimateBatch].
type Option func(*config)

// WithCoherenceThreshold sets the coherence gate of the frequency-domain
// method. Values outside (0, 1] are rejected when an estimate is requested.
func WithCoherenceThreshold(t float64) Option {
	return func(c *config) { c.threshold = t }
}

// WithConcurrency bounds the number of pairs [EstimateBatch] processes at
// once. Values < 1 fall back to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.concurrency = n
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Calculator binds a sensor pair and its geometry. It holds private copies of
// the samples and never caches results, so its methods may be called in any
// order, any number of times, from multiple goroutines.
type Calculator struct {
	s1, s2    Signal
	geometry  Geometry
	threshold float64
}

// NewCalculator validates the pair and returns a Calculator.
func NewCalculator(s1, s2 Signal, g Geometry, opts ...Option) (*Calculator, error) {
	if _, err := validatePair(s1, s2); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	cfg := applyOptions(opts)
	if !(cfg.threshold > 0) || cfg.threshold > 1 {
		return nil, fmt.Errorf("%w: coherence threshold must be in (0, 1]: %v", ErrInvalidInput, cfg.threshold)
	}

	return &Calculator{
		s1:        cloneSignal(s1),
		s2:        cloneSignal(s2),
		geometry:  g,
		threshold: cfg.threshold,
	}, nil
}

// SampleRate returns the common sampling rate of the pair.
func (c *Calculator) SampleRate() float64 { return c.s1.SampleRate }

// Geometry returns the sensor positions.
func (c *Calculator) Geometry() Geometry { return c.geometry }

// FrequencyDomain runs [EstimateSpectral] with the given segmentation.
func (c *Calculator) FrequencyDomain(window, overlap int) (VelocityResult[SpectralEstimate], error) {
	return EstimateSpectral(c.s1, c.s2, c.geometry, SpectralParams{
		Window:             window,
		Overlap:            overlap,
		CoherenceThreshold: c.threshold,
	})
}

// TimeDomain runs [EstimateCorrelation].
func (c *Calculator) TimeDomain() (VelocityResult[CorrelationEstimate], error) {
	return EstimateCorrelation(c.s1, c.s2, c.geometry)
}

func cloneSignal(s Signal) Signal {
	out := Signal{Samples: make([]float64, len(s.Samples)), SampleRate: s.SampleRate}
	copy(out.Samples, s.Samples)
	return out
}
