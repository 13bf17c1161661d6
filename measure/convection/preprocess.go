package convection

import (
	"fmt"

	"github.com/cwbudde/algo-convection/dsp/filter/design"
)

// DefaultHighPassHz is the preprocessing cutoff applied to raw recordings
// before estimation.
const DefaultHighPassHz = 60.0

// HighPass returns a copy of s filtered by a causal Butterworth highpass of
// the given order, starting from zero state.
func HighPass(s Signal, cutoffHz float64, order int) (Signal, error) {
	if err := s.Validate(); err != nil {
		return Signal{}, err
	}

	chain, err := design.HighpassChain(cutoffHz, order, s.SampleRate)
	if err != nil {
		return Signal{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return Signal{Samples: chain.Filter(s.Samples), SampleRate: s.SampleRate}, nil
}
