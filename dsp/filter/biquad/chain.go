package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// Higher-order designs such as Butterworth filters are expressed as a chain
// where each second-order section feeds into the next.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade from one or more coefficient sets.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}
	return c
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters a block in-place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Filter returns src filtered from zero initial state, as a recording is
// filtered offline. Neither src nor the chain state is modified, so one chain
// can filter several channels.
func (c *Chain) Filter(src []float64) []float64 {
	out := make([]float64, len(src))
	if len(c.sections) == 0 {
		copy(out, src)
		return out
	}

	in := src
	for i := range c.sections {
		s := Section{Coefficients: c.sections[i].Coefficients}
		s.ProcessBlockTo(out, in)
		in = out
	}
	return out
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the nominal filter order (2 per section).
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Coefficients returns a copy of the per-section coefficients.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}
	return out
}
