package biquad

import "math"

// Coefficients of one second-order section, normalized so that a0 = 1:
//
//	H(z) = (B0 + B1 z^-1 + B2 z^-2) / (1 + A1 z^-1 + A2 z^-2)
//
// A first-order section has B2 = A2 = 0.
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// Stable reports whether both poles lie strictly inside the unit circle and
// every coefficient is finite.
func (c Coefficients) Stable() bool {
	for _, v := range [...]float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Section runs one set of coefficients in transposed direct form II.
type Section struct {
	Coefficients

	z [2]float64
}

// NewSection returns a section with zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one sample.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.z[0]
	s.z[0] = s.B1*x - s.A1*y + s.z[1]
	s.z[1] = s.B2*x - s.A2*y
	return y
}

// ProcessBlock filters buf in place.
func (s *Section) ProcessBlock(buf []float64) {
	s.ProcessBlockTo(buf, buf)
}

// ProcessBlockTo writes the filtered src into dst, which must hold at least
// len(src) samples. dst may alias src.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}
	dst = dst[:len(src)]

	c := s.Coefficients
	z0, z1 := s.z[0], s.z[1]
	for i, x := range src {
		y := c.B0*x + z0
		z0 = c.B1*x - c.A1*y + z1
		z1 = c.B2*x - c.A2*y
		dst[i] = y
	}
	s.z = [2]float64{z0, z1}
}

// Reset zeroes the state.
func (s *Section) Reset() {
	s.z = [2]float64{}
}
