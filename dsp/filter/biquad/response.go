package biquad

import (
	"math"
	"math/cmplx"
)

// Response returns H(e^jw) at freqHz for the given sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate) // z^-1
	return quadratic(c.B0, c.B1, c.B2, z) / quadratic(1, c.A1, c.A2, z)
}

// quadratic evaluates p0 + p1*z + p2*z^2.
func quadratic(p0, p1, p2 float64, z complex128) complex128 {
	return complex(p0, 0) + z*(complex(p1, 0)+z*complex(p2, 0))
}

// Response returns the product of the section responses.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for _, s := range c.sections {
		h *= s.Response(freqHz, sampleRate)
	}
	return h
}

// MagnitudeDB returns |H| of the cascade at freqHz in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}
