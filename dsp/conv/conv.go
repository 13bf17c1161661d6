package conv

import (
	"errors"
	"math/bits"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by the convolution and correlation kernels.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// Direct returns the full linear convolution of a and b, of length
// len(a)+len(b)-1, computed in O(len(a)*len(b)).
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	if err := DirectTo(result, a, b); err != nil {
		return nil, err
	}
	return result, nil
}

// DirectTo writes the convolution of a and b into dst, which must have
// length len(a)+len(b)-1.
func DirectTo(dst, a, b []float64) error {
	if len(a) == 0 {
		return ErrEmptyInput
	}
	if len(b) == 0 {
		return ErrEmptyKernel
	}
	if len(dst) != len(a)+len(b)-1 {
		return ErrLengthMismatch
	}

	clear(dst)
	// Each input sample adds a scaled copy of b at its offset.
	for i, v := range a {
		if v != 0 {
			floats.AddScaled(dst[i:i+len(b)], v, b)
		}
	}
	return nil
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
