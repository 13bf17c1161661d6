package conv

import (
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// directThreshold is the shorter-input length up to which [Correlate] stays
// in the time domain.
const directThreshold = 64

// Correlate computes the full cross-correlation of a and b.
// The result has length len(a) + len(b) - 1.
// Output index k corresponds to lag k - (len(b) - 1), and
//
//	corr[lag] = sum_n a[n+lag] * b[n]
//
// so a positive lag means a trails b. The time-domain kernel is used when
// either input is short, the FFT kernel otherwise.
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	if min(len(a), len(b)) <= directThreshold {
		return CorrelateDirect(a, b)
	}
	return CorrelateFFT(a, b)
}

// CorrelateDirect is [Correlate] evaluated as a convolution of a with b
// reversed.
func CorrelateDirect(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	rev := make([]float64, len(b))
	for i, v := range b {
		rev[len(b)-1-i] = v
	}
	return Direct(a, rev)
}

// CorrelateFFT is [Correlate] evaluated as IFFT(A * conj(B)) over a
// power-of-two frame long enough to avoid circular wrap.
func CorrelateFFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	n, m := len(a), len(b)
	size := nextPowerOf2(n + m - 1)
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("conv: fft plan of size %d: %w", size, err)
	}

	fa, err := forward(plan, a, size)
	if err != nil {
		return nil, err
	}
	fb, err := forward(plan, b, size)
	if err != nil {
		return nil, err
	}
	for k, v := range fb {
		fa[k] *= cmplx.Conj(v)
	}

	// fb is no longer needed and receives the circular correlation.
	if err := plan.Inverse(fb, fa); err != nil {
		return nil, fmt.Errorf("conv: inverse fft: %w", err)
	}

	// Non-negative lags sit at the front of the frame, negative lags wrap to
	// the back.
	out := make([]float64, n+m-1)
	for lag := -(m - 1); lag < n; lag++ {
		out[IndexFromLag(lag, m)] = real(fb[(lag+size)%size])
	}
	return out, nil
}

func forward(plan *algofft.Plan[complex128], x []float64, size int) ([]complex128, error) {
	frame := make([]complex128, size)
	for i, v := range x {
		frame[i] = complex(v, 0)
	}
	bins := make([]complex128, size)
	if err := plan.Forward(bins, frame); err != nil {
		return nil, fmt.Errorf("conv: forward fft: %w", err)
	}
	return bins, nil
}

// Lags returns the lag axis of a full correlation of inputs with lengths
// lenA and lenB: -(lenB-1) .. lenA-1.
func Lags(lenA, lenB int) []int {
	if lenA <= 0 || lenB <= 0 {
		return nil
	}
	out := make([]int, lenA+lenB-1)
	for i := range out {
		out[i] = LagFromIndex(i, lenB)
	}
	return out
}

// FindPeakAbs finds the index of the largest |corr[i]|, returning the signed
// value stored there. Ties resolve to the first index.
func FindPeakAbs(corr []float64) (index int, value float64) {
	if len(corr) == 0 {
		return -1, 0
	}

	index = 0
	best := math.Abs(corr[0])

	for i, v := range corr {
		if a := math.Abs(v); a > best {
			index = i
			best = a
		}
	}

	return index, corr[index]
}

// FindPeakAbsWithin returns the first index whose |corr[i]| lies within tol
// of the largest magnitude, and the signed value stored there. Use it when
// corr carries rounding noise, as the FFT kernel does, so that ties still
// resolve to the earliest index.
func FindPeakAbsWithin(corr []float64, tol float64) (index int, value float64) {
	best, _ := FindPeakAbs(corr)
	if best < 0 {
		return -1, 0
	}
	floor := math.Abs(corr[best]) - math.Abs(tol)
	for i, v := range corr[:best] {
		if math.Abs(v) >= floor {
			return i, v
		}
	}
	return best, corr[best]
}

// LagFromIndex maps an index of [Correlate]'s output to its lag, given the
// length of the second input.
func LagFromIndex(index, lenB int) int {
	return index - (lenB - 1)
}

// IndexFromLag is the inverse of [LagFromIndex].
func IndexFromLag(lag, lenB int) int {
	return lag + (lenB - 1)
}
