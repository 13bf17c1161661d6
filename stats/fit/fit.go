// Package fit provides least-squares model fits.
package fit

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Errors returned by LinearFit.
var (
	ErrTooFewPoints   = errors.New("fit: need at least two points")
	ErrLengthMismatch = errors.New("fit: x and y lengths differ")
	ErrDegenerateX    = errors.New("fit: x values are all equal")
)

// Line is y = Slope*x + Intercept.
type Line struct {
	Slope     float64
	Intercept float64
}

// At evaluates the line at x.
func (l Line) At(x float64) float64 {
	return l.Slope*x + l.Intercept
}

// Eval evaluates the line at every xs[i].
func (l Line) Eval(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = l.At(x)
	}
	return out
}

// LinearFit returns the ordinary least-squares line through (x[i], y[i]).
func LinearFit(x, y []float64) (Line, error) {
	if len(x) != len(y) {
		return Line{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(y))
	}
	if len(x) < 2 {
		return Line{}, fmt.Errorf("%w: have %d", ErrTooFewPoints, len(x))
	}
	if floats.Max(x) == floats.Min(x) {
		return Line{}, ErrDegenerateX
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)
	return Line{Slope: beta, Intercept: alpha}, nil
}
