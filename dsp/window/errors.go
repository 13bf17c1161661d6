package window

import "errors"

// Errors returned by the coefficient helpers.
var (
	ErrEmpty          = errors.New("window: no coefficients")
	ErrZeroGain       = errors.New("window: coefficients sum to zero")
	ErrLengthMismatch = errors.New("window: samples and coefficients differ in length")
)
