package spectrum

import "errors"

// Errors returned by spectral estimators.
var (
	ErrEmptyInput          = errors.New("spectrum: empty input")
	ErrLengthMismatch      = errors.New("spectrum: length mismatch")
	ErrInvalidSegmentation = errors.New("spectrum: invalid segmentation")
	ErrSignalTooShort      = errors.New("spectrum: signal shorter than segment")
)
