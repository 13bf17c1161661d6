package convection

import "errors"

// Error kinds reported by the estimators. Returned errors wrap one of these
// with call-specific detail; match with errors.Is.
var (
	ErrInvalidInput          = errors.New("convection: invalid input")
	ErrDegenerateGeometry    = errors.New("convection: sensor positions coincide")
	ErrInsufficientCoherence = errors.New("convection: insufficient coherence for phase fit")
	ErrZeroLag               = errors.New("convection: correlation peak at zero lag")
	ErrZeroPhaseSlope        = errors.New("convection: phase slope is zero")
)
