// Package convection estimates the convection velocity of surface pressure
// fluctuations from a pair of sensors displaced along the flow direction.
//
// Two independent estimators are provided:
//
//   - [EstimateSpectral] fits a line to the unwrapped phase of the Welch
//     cross-spectral density over the coherent frequency range. A structure
//     convecting at speed Uc with separation dx produces phase 2*pi*f*dx/Uc,
//     so Uc = 2*pi*dx/slope.
//   - [EstimateCorrelation] locates the peak of the full cross-correlation of
//     the de-meaned signals and converts the lag to a delay, Uc = dx/delay.
//
// Both are pure functions. [Calculator] binds a signal pair and geometry and
// dispatches to either estimator; [EstimateBatch] runs many independent pairs
// concurrently.
//
// Sensor 1 is the reference. A disturbance reaching sensor 2 after sensor 1
// yields a positive delay and, for X2 > X1, a positive velocity.
package convection
