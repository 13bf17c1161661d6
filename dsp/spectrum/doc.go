// Package spectrum provides spectrum-domain utilities and Welch spectral
// density estimation.
//
// [Welch] segments its inputs with a configurable overlap, tapers each
// segment, and averages the per-segment periodograms into one-sided,
// density-scaled auto- and cross-spectra. Helpers for magnitude, power,
// phase unwrapping and coherence operate on the resulting bins.
package spectrum
