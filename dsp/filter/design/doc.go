// Package design computes biquad coefficients for lowpass and highpass
// filters: single RBJ sections and Butterworth cascades of any order.
// [HighpassChain] validates its arguments and returns a ready
// [biquad.Chain].
package design
