// Package biquad runs cascades of second-order IIR sections.
//
// [Coefficients] describe one section normalized to a0 = 1. A [Section]
// filters with them in transposed direct form II, and a [Chain] feeds the
// sections in series. [Chain.Filter] processes a whole recording from rest
// without disturbing the chain's running state. Designers live in
// dsp/filter/design.
package biquad
