// Package conv provides full linear convolution and cross-correlation of
// finite real sequences.
//
// Correlation output index k holds lag k-(len(b)-1), so the delay of a
// behind b is recovered as
//
//	corr, err := conv.Correlate(a, b)
//	k, _ := conv.FindPeakAbs(corr)
//	lag := conv.LagFromIndex(k, len(b))
//
// [Correlate] stays in the time domain while the shorter input has at most
// 64 samples and uses an algo-fft kernel above that.
package conv
