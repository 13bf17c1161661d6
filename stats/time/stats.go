package time

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats holds time-domain statistics of one sensor channel.
type Stats struct {
	Length      int
	DC          float64 // mean
	RMS         float64
	StdDev      float64 // unbiased
	Max         float64
	MaxPos      int
	Min         float64
	MinPos      int
	Peak        float64 // max(|max|, |min|)
	CrestFactor float64 // peak / RMS
	Skewness    float64
	Kurtosis    float64 // excess
}

// Calculate computes the channel statistics. An empty signal yields the zero
// Stats.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	maxPos := floats.MaxIdx(signal)
	minPos := floats.MinIdx(signal)
	maxVal, minVal := signal[maxPos], signal[minPos]

	s := Stats{
		Length: n,
		DC:     DC(signal),
		RMS:    RMS(signal),
		Max:    maxVal,
		MaxPos: maxPos,
		Min:    minVal,
		MinPos: minPos,
		Peak:   math.Max(math.Abs(maxVal), math.Abs(minVal)),
	}

	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	if n > 1 {
		s.StdDev = stat.StdDev(signal, nil)
	}
	if s.StdDev > 0 {
		s.Skewness = stat.Skew(signal, nil)
		s.Kurtosis = stat.ExKurtosis(signal, nil)
	}

	return s
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return floats.Norm(signal, 2) / math.Sqrt(float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Kahan summation keeps long recordings with a large offset accurate.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// RemoveDC returns a copy of signal with its mean subtracted.
func RemoveDC(signal []float64) []float64 {
	if len(signal) == 0 {
		return nil
	}
	out := make([]float64, len(signal))
	copy(out, signal)
	floats.AddConst(-DC(signal), out)
	return out
}
