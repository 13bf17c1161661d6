package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// NoisySine returns a sine of unit amplitude plus seeded white noise.
func NoisySine(freqHz, sampleRate, noiseAmplitude float64, seed int64, length int) []float64 {
	out := DeterministicSine(freqHz, sampleRate, 1, length)
	noise := DeterministicNoise(seed, noiseAmplitude, length)
	for i := range out {
		out[i] += noise[i]
	}
	return out
}

// SineBurst places a Hann-enveloped sine of the given number of cycles at
// offset inside an otherwise silent signal of the given length.
func SineBurst(freqHz, sampleRate float64, cycles float64, offset, length int) []float64 {
	out := make([]float64, length)
	span := int(math.Round(cycles * sampleRate / freqHz))
	if span < 2 {
		return out
	}
	step := 2 * math.Pi * freqHz / sampleRate
	for i := 0; i < span; i++ {
		n := offset + i
		if n < 0 || n >= length {
			continue
		}
		env := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(span-1))
		out[n] = env * math.Sin(step*float64(i))
	}
	return out
}

// DelayedPair cuts two length-n views out of src such that the second is the
// first delayed by delay samples. src must hold at least n+delay samples.
func DelayedPair(src []float64, delay, n int) (lead, lag []float64) {
	if delay < 0 || n <= 0 || len(src) < n+delay {
		return nil, nil
	}
	lead = make([]float64, n)
	lag = make([]float64, n)
	copy(lead, src[delay:delay+n])
	copy(lag, src[:n])
	return lead, lag
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC returns length samples of value.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}
