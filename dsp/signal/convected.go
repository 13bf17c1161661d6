package signal

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConvection reports a flow that cannot be rendered as a sensor pair.
var ErrInvalidConvection = errors.New("signal: invalid convection")

// Convection describes a frozen random pattern travelling from sensor 1 to
// sensor 2.
type Convection struct {
	Velocity   float64 // m/s, sign gives the direction
	Separation float64 // x2 - x1 in m

	// SensorNoise is the standard deviation of noise seen by one sensor only,
	// relative to the unit-variance pattern.
	SensorNoise float64

	// An optional tone both sensors see in phase, such as facility hum.
	HumHz        float64
	HumAmplitude float64
}

// Delay returns the travel time between the sensors in whole samples.
func (c Convection) Delay(sampleRate float64) int {
	return int(math.Round(c.Separation / c.Velocity * sampleRate))
}

// Convected returns the two sensor recordings of a Gaussian pattern convected
// according to c, and the applied delay in samples. A positive delay means
// sensor 2 sees the pattern later. Equal seeds give equal recordings.
func (g *Generator) Convected(c Convection, samples int) (x1, x2 []float64, delay int, err error) {
	if samples <= 0 {
		return nil, nil, 0, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}
	if c.Velocity == 0 || math.IsNaN(c.Velocity) || math.IsInf(c.Velocity, 0) {
		return nil, nil, 0, fmt.Errorf("%w: velocity must be finite and non-zero: %v", ErrInvalidConvection, c.Velocity)
	}
	if c.SensorNoise < 0 {
		return nil, nil, 0, fmt.Errorf("%w: sensor noise %v", ErrInvalidLevel, c.SensorNoise)
	}

	delay = c.Delay(g.sampleRate)
	shift := delay
	if shift < 0 {
		shift = -shift
	}
	if shift >= samples {
		return nil, nil, 0, fmt.Errorf("%w: delay of %d samples does not fit %d samples", ErrInvalidConvection, delay, samples)
	}

	rng := g.newRand()
	pattern := make([]float64, samples+shift)
	for i := range pattern {
		pattern[i] = rng.NormFloat64()
	}

	// Sensor 1 reads the pattern shift samples ahead when delay > 0.
	off1, off2 := shift, 0
	if delay < 0 {
		off1, off2 = 0, shift
	}

	x1 = make([]float64, samples)
	x2 = make([]float64, samples)
	w := 2 * math.Pi * c.HumHz / g.sampleRate
	for i := range x1 {
		hum := c.HumAmplitude * math.Sin(w*float64(i))
		x1[i] = pattern[i+off1] + hum + c.SensorNoise*rng.NormFloat64()
		x2[i] = pattern[i+off2] + hum + c.SensorNoise*rng.NormFloat64()
	}
	return x1, x2, delay, nil
}
