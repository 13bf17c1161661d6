// Package plotting renders estimator diagnostics as PNG figures.
package plotting

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"

	"github.com/cwbudde/algo-convection/dsp/signal"
	"github.com/cwbudde/algo-convection/dsp/spectrum"
	"github.com/cwbudde/algo-convection/measure/convection"
)

const rad2deg = 180 / math.Pi

// CoherenceSeries returns coherence against frequency, without the DC bin so
// the result can be drawn on a logarithmic axis.
func CoherenceSeries(est convection.SpectralEstimate) plotter.XYs {
	n := min(len(est.Frequencies), len(est.Coherence))
	out := make(plotter.XYs, 0, n)
	for k := 0; k < n; k++ {
		if est.Frequencies[k] <= 0 {
			continue
		}
		out = append(out, plotter.XY{X: est.Frequencies[k], Y: est.Coherence[k]})
	}
	return out
}

// PhaseSeries returns the cross-spectral phase in degrees over all bins,
// unwrapped from bin 1 on like the fitted phase.
func PhaseSeries(est convection.SpectralEstimate) plotter.XYs {
	n := min(len(est.Frequencies), len(est.CSD))
	phase := spectrum.Phase(est.CSD[:n])
	if n > 1 {
		copy(phase[1:], spectrum.UnwrapPhase(phase[1:]))
	}
	floats.Scale(rad2deg, phase)

	out := make(plotter.XYs, n)
	for k := range out {
		out[k] = plotter.XY{X: est.Frequencies[k], Y: phase[k]}
	}
	return out
}

// FitSeries evaluates the fitted phase line in degrees at every bin.
func FitSeries(est convection.SpectralEstimate) plotter.XYs {
	out := make(plotter.XYs, len(est.Frequencies))
	for k, f := range est.Frequencies {
		out[k] = plotter.XY{X: f, Y: est.FitAt(f) * rad2deg}
	}
	return out
}

// CorrelationSeries returns the correlation against lag time, scaled so the
// largest magnitude is one.
func CorrelationSeries(est convection.CorrelationEstimate) plotter.XYs {
	times := est.Times()
	n := min(len(times), len(est.Values))
	if n == 0 {
		return plotter.XYs{}
	}

	values, err := signal.Normalize(est.Values[:n], 1)
	if err != nil {
		return plotter.XYs{}
	}

	out := make(plotter.XYs, n)
	for i := range out {
		out[i] = plotter.XY{X: times[i], Y: values[i]}
	}
	return out
}

// clipX keeps the points with lo <= X <= hi.
func clipX(xys plotter.XYs, lo, hi float64) plotter.XYs {
	out := make(plotter.XYs, 0, len(xys))
	for _, p := range xys {
		if p.X >= lo && p.X <= hi {
			out = append(out, p)
		}
	}
	return out
}
