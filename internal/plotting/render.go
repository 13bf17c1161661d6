package plotting

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-convection/measure/convection"
)

// ErrNoData is returned when an estimate holds nothing to draw.
var ErrNoData = errors.New("plotting: no data")

// minCorrelationSpan is the smallest half-width of the lag axis in seconds.
const minCorrelationSpan = 0.01

var (
	red    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	blue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	shaded = color.RGBA{R: 128, G: 128, B: 128, A: 80}
)

// FrequencyDomain draws coherence on a logarithmic frequency axis next to the
// unwrapped phase with its linear fit, and writes the figure to path as PNG.
// The range beyond the coherence cutoff is shaded in both panels.
func FrequencyDomain(est convection.SpectralEstimate, path string) error {
	coh := CoherenceSeries(est)
	if len(coh) == 0 {
		return fmt.Errorf("%w: empty coherence", ErrNoData)
	}
	fc := est.CutoffFrequency()

	pc := plot.New()
	pc.Title.Text = "Magnitude-squared coherence"
	pc.X.Label.Text = "f (Hz)"
	pc.Y.Label.Text = "γ²"
	pc.X.Scale = plot.LogScale{}
	pc.X.Tick.Marker = plot.LogTicks{Prec: -1}
	pc.Y.Min, pc.Y.Max = 0, 1
	pc.Add(plotter.NewGrid())

	cohLine, err := plotter.NewLine(coh)
	if err != nil {
		return fmt.Errorf("coherence line: %w", err)
	}
	cohLine.Color = blue
	cohLine.Width = vg.Points(1)

	if fc > 0 {
		span, err := shade(fc, coh[len(coh)-1].X, 0, 1)
		if err != nil {
			return err
		}
		pc.Add(span)
	}
	pc.Add(cohLine)
	if fc > 0 {
		mark, err := marker(fc, est.Coherence[est.Cutoff])
		if err != nil {
			return err
		}
		pc.Add(mark)
	}

	pp := plot.New()
	pp.Title.Text = "Cross-spectral phase"
	pp.X.Label.Text = "f (Hz)"
	pp.Y.Label.Text = "Unwrapped phase (°)"
	pp.Add(plotter.NewGrid())

	phase := PhaseSeries(est)
	fitLine := FitSeries(est)
	if fc > 0 {
		// Show the fitted band plus as much again.
		phase = clipX(phase, 0, 2*fc)
		fitLine = clipX(fitLine, 0, 2*fc)
	}

	phaseLine, err := plotter.NewLine(phase)
	if err != nil {
		return fmt.Errorf("phase line: %w", err)
	}
	phaseLine.Color = blue
	phaseLine.Width = vg.Points(1)

	fit, err := plotter.NewLine(fitLine)
	if err != nil {
		return fmt.Errorf("fit line: %w", err)
	}
	fit.Color = red
	fit.Width = vg.Points(1)
	fit.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	pp.Add(phaseLine, fit)
	pp.Legend.Add("Measured", phaseLine)
	pp.Legend.Add("Linear fit", fit)
	if fc > 0 {
		mark, err := marker(fc, est.FitAt(fc)*rad2deg)
		if err != nil {
			return err
		}
		pp.Add(mark)
		pp.Legend.Add("Fit limit", mark)
	}
	pp.Legend.Top = true
	pp.Legend.Left = true

	return saveRow(path, 14*vg.Inch, 5*vg.Inch, pc, pp)
}

// TimeDomain draws the normalized cross-correlation against lag time with a
// marker at the peak and writes the figure to path as PNG.
func TimeDomain(est convection.CorrelationEstimate, path string) error {
	series := CorrelationSeries(est)
	if len(series) == 0 {
		return fmt.Errorf("%w: empty correlation", ErrNoData)
	}
	tau := est.TimeDelay()

	half := math.Max(minCorrelationSpan, 2*math.Abs(tau))
	series = clipX(series, -half, half)

	p := plot.New()
	p.Title.Text = "Cross-correlation"
	p.X.Label.Text = "τ (s)"
	p.Y.Label.Text = "Rxy"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(series)
	if err != nil {
		return fmt.Errorf("correlation line: %w", err)
	}
	line.Color = blue
	line.Width = vg.Points(1)

	peak, err := plotter.NewLine(plotter.XYs{{X: tau, Y: -1}, {X: tau, Y: 1}})
	if err != nil {
		return fmt.Errorf("peak line: %w", err)
	}
	peak.Color = red
	peak.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}

	p.Add(line, peak)
	p.Legend.Add("Cross-correlation", line)
	p.Legend.Add(fmt.Sprintf("Peak τ = %.3g s", tau), peak)
	p.Legend.Top = true

	return saveRow(path, 12*vg.Inch, 6*vg.Inch, p)
}

func shade(x0, x1, y0, y1 float64) (*plotter.Polygon, error) {
	if x1 <= x0 {
		x1 = x0
	}
	poly, err := plotter.NewPolygon(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
	if err != nil {
		return nil, fmt.Errorf("shade: %w", err)
	}
	poly.Color = shaded
	poly.LineStyle.Width = 0
	return poly, nil
}

func marker(x, y float64) (*plotter.Scatter, error) {
	s, err := plotter.NewScatter(plotter.XYs{{X: x, Y: y}})
	if err != nil {
		return nil, fmt.Errorf("marker: %w", err)
	}
	s.GlyphStyle.Color = red
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(3)
	return s, nil
}

// saveRow lays the plots out side by side and encodes them as PNG.
func saveRow(path string, width, height vg.Length, plots ...*plot.Plot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      len(plots),
		PadX:      vg.Millimeter * 4,
		PadY:      vg.Millimeter * 2,
		PadTop:    vg.Millimeter * 2,
		PadBottom: vg.Millimeter * 2,
		PadLeft:   vg.Millimeter * 2,
		PadRight:  vg.Millimeter * 2,
	}
	canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
	for j, p := range plots {
		p.Draw(canvases[0][j])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
