// Package report writes the YAML summary of an analysis run.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-convection/measure/convection"
)

// Summary collects the outcome of both estimators for one sensor pair.
type Summary struct {
	Geometry    GeometrySummary    `yaml:"geometry"`
	SampleRate  float64            `yaml:"sample_rate"`
	Samples     int                `yaml:"samples"`
	Spectral    SpectralSummary    `yaml:"frequency_domain"`
	Correlation CorrelationSummary `yaml:"time_domain"`
}

// GeometrySummary records the sensor positions in metres.
type GeometrySummary struct {
	X1         float64 `yaml:"x1"`
	X2         float64 `yaml:"x2"`
	Separation float64 `yaml:"separation"`
}

// SpectralSummary records the Welch segmentation, the coherence cutoff and
// the phase-line fit behind the frequency-domain velocity. Velocity is 0 when
// Error is set.
type SpectralSummary struct {
	Velocity        float64 `yaml:"velocity"`
	Error           string  `yaml:"error,omitempty"`
	Window          int     `yaml:"window"`
	Overlap         int     `yaml:"overlap"`
	Segments        int     `yaml:"segments"`
	Threshold       float64 `yaml:"coherence_threshold"`
	CutoffBin       int     `yaml:"cutoff_bin"`
	CutoffFrequency float64 `yaml:"cutoff_hz"`
	Slope           float64 `yaml:"phase_slope"`
	Intercept       float64 `yaml:"phase_intercept"`
}

// CorrelationSummary records the correlation peak behind the time-domain
// velocity. Velocity is 0 when Error is set.
type CorrelationSummary struct {
	Velocity float64 `yaml:"velocity"`
	Error    string  `yaml:"error,omitempty"`
	PeakLag  int     `yaml:"peak_lag"`
	Delay    float64 `yaml:"delay_s"`
	Peak     float64 `yaml:"peak_value"`
}

// New summarizes a run. A nil error leaves the corresponding Error empty.
func New(
	g convection.Geometry,
	s1 convection.Signal,
	p convection.SpectralParams,
	spectral convection.VelocityResult[convection.SpectralEstimate], spectralErr error,
	corr convection.VelocityResult[convection.CorrelationEstimate], corrErr error,
) Summary {
	d := spectral.Diagnostics
	c := corr.Diagnostics

	return Summary{
		Geometry:   GeometrySummary{X1: g.X1, X2: g.X2, Separation: g.Separation()},
		SampleRate: s1.SampleRate,
		Samples:    s1.Len(),
		Spectral: SpectralSummary{
			Velocity:        spectral.Velocity,
			Error:           errString(spectralErr),
			Window:          p.Window,
			Overlap:         p.Overlap,
			Segments:        d.Segments,
			Threshold:       d.Threshold,
			CutoffBin:       d.Cutoff,
			CutoffFrequency: d.CutoffFrequency(),
			Slope:           d.Slope,
			Intercept:       d.Intercept,
		},
		Correlation: CorrelationSummary{
			Velocity: corr.Velocity,
			Error:    errString(corrErr),
			PeakLag:  c.PeakLag(),
			Delay:    c.TimeDelay(),
			Peak:     c.PeakValue(),
		},
	}
}

// Write stores the summary as YAML, creating parent directories.
func (s Summary) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Read loads a summary written by [Summary.Write].
func Read(path string) (Summary, error) {
	var s Summary
	b, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read report: %w", err)
	}
	if err := yaml.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("decode report: %w", err)
	}
	return s, nil
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
