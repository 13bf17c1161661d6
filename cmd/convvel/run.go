package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/cwbudde/algo-convection/dsp/filter/design"
	"github.com/cwbudde/algo-convection/dsp/window"
	"github.com/cwbudde/algo-convection/internal/config"
	"github.com/cwbudde/algo-convection/internal/logging"
	"github.com/cwbudde/algo-convection/internal/plotting"
	"github.com/cwbudde/algo-convection/internal/report"
	"github.com/cwbudde/algo-convection/internal/sigio"
	"github.com/cwbudde/algo-convection/measure/convection"
	timestats "github.com/cwbudde/algo-convection/stats/time"
)

func run(args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(f)
	if err != nil {
		return err
	}

	log, closer, err := logging.New(cfg.Log, stdout, stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	if f.synth {
		if err := writeSynthetic(cfg, log); err != nil {
			return err
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s1, err := loadSignal(cfg.Sensor1, cfg.SampleRate, log)
	if err != nil {
		return err
	}
	s2, err := loadSignal(cfg.Sensor2, cfg.SampleRate, log)
	if err != nil {
		return err
	}

	if cfg.HighPass.On() {
		if s1, err = convection.HighPass(s1, cfg.HighPass.CutoffHz, cfg.HighPass.Order); err != nil {
			return fmt.Errorf("sensor 1 high-pass: %w", err)
		}
		if s2, err = convection.HighPass(s2, cfg.HighPass.CutoffHz, cfg.HighPass.Order); err != nil {
			return fmt.Errorf("sensor 2 high-pass: %w", err)
		}
		logHighPass(log, cfg.HighPass.CutoffHz, cfg.HighPass.Order, cfg.SampleRate)
	}

	params, err := cfg.SpectralParams()
	if err != nil {
		return err
	}
	binWidth := cfg.SampleRate / float64(params.Window)
	enbw, err := window.EquivalentNoiseBandwidth(window.Generate(window.TypeHann, params.Window, window.WithPeriodic()))
	if err != nil {
		return err
	}
	log.Info().
		Int("window", params.Window).
		Int("overlap", params.Overlap).
		Str("taper", window.TypeHann.String()).
		Float64("resolution_hz", binWidth).
		Float64("enbw_hz", enbw*binWidth).
		Float64("sidelobe_db", window.Info(window.TypeHann).HighestSidelobe).
		Float64("coherence_threshold", params.CoherenceThreshold).
		Msg("welch segmentation")

	calc, err := convection.NewCalculator(s1, s2, cfg.Geometry(),
		convection.WithCoherenceThreshold(params.CoherenceThreshold))
	if err != nil {
		return err
	}

	fd, fdErr := calc.FrequencyDomain(params.Window, params.Overlap)
	td, tdErr := calc.TimeDomain()
	if fdErr != nil && tdErr != nil {
		log.Error().Err(fdErr).Msg("frequency-domain estimate failed")
		log.Error().Err(tdErr).Msg("time-domain estimate failed")
		return errors.Join(fdErr, tdErr)
	}

	logSpectral(log, fd, fdErr)
	logCorrelation(log, td, tdErr)

	if cfg.Output.PlotsOn() {
		renderPlots(cfg.Output.Dir, fd, fdErr, td, tdErr, log)
	}

	summary := report.New(cfg.Geometry(), s1, params, fd, fdErr, td, tdErr)
	summaryPath := filepath.Join(cfg.Output.Dir, "summary.yaml")
	if err := summary.Write(summaryPath); err != nil {
		return err
	}
	log.Info().Str("path", summaryPath).Msg("summary written")

	printVelocity(stdout, "Frequency domain method", fd.Velocity, fdErr)
	printVelocity(stdout, "Time domain method", td.Velocity, tdErr)
	return nil
}

// logHighPass reports the attenuation of the pre-filter at its cutoff and one
// decade below.
func logHighPass(log zerolog.Logger, cutoffHz float64, order int, fs float64) {
	ev := log.Debug().
		Float64("cutoff_hz", cutoffHz).
		Int("order", order)
	if chain, err := design.HighpassChain(cutoffHz, order, fs); err == nil {
		ev = ev.
			Float64("attenuation_cutoff_db", -chain.MagnitudeDB(cutoffHz, fs)).
			Float64("attenuation_decade_db", -chain.MagnitudeDB(cutoffHz/10, fs))
	}
	ev.Msg("high-pass applied")
}

// resolveConfig merges the run file, if any, with explicitly set flags.
// Without a run file every flag applies.
func resolveConfig(f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}
	use := func(name string) bool { return f.config == "" || f.set[name] }

	if use("x1") {
		cfg.Sensor1.X = f.x1
	}
	if use("x2") {
		cfg.Sensor2.X = f.x2
	}
	if use("in1") {
		cfg.Sensor1.Path = f.in1
	}
	if use("in2") {
		cfg.Sensor2.Path = f.in2
	}
	if use("column") {
		cfg.Sensor1.Column, cfg.Sensor2.Column = f.column, f.column
	}
	if use("fs") {
		cfg.SampleRate = f.fs
	}
	if use("df") {
		cfg.Welch.ResolutionHz = f.df
	}
	if use("window") {
		cfg.Welch.Window = f.window
	}
	if use("overlap") {
		cfg.Welch.Overlap = f.overlap
	}
	if use("threshold") {
		cfg.Coherence = f.threshold
	}
	if use("hp") {
		on := f.highpass > 0
		cfg.HighPass.Enabled = &on
		if on {
			cfg.HighPass.CutoffHz = f.highpass
		}
	}
	if use("out") {
		cfg.Output.Dir = f.out
	}
	if use("noplot") {
		plots := !f.noPlots
		cfg.Output.Plots = &plots
	}
	if use("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if use("log-format") {
		cfg.Log.Format = f.logFormat
	}
	return cfg, nil
}

func loadSignal(s config.Sensor, fs float64, log zerolog.Logger) (convection.Signal, error) {
	x, err := sigio.Load(s.Path, sigio.WithColumn(s.Column))
	if err != nil {
		return convection.Signal{}, err
	}

	st := timestats.Calculate(x)
	log.Info().
		Str("path", s.Path).
		Float64("x", s.X).
		Int("samples", st.Length).
		Float64("duration_s", float64(st.Length)/fs).
		Float64("dc", st.DC).
		Float64("rms", st.RMS).
		Float64("peak", st.Peak).
		Msg("recording loaded")

	return convection.Signal{Samples: x, SampleRate: fs}, nil
}

func logSpectral(log zerolog.Logger, r convection.VelocityResult[convection.SpectralEstimate], err error) {
	d := r.Diagnostics
	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Float64("uc", r.Velocity).
		Int("segments", d.Segments).
		Int("cutoff_bin", d.Cutoff).
		Float64("cutoff_hz", d.CutoffFrequency()).
		Float64("slope_rad_per_hz", d.Slope).
		Msg("frequency-domain estimate")
}

func logCorrelation(log zerolog.Logger, r convection.VelocityResult[convection.CorrelationEstimate], err error) {
	d := r.Diagnostics
	ev := log.Info()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Float64("uc", r.Velocity).
		Int("peak_lag", d.PeakLag()).
		Float64("delay_s", d.TimeDelay()).
		Msg("time-domain estimate")
}

func renderPlots(
	dir string,
	fd convection.VelocityResult[convection.SpectralEstimate], fdErr error,
	td convection.VelocityResult[convection.CorrelationEstimate], tdErr error,
	log zerolog.Logger,
) {
	if fdErr == nil {
		path := filepath.Join(dir, "freqdomain.png")
		if err := plotting.FrequencyDomain(fd.Diagnostics, path); err != nil {
			log.Warn().Err(err).Msg("frequency-domain plot failed")
		} else {
			log.Info().Str("path", path).Msg("plot written")
		}
	}
	if tdErr == nil {
		path := filepath.Join(dir, "timedomain.png")
		if err := plotting.TimeDomain(td.Diagnostics, path); err != nil {
			log.Warn().Err(err).Msg("time-domain plot failed")
		} else {
			log.Info().Str("path", path).Msg("plot written")
		}
	}
}

func printVelocity(w io.Writer, method string, uc float64, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s: failed: %v\n", method, err)
		return
	}
	fmt.Fprintf(w, "%s: Uc = %.2f\n", method, uc)
}
