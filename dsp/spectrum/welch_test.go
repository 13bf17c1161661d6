package spectrum

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-convection/dsp/window"
	"github.com/cwbudde/algo-convection/internal/testutil"
	"github.com/mjibson/go-dsp/fft"
)

func TestWelchMatchesReferenceDFT(t *testing.T) {
	for _, n := range []int{16, 15} {
		x := testutil.DeterministicNoise(1, 1, n)
		y := testutil.DeterministicNoise(2, 1, n)
		const fs = 100.0

		cfg := WelchConfig{
			SegmentLength: n,
			Overlap:       0,
			SampleRate:    fs,
			Window:        window.TypeRectangular,
			Detrend:       DetrendNone,
		}

		cs, err := Welch(x, y, cfg)
		if err != nil {
			t.Fatalf("n=%d: Welch error: %v", n, err)
		}
		if cs.Segments != 1 {
			t.Fatalf("n=%d: segments=%d want=1", n, cs.Segments)
		}

		X := fft.FFTReal(x)
		Y := fft.FFTReal(y)
		bins := n/2 + 1
		if len(cs.Pxy) != bins {
			t.Fatalf("n=%d: bins=%d want=%d", n, len(cs.Pxy), bins)
		}

		scale := 1 / (fs * float64(n))
		for k := 0; k < bins; k++ {
			f := scale
			interior := k > 0 && (n%2 == 1 || k < n/2)
			if interior {
				f *= 2
			}
			wantXY := cmplx.Conj(X[k]) * Y[k] * complex(f, 0)
			wantXX := real(X[k]*cmplx.Conj(X[k])) * f
			wantYY := real(Y[k]*cmplx.Conj(Y[k])) * f

			if cmplx.Abs(cs.Pxy[k]-wantXY) > 1e-12 {
				t.Fatalf("n=%d Pxy[%d]=%v want=%v", n, k, cs.Pxy[k], wantXY)
			}
			if math.Abs(cs.Pxx[k]-wantXX) > 1e-12 || math.Abs(cs.Pyy[k]-wantYY) > 1e-12 {
				t.Fatalf("n=%d auto spectra mismatch at bin %d", n, k)
			}
		}
	}
}

func TestWelchSegmentation(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 1000)
	cfg := DefaultWelchConfig(1000, 256)

	cs, err := Welch(x, x, cfg)
	if err != nil {
		t.Fatalf("Welch error: %v", err)
	}
	if cs.Segments != 6 {
		t.Fatalf("segments=%d want=6", cs.Segments)
	}
	if len(cs.Frequencies) != 129 || cs.Frequencies[128] != 500 {
		t.Fatalf("unexpected frequency axis: len=%d last=%f", len(cs.Frequencies), cs.Frequencies[len(cs.Frequencies)-1])
	}
	if cfg.Step() != 128 || cfg.SegmentCount(255) != 0 {
		t.Fatalf("unexpected step/segment count: %d %d", cfg.Step(), cfg.SegmentCount(255))
	}
}

func TestWelchAutoSpectrumIntegratesToVariance(t *testing.T) {
	const (
		fs = 1000.0
		n  = 16384
	)
	x := testutil.DeterministicNoise(11, 1, n)

	cs, err := Welch(x, x, DefaultWelchConfig(fs, 256))
	if err != nil {
		t.Fatalf("Welch error: %v", err)
	}

	df := cs.Frequencies[1] - cs.Frequencies[0]
	total := 0.0
	for _, p := range cs.Pxx {
		total += p * df
	}

	want := 1.0 / 3.0
	if math.Abs(total-want)/want > 0.05 {
		t.Fatalf("integrated PSD=%f want≈%f", total, want)
	}
}

func TestWelchCoherenceOfIdenticalSignals(t *testing.T) {
	x := testutil.DeterministicNoise(5, 1, 4096)

	cs, err := Welch(x, x, DefaultWelchConfig(1000, 128))
	if err != nil {
		t.Fatalf("Welch error: %v", err)
	}

	coh := cs.Coherence()
	for k := 1; k < len(coh); k++ {
		if coh[k] < 1-1e-9 || coh[k] > 1 {
			t.Fatalf("coherence[%d]=%f want 1", k, coh[k])
		}
	}
}

func TestWelchPhaseOfDelayedSignal(t *testing.T) {
	const (
		seg   = 256
		delay = 2
	)
	src := testutil.DeterministicNoise(9, 1, 16384+delay)
	lead, lag := testutil.DelayedPair(src, delay, 16384)

	cs, err := Welch(lead, lag, DefaultWelchConfig(1000, seg))
	if err != nil {
		t.Fatalf("Welch error: %v", err)
	}

	for _, k := range []int{5, 10, 20, 40} {
		want := -2 * math.Pi * float64(k) * delay / seg
		got := cmplx.Phase(cs.Pxy[k])
		if math.Abs(got-want) > 0.05 {
			t.Fatalf("phase[%d]=%f want=%f", k, got, want)
		}
	}
}

func TestWelchZeroPadsShorterInput(t *testing.T) {
	x := testutil.DeterministicNoise(1, 1, 1024)
	y := testutil.DeterministicNoise(2, 1, 600)

	cs, err := Welch(x, y, DefaultWelchConfig(1000, 256))
	if err != nil {
		t.Fatalf("Welch error: %v", err)
	}
	if cs.Segments != 7 {
		t.Fatalf("segments=%d want=7", cs.Segments)
	}

	coh := cs.Coherence()
	testutil.RequireFinite(t, coh)
	for k, g := range coh {
		if g < 0 || g > 1 {
			t.Fatalf("coherence[%d]=%f outside [0,1]", k, g)
		}
	}
}

func TestWelchValidation(t *testing.T) {
	x := testutil.DeterministicNoise(1, 1, 512)

	tests := []struct {
		name string
		x, y []float64
		cfg  WelchConfig
		want error
	}{
		{"zero segment", x, x, WelchConfig{SegmentLength: 0, SampleRate: 1}, ErrInvalidSegmentation},
		{"overlap equals segment", x, x, WelchConfig{SegmentLength: 64, Overlap: 64, SampleRate: 1}, ErrInvalidSegmentation},
		{"negative overlap", x, x, WelchConfig{SegmentLength: 64, Overlap: -1, SampleRate: 1}, ErrInvalidSegmentation},
		{"zero sample rate", x, x, WelchConfig{SegmentLength: 64, Overlap: 32}, ErrInvalidSegmentation},
		{"empty", nil, x, DefaultWelchConfig(1, 64), ErrEmptyInput},
		{"too short", x[:63], x, DefaultWelchConfig(1, 64), ErrSignalTooShort},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Welch(tc.x, tc.y, tc.cfg)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestCoherence(t *testing.T) {
	pxy := []complex128{0, 3 + 4i, 1}
	pxx := []float64{0, 5, 2}
	pyy := []float64{1, 5, 2}

	got, err := Coherence(pxy, pxx, pyy)
	if err != nil {
		t.Fatalf("Coherence error: %v", err)
	}
	want := []float64{0, 1, 0.25}
	testutil.RequireSliceNearlyEqual(t, got, want, 1e-12)

	if _, err := Coherence(pxy, pxx[:2], pyy); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}
