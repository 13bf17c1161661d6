package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-convection/internal/testutil"
)

func TestDirect(t *testing.T) {
	tests := []struct {
		name     string
		a        []float64
		b        []float64
		expected []float64
	}{
		{
			name:     "simple 3x3",
			a:        []float64{1, 2, 3},
			b:        []float64{1, 1, 1},
			expected: []float64{1, 3, 6, 5, 3},
		},
		{
			name:     "impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{1},
			expected: []float64{1, 2, 3, 4, 5},
		},
		{
			name:     "delayed impulse",
			a:        []float64{1, 2, 3, 4, 5},
			b:        []float64{0, 0, 1},
			expected: []float64{0, 0, 1, 2, 3, 4, 5},
		},
		{
			name:     "symmetric",
			a:        []float64{1, 2, 1},
			b:        []float64{1, 2, 1},
			expected: []float64{1, 4, 6, 4, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Direct(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, result, tt.expected, 1e-10)
		})
	}
}

func TestDirectErrors(t *testing.T) {
	_, err := Direct([]float64{}, []float64{1, 2})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}

	_, err = Direct([]float64{1, 2}, []float64{})
	if !errors.Is(err, ErrEmptyKernel) {
		t.Errorf("expected ErrEmptyKernel, got %v", err)
	}

	err = DirectTo(make([]float64, 2), []float64{1, 2}, []float64{1, 2})
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestCorrelateKnownValues(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{1, 2, 3}
	want := []float64{3, 8, 14, 20, 26, 14, 5}

	for name, fn := range map[string]func(a, b []float64) ([]float64, error){
		"auto":   Correlate,
		"direct": CorrelateDirect,
		"fft":    CorrelateFFT,
	} {
		t.Run(name, func(t *testing.T) {
			got, err := fn(a, b)
			if err != nil {
				t.Fatalf("correlate failed: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, got, want, 1e-9)
		})
	}
}

func TestCorrelateFFTMatchesDirect(t *testing.T) {
	for _, sizes := range [][2]int{{300, 300}, {513, 200}, {100, 257}} {
		a := testutil.DeterministicNoise(1, 1, sizes[0])
		b := testutil.DeterministicNoise(2, 1, sizes[1])

		direct, err := CorrelateDirect(a, b)
		if err != nil {
			t.Fatalf("CorrelateDirect failed: %v", err)
		}
		fast, err := CorrelateFFT(a, b)
		if err != nil {
			t.Fatalf("CorrelateFFT failed: %v", err)
		}

		diff, err := testutil.MaxAbsDiff(direct, fast)
		if err != nil {
			t.Fatal(err)
		}
		if diff > 1e-9 {
			t.Errorf("sizes %v: max diff %g", sizes, diff)
		}
	}
}

func TestCorrelatePeakTracksDelay(t *testing.T) {
	const delay = 17
	src := testutil.DeterministicNoise(4, 1, 512+delay)
	lead, lag := testutil.DelayedPair(src, delay, 512)

	corr, err := Correlate(lag, lead)
	if err != nil {
		t.Fatalf("Correlate failed: %v", err)
	}

	idx, _ := FindPeakAbs(corr)
	if got := LagFromIndex(idx, len(lead)); got != delay {
		t.Fatalf("peak lag %d, expected %d", got, delay)
	}

	corr, _ = Correlate(lead, lag)
	idx, _ = FindPeakAbs(corr)
	if got := LagFromIndex(idx, len(lag)); got != -delay {
		t.Fatalf("reversed peak lag %d, expected %d", got, -delay)
	}
}

func TestCorrelateErrors(t *testing.T) {
	for name, fn := range map[string]func(a, b []float64) ([]float64, error){
		"auto":   Correlate,
		"direct": CorrelateDirect,
		"fft":    CorrelateFFT,
	} {
		if _, err := fn(nil, []float64{1, 2}); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("%s: expected ErrEmptyInput, got %v", name, err)
		}
		if _, err := fn([]float64{1, 2}, nil); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("%s: expected ErrEmptyInput, got %v", name, err)
		}
	}
}

func TestFindPeakAbs(t *testing.T) {
	tests := []struct {
		name    string
		in      []float64
		wantIdx int
		wantVal float64
	}{
		{"negative wins", []float64{1, -3, 2}, 1, -3},
		{"first of ties", []float64{0, 2, -2, 2}, 1, 2},
		{"single", []float64{-0.5}, 0, -0.5},
		{"empty", nil, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, val := FindPeakAbs(tt.in)
			if idx != tt.wantIdx || val != tt.wantVal {
				t.Fatalf("got (%d, %v), want (%d, %v)", idx, val, tt.wantIdx, tt.wantVal)
			}
		})
	}
}

func TestFindPeakAbsWithin(t *testing.T) {
	tests := []struct {
		name    string
		in      []float64
		tol     float64
		wantIdx int
	}{
		{"rounding tie goes first", []float64{0, 0.7000000000000001, 0.1, -0.7000000000000002}, 1e-12, 1},
		{"exact max without tol", []float64{0, 0.7000000000000001, 0.1, -0.7000000000000002}, 0, 3},
		{"outside tol", []float64{0.9, 0.1, 1}, 1e-3, 2},
		{"negative tol acts as magnitude", []float64{0.9999, 1}, -1e-3, 0},
		{"empty", nil, 1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if idx, _ := FindPeakAbsWithin(tt.in, tt.tol); idx != tt.wantIdx {
				t.Fatalf("index %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}

func TestCorrelateFFTSymmetricTie(t *testing.T) {
	for n := 65; n <= 300; n += 7 {
		a := make([]float64, n)
		b := make([]float64, n)
		p := n / 2
		a[p] = 1
		b[p-2] = 0.7
		b[p+2] = 0.7

		corr, err := CorrelateFFT(a, b)
		if err != nil {
			t.Fatal(err)
		}
		_, peak := FindPeakAbs(corr)
		idx, _ := FindPeakAbsWithin(corr, 1e-11*math.Abs(peak))
		if lag := LagFromIndex(idx, n); lag != -2 {
			t.Fatalf("n=%d: lag %d, want -2", n, lag)
		}
	}
}

func TestLags(t *testing.T) {
	lags := Lags(3, 2)
	want := []int{-1, 0, 1, 2}
	if len(lags) != len(want) {
		t.Fatalf("len = %d, want %d", len(lags), len(want))
	}
	for i := range want {
		if lags[i] != want[i] {
			t.Fatalf("lags[%d] = %d, want %d", i, lags[i], want[i])
		}
	}

	if Lags(0, 3) != nil {
		t.Fatal("expected nil lags for empty input")
	}
}

func TestLagConversion(t *testing.T) {
	lenB := 10

	for lag := -9; lag <= 9; lag++ {
		idx := IndexFromLag(lag, lenB)

		recoveredLag := LagFromIndex(idx, lenB)
		if recoveredLag != lag {
			t.Errorf("lag %d -> idx %d -> lag %d", lag, idx, recoveredLag)
		}
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{5, 8},
		{8, 8},
		{9, 16},
		{100, 128},
	}

	for _, tt := range tests {
		if got := nextPowerOf2(tt.input); got != tt.expected {
			t.Errorf("nextPowerOf2(%d) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}
