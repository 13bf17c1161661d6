package time

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-convection/internal/testutil"
)

const tolerance = 1e-10

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateSine(t *testing.T) {
	// 100 full cycles at 10 samples per cycle.
	sig := testutil.DeterministicSine(100, 1000, 2, 1000)
	s := Calculate(sig)

	if s.Length != 1000 {
		t.Fatalf("Length = %d, want 1000", s.Length)
	}
	if !almostEqual(s.DC, 0, 1e-12) {
		t.Errorf("DC = %v, want 0", s.DC)
	}
	if !almostEqual(s.RMS, math.Sqrt2, 1e-9) {
		t.Errorf("RMS = %v, want %v", s.RMS, math.Sqrt2)
	}
	if !almostEqual(s.CrestFactor, s.Peak/s.RMS, tolerance) {
		t.Errorf("CrestFactor = %v, want %v", s.CrestFactor, s.Peak/s.RMS)
	}
	if s.Peak > 2 || s.Peak < 1.9 {
		t.Errorf("Peak = %v, want ~2", s.Peak)
	}
	if !almostEqual(s.Skewness, 0, 1e-9) {
		t.Errorf("Skewness = %v, want 0", s.Skewness)
	}
}

func TestCalculateExtrema(t *testing.T) {
	s := Calculate([]float64{0.5, -3, 2, 1, -3, 2.5})

	if s.Max != 2.5 || s.MaxPos != 5 {
		t.Errorf("Max = %v@%d, want 2.5@5", s.Max, s.MaxPos)
	}
	if s.Min != -3 || s.MinPos != 1 {
		t.Errorf("Min = %v@%d, want -3@1", s.Min, s.MinPos)
	}
	if s.Peak != 3 {
		t.Errorf("Peak = %v, want 3", s.Peak)
	}
}

func TestCalculateDegenerate(t *testing.T) {
	if s := Calculate(nil); s != (Stats{}) {
		t.Errorf("empty signal stats = %+v", s)
	}

	s := Calculate(testutil.DC(0.25, 16))
	if s.StdDev != 0 || s.Skewness != 0 || s.Kurtosis != 0 {
		t.Errorf("constant signal moments = %v %v %v", s.StdDev, s.Skewness, s.Kurtosis)
	}
	if !almostEqual(s.CrestFactor, 1, tolerance) {
		t.Errorf("constant signal crest = %v, want 1", s.CrestFactor)
	}

	zero := Calculate(make([]float64, 4))
	if zero.CrestFactor != 0 {
		t.Errorf("silent crest = %v, want 0", zero.CrestFactor)
	}
}

func TestDCAndRemoveDC(t *testing.T) {
	sig := []float64{1e8 + 1, 1e8 + 2, 1e8 + 3}
	if !almostEqual(DC(sig), 1e8+2, 1e-6) {
		t.Fatalf("DC = %v, want %v", DC(sig), 1e8+2)
	}

	out := RemoveDC([]float64{1, 2, 3, 6})
	testutil.RequireSliceNearlyEqual(t, out, []float64{-2, -1, 0, 3}, tolerance)

	if RemoveDC(nil) != nil || DC(nil) != 0 || RMS(nil) != 0 {
		t.Fatal("expected zero values for empty input")
	}
}
