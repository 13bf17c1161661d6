package design

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-convection/dsp/filter/biquad"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestHighpass_BasicResponseShape(t *testing.T) {
	sr := 48000.0
	f := 1000.0
	q := 1 / math.Sqrt2

	hp := Highpass(f, q, sr)
	if !(mag(hp, 10000, sr) > mag(hp, 100, sr)) {
		t.Fatal("highpass shape check failed")
	}
	if !almostEqual(mag(hp, sr/2, sr), 1, 1e-9) {
		t.Fatalf("highpass Nyquist gain = %v, want 1", mag(hp, sr/2, sr))
	}
	if mag(hp, 0, sr) > 1e-12 {
		t.Fatalf("highpass DC gain = %v, want 0", mag(hp, 0, sr))
	}
}

func TestHighpassCutoffIsMinus3dB(t *testing.T) {
	for _, sr := range []float64{10000, 48000, 51200} {
		hp := Highpass(60, defaultQ, sr)
		db := 20 * math.Log10(mag(hp, 60, sr))
		if !almostEqual(db, -3.0103, 1e-3) {
			t.Fatalf("sr=%v: |H(60 Hz)| = %.4f dB, want -3.01", sr, db)
		}
		assertStableSection(t, hp)
	}
}

func TestButterworthHP_OrderAndShape(t *testing.T) {
	sr := 48000.0
	for _, order := range []int{1, 2, 3, 4, 5} {
		coeffs := ButterworthHP(1000, order, sr)
		if len(coeffs) != (order+1)/2 {
			t.Fatalf("order %d: len=%d, want %d", order, len(coeffs), (order+1)/2)
		}
		if order%2 == 1 && (coeffs[len(coeffs)-1].A2 != 0 || coeffs[len(coeffs)-1].B2 != 0) {
			t.Fatalf("order %d: expected final first-order section, got %#v", order, coeffs[len(coeffs)-1])
		}
		for _, c := range coeffs {
			assertStableSection(t, c)
		}
		chain := biquad.NewChain(coeffs)
		if !(magChain(chain, 10000, sr) > magChain(chain, 100, sr)) {
			t.Fatalf("order %d: ButterworthHP response shape check failed", order)
		}
		if !almostEqual(chain.MagnitudeDB(1000, sr), -3.0103, 1e-3) {
			t.Fatalf("order %d: cutoff = %.4f dB", order, chain.MagnitudeDB(1000, sr))
		}
	}
}

func TestHighpassChainRemovesDC(t *testing.T) {
	const sr = 10000.0
	chain, err := HighpassChain(60, 2, sr)
	if err != nil {
		t.Fatalf("HighpassChain: %v", err)
	}

	in := make([]float64, 5000)
	for i := range in {
		in[i] = 1 + math.Sin(2*math.Pi*1000*float64(i)/sr)
	}
	out := chain.Filter(in)

	mean := 0.0
	for _, v := range out[4000:] {
		mean += v
	}
	mean /= 1000
	if math.Abs(mean) > 1e-3 {
		t.Fatalf("residual DC after settling = %v", mean)
	}
}

func TestInvalidInputs(t *testing.T) {
	zero := biquad.Coefficients{}
	for name, c := range map[string]biquad.Coefficients{
		"hp zero freq":      Highpass(0, 0.7, 48000),
		"hp above nyquist":  Highpass(30000, 0.7, 48000),
		"hp zero rate":      Highpass(1000, 0.7, 0),
		"first order nan":   firstOrderHP(math.NaN(), 48000),
		"first order hp hi": firstOrderHP(24000, 48000),
	} {
		if c != zero {
			t.Errorf("%s: expected zero coefficients, got %#v", name, c)
		}
	}

	if ButterworthHP(1000, 0, 48000) != nil {
		t.Error("expected nil cascade for order 0")
	}

	// Non-positive Q falls back to Butterworth Q.
	if Highpass(1000, -1, 48000) != Highpass(1000, defaultQ, 48000) {
		t.Error("expected default Q fallback")
	}

	if _, err := HighpassChain(60, 0, 48000); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("expected ErrInvalidOrder, got %v", err)
	}
	if _, err := HighpassChain(30000, 2, 48000); !errors.Is(err, ErrInvalidFrequency) {
		t.Errorf("expected ErrInvalidFrequency, got %v", err)
	}
	if _, err := HighpassChain(1e-20, 2, 48000); !errors.Is(err, ErrUnstable) {
		t.Errorf("expected ErrUnstable, got %v", err)
	}
}

func TestButterworthQ(t *testing.T) {
	if q := butterworthQ(2, 0); !almostEqual(q, defaultQ, 1e-12) {
		t.Fatalf("order-2 Q = %v, want %v", q, defaultQ)
	}
	// Fourth order pole pairs: 1/(2 sin(pi/8)) and 1/(2 sin(3pi/8)).
	if q := butterworthQ(4, 0); !almostEqual(q, 1.3065629648763766, 1e-12) {
		t.Fatalf("order-4 Q0 = %v", q)
	}
	if q := butterworthQ(4, 1); !almostEqual(q, 0.5411961001461969, 1e-12) {
		t.Fatalf("order-4 Q1 = %v", q)
	}
}

func mag(c biquad.Coefficients, freq, sr float64) float64 {
	return cmplx.Abs(c.Response(freq, sr))
}

func magChain(c *biquad.Chain, freq, sr float64) float64 {
	return cmplx.Abs(c.Response(freq, sr))
}

func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()
	for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite coefficient in %#v", c)
		}
	}
	if !c.Stable() {
		t.Fatalf("Stable() = false for %#v", c)
	}
	r1, r2 := sectionRoots(c)
	if cmplx.Abs(r1) >= 1 || cmplx.Abs(r2) >= 1 {
		t.Fatalf("unstable poles %v %v for %#v", r1, r2, c)
	}
}

// sectionRoots returns the poles of z^2 + A1 z + A2.
func sectionRoots(c biquad.Coefficients) (complex128, complex128) {
	disc := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
	return (complex(-c.A1, 0) + disc) / 2, (complex(-c.A1, 0) - disc) / 2
}
