package biquad

import "testing"

func twoSectionCoeffs() []Coefficients {
	return []Coefficients{
		{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04},
		{B0: 0.1, B1: 0.2, B2: 0.1, A1: -0.5, A2: 0.1},
	}
}

func TestNewChain(t *testing.T) {
	coeffs := twoSectionCoeffs()
	c := NewChain(coeffs)
	if c.NumSections() != 2 {
		t.Fatalf("NumSections: got %d, want 2", c.NumSections())
	}
	if c.Order() != 4 {
		t.Fatalf("Order: got %d, want 4", c.Order())
	}

	got := c.Coefficients()
	got[0].B0 = 99
	if c.Coefficients()[0] != coeffs[0] || c.Coefficients()[1] != coeffs[1] {
		t.Fatal("Coefficients did not return an independent copy")
	}
}

func TestChain_ProcessSample_MatchesManualCascade(t *testing.T) {
	coeffs := twoSectionCoeffs()
	section1 := NewSection(coeffs[0])
	section2 := NewSection(coeffs[1])
	chain := NewChain(coeffs)

	for i, x := range []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8} {
		ref := section2.ProcessSample(section1.ProcessSample(x))
		if got := chain.ProcessSample(x); !almostEqual(got, ref, eps) {
			t.Errorf("sample %d: chain=%.15f, ref=%.15f", i, got, ref)
		}
	}
}

func TestChain_ProcessBlockMatchesSamples(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1}

	ref := NewChain(twoSectionCoeffs())
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	got := append([]float64(nil), input...)
	NewChain(twoSectionCoeffs()).ProcessBlock(got)
	for i := range want {
		if !almostEqual(got[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestChain_Filter(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1}

	fresh := NewChain(twoSectionCoeffs())
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = fresh.ProcessSample(x)
	}

	// A chain with history filters from zero state and keeps its own state.
	c := NewChain(twoSectionCoeffs())
	c.ProcessSample(5)
	shadow := NewChain(twoSectionCoeffs())
	shadow.ProcessSample(5)

	for pass := 0; pass < 2; pass++ {
		got := c.Filter(input)
		for i := range want {
			if !almostEqual(got[i], want[i], eps) {
				t.Fatalf("pass %d index %d: got %v, want %v", pass, i, got[i], want[i])
			}
		}
	}
	if input[0] != 1 || input[5] != -1 {
		t.Fatal("Filter modified its input")
	}
	if a, b := c.ProcessSample(0), shadow.ProcessSample(0); a != b {
		t.Fatalf("Filter touched chain state: %v != %v", a, b)
	}

	c.Reset()
	if y := c.ProcessSample(1); !almostEqual(y, want[0], eps) {
		t.Fatalf("after Reset: got %v, want %v", y, want[0])
	}
}
