package sim

import (
	"math"
	"testing"
)

func TestGrowLineagesInplace(t *testing.T) {
	l := &LineagesData{
		N: []float64{100, 200},
		W: []float64{0, 1},
		U: []float64{0, 0},
	}
	growLineagesInplace(l, 1.0)

	if got, want := l.N[0], 100.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("N[0] = %f, want %f (W=0 means no growth)", got, want)
	}
	if got, want := l.N[1], 400.0; math.Abs(got-want) > 1e-6 {
		t.Fatalf("N[1] = %f, want %f (W=1 doubles per unit time)", got, want)
	}
}

func TestGrowLineagesInplacePanicsOnLengthMismatch(t *testing.T) {
	assertPanics(t, "mismatched N/W", func() {
		growLineagesInplace(&LineagesData{N: []float64{1}, W: []float64{1, 2}}, 1.0)
	})
}

func TestOldNToDeltaN(t *testing.T) {
	l := &LineagesData{N: []float64{150, 50}}
	old := []float64{100, 80}

	got := oldNToDeltaN(l, old)
	if got[0] != 50 || got[1] != -30 {
		t.Fatalf("deltaN = %v, want [50 -30]", got)
	}
}

func TestOldNToDeltaNPanicsOnLengthMismatch(t *testing.T) {
	assertPanics(t, "mismatched lengths", func() {
		oldNToDeltaN(&LineagesData{N: []float64{1, 2}}, []float64{1})
	})
}

func TestExpectedMutationCounts(t *testing.T) {
	l := &LineagesData{U: []float64{1e-8, 2e-8}}
	eligible := []float64{1e6, 2e6}

	got := expectedMutationCounts(l, eligible)
	if math.Abs(got[0]-0.02) > 1e-12 {
		t.Fatalf("expectedMutationCounts[0] = %v, want 0.02", got[0])
	}
	if math.Abs(got[1]-0.08) > 1e-12 {
		t.Fatalf("expectedMutationCounts[1] = %v, want 0.08", got[1])
	}
}

func TestExpectedMutationCountsPanicsOnLengthMismatch(t *testing.T) {
	assertPanics(t, "mismatched lengths", func() {
		expectedMutationCounts(&LineagesData{U: []float64{1, 2}}, []float64{1})
	})
}
