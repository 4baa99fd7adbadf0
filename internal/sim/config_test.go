package sim

import (
	"math"
	"math/rand"
	"testing"

	"steps/internal/cfg"
)

func testSimConfig() cfg.SimConfig {
	c := cfg.DefaultSimConfig()
	c.Markers = 2
	return c
}

func TestNewConfigRejectsInvalidSimConfig(t *testing.T) {
	c := testSimConfig()
	c.DilutionFactor = 1
	if _, err := NewConfig(c); err == nil {
		t.Fatal("expected error from invalid SimConfig")
	}
}

func TestNewConfigDerivesTotalMutationRate(t *testing.T) {
	c := testSimConfig()
	c.BeneficialMutationRate = 1e-5
	c.NeutralMutationRate = 2e-5

	got, err := NewConfig(c)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	want := 3e-5
	if math.Abs(got.TotalMutationRate-want) > 1e-18 {
		t.Fatalf("TotalMutationRate = %g, want %g", got.TotalMutationRate, want)
	}
	if got.DilutionCoefficient != 1.0/c.DilutionFactor {
		t.Fatalf("DilutionCoefficient = %g, want %g", got.DilutionCoefficient, 1.0/c.DilutionFactor)
	}
}

func TestSampleMutationTypeNoneConfigured(t *testing.T) {
	c := testSimConfig()
	internal, err := NewConfig(c)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	if _, ok := internal.sampleMutationType(rng); ok {
		t.Fatal("sampleMutationType should report ok=false when all rates are zero")
	}
}

func TestSampleMutationTypeOnlyBeneficialConfigured(t *testing.T) {
	c := testSimConfig()
	c.BeneficialMutationRate = 1e-5
	internal, err := NewConfig(c)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		mt, ok := internal.sampleMutationType(rng)
		if !ok {
			t.Fatal("expected ok=true")
		}
		if mt != Beneficial {
			t.Fatalf("sampled %v, want Beneficial (only nonzero rate)", mt)
		}
	}
}

func TestForSimConfigSeedsOneLineagePerMarker(t *testing.T) {
	c := testSimConfig()
	c.Markers = 3
	c.MaxPopSize = 5e8
	c.DilutionFactor = 100

	internal, err := NewConfig(c)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	lineages := ForSimConfig(internal, nil)
	if lineages.Len() != 3 {
		t.Fatalf("ForSimConfig produced %d lineages, want 3 (one per marker)", lineages.Len())
	}

	wantN := math.Round(c.MaxPopSize / c.DilutionFactor / float64(c.Markers))
	for i := 0; i < lineages.Len(); i++ {
		l := lineages.Get(i)
		if l.N != wantN {
			t.Fatalf("lineage %d N = %f, want %f", i, l.N, wantN)
		}
		if l.Secondary.Marker != uint16(i+1) {
			t.Fatalf("lineage %d marker = %d, want %d", i, l.Secondary.Marker, i+1)
		}
		if l.Secondary.AccumulatedMuts != 1 {
			t.Fatalf("lineage %d AccumulatedMuts = %d, want 1 (marker founders start at 1)", i, l.Secondary.AccumulatedMuts)
		}
		if l.Secondary.ParentID != 0 {
			t.Fatalf("lineage %d ParentID = %d, want 0 (descends from synthetic ancestor)", i, l.Secondary.ParentID)
		}
	}
}

func TestForSimConfigRegistersMutationsWhenTrackerPresent(t *testing.T) {
	c := testSimConfig()
	internal, err := NewConfig(c)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}

	mutations := NewMutationsData()
	lineages := ForSimConfig(internal, mutations)

	if len(mutations.Muts) != lineages.Len() {
		t.Fatalf("%d mutations registered, want %d (one per marker founder)", len(mutations.Muts), lineages.Len())
	}
}
