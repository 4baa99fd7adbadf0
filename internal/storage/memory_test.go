package storage

import (
	"context"
	"testing"

	"steps/internal/sim"
)

func testLineages() *sim.LineagesData {
	cfg, err := sim.NewConfig(testSimConfig())
	if err != nil {
		panic(err)
	}
	return sim.ForSimConfig(cfg, nil)
}

func TestMemoryStoreRunRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	run := NewRunRecord("run-1", 1, testLineages(), nil)
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}

	loaded, ok, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run")
	}
	if loaded.RunID != "run-1" || loaded.Lineages.Len() != run.Lineages.Len() {
		t.Fatalf("unexpected run: %+v", loaded)
	}
}

func TestMemoryStoreGetRunMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	_, ok, err := store.GetRun(ctx, "missing")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if ok {
		t.Fatal("expected no run to be found")
	}
}

func TestMemoryStoreListRuns(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, id := range []string{"run-b", "run-a"} {
		if err := store.SaveRun(ctx, NewRunRecord(id, 1, testLineages(), nil)); err != nil {
			t.Fatalf("save run %s: %v", id, err)
		}
	}

	ids, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	want := []string{"run-a", "run-b"}
	if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
		t.Fatalf("unexpected run ids: %+v", ids)
	}
}
