package store

import (
	"reflect"
	"testing"

	"mm-sim-go/process"
)

func openTestStore(t *testing.T) *PathStore {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func generatePath(t *testing.T, seed int64) process.Path {
	t.Helper()
	bm, err := process.NewBrownianMotion(100, 0, 2, 0.005, 20, process.NewSeededSource(seed))
	if err != nil {
		t.Fatalf("new brownian motion: %v", err)
	}
	return bm.GeneratePath()
}

func TestSaveFetchRoundTrip(t *testing.T) {
	s := openTestStore(t)

	first := generatePath(t, 1)
	second := generatePath(t, 2)
	if err := s.Save(1, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(2, second); err != nil {
		t.Fatalf("save: %v", err)
	}

	n, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 paths, got %d", n)
	}

	paths, err := s.FetchAll()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 paths, got %d", len(paths))
	}
	if !reflect.DeepEqual(paths[0], first) || !reflect.DeepEqual(paths[1], second) {
		t.Fatal("fetched paths must match saved paths in insertion order")
	}
}

func TestClear(t *testing.T) {
	s := openTestStore(t)
	if err := s.Save(1, generatePath(t, 1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty store after clear, got %d", n)
	}
}

func TestFetchAllEmpty(t *testing.T) {
	s := openTestStore(t)
	paths, err := s.FetchAll()
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no paths, got %d", len(paths))
	}
}
