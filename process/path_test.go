package process

import (
	"errors"
	"reflect"
	"testing"

	"mm-sim-go/market"
)

func TestPathEncodeDecodeRoundTrip(t *testing.T) {
	bm, err := NewBrownianMotion(100, 0, 2, 0.005, 20, NewSeededSource(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	original := bm.GeneratePath()

	raw, err := original.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := DecodePath(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Fatalf("round trip mismatch: %+v vs %+v", original, decoded)
	}
}

func TestDecodePathRejectsEmpty(t *testing.T) {
	if _, err := DecodePath([]byte(`{"mids":[]}`)); !errors.Is(err, market.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := DecodePath([]byte("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestReplayMatchesPath(t *testing.T) {
	path := Path{S0: 100, Sigma: 2, Dt: 0.005, Mids: []float64{100, 101.5, 99.25}}
	replay, err := NewReplay(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if replay.Len() != 3 {
		t.Fatalf("expected length 3, got %d", replay.Len())
	}
	for i, want := range path.Mids {
		pt, ok := replay.Next()
		if !ok {
			t.Fatalf("exhausted early at %d", i)
		}
		if pt.Step != i || pt.Mid != want {
			t.Fatalf("point %d: got (%d, %f), want (%d, %f)", i, pt.Step, pt.Mid, i, want)
		}
	}
	if _, ok := replay.Next(); ok {
		t.Fatal("replay should be exhausted")
	}
}

func TestNewReplayRejectsEmpty(t *testing.T) {
	if _, err := NewReplay(Path{}); !errors.Is(err, market.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}
