package driver

import (
	"errors"
	"testing"
	"time"

	"github.com/OCharnyshevich/arnisgo/internal/coordsys"
)

func TestFloodFillFillsBoundedRoom(t *testing.T) {
	c := NewFloodFillCache()
	inside := func(p coordsys.XZPoint) bool {
		return p.X >= 0 && p.X <= 3 && p.Z >= 0 && p.Z <= 3
	}
	out, err := c.Fill(1, coordsys.XZPoint{X: 1, Z: 1}, inside, time.Second)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if len(out) != 16 {
		t.Errorf("got %d cells, want 16 (4x4 room)", len(out))
	}
}

func TestFloodFillSeedOutsideReturnsEmpty(t *testing.T) {
	c := NewFloodFillCache()
	out, err := c.Fill(1, coordsys.XZPoint{X: 0, Z: 0}, func(coordsys.XZPoint) bool { return false }, time.Second)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if out != nil {
		t.Errorf("expected nil result for a seed outside the region, got %v", out)
	}
}

func TestFloodFillCachesByElementID(t *testing.T) {
	c := NewFloodFillCache()
	inside := func(p coordsys.XZPoint) bool { return p.X >= 0 && p.X <= 1 && p.Z == 0 }
	first, err := c.Fill(7, coordsys.XZPoint{X: 0, Z: 0}, inside, time.Second)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	calls := 0
	counting := func(p coordsys.XZPoint) bool {
		calls++
		return inside(p)
	}
	second, err := c.Fill(7, coordsys.XZPoint{X: 0, Z: 0}, counting, time.Second)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if calls != 0 {
		t.Errorf("expected cached fill to skip the inside predicate entirely, called %d times", calls)
	}
	if len(second) != len(first) {
		t.Errorf("cached result length = %d, want %d", len(second), len(first))
	}
}

func TestFloodFillTimeoutReturnsPartialResult(t *testing.T) {
	c := NewFloodFillCache()
	// An unbounded plane never terminates on its own; a near-zero timeout
	// forces the deadline check to trip.
	inside := func(coordsys.XZPoint) bool { return true }
	out, err := c.Fill(1, coordsys.XZPoint{X: 0, Z: 0}, inside, time.Nanosecond)
	var timeoutErr *ErrFloodFillTimeout
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected ErrFloodFillTimeout, got %v", err)
	}
	if len(out) == 0 {
		t.Error("expected a non-empty partial result before the deadline tripped")
	}
}
