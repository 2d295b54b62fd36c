package driver

import (
	"sync"
	"testing"
)

func TestFootprintBitmapMarkAndContains(t *testing.T) {
	f := NewFootprintBitmap()
	if f.Contains(1, 1) {
		t.Fatal("expected empty bitmap to contain nothing")
	}
	f.Mark(1, 1)
	if !f.Contains(1, 1) {
		t.Error("expected (1,1) to be marked")
	}
	if f.Contains(2, 2) {
		t.Error("expected (2,2) to be unmarked")
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, want 1", f.Len())
	}
}

func TestFootprintBitmapConcurrentAccess(t *testing.T) {
	f := NewFootprintBitmap()
	var wg sync.WaitGroup
	for i := int32(0); i < 100; i++ {
		wg.Add(1)
		go func(i int32) {
			defer wg.Done()
			f.Mark(i, i)
		}(i)
	}
	wg.Wait()
	if f.Len() != 100 {
		t.Errorf("Len() = %d, want 100", f.Len())
	}
	for i := int32(0); i < 100; i++ {
		if !f.Contains(i, i) {
			t.Errorf("expected (%d,%d) to be marked", i, i)
		}
	}
}
