package tiling

import (
	"slices"
	"testing"

	"github.com/1broseidon/splitwm/internal/platform"
)

func TestTracked_ThirdArrivalEvictsOldest(t *testing.T) {
	tr := NewTracked(MaxTiled, nil)
	tr.Add(winA)
	tr.Add(winB)

	evicted, ok := tr.Add(winC)
	if !ok || evicted != winA {
		t.Fatalf("expected %#x evicted, got %#x (ok=%v)", winA, evicted, ok)
	}
	want := []platform.WindowID{winB, winC}
	if got := tr.Windows(); !slices.Equal(got, want) {
		t.Fatalf("Windows() = %v, want %v", got, want)
	}
}

func TestTracked_DuplicateIsIgnored(t *testing.T) {
	tr := NewTracked(MaxTiled, nil)
	tr.Add(winA)
	if _, ok := tr.Add(winA); ok {
		t.Fatal("re-adding a tracked window must not evict")
	}
	if tr.Len() != 1 {
		t.Fatalf("expected 1 window, got %d", tr.Len())
	}
}

func TestTracked_RemoveUnknownIsNoop(t *testing.T) {
	tr := NewTracked(MaxTiled, nil)
	tr.Add(winA)
	tr.Add(winB)

	if tr.Remove(winC) {
		t.Fatal("Remove of unknown window reported success")
	}
	want := []platform.WindowID{winA, winB}
	if got := tr.Windows(); !slices.Equal(got, want) {
		t.Fatalf("Windows() = %v, want %v", got, want)
	}
}

func TestTracked_RemoveKeepsOrder(t *testing.T) {
	tr := NewTracked(3, nil)
	tr.Add(winA)
	tr.Add(winB)
	tr.Add(winC)

	if !tr.Remove(winB) {
		t.Fatal("expected Remove to succeed")
	}
	want := []platform.WindowID{winA, winC}
	if got := tr.Windows(); !slices.Equal(got, want) {
		t.Fatalf("Windows() = %v, want %v", got, want)
	}
}

func TestTracked_CustomEvictor(t *testing.T) {
	newest := func(windows []platform.WindowID) int { return len(windows) - 1 }
	tr := NewTracked(MaxTiled, newest)
	tr.Add(winA)
	tr.Add(winB)

	evicted, ok := tr.Add(winC)
	if !ok || evicted != winC {
		t.Fatalf("expected newest evicted, got %#x (ok=%v)", evicted, ok)
	}
	want := []platform.WindowID{winA, winB}
	if got := tr.Windows(); !slices.Equal(got, want) {
		t.Fatalf("Windows() = %v, want %v", got, want)
	}
}

func TestTracked_OutOfRangeEvictorFallsBackToOldest(t *testing.T) {
	tr := NewTracked(1, func([]platform.WindowID) int { return 42 })
	tr.Add(winA)
	if evicted, _ := tr.Add(winB); evicted != winA {
		t.Fatalf("expected %#x evicted, got %#x", winA, evicted)
	}
}

func TestTracked_WindowsReturnsCopy(t *testing.T) {
	tr := NewTracked(MaxTiled, nil)
	tr.Add(winA)
	got := tr.Windows()
	got[0] = winC
	if !tr.Contains(winA) {
		t.Fatal("mutating Windows() result changed the set")
	}
}
