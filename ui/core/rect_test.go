package core

import "testing"

func TestRectIntersect(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 4}
	b := Rect{X: 6, Y: 2, W: 10, H: 4}
	got := a.Intersect(b)
	want := Rect{X: 6, Y: 2, W: 4, H: 2}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	if got := a.Intersect(Rect{X: 20, Y: 0, W: 2, H: 2}); !got.Empty() {
		t.Errorf("disjoint Intersect = %+v, want empty", got)
	}
}

func TestRectUnion(t *testing.T) {
	a := Rect{X: 1, Y: 1, W: 2, H: 2}
	b := Rect{X: 5, Y: 0, W: 1, H: 4}
	got := a.Union(b)
	want := Rect{X: 1, Y: 0, W: 5, H: 4}
	if got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union with empty = %+v, want %+v", got, a)
	}
}

func TestMergeRects(t *testing.T) {
	// Adjacent rects collapse into one region.
	merged := mergeRects([]Rect{
		{X: 0, Y: 0, W: 2, H: 2},
		{X: 2, Y: 0, W: 2, H: 2},
	})
	if len(merged) != 1 {
		t.Fatalf("adjacent rects merged to %d regions, want 1", len(merged))
	}
	if want := (Rect{X: 0, Y: 0, W: 4, H: 2}); merged[0] != want {
		t.Errorf("merged = %+v, want %+v", merged[0], want)
	}

	// Disjoint rects stay separate.
	merged = mergeRects([]Rect{
		{X: 0, Y: 0, W: 2, H: 2},
		{X: 8, Y: 0, W: 2, H: 2},
	})
	if len(merged) != 2 {
		t.Errorf("disjoint rects merged to %d regions, want 2", len(merged))
	}

	// Zero-sized rects are dropped.
	merged = mergeRects([]Rect{{X: 0, Y: 0, W: 0, H: 5}})
	if len(merged) != 0 {
		t.Errorf("zero-width rect survived merge: %+v", merged)
	}
}
