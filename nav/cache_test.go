package nav

import "testing"

func measureFromMap(spans map[SectionID]Span) MeasureFunc {
	return func(id SectionID) (Span, bool) {
		s, ok := spans[id]
		return s, ok
	}
}

func TestPositionCacheStartsStale(t *testing.T) {
	c := NewPositionCache()
	if !c.Stale() {
		t.Error("new cache should be stale")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestPositionCacheStalenessRoundTrip(t *testing.T) {
	ids := []SectionID{"hero", "about"}
	c := NewPositionCache()
	c.Rebuild(ids, measureFromMap(map[SectionID]Span{
		"hero":  {Start: 0, End: 800},
		"about": {Start: 800, End: 1600},
	}))

	if c.Stale() {
		t.Error("cache should be fresh after rebuild")
	}

	c.Invalidate()
	if !c.Stale() {
		t.Error("cache should be stale after invalidate")
	}

	// Invalidation must not lose data; stale reads serve last-known spans.
	s, ok := c.Get("about")
	if !ok {
		t.Fatal("expected stale Get(about) to still return the cached span")
	}
	if s.Start != 800 || s.End != 1600 {
		t.Errorf("stale span = [%v, %v), want [800, 1600)", s.Start, s.End)
	}

	c.Rebuild(ids, measureFromMap(map[SectionID]Span{
		"hero":  {Start: 0, End: 900},
		"about": {Start: 900, End: 1800},
	}))
	if c.Stale() {
		t.Error("cache should be fresh after second rebuild")
	}
	s, _ = c.Get("about")
	if s.Start != 900 {
		t.Errorf("rebuilt span start = %v, want 900", s.Start)
	}
}

func TestPositionCacheSkipsAbsentSections(t *testing.T) {
	ids := []SectionID{"hero", "lazy"}
	c := NewPositionCache()

	c.Rebuild(ids, measureFromMap(map[SectionID]Span{
		"hero": {Start: 0, End: 100},
		"lazy": {Start: 100, End: 200},
	}))

	// A later rebuild that cannot see "lazy" keeps its old span.
	c.Rebuild(ids, measureFromMap(map[SectionID]Span{
		"hero": {Start: 0, End: 150},
	}))

	s, ok := c.Get("lazy")
	if !ok {
		t.Fatal("expected unmounted section to keep its last-known span")
	}
	if s.Start != 100 || s.End != 200 {
		t.Errorf("span = [%v, %v), want [100, 200)", s.Start, s.End)
	}

	if _, ok := c.Get("never"); ok {
		t.Error("Get of a never-measured id should report absent")
	}
}

func TestPositionCacheNilMeasureKeepsStale(t *testing.T) {
	c := NewPositionCache()
	c.Rebuild([]SectionID{"hero"}, nil)
	if !c.Stale() {
		t.Error("rebuild with nil measurer should leave the cache stale")
	}
}

func TestPositionCacheClear(t *testing.T) {
	c := NewPositionCache()
	c.Rebuild([]SectionID{"hero"}, measureFromMap(map[SectionID]Span{
		"hero": {Start: 0, End: 100},
	}))

	c.Clear()
	if !c.Stale() {
		t.Error("cleared cache should be stale")
	}
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d, want 0", c.Len())
	}
	if _, ok := c.Get("hero"); ok {
		t.Error("Get after Clear should report absent")
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: 100, End: 200}

	tests := []struct {
		p    float64
		want bool
	}{
		{99.9, false},
		{100, true}, // start-inclusive
		{150, true},
		{199.9, true},
		{200, false}, // end-exclusive
	}
	for _, tt := range tests {
		if got := s.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if h := s.Height(); h != 100 {
		t.Errorf("Height = %v, want 100", h)
	}
}
