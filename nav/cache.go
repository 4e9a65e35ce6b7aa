package nav

// Span is the half-open [Start, End) vertical extent of a section in
// document coordinates. End = Start + height, so End >= Start always.
type Span struct {
	Start float64
	End   float64
}

// Contains reports whether p falls inside the span. Start is inclusive and
// End exclusive, so a point sitting exactly on a boundary between two
// adjacent sections belongs to the one being entered.
func (s Span) Contains(p float64) bool {
	return p >= s.Start && p < s.End
}

// Height returns the span's vertical size.
func (s Span) Height() float64 {
	return s.End - s.Start
}

// MeasureFunc queries the live layout extent of one section. Absent results
// (section not currently mounted) are reported with ok=false, never an error.
type MeasureFunc func(id SectionID) (Span, bool)

// PositionCache stores the last-known span per section together with a
// staleness flag. Layout-affecting events only mark the cache stale; the
// expensive full remeasure happens lazily on the next read. Stale reads keep
// serving last-known-good spans so an invalidation racing a rebuild never
// produces an empty flicker state.
type PositionCache struct {
	spans map[SectionID]Span
	stale bool
}

// NewPositionCache returns an empty, stale cache.
func NewPositionCache() *PositionCache {
	return &PositionCache{
		spans: make(map[SectionID]Span),
		stale: true,
	}
}

// Stale reports whether the cache was never built or has been invalidated
// since its last rebuild.
func (c *PositionCache) Stale() bool {
	return c.stale
}

// Rebuild measures every id in the given order and stores the present
// results. Sections the measurer cannot see are skipped, keeping whatever
// value an earlier rebuild stored for them. A nil measurer leaves the cache
// untouched and still stale.
func (c *PositionCache) Rebuild(ids []SectionID, measure MeasureFunc) {
	if measure == nil {
		return
	}
	for _, id := range ids {
		if span, ok := measure(id); ok {
			c.spans[id] = span
		}
	}
	c.stale = false
}

// Get returns the cached span for id. ok is false when the section was never
// measured.
func (c *PositionCache) Get(id SectionID) (Span, bool) {
	span, ok := c.spans[id]
	return span, ok
}

// Invalidate marks the cache stale without dropping stored spans.
func (c *PositionCache) Invalidate() {
	c.stale = true
}

// Clear drops all stored spans and marks the cache stale. Used on teardown.
func (c *PositionCache) Clear() {
	c.spans = make(map[SectionID]Span)
	c.stale = true
}

// Len returns the number of cached spans.
func (c *PositionCache) Len() int {
	return len(c.spans)
}
