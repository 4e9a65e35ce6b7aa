package nav

// SectionID names one vertically-stacked region of a document. IDs are
// opaque, comparable and must stay stable for the document's lifetime.
type SectionID string

// Entry pairs a section identifier with its display label. The order of a
// slice of entries defines top-to-bottom document order.
type Entry struct {
	ID    SectionID
	Label string
}

// Registry is an immutable index over an ordered entry list. It performs no
// validation of its own; Validate covers that separately.
type Registry struct {
	entries []Entry
	byID    map[SectionID]Entry
	ids     []SectionID
}

// NewRegistry builds a registry from entries in document order. Duplicate
// identifiers are kept in the ordered sequence; lookups resolve to the first
// occurrence.
func NewRegistry(entries []Entry) *Registry {
	r := &Registry{
		entries: append([]Entry(nil), entries...),
		byID:    make(map[SectionID]Entry, len(entries)),
		ids:     make([]SectionID, 0, len(entries)),
	}
	for _, e := range r.entries {
		if _, exists := r.byID[e.ID]; !exists {
			r.byID[e.ID] = e
		}
		r.ids = append(r.ids, e.ID)
	}
	return r
}

// Get returns the entry for id, or false when the id is unknown.
func (r *Registry) Get(id SectionID) (Entry, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Has reports whether id is registered.
func (r *Registry) Has(id SectionID) bool {
	_, ok := r.byID[id]
	return ok
}

// Len returns the number of registered entries, duplicates included.
func (r *Registry) Len() int {
	return len(r.entries)
}

// OrderedIDs returns the identifier sequence in document order. The slice is
// shared and must not be mutated by callers; the detector's binary search
// relies on this ordering matching visual order.
func (r *Registry) OrderedIDs() []SectionID {
	return r.ids
}

// Entries returns the ordered entry list.
func (r *Registry) Entries() []Entry {
	return r.entries
}
