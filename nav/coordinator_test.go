package nav

import (
	"testing"
	"time"
)

// portfolioFixture is the canonical three-section layout used across the
// coordinator tests: hero 0-800, about 800-1600, contact 1600-2400.
type portfolioFixture struct {
	vp      testViewport
	frames  frameStub
	clock   time.Time
	spans   map[SectionID]Span
	queries int
}

func newPortfolioFixture() *portfolioFixture {
	return &portfolioFixture{
		clock: time.Unix(0, 0),
		spans: map[SectionID]Span{
			"hero":    {Start: 0, End: 800},
			"about":   {Start: 800, End: 1600},
			"contact": {Start: 1600, End: 2400},
		},
	}
}

func (f *portfolioFixture) measure(id SectionID) (Span, bool) {
	f.queries++
	s, ok := f.spans[id]
	return s, ok
}

func (f *portfolioFixture) entries() []Entry {
	return []Entry{
		{ID: "hero", Label: "Home"},
		{ID: "about", Label: "About"},
		{ID: "contact", Label: "Contact"},
	}
}

func (f *portfolioFixture) coordinator(opts Options) *Coordinator {
	opts.Measure = f.measure
	opts.Offset = f.vp.get
	opts.SetOffset = f.vp.set
	opts.Schedule = f.frames.schedule
	opts.Now = func() time.Time { return f.clock }
	return New(f.entries(), opts)
}

func TestCoordinatorEndToEnd(t *testing.T) {
	f := newPortfolioFixture()
	c := f.coordinator(Options{ScrollDuration: 400 * time.Millisecond})

	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if !c.Ready() {
		t.Fatal("coordinator should be ready after Initialize")
	}
	if len(c.Warnings()) != 0 {
		t.Fatalf("unexpected warnings: %v", c.Warnings())
	}

	// Scrolled to 750 with a 100-line sticky header the query point is 850,
	// inside the about section.
	id, ok := c.ActiveSection(750, 100)
	if !ok || id != "about" {
		t.Errorf("ActiveSection(750, 100) = %q, %v, want %q, true", id, ok, "about")
	}

	// Smooth-scroll to contact: target is its start minus the lead.
	if !c.ScrollToSection("contact", 100) {
		t.Fatal("ScrollToSection(contact) should succeed")
	}
	if !c.Animating() {
		t.Fatal("expected a scroll animation in flight")
	}

	for elapsed := time.Duration(0); elapsed <= 400*time.Millisecond; elapsed += 16 * time.Millisecond {
		f.clock = time.Unix(0, 0).Add(elapsed)
		c.Tick()
	}
	f.clock = time.Unix(0, 0).Add(400 * time.Millisecond)
	c.Tick()

	if f.vp.offset != 1500 {
		t.Errorf("final offset = %v, want 1500 (contact start 1600 - lead 100)", f.vp.offset)
	}
	if c.Animating() {
		t.Error("animation should be complete")
	}
}

func TestCoordinatorPanicsBeforeInitialize(t *testing.T) {
	f := newPortfolioFixture()
	c := f.coordinator(Options{})

	defer func() {
		if recover() == nil {
			t.Error("ActiveSection before Initialize should panic")
		}
	}()
	c.ActiveSection(0, 0)
}

func TestCoordinatorRequiresHostCallbacks(t *testing.T) {
	c := New([]Entry{{ID: "hero", Label: "Home"}}, Options{})
	if err := c.Initialize(); err == nil {
		t.Error("Initialize without a measure callback should fail")
	}
}

func TestCoordinatorSoftFailsOnUnmountedSection(t *testing.T) {
	f := newPortfolioFixture()
	c := f.coordinator(Options{})
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if c.ScrollToSection("ghost", 0) {
		t.Error("scroll to an unknown section should report a soft failure")
	}
	if c.Animating() {
		t.Error("soft failure must not start an animation")
	}
}

func TestCoordinatorScrollFindsLateMountedSection(t *testing.T) {
	f := newPortfolioFixture()
	delete(f.spans, "contact")

	c := f.coordinator(Options{ScrollDuration: 100 * time.Millisecond})
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if c.ScrollToSection("contact", 0) {
		t.Fatal("contact is unmounted, scroll should soft-fail")
	}

	// Section appears later; the absent cache entry forces a remeasure.
	f.spans["contact"] = Span{Start: 1600, End: 2400}
	if !c.ScrollToSection("contact", 0) {
		t.Fatal("scroll should succeed once the section is measurable")
	}
	target, ok := c.animator.Target()
	if !ok || target != 1600 {
		t.Errorf("animation target = %v, %v, want 1600, true", target, ok)
	}
}

func TestCoordinatorRebuildsLazilyOnInvalidate(t *testing.T) {
	f := newPortfolioFixture()
	c := f.coordinator(Options{})
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	base := f.queries // one measurement per entry from Initialize
	if base != len(f.entries()) {
		t.Fatalf("Initialize measured %d times, want %d", base, len(f.entries()))
	}

	// Fresh cache: repeated reads cost no measurements.
	c.ActiveSection(100, 0)
	c.ActiveSection(900, 0)
	if f.queries != base {
		t.Errorf("fresh reads measured %d extra times, want 0", f.queries-base)
	}

	// Invalidation alone does not remeasure either.
	c.OnLayoutChanged()
	if f.queries != base {
		t.Errorf("OnLayoutChanged measured %d extra times, want 0", f.queries-base)
	}

	// The next read pays for exactly one rebuild.
	f.spans["about"] = Span{Start: 800, End: 2000}
	f.spans["contact"] = Span{Start: 2000, End: 2800}
	id, _ := c.ActiveSection(1700, 0)
	if id != "about" {
		t.Errorf("ActiveSection after relayout = %q, want %q", id, "about")
	}
	if f.queries != base+len(f.entries()) {
		t.Errorf("stale read measured %d times, want %d", f.queries-base, len(f.entries()))
	}
}

func TestCoordinatorValidatorNonFatal(t *testing.T) {
	f := newPortfolioFixture()
	entries := append(f.entries(), Entry{ID: "hero", Label: "Home again"})

	c := New(entries, Options{
		Measure:   f.measure,
		Offset:    f.vp.get,
		SetOffset: f.vp.set,
		Schedule:  f.frames.schedule,
		Now:       func() time.Time { return f.clock },
	})
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize with duplicate entry failed: %v", err)
	}

	if len(c.Warnings()) != 1 {
		t.Fatalf("warnings = %v, want exactly one duplicate finding", c.Warnings())
	}

	// The coordinator keeps working on the entries it was given.
	if id, ok := c.ActiveSection(100, 0); !ok || id != "hero" {
		t.Errorf("ActiveSection = %q, %v, want %q, true", id, ok, "hero")
	}
}

func TestCoordinatorVocabularyWarning(t *testing.T) {
	f := newPortfolioFixture()
	c := f.coordinator(Options{Vocabulary: []SectionID{"hero", "about"}})
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if len(c.Warnings()) != 1 {
		t.Errorf("warnings = %v, want one vocabulary finding for contact", c.Warnings())
	}
}

func TestCoordinatorOnScrollNotifiesTransitions(t *testing.T) {
	f := newPortfolioFixture()

	type change struct {
		id SectionID
		ok bool
	}
	var changes []change

	c := f.coordinator(Options{
		ActiveChanged: func(id SectionID, ok bool) {
			changes = append(changes, change{id, ok})
		},
	})
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	c.OnScroll(100, 0)  // hero
	c.OnScroll(400, 0)  // still hero, no notification
	c.OnScroll(900, 0)  // about
	c.OnScroll(-50, 0)  // above everything
	c.OnScroll(2000, 0) // contact

	want := []change{
		{"hero", true},
		{"about", true},
		{"", false},
		{"contact", true},
	}
	if len(changes) != len(want) {
		t.Fatalf("got %d transitions %v, want %d", len(changes), changes, len(want))
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Errorf("transition %d = %v, want %v", i, changes[i], want[i])
		}
	}
}

func TestCoordinatorTeardown(t *testing.T) {
	f := newPortfolioFixture()
	c := f.coordinator(Options{ScrollDuration: 300 * time.Millisecond})
	if err := c.Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	c.ScrollToSection("contact", 0)
	if !c.Animating() {
		t.Fatal("expected an animation in flight")
	}

	c.Teardown()
	c.Teardown() // idempotent

	if c.Ready() {
		t.Error("coordinator should not be ready after Teardown")
	}
	if c.Animating() {
		t.Error("Teardown must cancel the in-flight animation")
	}
	if f.frames.outstanding() != 0 {
		t.Errorf("outstanding frame callbacks = %d, want 0 after Teardown", f.frames.outstanding())
	}

	// The coordinator can be brought back up for the same document.
	if err := c.Initialize(); err != nil {
		t.Fatalf("re-Initialize failed: %v", err)
	}
	if id, ok := c.ActiveSection(900, 0); !ok || id != "about" {
		t.Errorf("ActiveSection after re-Initialize = %q, %v, want %q, true", id, ok, "about")
	}
}
