// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: nav/coordinator.go
// Summary: Facade composing registry, position cache, detector and animator.
// Usage: The host feeds scroll samples and layout-change events in; the
//        coordinator answers "which section is active" and performs smooth
//        scrolls to a requested section.

// Package nav tracks which section of a scrolling document is active and
// drives smooth programmatic scrolling to a target section. The package is
// host-agnostic: the document's layout is reached only through an injected
// measure function, the viewport only through injected offset callbacks, and
// animation frames only through an injected scheduler, so the whole tracker
// runs against synthetic spans in tests.
//
// Everything here follows a single-threaded cooperative model: all calls are
// expected from the host's UI goroutine, no operation blocks, and a cache
// rebuild triggered by a read completes before that read returns.
package nav

import (
	"fmt"
	"log"
	"time"
)

// DefaultScrollDuration is the smooth-scroll length used when Options does
// not override it.
const DefaultScrollDuration = 450 * time.Millisecond

// Options wires a Coordinator to its host.
type Options struct {
	// Measure resolves the live extent of a section. Required.
	Measure MeasureFunc
	// Offset reads the current viewport scroll position. Required.
	Offset func() float64
	// SetOffset moves the viewport. Required.
	SetOffset func(float64)
	// Schedule arms animation ticks. Defaults to a 16ms timer.
	Schedule ScheduleFunc
	// Vocabulary restricts accepted section ids; nil accepts any id.
	Vocabulary []SectionID
	// ScrollDuration is the smooth-scroll length. Defaults to 450ms.
	ScrollDuration time.Duration
	// Easing shapes the scroll curve. Defaults to EaseInOutCubic.
	Easing EasingFunc
	// Now supplies the clock, overridable for tests.
	Now func() time.Time
	// ActiveChanged, when set, is invoked by OnScroll whenever the active
	// section transitions, including to "none".
	ActiveChanged func(id SectionID, ok bool)
}

// Coordinator owns the navigation tracker's lifecycle: it validates the
// entry list, keeps the position cache fresh, answers active-section queries
// and mediates scroll animations. A coordinator starts uninitialized, enters
// the ready state after Initialize's first cache build, and stays there
// across invalidate/rebuild cycles until Teardown.
type Coordinator struct {
	entries    []Entry
	vocabulary []SectionID

	registry *Registry
	cache    *PositionCache
	animator *Animator
	measure  MeasureFunc

	duration      time.Duration
	activeChanged func(SectionID, bool)

	warnings   []string
	ready      bool
	lastActive SectionID
	hasActive  bool
}

// New builds a coordinator for the given ordered entry list. Nothing is
// validated or measured until Initialize.
func New(entries []Entry, opts Options) *Coordinator {
	duration := opts.ScrollDuration
	if duration <= 0 {
		duration = DefaultScrollDuration
	}
	return &Coordinator{
		entries:    append([]Entry(nil), entries...),
		vocabulary: opts.Vocabulary,
		cache:      NewPositionCache(),
		measure:    opts.Measure,
		duration:   duration,
		animator: NewAnimator(AnimatorConfig{
			Offset:    opts.Offset,
			SetOffset: opts.SetOffset,
			Schedule:  opts.Schedule,
			Easing:    opts.Easing,
			Now:       opts.Now,
		}),
		activeChanged: opts.ActiveChanged,
	}
}

// Initialize runs the structural validation, builds the registry and
// performs the first cache rebuild. Validation findings are logged and kept
// for Warnings but never abort initialization; only missing host callbacks
// do, since those are wiring bugs rather than runtime conditions.
func (c *Coordinator) Initialize() error {
	if c.measure == nil {
		return fmt.Errorf("coordinator: measure callback is required")
	}
	if c.animator.offset == nil || c.animator.setOffset == nil {
		return fmt.Errorf("coordinator: viewport offset callbacks are required")
	}

	c.warnings = Validate(c.entries, c.vocabulary)
	for _, w := range c.warnings {
		log.Printf("Coordinator: invalid navigation entry: %s", w)
	}

	c.registry = NewRegistry(c.entries)
	c.cache.Rebuild(c.registry.OrderedIDs(), c.measure)
	c.ready = true
	return nil
}

// ActiveSection returns the section active at the given scroll position,
// rebuilding the cache first when it is stale. Cheap enough to call on every
// coalesced scroll sample; the coordinator does no throttling of its own.
func (c *Coordinator) ActiveSection(scrollOffset, leadOffset float64) (SectionID, bool) {
	c.mustBeReady("ActiveSection")
	c.refresh()
	return Detect(scrollOffset, leadOffset, c.registry.OrderedIDs(), c.cache.Get)
}

// OnScroll feeds one scroll-position sample in, returning the now-active
// section and notifying the ActiveChanged callback on transitions. Callers
// are expected to coalesce samples to at most one per rendered frame.
func (c *Coordinator) OnScroll(scrollOffset, leadOffset float64) (SectionID, bool) {
	id, ok := c.ActiveSection(scrollOffset, leadOffset)
	if id != c.lastActive || ok != c.hasActive {
		c.lastActive = id
		c.hasActive = ok
		if c.activeChanged != nil {
			c.activeChanged(id, ok)
		}
	}
	return id, ok
}

// ScrollToSection starts a smooth scroll that puts the section's start just
// below the lead offset. A section without a current measurement is a soft
// failure: the request is logged and dropped, never raised.
func (c *Coordinator) ScrollToSection(id SectionID, leadOffset float64) bool {
	c.mustBeReady("ScrollToSection")

	span, ok := c.cache.Get(id)
	if c.cache.Stale() || !ok {
		c.cache.Rebuild(c.registry.OrderedIDs(), c.measure)
		span, ok = c.cache.Get(id)
	}
	if !ok {
		log.Printf("Coordinator: scroll to %q skipped, section is not measurable", id)
		return false
	}

	c.animator.ScrollTo(span.Start-leadOffset, c.duration)
	return true
}

// OnLayoutChanged marks the position cache stale. The host must call this on
// viewport resizes and on any content change that can shift section
// boundaries; the remeasure itself happens lazily on the next read.
func (c *Coordinator) OnLayoutChanged() {
	c.cache.Invalidate()
}

// Teardown cancels any in-flight animation and drops cached spans, returning
// the coordinator to its uninitialized state. Idempotent; required on
// unmount so no animation callback outlives the host.
func (c *Coordinator) Teardown() {
	c.animator.Cancel()
	c.cache.Clear()
	c.ready = false
	c.lastActive = ""
	c.hasActive = false
}

// Tick advances an in-flight scroll animation; a no-op when idle. Hosts with
// their own frame ticker call this once per frame instead of relying on the
// animator's timer-based scheduler.
func (c *Coordinator) Tick() {
	c.animator.Tick()
}

// Animating reports whether a smooth scroll is in flight.
func (c *Coordinator) Animating() bool {
	return c.animator.Animating()
}

// CancelScroll stops an in-flight scroll animation, leaving the offset
// wherever it is. Hosts call this when the user scrolls manually so the
// animation does not fight the user for the viewport.
func (c *Coordinator) CancelScroll() {
	c.animator.Cancel()
}

// Ready reports whether Initialize has completed.
func (c *Coordinator) Ready() bool {
	return c.ready
}

// Warnings returns the validation findings collected by Initialize.
func (c *Coordinator) Warnings() []string {
	return append([]string(nil), c.warnings...)
}

// Registry exposes the entry index, for hosts rendering navigation labels.
// Nil before Initialize.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

func (c *Coordinator) refresh() {
	if c.cache.Stale() {
		c.cache.Rebuild(c.registry.OrderedIDs(), c.measure)
	}
}

// mustBeReady guards operations that are meaningless before Initialize.
// Calling them earlier is a usage bug, so it fails hard instead of limping.
func (c *Coordinator) mustBeReady(op string) {
	if !c.ready {
		panic(fmt.Sprintf("nav: %s called before Initialize", op))
	}
}
