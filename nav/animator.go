// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: nav/animator.go
// Summary: Time-based scroll animation with easing and last-writer-wins cancellation.
// Usage: Driven by a host frame scheduler; at most one animation is in flight.
// Notes: Purely a time→offset function, it never re-measures section spans.

package nav

import (
	"sync"
	"time"
)

// CancelFunc stops a pending frame callback. Safe to call more than once.
type CancelFunc func()

// ScheduleFunc arms fn to run on the next animation frame and returns a
// cancel handle. The default implementation fires after one 16ms frame.
type ScheduleFunc func(fn func()) CancelFunc

func defaultSchedule(fn func()) CancelFunc {
	t := time.AfterFunc(16*time.Millisecond, fn)
	return func() { t.Stop() }
}

// AnimatorConfig wires an Animator to its host viewport.
type AnimatorConfig struct {
	// Offset reads the current scroll position. Required.
	Offset func() float64
	// SetOffset moves the viewport. Required.
	SetOffset func(float64)
	// Schedule arms the next animation tick. Defaults to a 16ms timer.
	Schedule ScheduleFunc
	// Easing shapes the animation curve. Defaults to EaseInOutCubic.
	Easing EasingFunc
	// Now supplies the clock, overridable for tests. Defaults to time.Now.
	Now func() time.Time
}

func (c *AnimatorConfig) applyDefaults() {
	if c.Schedule == nil {
		c.Schedule = defaultSchedule
	}
	if c.Easing == nil {
		c.Easing = EaseInOutCubic
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// animation is the transient state of one in-flight scroll. It exists only
// to support cancellation and is dropped on completion or supersession.
type animation struct {
	start     float64
	target    float64
	startTime time.Time
	duration  time.Duration
	cancel    CancelFunc
}

// Animator drives a canceling, time-based easing animation toward a target
// scroll offset, independent of any native smooth-scroll support. Starting a
// new scroll cancels the previous one unconditionally; there is no queue.
type Animator struct {
	mu        sync.Mutex
	offset    func() float64
	setOffset func(float64)
	schedule  ScheduleFunc
	easing    EasingFunc
	now       func() time.Time
	active    *animation
}

// NewAnimator builds an animator from cfg after filling defaults.
func NewAnimator(cfg AnimatorConfig) *Animator {
	cfg.applyDefaults()
	return &Animator{
		offset:    cfg.Offset,
		setOffset: cfg.SetOffset,
		schedule:  cfg.Schedule,
		easing:    cfg.Easing,
		now:       cfg.Now,
	}
}

// ScrollTo animates the viewport from its current offset to target over
// duration. A non-positive duration, or a target the viewport already sits
// on, jumps immediately without scheduling ticks.
func (a *Animator) ScrollTo(target float64, duration time.Duration) {
	a.mu.Lock()
	a.clearLocked()

	start := a.offset()
	if duration <= 0 || start == target {
		a.mu.Unlock()
		a.setOffset(target)
		return
	}

	anim := &animation{
		start:     start,
		target:    target,
		startTime: a.now(),
		duration:  duration,
	}
	a.active = anim
	anim.cancel = a.schedule(a.Tick)
	a.mu.Unlock()
}

// Tick advances the in-flight animation to the current clock time, moving
// the viewport and re-arming the scheduler until elapsed >= duration. A tick
// with no animation in flight is a no-op, so the host run loop may call it
// every frame unconditionally.
func (a *Animator) Tick() {
	a.mu.Lock()
	anim := a.active
	if anim == nil {
		a.mu.Unlock()
		return
	}

	elapsed := a.now().Sub(anim.startTime)
	if elapsed >= anim.duration {
		a.clearLocked()
		a.mu.Unlock()
		a.setOffset(anim.target)
		return
	}

	progress := float64(elapsed) / float64(anim.duration)
	if progress < 0 {
		progress = 0
	}
	value := anim.start + (anim.target-anim.start)*a.easing(progress)

	if anim.cancel != nil {
		anim.cancel()
	}
	anim.cancel = a.schedule(a.Tick)
	a.mu.Unlock()

	a.setOffset(value)
}

// Cancel stops any in-flight animation and clears its pending tick.
// Idempotent; calling it when idle does nothing.
func (a *Animator) Cancel() {
	a.mu.Lock()
	a.clearLocked()
	a.mu.Unlock()
}

// Animating reports whether a scroll animation is currently in flight.
func (a *Animator) Animating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active != nil
}

// Target returns the destination offset of the in-flight animation, if any.
func (a *Animator) Target() (float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.active == nil {
		return 0, false
	}
	return a.active.target, true
}

// clearLocked drops the active animation and its pending callback. Must be
// called with the mutex held.
func (a *Animator) clearLocked() {
	if a.active == nil {
		return
	}
	if a.active.cancel != nil {
		a.active.cancel()
	}
	a.active = nil
}
