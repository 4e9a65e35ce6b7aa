package nav

import (
	"testing"
	"time"
)

// frameStub counts armed and canceled frame callbacks so tests can verify
// that no pending tick outlives an animation.
type frameStub struct {
	armed    int
	canceled int
}

func (f *frameStub) schedule(fn func()) CancelFunc {
	f.armed++
	spent := false
	return func() {
		if !spent {
			spent = true
			f.canceled++
		}
	}
}

func (f *frameStub) outstanding() int {
	return f.armed - f.canceled
}

// testViewport is a fake scrollable surface recording every offset write.
type testViewport struct {
	offset  float64
	history []float64
}

func (v *testViewport) get() float64 { return v.offset }

func (v *testViewport) set(o float64) {
	v.offset = o
	v.history = append(v.history, o)
}

func newTestAnimator(vp *testViewport, frames *frameStub, clock *time.Time) *Animator {
	return NewAnimator(AnimatorConfig{
		Offset:    vp.get,
		SetOffset: vp.set,
		Schedule:  frames.schedule,
		Now:       func() time.Time { return *clock },
	})
}

func TestAnimatorConvergesMonotonically(t *testing.T) {
	vp := &testViewport{offset: 100}
	frames := &frameStub{}
	clock := time.Unix(0, 0)
	a := newTestAnimator(vp, frames, &clock)

	a.ScrollTo(600, 400*time.Millisecond)

	// At t=0 the eased curve contributes nothing; the viewport must still
	// sit on its start offset.
	a.Tick()
	if vp.offset != 100 {
		t.Errorf("offset at t=0 = %v, want 100", vp.offset)
	}

	for elapsed := time.Duration(0); elapsed < 400*time.Millisecond; elapsed += 37 * time.Millisecond {
		clock = time.Unix(0, 0).Add(elapsed)
		a.Tick()
	}
	for i := 1; i < len(vp.history); i++ {
		if vp.history[i] < vp.history[i-1] {
			t.Fatalf("offset regressed from %v to %v at sample %d", vp.history[i-1], vp.history[i], i)
		}
	}

	clock = time.Unix(0, 0).Add(400 * time.Millisecond)
	a.Tick()
	if vp.offset != 600 {
		t.Errorf("offset at t=duration = %v, want exactly 600", vp.offset)
	}
	if a.Animating() {
		t.Error("animation should be finished at t=duration")
	}
	if frames.outstanding() != 0 {
		t.Errorf("outstanding frame callbacks = %d, want 0 after completion", frames.outstanding())
	}
}

func TestAnimatorZeroDurationJumps(t *testing.T) {
	vp := &testViewport{offset: 50}
	frames := &frameStub{}
	clock := time.Unix(0, 0)
	a := newTestAnimator(vp, frames, &clock)

	a.ScrollTo(300, 0)

	if vp.offset != 300 {
		t.Errorf("offset = %v, want 300 immediately", vp.offset)
	}
	if a.Animating() {
		t.Error("zero-duration scroll should not leave an animation in flight")
	}
	if frames.armed != 0 {
		t.Errorf("armed frames = %d, want 0 for instant scroll", frames.armed)
	}
}

func TestAnimatorAlreadyAtTarget(t *testing.T) {
	vp := &testViewport{offset: 200}
	frames := &frameStub{}
	clock := time.Unix(0, 0)
	a := newTestAnimator(vp, frames, &clock)

	a.ScrollTo(200, 250*time.Millisecond)

	if a.Animating() {
		t.Error("scrolling to the current offset should finish immediately")
	}
	if vp.offset != 200 {
		t.Errorf("offset = %v, want 200", vp.offset)
	}
}

func TestAnimatorCancelIdempotent(t *testing.T) {
	vp := &testViewport{}
	frames := &frameStub{}
	clock := time.Unix(0, 0)
	a := newTestAnimator(vp, frames, &clock)

	// Cancel while idle is a no-op.
	a.Cancel()
	a.Cancel()

	a.ScrollTo(500, 300*time.Millisecond)
	if !a.Animating() {
		t.Fatal("expected an animation in flight")
	}

	a.Cancel()
	a.Cancel()

	if a.Animating() {
		t.Error("animation still in flight after Cancel")
	}
	if frames.outstanding() != 0 {
		t.Errorf("outstanding frame callbacks = %d, want 0 after cancel", frames.outstanding())
	}

	// A canceled animation stops moving the viewport.
	before := vp.offset
	clock = clock.Add(100 * time.Millisecond)
	a.Tick()
	if vp.offset != before {
		t.Errorf("offset moved to %v after cancel, want %v", vp.offset, before)
	}
}

func TestAnimatorSupersession(t *testing.T) {
	vp := &testViewport{offset: 0}
	frames := &frameStub{}
	clock := time.Unix(0, 0)
	a := newTestAnimator(vp, frames, &clock)

	a.ScrollTo(1000, 400*time.Millisecond)
	clock = clock.Add(120 * time.Millisecond)
	a.Tick()
	midway := vp.offset

	// The second request wins unconditionally; exactly one animation
	// remains and it targets the newest offset.
	a.ScrollTo(250, 400*time.Millisecond)

	target, ok := a.Target()
	if !ok || target != 250 {
		t.Errorf("Target = %v, %v, want 250, true", target, ok)
	}
	if frames.outstanding() != 1 {
		t.Errorf("outstanding frame callbacks = %d, want exactly 1", frames.outstanding())
	}

	clock = clock.Add(400 * time.Millisecond)
	a.Tick()
	if vp.offset != 250 {
		t.Errorf("offset = %v, want 250 (the superseding target)", vp.offset)
	}
	if midway == 0 {
		t.Error("first animation should have moved the viewport before supersession")
	}
}

func TestAnimatorEasingMatchesCubicCurve(t *testing.T) {
	vp := &testViewport{offset: 0}
	frames := &frameStub{}
	clock := time.Unix(0, 0)
	a := newTestAnimator(vp, frames, &clock)

	a.ScrollTo(1000, 1000*time.Millisecond)

	// Halfway through a cubic ease-in-out the eased progress is exactly 0.5.
	clock = time.Unix(0, 0).Add(500 * time.Millisecond)
	a.Tick()
	if vp.offset != 500 {
		t.Errorf("offset at midpoint = %v, want 500", vp.offset)
	}

	// Quarter point: 4·0.25³ = 0.0625.
	a.ScrollTo(0, 0)
	a.ScrollTo(1000, 1000*time.Millisecond)
	clock = clock.Add(250 * time.Millisecond)
	a.Tick()
	if vp.offset != 62.5 {
		t.Errorf("offset at quarter point = %v, want 62.5", vp.offset)
	}
}
