package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelnav/theme"
)

// UIManager owns a flat widget list and composes it into a cell buffer.
// Later entries draw on top.
type UIManager struct {
	mu       sync.Mutex // protects widgets, focus, buffer
	dirtyMu  sync.Mutex // protects dirty list and notifier
	W, H     int
	widgets  []Widget
	bgStyle  tcell.Style
	notifier chan<- bool
	focused  Widget
	buf      [][]Cell
	dirty    []Rect
}

func NewUIManager() *UIManager {
	tm := theme.Get()
	bg := tm.GetSemanticColor("bg.base").TrueColor()
	fg := tm.GetSemanticColor("text.primary").TrueColor()
	return &UIManager{
		bgStyle: tcell.StyleDefault.Background(bg).Foreground(fg),
	}
}

func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()

	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.W, u.H = w, h
	u.buf = nil
	u.invalidateAllLocked()
}

func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.widgets = append(u.widgets, w)
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	u.dirtyMu.Lock()
	u.invalidateAllLocked()
	u.dirtyMu.Unlock()
}

func (u *UIManager) Focus(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.focusLocked(w)
}

func (u *UIManager) focusLocked(w Widget) {
	if w == nil || !w.Focusable() || u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	u.focused.Focus()
}

// HandleKey routes a key to the focused widget first, then to the rest
// of the tree top-down.
func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.focused != nil && u.focused.HandleKey(ev) {
		u.flushAfterInputLocked()
		return true
	}
	for i := len(u.widgets) - 1; i >= 0; i-- {
		w := u.widgets[i]
		if w == u.focused {
			continue
		}
		if w.HandleKey(ev) {
			u.flushAfterInputLocked()
			return true
		}
	}
	return false
}

// HandleMouse routes presses and wheel events to the topmost widget
// under the pointer. A press also moves focus there.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	x, y := ev.Position()
	buttons := ev.Buttons()
	wheel := buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0
	if buttons == tcell.ButtonNone && !wheel {
		return false
	}

	w := u.topmostAtLocked(x, y)
	if w == nil {
		return false
	}
	if buttons&tcell.Button1 != 0 {
		u.focusLocked(w)
	}
	if mw, ok := w.(MouseAware); ok && mw.HandleMouse(ev) {
		u.flushAfterInputLocked()
		return true
	}
	return false
}

func (u *UIManager) topmostAtLocked(x, y int) Widget {
	for i := len(u.widgets) - 1; i >= 0; i-- {
		if u.widgets[i].HitTest(x, y) {
			return u.widgets[i]
		}
	}
	return nil
}

// flushAfterInputLocked makes sure a handled event becomes visible:
// widgets that invalidated precisely get a refresh, the rest a full
// redraw.
func (u *UIManager) flushAfterInputLocked() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	if len(u.dirty) == 0 {
		u.invalidateAllLocked()
	} else {
		u.requestRefreshLocked()
	}
}

// Invalidate marks a region for redraw. Thread-safe.
func (u *UIManager) Invalidate(r Rect) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()

	if r.Empty() {
		return
	}
	u.dirty = append(u.dirty, r)
	u.requestRefreshLocked()
}

// InvalidateAll marks the whole surface for redraw.
func (u *UIManager) InvalidateAll() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.invalidateAllLocked()
}

func (u *UIManager) invalidateAllLocked() {
	u.dirty = append(u.dirty, Rect{X: 0, Y: 0, W: u.W, H: u.H})
	u.requestRefreshLocked()
}

func (u *UIManager) requestRefreshLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

func (u *UIManager) ensureBufferLocked() {
	h := u.H
	w := u.W
	if u.buf != nil && len(u.buf) == h && (h == 0 || len(u.buf[0]) == w) {
		return
	}
	u.buf = make([][]Cell, h)
	for y := 0; y < h; y++ {
		row := make([]Cell, w)
		for x := 0; x < w; x++ {
			row[x] = Cell{Ch: ' ', Style: u.bgStyle}
		}
		u.buf[y] = row
	}
}

// Render updates dirty regions and returns the framebuffer.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.ensureBufferLocked()

	u.dirtyMu.Lock()
	dirty := u.dirty
	u.dirty = nil
	u.dirtyMu.Unlock()

	if len(dirty) == 0 {
		// No specific dirty regions requested: compose a full frame.
		full := Rect{X: 0, Y: 0, W: u.W, H: u.H}
		p := NewPainter(u.buf, full)
		p.Fill(full, ' ', u.bgStyle)
		for _, w := range u.widgets {
			w.Draw(p)
		}
		return u.buf
	}

	surface := Rect{X: 0, Y: 0, W: u.W, H: u.H}
	for _, clip := range mergeRects(dirty) {
		clip = clip.Intersect(surface)
		if clip.Empty() {
			continue
		}
		p := NewPainter(u.buf, clip)
		p.Fill(clip, ' ', u.bgStyle)
		for _, w := range u.widgets {
			wx, wy := w.Position()
			ww, wh := w.Size()
			if (Rect{X: wx, Y: wy, W: ww, H: wh}).Overlaps(clip) {
				w.Draw(p)
			}
		}
	}
	return u.buf
}

// mergeRects unions overlapping or edge-adjacent rectangles into a
// compact set so nearby invalidations redraw as one region.
func mergeRects(in []Rect) []Rect {
	out := make([]Rect, 0, len(in))
	for _, r := range in {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	changed := true
	for changed {
		changed = false
		for i := 0; i < len(out) && !changed; i++ {
			for j := i + 1; j < len(out) && !changed; j++ {
				if rectsTouchOrOverlap(out[i], out[j]) {
					out[i] = out[i].Union(out[j])
					out = append(out[:j], out[j+1:]...)
					changed = true
				}
			}
		}
	}
	return out
}

func rectsTouchOrOverlap(a, b Rect) bool {
	if a.Overlaps(b) {
		return true
	}
	ax1 := a.X + a.W
	ay1 := a.Y + a.H
	bx1 := b.X + b.W
	by1 := b.Y + b.H
	horizontallyAdjacent := (ax1 == b.X || bx1 == a.X) && !(a.Y >= by1 || ay1 <= b.Y)
	verticallyAdjacent := (ay1 == b.Y || by1 == a.Y) && !(a.X >= bx1 || ax1 <= b.X)
	cornerAdjacent := (ax1 == b.X || bx1 == a.X) && (ay1 == b.Y || by1 == a.Y)
	return horizontallyAdjacent || verticallyAdjacent || cornerAdjacent
}
