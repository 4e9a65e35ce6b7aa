// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/documentview.go
// Summary: Scrollable document widget; owns the viewport offset that the
//          navigation animator drives and measures section spans for it.

package widgets

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelnav/content"
	"github.com/framegrace/texelnav/nav"
	"github.com/framegrace/texelnav/theme"
	"github.com/framegrace/texelnav/ui/core"
)

// DocumentView renders a laid-out document. The scroll offset is a float so
// animated glides land on fractional positions between frames; rendering
// rounds to the nearest row. The last column is reserved for overflow
// indicators.
type DocumentView struct {
	core.BaseWidget
	doc    *content.Document
	hl     *content.Highlighter
	layout *content.Layout
	offset float64
	inv    func(core.Rect)

	onLayout func()
	onScroll func(float64)

	base      tcell.Style
	title     tcell.Style
	heading   tcell.Style
	sub       tcell.Style
	code      tcell.Style
	rule      tcell.Style
	indicator tcell.Style
}

func NewDocumentView(hl *content.Highlighter) *DocumentView {
	v := &DocumentView{hl: hl}
	v.SetFocusable(true)

	tm := theme.Get()
	bg := tm.GetSemanticColor("bg.base").TrueColor()
	text := tm.GetSemanticColor("text.primary").TrueColor()
	v.base = tcell.StyleDefault.Background(bg).Foreground(text)
	v.title = v.base.Foreground(tm.GetSemanticColor("accent.primary").TrueColor()).Bold(true)
	v.heading = v.base.Foreground(tm.GetSemanticColor("accent.active").TrueColor()).Bold(true)
	v.sub = v.base.Foreground(tm.GetSemanticColor("accent.warm").TrueColor())
	v.code = tcell.StyleDefault.Background(tm.GetSemanticColor("bg.mantle").TrueColor()).Foreground(text)
	v.rule = v.base.Foreground(tm.GetSemanticColor("text.faint").TrueColor())
	v.indicator = v.base.Foreground(tm.GetSemanticColor("text.muted").TrueColor())
	return v
}

func (v *DocumentView) SetInvalidator(fn func(core.Rect)) { v.inv = fn }

// SetLayoutListener registers a callback fired whenever section spans may
// have moved, i.e. after a relayout or a resize.
func (v *DocumentView) SetLayoutListener(fn func()) { v.onLayout = fn }

// SetScrollListener registers a callback fired on user-initiated scrolls
// only; programmatic SetScrollOffset calls stay silent so animation frames
// don't echo back into their own source.
func (v *DocumentView) SetScrollListener(fn func(float64)) { v.onScroll = fn }

// SetDocument replaces the displayed document and lays it out at the
// current width.
func (v *DocumentView) SetDocument(doc *content.Document) {
	v.doc = doc
	v.offset = 0
	v.relayout()
	v.notifyLayout()
}

func (v *DocumentView) Resize(w, h int) {
	ow, _ := v.Size()
	v.BaseWidget.Resize(w, h)
	if w != ow {
		v.relayout()
	} else {
		v.clampOffset()
	}
	v.notifyLayout()
}

func (v *DocumentView) relayout() {
	if v.doc == nil {
		v.layout = nil
		return
	}
	w, _ := v.Size()
	if w < 2 {
		v.layout = nil
		return
	}
	v.layout = content.LayoutDocument(v.doc, w-1, v.hl)
	v.clampOffset()
	v.invalidate()
}

func (v *DocumentView) notifyLayout() {
	if v.onLayout != nil {
		v.onLayout()
	}
}

func (v *DocumentView) invalidate() {
	if v.inv != nil {
		v.inv(v.Bounds())
	}
}

// Measure reports the row span of a section in the current layout. It
// satisfies nav.MeasureFunc, so the coordinator queries it directly.
func (v *DocumentView) Measure(id nav.SectionID) (nav.Span, bool) {
	if v.layout == nil {
		return nav.Span{}, false
	}
	return v.layout.Span(id)
}

func (v *DocumentView) ScrollOffset() float64 { return v.offset }

// SetScrollOffset clamps and applies a new offset. The animator and
// session restore drive this; user input goes through scrollBy instead.
func (v *DocumentView) SetScrollOffset(off float64) {
	off = v.clamp(off)
	if off == v.offset {
		return
	}
	v.offset = off
	v.invalidate()
}

// MaxOffset is the largest scrollable offset for the current layout.
func (v *DocumentView) MaxOffset() float64 {
	if v.layout == nil {
		return 0
	}
	_, h := v.Size()
	if m := float64(v.layout.Height() - h); m > 0 {
		return m
	}
	return 0
}

func (v *DocumentView) clamp(off float64) float64 {
	if off < 0 {
		return 0
	}
	if m := v.MaxOffset(); off > m {
		return m
	}
	return off
}

func (v *DocumentView) clampOffset() { v.offset = v.clamp(v.offset) }

func (v *DocumentView) scrollBy(delta float64) {
	old := v.offset
	v.SetScrollOffset(v.offset + delta)
	if v.offset != old && v.onScroll != nil {
		v.onScroll(v.offset)
	}
}

func (v *DocumentView) HandleKey(ev *tcell.EventKey) bool {
	_, h := v.Size()
	switch ev.Key() {
	case tcell.KeyUp:
		v.scrollBy(-1)
		return true
	case tcell.KeyDown:
		v.scrollBy(1)
		return true
	case tcell.KeyPgUp:
		v.scrollBy(float64(-h))
		return true
	case tcell.KeyPgDn:
		v.scrollBy(float64(h))
		return true
	case tcell.KeyHome:
		v.scrollBy(-v.offset)
		return true
	case tcell.KeyEnd:
		v.scrollBy(v.MaxOffset() - v.offset)
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'j':
			v.scrollBy(1)
			return true
		case 'k':
			v.scrollBy(-1)
			return true
		case ' ':
			v.scrollBy(float64(h))
			return true
		case 'g':
			v.scrollBy(-v.offset)
			return true
		case 'G':
			v.scrollBy(v.MaxOffset() - v.offset)
			return true
		}
	}
	return false
}

func (v *DocumentView) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !v.HitTest(x, y) {
		return false
	}
	switch {
	case ev.Buttons()&tcell.WheelUp != 0:
		v.scrollBy(-3)
		return true
	case ev.Buttons()&tcell.WheelDown != 0:
		v.scrollBy(3)
		return true
	}
	// A plain click focuses the view; nothing else to do.
	return ev.Buttons()&tcell.Button1 != 0
}

func (v *DocumentView) Draw(p *core.Painter) {
	r := v.Bounds()
	p.Fill(r, ' ', v.base)
	if v.layout == nil {
		return
	}

	top := int(math.Round(v.offset))
	for row := 0; row < r.H; row++ {
		v.drawLine(p, r, r.Y+row, v.layout.Line(top+row))
	}

	x := r.X + r.W - 1
	if v.offset > 0 {
		p.SetCell(x, r.Y, '▲', v.indicator)
	}
	if v.offset < v.MaxOffset() {
		p.SetCell(x, r.Y+r.H-1, '▼', v.indicator)
	}
}

func (v *DocumentView) drawLine(p *core.Painter, r core.Rect, y int, line content.Line) {
	st := v.base
	switch line.Kind {
	case content.LineBlank:
		return
	case content.LineTitle:
		st = v.title
	case content.LineHeading:
		st = v.heading
	case content.LineSubheading:
		st = v.sub
	case content.LineCode:
		st = v.code
		// Code rows get their backdrop across the text column.
		p.Fill(core.Rect{X: r.X, Y: y, W: r.W - 1, H: 1}, ' ', st)
	case content.LineRule:
		st = v.rule
	}

	x := r.X
	for _, run := range line.Runs {
		rs := st
		if run.Fg != tcell.ColorDefault {
			rs = rs.Foreground(run.Fg)
		}
		if run.Bold {
			rs = rs.Bold(true)
		}
		if run.Italic {
			rs = rs.Italic(true)
		}
		if run.Underline {
			rs = rs.Underline(true)
		}
		p.DrawText(x, y, run.Text, rs)
		x += runewidth.StringWidth(run.Text)
	}
}
