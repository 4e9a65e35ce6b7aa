package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Painter draws into a cell buffer, clipped to a region. Widgets get a
// painter scoped to the surface; WithClip narrows it further.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

// WithClip returns a painter restricted to the intersection of the
// current clip and r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// SetCell writes one cell if it falls inside the clip region.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// DrawText writes a string starting at (x, y), advancing by display
// width. Cells covered by a wide rune are zeroed so drivers skip them.
func (p *Painter) DrawText(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(x, y, r, style)
		for i := 1; i < w; i++ {
			p.SetCell(x+i, y, 0, style)
		}
		x += w
	}
}

// Fill paints every cell of r with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}
