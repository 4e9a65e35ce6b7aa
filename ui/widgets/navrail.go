// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/navrail.go
// Summary: Section list with active highlight and click-to-scroll.

package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelnav/nav"
	"github.com/framegrace/texelnav/theme"
	"github.com/framegrace/texelnav/ui/core"
)

// NavRail lists the document's sections and keeps the one under the
// viewport anchor highlighted. Clicking an entry asks the host to glide
// there; the rail itself never touches the scroll offset.
type NavRail struct {
	core.BaseWidget
	entries  []nav.Entry
	active   nav.SectionID
	onSelect func(nav.SectionID)
	inv      func(core.Rect)

	base     tcell.Style
	item     tcell.Style
	activeSt tcell.Style
	header   tcell.Style
}

func NewNavRail(onSelect func(nav.SectionID)) *NavRail {
	n := &NavRail{onSelect: onSelect}

	tm := theme.Get()
	bg := tm.GetSemanticColor("bg.mantle").TrueColor()
	n.base = tcell.StyleDefault.Background(bg).Foreground(tm.GetSemanticColor("text.faint").TrueColor())
	n.item = n.base.Foreground(tm.GetSemanticColor("text.muted").TrueColor())
	n.activeSt = tcell.StyleDefault.
		Background(tm.GetSemanticColor("bg.surface").TrueColor()).
		Foreground(tm.GetSemanticColor("accent.active").TrueColor()).
		Bold(true)
	n.header = n.base.Foreground(tm.GetSemanticColor("accent.primary").TrueColor()).Bold(true)
	return n
}

func (n *NavRail) SetInvalidator(fn func(core.Rect)) { n.inv = fn }

func (n *NavRail) SetEntries(entries []nav.Entry) {
	n.entries = append([]nav.Entry(nil), entries...)
	n.invalidate()
}

// SetActive moves the highlight. Passing ok=false clears it, which
// happens when the viewport sits in a gap between sections.
func (n *NavRail) SetActive(id nav.SectionID, ok bool) {
	if !ok {
		id = ""
	}
	if id == n.active {
		return
	}
	n.active = id
	n.invalidate()
}

func (n *NavRail) Active() nav.SectionID { return n.active }

func (n *NavRail) Draw(p *core.Painter) {
	r := n.Bounds()
	p.Fill(r, ' ', n.base)
	if r.W < 4 {
		return
	}

	p.DrawText(r.X+1, r.Y, "contents", n.header)
	for i, e := range n.entries {
		y := n.rowFor(i)
		if y >= r.Y+r.H {
			break
		}
		st := n.item
		marker := "  "
		if e.ID == n.active {
			st = n.activeSt
			marker = "▸ "
			p.Fill(core.Rect{X: r.X, Y: y, W: r.W, H: 1}, ' ', st)
		}
		label := runewidth.Truncate(e.Label, r.W-3, "…")
		p.DrawText(r.X+1, y, marker+label, st)
	}
}

// HandleMouse turns a click on an entry row into a selection.
func (n *NavRail) HandleMouse(ev *tcell.EventMouse) bool {
	if ev.Buttons()&tcell.Button1 == 0 {
		return false
	}
	_, y := ev.Position()
	for i, e := range n.entries {
		if n.rowFor(i) == y {
			if n.onSelect != nil {
				n.onSelect(e.ID)
			}
			return true
		}
	}
	return true
}

// rowFor maps an entry index to its screen row; entries start below the
// header with a separating blank.
func (n *NavRail) rowFor(i int) int {
	return n.Bounds().Y + 2 + i
}

func (n *NavRail) invalidate() {
	if n.inv != nil {
		n.inv(n.Bounds())
	}
}
