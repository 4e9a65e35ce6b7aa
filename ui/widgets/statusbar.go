// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: ui/widgets/statusbar.go
// Summary: One-row bar with document title, active section, and progress.

package widgets

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelnav/theme"
	"github.com/framegrace/texelnav/ui/core"
)

// StatusBar mirrors the tracker state: which section is active and how far
// down the document the viewport sits. A tilde in front of the percentage
// marks an animated glide in flight.
type StatusBar struct {
	core.BaseWidget
	title   string
	section string
	percent int
	gliding bool
	inv     func(core.Rect)

	base    tcell.Style
	titleSt tcell.Style
	dim     tcell.Style
}

func NewStatusBar() *StatusBar {
	s := &StatusBar{}

	tm := theme.Get()
	bg := tm.GetSemanticColor("bg.crust").TrueColor()
	s.base = tcell.StyleDefault.Background(bg).Foreground(tm.GetSemanticColor("text.muted").TrueColor())
	s.titleSt = s.base.Foreground(tm.GetSemanticColor("accent.primary").TrueColor()).Bold(true)
	s.dim = s.base.Foreground(tm.GetSemanticColor("text.faint").TrueColor())
	return s
}

func (s *StatusBar) SetInvalidator(fn func(core.Rect)) { s.inv = fn }

func (s *StatusBar) SetTitle(title string) {
	if title == s.title {
		return
	}
	s.title = title
	s.invalidate()
}

// SetSection updates the active-section readout; empty means the
// viewport is between sections.
func (s *StatusBar) SetSection(label string) {
	if label == s.section {
		return
	}
	s.section = label
	s.invalidate()
}

func (s *StatusBar) SetProgress(percent int, gliding bool) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent == s.percent && gliding == s.gliding {
		return
	}
	s.percent, s.gliding = percent, gliding
	s.invalidate()
}

func (s *StatusBar) Draw(p *core.Painter) {
	r := s.Bounds()
	p.Fill(r, ' ', s.base)
	if r.W < 8 {
		return
	}

	right := fmt.Sprintf(" %3d%% ", s.percent)
	if s.gliding {
		right = fmt.Sprintf("~%3d%% ", s.percent)
	}
	rightW := runewidth.StringWidth(right)

	x := r.X + 1
	limit := r.X + r.W - rightW - 1
	x = s.drawSegment(p, x, limit, r.Y, s.title, s.titleSt)
	if s.section != "" {
		x = s.drawSegment(p, x, limit, r.Y, " · ", s.dim)
		s.drawSegment(p, x, limit, r.Y, s.section, s.base)
	}

	p.DrawText(r.X+r.W-rightW, r.Y, right, s.dim)
}

func (s *StatusBar) drawSegment(p *core.Painter, x, limit, y int, text string, st tcell.Style) int {
	if x >= limit {
		return x
	}
	text = runewidth.Truncate(text, limit-x, "…")
	p.DrawText(x, y, text, st)
	return x + runewidth.StringWidth(text)
}

func (s *StatusBar) invalidate() {
	if s.inv != nil {
		s.inv(s.Bounds())
	}
}
