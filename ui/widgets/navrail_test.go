// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelnav/nav"
	"github.com/framegrace/texelnav/ui/core"
)

func railEntries() []nav.Entry {
	return []nav.Entry{
		{ID: "hero", Label: "Marc Serra"},
		{ID: "about", Label: "About"},
		{ID: "contact", Label: "Contact"},
	}
}

func TestNavRailClickSelects(t *testing.T) {
	var selected []nav.SectionID
	n := NewNavRail(func(id nav.SectionID) { selected = append(selected, id) })
	n.SetPosition(0, 0)
	n.Resize(20, 10)
	n.SetEntries(railEntries())

	// Entries start two rows below the top; click the second one.
	if !n.HandleMouse(tcell.NewEventMouse(3, 3, tcell.Button1, tcell.ModNone)) {
		t.Fatalf("click on entry should be handled")
	}
	if len(selected) != 1 || selected[0] != "about" {
		t.Fatalf("selected = %v, want [about]", selected)
	}

	// A click on the header row stays inside the rail but selects nothing.
	n.HandleMouse(tcell.NewEventMouse(3, 0, tcell.Button1, tcell.ModNone))
	if len(selected) != 1 {
		t.Errorf("selected = %v, want no change from header click", selected)
	}

	// Wheel events pass through untouched.
	if n.HandleMouse(tcell.NewEventMouse(3, 3, tcell.WheelDown, tcell.ModNone)) {
		t.Errorf("wheel should not be consumed by the rail")
	}
}

func TestNavRailActiveHighlight(t *testing.T) {
	n := NewNavRail(nil)
	n.SetPosition(0, 0)
	n.Resize(20, 10)
	n.SetEntries(railEntries())

	invalidations := 0
	n.SetInvalidator(func(core.Rect) { invalidations++ })

	n.SetActive("about", true)
	if n.Active() != "about" {
		t.Fatalf("Active = %q, want about", n.Active())
	}
	if invalidations != 1 {
		t.Errorf("invalidations = %d, want 1", invalidations)
	}

	// Re-setting the same section is a no-op.
	n.SetActive("about", true)
	if invalidations != 1 {
		t.Errorf("invalidations = %d after repeat, want 1", invalidations)
	}

	// Losing the active section clears the highlight.
	n.SetActive("", false)
	if n.Active() != "" {
		t.Errorf("Active = %q, want cleared", n.Active())
	}

	buf := createTestBuffer(20, 10)
	p := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 20, H: 10})
	n.SetActive("contact", true)
	n.Draw(p)
	if got := rowText(buf, 4); !strings.Contains(got, "▸ Contact") {
		t.Errorf("active row = %q, want marker on Contact", got)
	}
	if got := rowText(buf, 3); strings.Contains(got, "▸") {
		t.Errorf("inactive row = %q, should not carry the marker", got)
	}
}

func TestNavRailTruncatesLabels(t *testing.T) {
	n := NewNavRail(nil)
	n.SetPosition(0, 0)
	n.Resize(8, 6)
	n.SetEntries([]nav.Entry{{ID: "experience", Label: "A Very Long Section Label"}})

	buf := createTestBuffer(8, 6)
	p := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 8, H: 6})
	n.Draw(p)

	if got := rowText(buf, 2); !strings.Contains(got, "…") {
		t.Errorf("row = %q, want ellipsis for truncated label", got)
	}
}
