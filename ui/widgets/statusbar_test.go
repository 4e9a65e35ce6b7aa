// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package widgets

import (
	"strings"
	"testing"

	"github.com/framegrace/texelnav/ui/core"
)

func TestStatusBarShowsState(t *testing.T) {
	s := NewStatusBar()
	s.SetPosition(0, 0)
	s.Resize(40, 1)
	s.SetTitle("Marc Serra")
	s.SetSection("About")
	s.SetProgress(42, false)

	buf := createTestBuffer(40, 1)
	p := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 40, H: 1})
	s.Draw(p)

	row := rowText(buf, 0)
	if !strings.Contains(row, "Marc Serra") {
		t.Errorf("row = %q, want title", row)
	}
	if !strings.Contains(row, "About") {
		t.Errorf("row = %q, want active section", row)
	}
	if !strings.Contains(row, "42%") {
		t.Errorf("row = %q, want progress", row)
	}
	if strings.Contains(row, "~") {
		t.Errorf("row = %q, no glide marker expected", row)
	}
}

func TestStatusBarGlideMarker(t *testing.T) {
	s := NewStatusBar()
	s.SetPosition(0, 0)
	s.Resize(40, 1)
	s.SetTitle("Doc")
	s.SetProgress(80, true)

	buf := createTestBuffer(40, 1)
	p := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 40, H: 1})
	s.Draw(p)

	if row := rowText(buf, 0); !strings.Contains(row, "~ 80%") {
		t.Errorf("row = %q, want glide marker before progress", row)
	}
}

func TestStatusBarInvalidatesOnChange(t *testing.T) {
	s := NewStatusBar()
	s.SetPosition(0, 0)
	s.Resize(40, 1)

	invalidations := 0
	s.SetInvalidator(func(core.Rect) { invalidations++ })

	s.SetSection("About")
	s.SetSection("About")
	s.SetProgress(10, false)
	s.SetProgress(10, false)

	if invalidations != 2 {
		t.Errorf("invalidations = %d, want 2 (one per real change)", invalidations)
	}
}

func TestStatusBarTruncatesTitle(t *testing.T) {
	s := NewStatusBar()
	s.SetPosition(0, 0)
	s.Resize(16, 1)
	s.SetTitle("A Rather Long Document Title")
	s.SetSection("Somewhere")
	s.SetProgress(5, false)

	buf := createTestBuffer(16, 1)
	p := core.NewPainter(buf, core.Rect{X: 0, Y: 0, W: 16, H: 1})
	s.Draw(p)

	if row := rowText(buf, 0); !strings.Contains(row, "%") {
		t.Errorf("row = %q, progress must survive truncation", row)
	}
}
