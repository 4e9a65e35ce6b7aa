package content

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

const goSnippet = "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}"

func TestHighlightLineCountMatchesLiteral(t *testing.T) {
	h := NewHighlighter("")
	lines := h.Highlight(goSnippet, "go")
	if len(lines) != 7 {
		t.Errorf("got %d highlighted lines, want 7", len(lines))
	}
}

func TestHighlightColorsKeywords(t *testing.T) {
	h := NewHighlighter("")
	lines := h.Highlight(goSnippet, "go")

	colored := false
	for _, runs := range lines {
		for _, r := range runs {
			if r.Fg != tcell.ColorDefault {
				colored = true
			}
		}
	}
	if !colored {
		t.Error("expected at least one run with a distinct color for Go source")
	}
}

func TestHighlightRoundTripsText(t *testing.T) {
	h := NewHighlighter("")
	lines := h.Highlight("alpha beta\ngamma", "")

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	var first string
	for _, r := range lines[0] {
		first += r.Text
	}
	if first != "alpha beta" {
		t.Errorf("line 0 text = %q, want %q", first, "alpha beta")
	}
}

func TestHighlightUnknownLanguage(t *testing.T) {
	h := NewHighlighter("no-such-style")
	lines := h.Highlight("plain old text", "nosuchlanguage")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
}

func TestHighlightEmptyLiteral(t *testing.T) {
	h := NewHighlighter("")
	lines := h.Highlight("", "go")
	if len(lines) == 0 {
		t.Error("empty literal should still produce one line")
	}
}
