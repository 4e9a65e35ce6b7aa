// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: content/layout.go
// Summary: Width-aware document layout; the source of section span
//          measurements for the navigation tracker.
// Notes: Wrapping is runewidth-aware so CJK and other wide runes count
//        double. Section heights change with the wrap width, which is what
//        makes layout invalidation on resize meaningful.

package content

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelnav/nav"
)

// LineKind tells the renderer how to style a laid-out line.
type LineKind int

const (
	LineBlank LineKind = iota
	LineTitle
	LineHeading
	LineSubheading
	LineText
	LineCode
	LineListItem
	LineRule
)

// Line is one terminal row of laid-out content.
type Line struct {
	Kind LineKind
	Runs []Run
}

// Layout is a document rendered to a fixed wrap width. It keeps the
// resulting line list plus each section's [start, end) row span, which backs
// the measure callback handed to the navigation coordinator.
type Layout struct {
	width int
	lines []Line
	spans map[nav.SectionID]nav.Span
}

// LayoutDocument lays doc out at the given width. hl may be nil, in which
// case code blocks render unhighlighted.
func LayoutDocument(doc *Document, width int, hl *Highlighter) *Layout {
	if width < 1 {
		width = 1
	}
	l := &Layout{
		width: width,
		spans: make(map[nav.SectionID]nav.Span, len(doc.Sections)),
	}

	for _, sec := range doc.Sections {
		start := len(l.lines)

		switch sec.Level {
		case 1:
			l.push(LineTitle, sec.Label)
		default:
			l.push(LineHeading, sec.Label)
		}
		l.blank()

		for _, b := range sec.Blocks {
			l.layoutBlock(b, hl)
		}

		l.spans[sec.ID] = nav.Span{
			Start: float64(start),
			End:   float64(len(l.lines)),
		}
	}
	return l
}

func (l *Layout) layoutBlock(b Block, hl *Highlighter) {
	switch b.Kind {
	case BlockHeading:
		l.push(LineSubheading, b.Text)
		l.blank()

	case BlockParagraph:
		for _, line := range wrapText(b.Text, l.width) {
			l.push(LineText, line)
		}
		l.blank()

	case BlockCode:
		var lines [][]Run
		if hl != nil {
			lines = hl.Highlight(b.Literal, b.Language)
		} else {
			lines = plainLines(b.Literal)
		}
		for _, runs := range lines {
			l.lines = append(l.lines, Line{Kind: LineCode, Runs: runs})
		}
		l.blank()

	case BlockList:
		for i, item := range b.Items {
			prefix := "• "
			if b.Ordered {
				prefix = fmt.Sprintf("%d. ", i+1)
			}
			indent := strings.Repeat(" ", runewidth.StringWidth(prefix))
			wrapped := wrapText(item, l.width-runewidth.StringWidth(prefix))
			if len(wrapped) == 0 {
				wrapped = []string{""}
			}
			for j, line := range wrapped {
				if j == 0 {
					l.push(LineListItem, prefix+line)
				} else {
					l.push(LineListItem, indent+line)
				}
			}
		}
		l.blank()

	case BlockRule:
		l.push(LineRule, strings.Repeat("─", l.width))
		l.blank()
	}
}

func (l *Layout) push(kind LineKind, text string) {
	var runs []Run
	if text != "" {
		runs = []Run{{Text: text}}
	}
	l.lines = append(l.lines, Line{Kind: kind, Runs: runs})
}

func (l *Layout) blank() {
	l.lines = append(l.lines, Line{Kind: LineBlank})
}

// Span reports the row extent of a section; it satisfies nav.MeasureFunc.
func (l *Layout) Span(id nav.SectionID) (nav.Span, bool) {
	s, ok := l.spans[id]
	return s, ok
}

// Height returns the total number of laid-out rows.
func (l *Layout) Height() int {
	return len(l.lines)
}

// Width returns the wrap width the layout was built for.
func (l *Layout) Width() int {
	return l.width
}

// Line returns the laid-out line at row i, or a blank line out of range.
func (l *Layout) Line(i int) Line {
	if i < 0 || i >= len(l.lines) {
		return Line{Kind: LineBlank}
	}
	return l.lines[i]
}

// wrapText word-wraps s to the given display width, hard-breaking words
// wider than a whole line.
func wrapText(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	cur := ""
	curW := 0
	flush := func() {
		if cur != "" {
			lines = append(lines, cur)
			cur, curW = "", 0
		}
	}
	for _, word := range strings.Fields(s) {
		for runewidth.StringWidth(word) > width {
			flush()
			head := runewidth.Truncate(word, width, "")
			if head == "" {
				// a single rune wider than the line still has to go somewhere
				head = string([]rune(word)[0])
			}
			lines = append(lines, head)
			word = word[len(head):]
		}
		w := runewidth.StringWidth(word)
		switch {
		case curW == 0:
			cur, curW = word, w
		case curW+1+w <= width:
			cur += " " + word
			curW += 1 + w
		default:
			flush()
			cur, curW = word, w
		}
	}
	flush()
	return lines
}
