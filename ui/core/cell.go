package core

import "github.com/gdamore/tcell/v2"

// Cell is one screen cell. A zero Ch marks the continuation of a wide
// rune in the previous cell; drivers skip those when flushing.
type Cell struct {
	Ch    rune
	Style tcell.Style
}
