// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: theme/theme.go
// Summary: Semantic color palette with JSON-loadable overrides.
// Usage: Widgets resolve colors through theme.Get() so palettes can swap
//        without touching widget code.

package theme

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// HexColor is a "#rrggbb" color string.
type HexColor string

// TrueColor parses the hex value into a tcell color. Malformed values map to
// the terminal default so a broken palette degrades instead of crashing.
func (h HexColor) TrueColor() tcell.Color {
	s := string(h)
	if len(s) != 7 || s[0] != '#' {
		return tcell.ColorDefault
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(
		int32(v>>16&0xff),
		int32(v>>8&0xff),
		int32(v&0xff),
	)
}

// Theme maps semantic color names and per-section overrides to colors.
type Theme struct {
	name      string
	codeStyle string
	semantic  map[string]HexColor
	sections  map[string]map[string]HexColor
}

// The default palette follows catppuccin mocha, matching the default code
// highlighting style.
func defaultTheme() *Theme {
	return &Theme{
		name:      "texelnav-dark",
		codeStyle: "catppuccin-mocha",
		semantic: map[string]HexColor{
			"bg.base":        "#1e1e2e",
			"bg.mantle":      "#181825",
			"bg.crust":       "#11111b",
			"bg.surface":     "#313244",
			"text.primary":   "#cdd6f4",
			"text.muted":     "#a6adc8",
			"text.faint":     "#6c7086",
			"text.inverse":   "#11111b",
			"accent.primary": "#cba6f7",
			"accent.active":  "#89b4fa",
			"accent.warm":    "#fab387",
			"action.danger":  "#f38ba8",
		},
		sections: map[string]map[string]HexColor{},
	}
}

var (
	mu      sync.RWMutex
	current = defaultTheme()
)

// Get returns the process-wide theme.
func Get() *Theme {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Set replaces the process-wide theme. Used by config loading and tests.
func Set(t *Theme) {
	if t == nil {
		return
	}
	mu.Lock()
	current = t
	mu.Unlock()
}

// Reset restores the built-in palette.
func Reset() {
	Set(defaultTheme())
}

// fileTheme is the on-disk JSON shape. Unknown semantic names are accepted;
// they simply extend the palette.
type fileTheme struct {
	Name      string                       `json:"name"`
	CodeStyle string                       `json:"code_style"`
	Semantic  map[string]HexColor          `json:"semantic"`
	Sections  map[string]map[string]HexColor `json:"sections"`
}

// Load merges JSON palette overrides over the built-in defaults.
func Load(data []byte) (*Theme, error) {
	var f fileTheme
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing theme: %w", err)
	}

	t := defaultTheme()
	if f.Name != "" {
		t.name = f.Name
	}
	if f.CodeStyle != "" {
		t.codeStyle = f.CodeStyle
	}
	for k, v := range f.Semantic {
		t.semantic[k] = v
	}
	for section, colors := range f.Sections {
		if t.sections[section] == nil {
			t.sections[section] = make(map[string]HexColor, len(colors))
		}
		for k, v := range colors {
			t.sections[section][k] = v
		}
	}
	return t, nil
}

// Name returns the palette name.
func (t *Theme) Name() string {
	return t.name
}

// CodeStyle returns the chroma style name paired with this palette.
func (t *Theme) CodeStyle() string {
	return t.codeStyle
}

// GetSemanticColor resolves a semantic color name like "bg.mantle" or
// "text.primary". Unknown names return an empty color whose TrueColor is the
// terminal default.
func (t *Theme) GetSemanticColor(name string) HexColor {
	return t.semantic[name]
}

// GetColor resolves a per-section override, falling back to the given color
// when neither the section nor the key is themed.
func (t *Theme) GetColor(section, key string, fallback tcell.Color) tcell.Color {
	if colors, ok := t.sections[section]; ok {
		if hex, ok := colors[key]; ok {
			return hex.TrueColor()
		}
	}
	return fallback
}
