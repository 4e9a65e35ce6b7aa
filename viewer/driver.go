// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewer/driver.go
// Summary: Rendering-surface abstraction and its tcell implementation.

package viewer

import "github.com/gdamore/tcell/v2"

// ScreenDriver abstracts the rendering surface used by the viewer. It mirrors
// the subset of tcell.Screen functionality required today so tests can swap
// in a recording implementation.
type ScreenDriver interface {
	Init() error
	Fini()
	Size() (int, int)
	SetStyle(style tcell.Style)
	HideCursor()
	EnableMouse()
	Show()
	PollEvent() tcell.Event
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// TcellDriver adapts a tcell.Screen to the ScreenDriver interface.
type TcellDriver struct {
	screen tcell.Screen
}

// NewTcellDriver wraps the provided screen.
func NewTcellDriver(screen tcell.Screen) *TcellDriver {
	return &TcellDriver{screen: screen}
}

func (d *TcellDriver) Init() error {
	return d.screen.Init()
}

func (d *TcellDriver) Fini() {
	d.screen.Fini()
}

func (d *TcellDriver) Size() (int, int) {
	return d.screen.Size()
}

func (d *TcellDriver) SetStyle(style tcell.Style) {
	d.screen.SetStyle(style)
}

func (d *TcellDriver) HideCursor() {
	d.screen.HideCursor()
}

func (d *TcellDriver) EnableMouse() {
	d.screen.EnableMouse()
}

func (d *TcellDriver) Show() {
	d.screen.Show()
}

func (d *TcellDriver) PollEvent() tcell.Event {
	return d.screen.PollEvent()
}

func (d *TcellDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	d.screen.SetContent(x, y, mainc, combc, style)
}

// Underlying exposes the wrapped tcell.Screen for code paths that still need
// direct access.
func (d *TcellDriver) Underlying() tcell.Screen {
	return d.screen
}
