// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewer/viewer.go
// Summary: Composition root for the terminal viewer. Owns the widget tree,
//          the navigation coordinator, the session store and the main event
//          loop that ties them together.

// Package viewer runs the interactive terminal frontend: a navigation rail,
// a scrolling document view and a status bar, kept in sync by the nav
// tracker and persisted across runs by the session store.
package viewer

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelnav/config"
	"github.com/framegrace/texelnav/content"
	"github.com/framegrace/texelnav/internal/session"
	"github.com/framegrace/texelnav/nav"
	"github.com/framegrace/texelnav/theme"
	"github.com/framegrace/texelnav/ui/core"
	"github.com/framegrace/texelnav/ui/widgets"
)

// Viewer composes the widget tree with the navigation coordinator and runs
// the main event loop.
type Viewer struct {
	driver ScreenDriver
	ui     *core.UIManager
	doc    *widgets.DocumentView
	rail   *widgets.NavRail
	status *widgets.StatusBar

	coord      *nav.Coordinator
	store      *session.Store
	dispatcher *EventDispatcher

	docPath string

	railWidth  int
	leadLines  int
	duration   time.Duration
	easing     nav.EasingFunc
	vocabulary []nav.SectionID

	lastScroll  ScrollPayload
	refreshChan chan bool
	quit        chan struct{}
	closeOnce   sync.Once
}

// New creates a viewer on the given driver. Settings come from the system
// config; the session store is opened unless disabled there.
func New(driver ScreenDriver) *Viewer {
	cfg := config.System()

	v := &Viewer{
		driver:      driver,
		ui:          core.NewUIManager(),
		dispatcher:  NewEventDispatcher(),
		railWidth:   cfg.GetInt("nav", "rail_width", 22),
		leadLines:   cfg.GetInt("scroll", "lead_lines", 2),
		duration:    time.Duration(cfg.GetInt("scroll", "duration_ms", 450)) * time.Millisecond,
		easing:      nav.EasingByName(cfg.GetString("scroll", "easing", "ease-in-out-cubic")),
		refreshChan: make(chan bool, 1),
		quit:        make(chan struct{}),
	}
	for _, id := range cfg.GetStringSlice("nav", "vocabulary", nil) {
		v.vocabulary = append(v.vocabulary, nav.SectionID(id))
	}

	hl := content.NewHighlighter(cfg.GetString("theme", "code_style", "catppuccin-mocha"))
	v.doc = widgets.NewDocumentView(hl)
	v.doc.SetLayoutListener(v.onLayoutChanged)
	v.doc.SetScrollListener(v.onUserScroll)
	v.rail = widgets.NewNavRail(v.jumpTo)
	v.status = widgets.NewStatusBar()

	v.ui.SetRefreshNotifier(v.refreshChan)
	v.ui.AddWidget(v.doc)
	v.ui.AddWidget(v.rail)
	v.ui.AddWidget(v.status)
	v.ui.Focus(v.doc)

	if cfg.GetBool("session", "enabled", true) {
		v.openSession(cfg.GetString("session", "path", ""))
	}
	return v
}

// openSession opens the reading-state store. Failure disables persistence
// for this run but never blocks the viewer.
func (v *Viewer) openSession(path string) {
	if path == "" {
		def, err := session.DefaultPath()
		if err != nil {
			log.Printf("Viewer: session store disabled, no config dir: %v", err)
			return
		}
		path = def
	}
	store, err := session.Open(path)
	if err != nil {
		log.Printf("Viewer: session store disabled: %v", err)
		return
	}
	v.store = store
	v.dispatcher.Subscribe(newSessionRecorder(store))
}

// Events exposes the dispatcher so callers can observe navigation state.
func (v *Viewer) Events() *EventDispatcher {
	return v.dispatcher
}

// LoadDocument parses src and replaces the current document, wiring up the
// navigation tracker and restoring any saved reading position for path.
func (v *Viewer) LoadDocument(path string, src []byte) error {
	doc, err := content.ParseMarkdown(src)
	if err != nil {
		return fmt.Errorf("failed to parse document: %w", err)
	}

	if v.coord != nil && v.coord.Ready() {
		v.coord.Teardown()
	}
	v.docPath = path
	v.doc.SetDocument(doc)
	v.rail.SetEntries(doc.NavEntries())
	v.rail.SetActive("", false)
	v.status.SetTitle(doc.Title)

	v.coord = nav.New(doc.NavEntries(), nav.Options{
		Measure:   v.doc.Measure,
		Offset:    v.doc.ScrollOffset,
		SetOffset: v.doc.SetScrollOffset,
		// The frame ticker in Run drives Tick; the animator must not
		// self-schedule on top of that.
		Schedule:       func(func()) nav.CancelFunc { return func() {} },
		Vocabulary:     v.vocabulary,
		ScrollDuration: v.duration,
		Easing:         v.easing,
		ActiveChanged:  v.onActiveChanged,
	})
	if err := v.coord.Initialize(); err != nil {
		return err
	}

	v.dispatcher.Broadcast(Event{Type: EventDocumentLoaded, Payload: DocumentPayload{
		Path:     path,
		Title:    doc.Title,
		Sections: len(doc.Sections),
	}})

	if v.store != nil {
		if off, ok, err := v.store.LastOffset(path); err == nil && ok {
			v.doc.SetScrollOffset(off)
		}
	}
	v.coord.OnScroll(v.doc.ScrollOffset(), v.lead())
	v.syncScrollState()
	v.ui.InvalidateAll()
	return nil
}

// Run starts the main event loop. It blocks until the user quits or Close
// is called.
func (v *Viewer) Run() error {
	if err := v.driver.Init(); err != nil {
		return fmt.Errorf("failed to init screen: %w", err)
	}
	tm := theme.Get()
	defStyle := tcell.StyleDefault.
		Background(tm.GetSemanticColor("bg.base").TrueColor()).
		Foreground(tm.GetSemanticColor("text.primary").TrueColor())
	v.driver.SetStyle(defStyle)
	v.driver.HideCursor()
	v.driver.EnableMouse()

	w, h := v.driver.Size()
	v.layout(w, h)

	eventChan := make(chan tcell.Event, 10)
	go func() {
		for {
			select {
			case <-v.quit:
				return
			default:
				eventChan <- v.driver.PollEvent()
			}
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	v.draw()

	for {
		select {
		case ev := <-eventChan:
			v.handleEvent(ev)
		case <-v.refreshChan:
			v.draw()
		case <-ticker.C:
			v.stepAnimation()
		case <-v.quit:
			return nil
		}
	}
}

func (v *Viewer) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		v.layout(w, h)
		v.draw()
	case *tcell.EventKey:
		if v.handleGlobalKey(ev) {
			return
		}
		v.ui.HandleKey(ev)
	case *tcell.EventMouse:
		v.ui.HandleMouse(ev)
	}
}

// handleGlobalKey owns the bindings that work regardless of focus: quitting,
// numbered section jumps and next/previous section.
func (v *Viewer) handleGlobalKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		v.Close()
		return true
	case tcell.KeyTab:
		v.jumpRelative(1)
		return true
	case tcell.KeyBacktab:
		v.jumpRelative(-1)
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch r := ev.Rune(); {
	case r == 'q':
		v.Close()
		return true
	case r == 'n':
		v.jumpRelative(1)
		return true
	case r == 'p':
		v.jumpRelative(-1)
		return true
	case r >= '1' && r <= '9':
		if v.coord == nil || !v.coord.Ready() {
			return true
		}
		ids := v.coord.Registry().OrderedIDs()
		if idx := int(r - '1'); idx < len(ids) {
			v.jumpTo(ids[idx])
		}
		return true
	}
	return false
}

// layout positions the three fixed regions: rail on the left, status bar on
// the bottom row, document view in the remainder.
func (v *Viewer) layout(w, h int) {
	v.ui.Resize(w, h)

	railW := v.railWidth
	if railW > w/3 {
		// The rail never crowds out the document on narrow terminals.
		railW = w / 3
	}
	docH := h - 1
	if docH < 0 {
		docH = 0
	}

	v.rail.SetPosition(0, 0)
	v.rail.Resize(railW, docH)
	v.doc.SetPosition(railW, 0)
	v.doc.Resize(w-railW, docH)
	v.status.SetPosition(0, h-1)
	v.status.Resize(w, 1)
}

// draw flushes the composed frame to the driver. Zero cells are wide-rune
// continuations; tcell renders those itself from the preceding rune.
func (v *Viewer) draw() {
	buf := v.ui.Render()
	for y, row := range buf {
		for x, cell := range row {
			if cell.Ch == 0 {
				continue
			}
			v.driver.SetContent(x, y, cell.Ch, nil, cell.Style)
		}
	}
	v.driver.Show()
}

func (v *Viewer) lead() float64 {
	return float64(v.leadLines)
}

// stepAnimation advances an in-flight glide by one frame. The animator moves
// the viewport silently, so each frame is also fed through OnScroll to keep
// the active section tracking the glide.
func (v *Viewer) stepAnimation() {
	if v.coord == nil || !v.coord.Ready() || !v.coord.Animating() {
		return
	}
	v.coord.Tick()
	v.coord.OnScroll(v.doc.ScrollOffset(), v.lead())
	v.syncScrollState()
}

// onLayoutChanged runs after any widget-side change that can move section
// boundaries. The cached spans are stale from here until the next read.
func (v *Viewer) onLayoutChanged() {
	if v.coord != nil && v.coord.Ready() {
		v.coord.OnLayoutChanged()
		v.coord.OnScroll(v.doc.ScrollOffset(), v.lead())
	}
	v.syncScrollState()
}

// onUserScroll runs on user-initiated viewport moves only. A manual scroll
// always wins over an in-flight glide.
func (v *Viewer) onUserScroll(offset float64) {
	if v.coord != nil && v.coord.Ready() {
		if v.coord.Animating() {
			v.coord.CancelScroll()
		}
		v.coord.OnScroll(offset, v.lead())
	}
	v.syncScrollState()
}

func (v *Viewer) onActiveChanged(id nav.SectionID, ok bool) {
	label := ""
	if ok {
		if e, found := v.coord.Registry().Get(id); found {
			label = e.Label
		}
	}
	v.rail.SetActive(id, ok)
	v.status.SetSection(label)
	v.dispatcher.Broadcast(Event{Type: EventActiveChanged, Payload: ActivePayload{
		ID:    id,
		Label: label,
		OK:    ok,
	}})
}

// jumpTo starts a smooth scroll to the given section.
func (v *Viewer) jumpTo(id nav.SectionID) {
	if v.coord == nil || !v.coord.Ready() {
		return
	}
	if v.coord.ScrollToSection(id, v.lead()) {
		v.syncScrollState()
	}
}

// jumpRelative moves to the section delta steps away from the active one,
// clamped to the document's ends.
func (v *Viewer) jumpRelative(delta int) {
	if v.coord == nil || !v.coord.Ready() {
		return
	}
	ids := v.coord.Registry().OrderedIDs()
	if len(ids) == 0 {
		return
	}
	idx := 0
	if delta < 0 {
		idx = len(ids) - 1
	}
	if active := v.rail.Active(); active != "" {
		for i, id := range ids {
			if id == active {
				idx = i + delta
				break
			}
		}
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(ids) {
		idx = len(ids) - 1
	}
	v.jumpTo(ids[idx])
}

// syncScrollState pushes the current viewport state to the status bar and
// broadcasts it when something actually changed.
func (v *Viewer) syncScrollState() {
	offset := v.doc.ScrollOffset()
	max := v.doc.MaxOffset()
	percent := 100
	if max > 0 {
		percent = int(math.Round(offset / max * 100))
	}
	gliding := v.coord != nil && v.coord.Ready() && v.coord.Animating()
	v.status.SetProgress(percent, gliding)

	state := ScrollPayload{Offset: offset, Max: max, Percent: percent, Gliding: gliding}
	if state != v.lastScroll {
		v.lastScroll = state
		v.dispatcher.Broadcast(Event{Type: EventScrollChanged, Payload: state})
	}
}

// Close shuts the viewer down, flushing session state. Idempotent.
func (v *Viewer) Close() {
	v.closeOnce.Do(func() {
		close(v.quit)
		if v.coord != nil && v.coord.Ready() {
			v.coord.Teardown()
		}
		if v.store != nil {
			if err := v.store.Close(); err != nil {
				log.Printf("Viewer: failed to close session store: %v", err)
			}
		}
		v.driver.Fini()
	})
}
