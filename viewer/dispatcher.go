// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewer/dispatcher.go
// Summary: Event fan-out for navigation state changes. Components that care
//          about document, scroll or active-section transitions subscribe
//          here instead of being wired to the viewer directly.

package viewer

import (
	"sync"

	"github.com/framegrace/texelnav/nav"
)

// EventType defines the type of an event.
type EventType int

const (
	// EventDocumentLoaded fires after a document is parsed and wired up.
	EventDocumentLoaded EventType = iota
	// EventActiveChanged fires when the active section transitions,
	// including to "none".
	EventActiveChanged
	// EventScrollChanged fires when the viewport position or glide state
	// changes, at most once per rendered frame.
	EventScrollChanged
)

// Event represents a message passed through the system.
// It has a type and can carry an arbitrary data payload.
type Event struct {
	Type    EventType
	Payload interface{}
}

// DocumentPayload is the data associated with EventDocumentLoaded.
type DocumentPayload struct {
	Path     string
	Title    string
	Sections int
}

// ActivePayload is the data associated with EventActiveChanged.
type ActivePayload struct {
	ID    nav.SectionID
	Label string
	OK    bool
}

// ScrollPayload is the data associated with EventScrollChanged.
type ScrollPayload struct {
	Offset  float64
	Max     float64
	Percent int
	Gliding bool
}

// Listener is an interface that any component can implement to receive events.
type Listener interface {
	// OnEvent is the callback method for receiving events.
	OnEvent(event Event)
}

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		listeners: make([]Listener, 0),
	}
}

// Subscribe adds a new listener to receive events.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Unsubscribe removes a listener.
func (d *EventDispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l == listener {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, l := range d.listeners {
		l.OnEvent(event)
	}
}
