// Copyright © 2025 Texelnav contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: viewer/session_listener.go
// Summary: Dispatcher listener that persists navigation activity to the
//          session store.

package viewer

import (
	"log"

	"github.com/framegrace/texelnav/internal/session"
)

// sessionRecorder subscribes to navigation events and writes reading state
// through to the session store. Scroll positions ride the store's debounce;
// visit counts are written immediately.
type sessionRecorder struct {
	store *session.Store
	path  string
	title string
}

func newSessionRecorder(store *session.Store) *sessionRecorder {
	return &sessionRecorder{store: store}
}

// OnEvent implements Listener.
func (r *sessionRecorder) OnEvent(event Event) {
	switch event.Type {
	case EventDocumentLoaded:
		if p, ok := event.Payload.(DocumentPayload); ok {
			r.path = p.Path
			r.title = p.Title
		}
	case EventActiveChanged:
		p, ok := event.Payload.(ActivePayload)
		if !ok || !p.OK || r.path == "" {
			return
		}
		if err := r.store.RecordVisit(r.path, string(p.ID)); err != nil {
			log.Printf("Session: failed to record visit: %v", err)
		}
	case EventScrollChanged:
		p, ok := event.Payload.(ScrollPayload)
		if !ok || r.path == "" {
			return
		}
		r.store.SaveOffset(r.path, r.title, p.Offset)
	}
}
