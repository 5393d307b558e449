// SPDX-License-Identifier: Unlicense OR MIT

// Package input turns raw keyboard and pointer input from a driver into
// the ordered window events seen by the event loop.
package input

import (
	"sync"

	"taoui.org/io/event"
	"taoui.org/io/key"
	"taoui.org/io/pointer"
	"taoui.org/unit"
)

// Emit receives routed events. A zero window id marks a device event.
type Emit func(w event.WindowID, e event.Event)

// Router tracks the modifier and button state across all windows of a
// driver. It guarantees that a key.ModifiersEvent is emitted before any
// keyboard or pointer event whose modifier state differs from the last
// reported state.
//
// Router is safe for concurrent use.
type Router struct {
	emit Emit

	mu sync.Mutex
	// mods is the last reported modifier state.
	mods key.Modifiers
	// held is the set of modifier keys currently down.
	held    map[key.Code]bool
	buttons map[event.WindowID]map[pointer.Button]bool
	cursor  map[event.WindowID]unit.Point
}

// NewRouter returns a Router that emits to emit.
func NewRouter(emit Emit) *Router {
	return &Router{
		emit:    emit,
		held:    make(map[key.Code]bool),
		buttons: make(map[event.WindowID]map[pointer.Button]bool),
		cursor:  make(map[event.WindowID]unit.Point),
	}
}

// Modifiers returns the last reported modifier state.
func (q *Router) Modifiers() key.Modifiers {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.mods
}

// SyncModifiers reports mods for w if it differs from the last
// reported state, as happens when a window regains focus.
func (q *Router) SyncModifiers(w event.WindowID, mods key.Modifiers) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sync(w, mods)
}

// Key routes a keyboard event. mods is the modifier state the platform
// reported along with the event.
func (q *Router) Key(w event.WindowID, mods key.Modifiers, e key.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sync(w, mods)
	if e.Location == key.LocationStandard {
		e.Location = e.Code.Location()
	}
	q.emit(w, e)
	mod := key.ModifierFor(e.Code)
	if mod == 0 {
		return
	}
	if e.State == event.Pressed {
		q.held[e.Code] = true
	} else {
		delete(q.held, e.Code)
	}
	next := q.mods &^ mod
	for c := range q.held {
		if key.ModifierFor(c) == mod {
			next |= mod
			break
		}
	}
	q.sync(w, next)
}

// Button routes a mouse button event.
func (q *Router) Button(w event.WindowID, mods key.Modifiers, b pointer.Button, state event.ElementState) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sync(w, mods)
	pressed := q.buttons[w]
	if pressed == nil {
		pressed = make(map[pointer.Button]bool)
		q.buttons[w] = pressed
	}
	if state == event.Pressed {
		pressed[b] = true
	} else {
		delete(pressed, b)
	}
	q.emit(w, pointer.ButtonEvent{Button: b, State: state})
}

// Wheel routes a scroll event.
func (q *Router) Wheel(w event.WindowID, mods key.Modifiers, d pointer.ScrollDelta) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sync(w, mods)
	q.emit(w, pointer.WheelEvent{Delta: d})
}

// Move routes a cursor movement to pos in window coordinates.
func (q *Router) Move(w event.WindowID, mods key.Modifiers, pos unit.Point) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.sync(w, mods)
	q.cursor[w] = pos
	q.emit(w, pointer.MoveEvent{Position: pos})
}

// Cursor returns the last cursor position routed for w.
func (q *Router) Cursor(w event.WindowID) (unit.Point, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	p, ok := q.cursor[w]
	return p, ok
}

// Pressed reports whether button b is held down over w.
func (q *Router) Pressed(w event.WindowID, b pointer.Button) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buttons[w][b]
}

// Forget drops the state kept for a destroyed window.
func (q *Router) Forget(w event.WindowID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.buttons, w)
	delete(q.cursor, w)
}

func (q *Router) sync(w event.WindowID, mods key.Modifiers) {
	if mods == q.mods {
		return
	}
	q.mods = mods
	q.emit(w, key.ModifiersEvent{Modifiers: mods})
}
