// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"

	"taoui.org/io/event"
)

// NewEvents is the first event of every loop iteration.
type NewEvents struct {
	Cause StartCause
}

// WindowEvent carries an event for a window. Event is one of the
// events of packages system, key and pointer.
type WindowEvent struct {
	Window event.WindowID
	Event  event.Event
}

// DeviceEvent carries raw input from a device, independent of any
// window. Event is one of key.RawEvent, pointer.MotionEvent,
// pointer.RawButtonEvent or pointer.RawWheelEvent.
type DeviceEvent struct {
	Device event.DeviceID
	Event  event.Event
}

// UserEvent carries a value sent through a Proxy.
type UserEvent struct {
	Value any
}

// MainEventsCleared is sent once the queued events of an iteration
// have been delivered.
type MainEventsCleared struct{}

// RedrawRequested asks the handler to redraw a window. It is sent at
// most once per window and iteration.
type RedrawRequested struct {
	Window event.WindowID
}

// RedrawEventsCleared is the last event of an iteration.
type RedrawEventsCleared struct{}

// Reopen is sent when the application is reactivated, such as by
// clicking its dock icon on macOS.
type Reopen struct {
	HasVisibleWindows bool
}

// LoopDestroyed is the last event delivered by a loop.
type LoopDestroyed struct{}

// TimerEvent is a UserEvent value sent by Proxy.StartTimer.
type TimerEvent struct{}

// MessageEvent is a UserEvent value carrying a text message.
type MessageEvent struct {
	Value string
}

func (NewEvents) ImplementsEvent()           {}
func (WindowEvent) ImplementsEvent()         {}
func (DeviceEvent) ImplementsEvent()         {}
func (UserEvent) ImplementsEvent()           {}
func (MainEventsCleared) ImplementsEvent()   {}
func (RedrawRequested) ImplementsEvent()     {}
func (RedrawEventsCleared) ImplementsEvent() {}
func (Reopen) ImplementsEvent()              {}
func (LoopDestroyed) ImplementsEvent()       {}

func (e NewEvents) String() string {
	return fmt.Sprintf("NewEvents(%v)", e.Cause)
}

func (e WindowEvent) String() string {
	return fmt.Sprintf("WindowEvent(%d, %T)", e.Window, e.Event)
}
