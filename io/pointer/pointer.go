// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import (
	"fmt"

	"taoui.org/io/event"
	"taoui.org/unit"
)

// MoveEvent is generated when the cursor moves inside a window.
type MoveEvent struct {
	// Position is relative to the top-left corner of the window's
	// client area, in device pixels.
	Position unit.Point
}

// EnterEvent is generated when the cursor enters a window.
type EnterEvent struct{}

// LeaveEvent is generated when the cursor leaves a window.
type LeaveEvent struct{}

// ButtonEvent is generated when a mouse button is pressed or released
// over a window.
type ButtonEvent struct {
	Button Button
	State  event.ElementState
}

// WheelEvent is generated by mouse wheels and touchpads.
type WheelEvent struct {
	Delta ScrollDelta
}

// MotionEvent is a device level relative motion, unaffected by
// cursor acceleration or window bounds.
type MotionEvent struct {
	DX, DY float64
}

// RawButtonEvent is a device level button event. The button numbering
// is device specific.
type RawButtonEvent struct {
	Button uint32
	State  event.ElementState
}

// RawWheelEvent is a device level wheel event.
type RawWheelEvent struct {
	Delta ScrollDelta
}

// Button identifies a mouse button.
type Button uint32

const (
	ButtonLeft Button = iota + 1
	ButtonRight
	ButtonMiddle

	otherButtonBase Button = 0x10000
)

// OtherButton returns the Button for the platform button number n.
func OtherButton(n uint16) Button {
	return otherButtonBase + Button(n)
}

// Other returns the platform button number of an OtherButton.
func (b Button) Other() (uint16, bool) {
	if b < otherButtonBase {
		return 0, false
	}
	return uint16(b - otherButtonBase), true
}

// ScrollDelta is either a LineDelta or a PixelDelta.
type ScrollDelta interface {
	implementsScrollDelta()
}

// LineDelta is a scroll amount in lines and rows, as reported by
// mouse wheels. Positive Y scrolls up, positive X scrolls right.
type LineDelta struct {
	X, Y float32
}

// PixelDelta is a scroll amount in device pixels, as reported by
// touchpads.
type PixelDelta struct {
	X, Y float64
}

func (LineDelta) implementsScrollDelta()  {}
func (PixelDelta) implementsScrollDelta() {}

func (MoveEvent) ImplementsEvent()      {}
func (EnterEvent) ImplementsEvent()     {}
func (LeaveEvent) ImplementsEvent()     {}
func (ButtonEvent) ImplementsEvent()    {}
func (WheelEvent) ImplementsEvent()     {}
func (MotionEvent) ImplementsEvent()    {}
func (RawButtonEvent) ImplementsEvent() {}
func (RawWheelEvent) ImplementsEvent()  {}

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	}
	if n, ok := b.Other(); ok {
		return fmt.Sprintf("Other(%d)", n)
	}
	return fmt.Sprintf("Button(%d)", uint32(b))
}
