// SPDX-License-Identifier: Unlicense OR MIT

// Package event contains types for event handling.
package event

import "strconv"

// Event is the marker interface for events.
type Event interface {
	ImplementsEvent()
}

// WindowID identifies a window for the lifetime of its event loop.
// The zero WindowID never refers to a window.
type WindowID uint64

// DeviceID identifies an input device. Backends that cannot tell
// devices apart report every event from DeviceID 0.
type DeviceID uint64

// ElementState is the state of a key or button.
type ElementState uint8

const (
	// Pressed is the state of a pressed key or button.
	Pressed ElementState = iota
	// Released is the state of a key or button that has been released.
	Released
)

func (id WindowID) String() string {
	return "WindowID(" + strconv.FormatUint(uint64(id), 10) + ")"
}

func (s ElementState) String() string {
	switch s {
	case Pressed:
		return "Pressed"
	case Released:
		return "Released"
	default:
		panic("invalid ElementState")
	}
}
