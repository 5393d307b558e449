// SPDX-License-Identifier: Unlicense OR MIT

// Package system contains window lifecycle events and properties
// reported by the windowing system.
package system

import (
	"taoui.org/unit"
)

// CloseRequestEvent is sent when the user or the windowing system asks
// for a window to be closed. The window is closed after the event is
// handled unless Cancel is set.
type CloseRequestEvent struct {
	// Cancel keeps the window open.
	Cancel bool
}

// DestroyEvent is the last event sent for a window.
type DestroyEvent struct{}

// ResizeEvent reports a new inner size of a window.
type ResizeEvent struct {
	Size unit.PhysicalSize
}

// MoveEvent reports a new outer position of a window.
type MoveEvent struct {
	Position unit.PhysicalPosition
}

// FocusEvent is generated when a window gains or loses
// keyboard focus.
type FocusEvent struct {
	Focus bool
}

// ThemeEvent reports a change of the window's theme.
type ThemeEvent struct {
	Theme Theme
}

// ScaleEvent reports a change of the window's scale factor, for example
// because it moved to another monitor.
type ScaleEvent struct {
	ScaleFactor float64
	// Size is the new inner size suggested by the windowing system.
	Size unit.PhysicalSize
}

// DropEvent is generated when a file is dropped on a window.
type DropEvent struct {
	Path string
}

// HoverEvent is generated when a file is dragged over a window.
type HoverEvent struct {
	Path string
}

// HoverCancelEvent is generated when a file dragged over a window
// leaves without being dropped.
type HoverCancelEvent struct{}

// VisibilityEvent reports minimization and restoration of a window.
type VisibilityEvent struct {
	Minimized bool
}

// ReopenEvent is sent when the application is reactivated, such as by
// clicking the dock icon on macOS.
type ReopenEvent struct {
	HasVisibleWindows bool
}

// Theme of a window.
type Theme uint8

const (
	// ThemeSystem follows the system preference. It is only meaningful
	// when requesting a theme.
	ThemeSystem Theme = iota
	ThemeLight
	ThemeDark
)

func (t Theme) String() string {
	switch t {
	case ThemeSystem:
		return "System"
	case ThemeLight:
		return "Light"
	case ThemeDark:
		return "Dark"
	default:
		panic("unexpected Theme value")
	}
}

// UnmarshalText parses "system", "light" or "dark".
func (t *Theme) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "system":
		*t = ThemeSystem
	case "light":
		*t = ThemeLight
	case "dark":
		*t = ThemeDark
	default:
		return &unknownThemeError{string(b)}
	}
	return nil
}

type unknownThemeError struct {
	name string
}

func (e *unknownThemeError) Error() string {
	return "system: unknown theme " + e.name
}

func (*CloseRequestEvent) ImplementsEvent() {}
func (DestroyEvent) ImplementsEvent()       {}
func (ResizeEvent) ImplementsEvent()        {}
func (MoveEvent) ImplementsEvent()          {}
func (FocusEvent) ImplementsEvent()         {}
func (ThemeEvent) ImplementsEvent()         {}
func (ScaleEvent) ImplementsEvent()         {}
func (DropEvent) ImplementsEvent()          {}
func (HoverEvent) ImplementsEvent()         {}
func (HoverCancelEvent) ImplementsEvent()   {}
func (VisibilityEvent) ImplementsEvent()    {}
func (ReopenEvent) ImplementsEvent()        {}
