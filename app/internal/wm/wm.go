// SPDX-License-Identifier: Unlicense OR MIT

// Package wm implements platform specific windows behind a common
// driver interface.
package wm

import (
	"errors"
	"image"
	"time"

	"taoui.org/io/event"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/surface"
	"taoui.org/unit"
)

// ErrUnsupported is returned for operations the windowing system
// cannot perform.
var ErrUnsupported = errors.New("not supported by the windowing system")

// Event is an event produced by a driver. Window is zero for device
// events and application events such as system.ReopenEvent.
type Event struct {
	Window event.WindowID
	Device event.DeviceID
	Event  event.Event
}

// RedrawRequest asks the event loop to schedule a redraw of the
// window, for example after an expose.
type RedrawRequest struct{}

// ErrorEvent reports a fatal driver failure, such as a lost display
// connection. The event loop terminates after receiving it.
type ErrorEvent struct {
	Op  string
	Err error
}

func (RedrawRequest) ImplementsEvent() {}
func (ErrorEvent) ImplementsEvent()    {}

// Callbacks receives events from a driver. Event may be called from
// any goroutine; drivers that deliver events from a goroutine other
// than the one blocked in WaitEvents must Wakeup afterwards.
type Callbacks interface {
	Event(e Event)
}

// Driver is the interface for the platform implementation of the
// windowing system.
type Driver interface {
	// Name of the driver, such as "x11".
	Name() string
	NewWindow(id event.WindowID, cnf *Config) (Window, error)
	Monitors() ([]Monitor, error)
	PrimaryMonitor() (Monitor, bool)
	// VideoModes queries the modes of a monitor. They are not cached.
	VideoModes(m MonitorID) ([]VideoMode, error)
	// PollEvents processes pending platform events without blocking.
	PollEvents()
	// WaitEvents blocks until an event arrives, Wakeup is called or
	// the timeout elapses. A negative timeout blocks indefinitely.
	WaitEvents(timeout time.Duration)
	// Wakeup interrupts WaitEvents. It is safe to call from any
	// goroutine.
	Wakeup()
	Close() error
}

// Window is the interface for the platform implementation of a window.
// Its methods are only called from the event loop thread.
type Window interface {
	// Configure applies the differences between cnf and the last
	// applied configuration. Resulting state changes are reported
	// through Callbacks.
	Configure(cnf *Config)
	InnerSize() unit.PhysicalSize
	OuterSize() unit.PhysicalSize
	InnerPosition() (unit.PhysicalPosition, error)
	OuterPosition() (unit.PhysicalPosition, error)
	ScaleFactor() float64
	// Theme returns the effective theme, never system.ThemeSystem.
	Theme() system.Theme
	Focus()
	// Drag starts a user directed move of the window.
	Drag() error
	SetCursorGrab(grab bool) error
	SetCursorPosition(p unit.PhysicalPosition) error
	SetIMEPosition(p unit.PhysicalPosition)
	// SetBadgeCount sets the application badge; a count <= 0 removes it.
	SetBadgeCount(count int64, desktopFilename string) error
	SetBadgeLabel(label string) error
	SetOverlayIcon(icon *image.NRGBA) error
	// SetContentProtection excludes the window contents from screen
	// capture.
	SetContentProtection(protect bool) error
	RawHandle() (surface.Handle, error)
	Destroy()
}

// Config is the complete requested state of a window.
type Config struct {
	// AppID identifies the application to the windowing system, such
	// as the X11 WM_CLASS.
	AppID string
	Title string
	// Size is the requested inner size.
	Size unit.PhysicalSize
	// Position is the requested outer position, or nil to let the
	// windowing system decide.
	Position *unit.PhysicalPosition
	// MinSize and MaxSize constrain the inner size. Zero
	// dimensions are unconstrained.
	MinSize, MaxSize unit.PhysicalSize

	Decorated   bool
	Resizable   bool
	Visible     bool
	Transparent bool
	Minimized   bool
	Maximized   bool
	Closable    bool
	Minimizable bool
	Maximizable bool

	AlwaysOnTop    bool
	AlwaysOnBottom bool

	Fullscreen Fullscreen
	Theme      system.Theme
	Icon       *image.NRGBA
	Parent     Window

	Cursor        pointer.Cursor
	CursorVisible bool

	Progress Progress
}

// FullscreenMode selects the kind of fullscreen.
type FullscreenMode uint8

const (
	Windowed FullscreenMode = iota
	Borderless
	Exclusive
)

// Fullscreen describes a fullscreen request. Monitor is zero for the
// window's current monitor; VideoMode is only used by Exclusive.
type Fullscreen struct {
	Mode      FullscreenMode
	Monitor   MonitorID
	VideoMode VideoMode
}

// Progress is the taskbar progress indicator.
type Progress struct {
	// Value is in 0..100, or negative when unset.
	Value           int
	State           uint8
	DesktopFilename string
}

// MonitorID identifies a monitor for the lifetime of a driver.
type MonitorID uint64

// Monitor is a snapshot of a monitor's properties.
type Monitor struct {
	ID          MonitorID
	Name        string
	HasName     bool
	Position    unit.PhysicalPosition
	Size        unit.PhysicalSize
	ScaleFactor float64
}

// Bounds returns the monitor's rectangle on the desktop.
func (m Monitor) Bounds() unit.Rect {
	return unit.Rect{Min: m.Position, Size: m.Size}
}

// VideoMode is a display mode of a monitor.
type VideoMode struct {
	Size        unit.PhysicalSize
	BitDepth    uint16
	RefreshRate uint16
	Monitor     MonitorID
}

// ClampSize constrains s to the minimum and maximum sizes of c.
func (c *Config) ClampSize(s unit.PhysicalSize) unit.PhysicalSize {
	return unit.PhysicalSize{
		Width:  clampDim(s.Width, c.MinSize.Width, c.MaxSize.Width),
		Height: clampDim(s.Height, c.MinSize.Height, c.MaxSize.Height),
	}
}
