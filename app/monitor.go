// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"

	"taoui.org/app/internal/wm"
	"taoui.org/unit"
)

// Monitor is a snapshot of a connected monitor.
type Monitor struct {
	m wm.Monitor
	d wm.Driver
}

// VideoMode is a display mode supported by a monitor.
type VideoMode struct {
	Size     unit.PhysicalSize
	BitDepth uint16
	// RefreshRate in Hz.
	RefreshRate uint16

	monitor Monitor
}

// Fullscreen is the fullscreen state of a window: nil, Borderless or
// Exclusive.
type Fullscreen interface {
	implementsFullscreen()
}

// Borderless covers a monitor with an undecorated window. A nil Monitor
// selects the window's current monitor.
type Borderless struct {
	Monitor *Monitor
}

// Exclusive switches a monitor to a video mode for the window.
type Exclusive struct {
	Mode VideoMode
}

func (Borderless) implementsFullscreen() {}
func (Exclusive) implementsFullscreen()  {}

// Name returns the name of the monitor, if the platform reports one.
func (m Monitor) Name() (string, bool) {
	return m.m.Name, m.m.HasName
}

// Size returns the resolution of the monitor.
func (m Monitor) Size() unit.PhysicalSize {
	return m.m.Size
}

// Position returns the top-left corner of the monitor on the desktop.
func (m Monitor) Position() unit.PhysicalPosition {
	return m.m.Position
}

func (m Monitor) ScaleFactor() float64 {
	return m.m.ScaleFactor
}

// VideoModes queries the video modes of the monitor.
func (m Monitor) VideoModes() ([]VideoMode, error) {
	if m.d == nil {
		return nil, fmt.Errorf("%w: no monitor", ErrQueryFailed)
	}
	modes, err := m.d.VideoModes(m.m.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: video modes: %v", ErrQueryFailed, err)
	}
	res := make([]VideoMode, len(modes))
	for i, v := range modes {
		res[i] = VideoMode{
			Size:        v.Size,
			BitDepth:    v.BitDepth,
			RefreshRate: v.RefreshRate,
			monitor:     m,
		}
	}
	return res, nil
}

// Equal reports whether m and o describe the same monitor.
func (m Monitor) Equal(o Monitor) bool {
	return m.m.ID == o.m.ID
}

func (m Monitor) String() string {
	name, ok := m.Name()
	if !ok {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%s %v at %v (scale %g)", name, m.m.Size, m.m.Position, m.m.ScaleFactor)
}

// Monitor returns the monitor of the mode.
func (v VideoMode) Monitor() Monitor {
	return v.monitor
}

func (v VideoMode) String() string {
	return fmt.Sprintf("%v %dbpp @%dHz", v.Size, v.BitDepth, v.RefreshRate)
}

// BestVideoMode returns the mode with the largest resolution, and the
// highest refresh rate among those.
func BestVideoMode(modes []VideoMode) (VideoMode, bool) {
	if len(modes) == 0 {
		return VideoMode{}, false
	}
	best := modes[0]
	for _, m := range modes[1:] {
		a, b := m.Size.Area(), best.Size.Area()
		if a > b || a == b && (m.RefreshRate > best.RefreshRate ||
			m.RefreshRate == best.RefreshRate && m.BitDepth > best.BitDepth) {
			best = m
		}
	}
	return best, true
}

func driverFullscreen(f Fullscreen) wm.Fullscreen {
	switch f := f.(type) {
	case Borderless:
		var id wm.MonitorID
		if f.Monitor != nil {
			id = f.Monitor.m.ID
		}
		return wm.Fullscreen{Mode: wm.Borderless, Monitor: id}
	case Exclusive:
		return wm.Fullscreen{
			Mode:    wm.Exclusive,
			Monitor: f.Mode.monitor.m.ID,
			VideoMode: wm.VideoMode{
				Size:        f.Mode.Size,
				BitDepth:    f.Mode.BitDepth,
				RefreshRate: f.Mode.RefreshRate,
				Monitor:     f.Mode.monitor.m.ID,
			},
		}
	default:
		return wm.Fullscreen{}
	}
}
