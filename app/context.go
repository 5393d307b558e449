// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"taoui.org/io/event"
)

// App gives a Handler access to the loop that called it. It is only
// valid on the loop goroutine.
type App struct {
	l *EventLoop
}

// NewWindow creates a window. The options are hints; the windowing
// system is free to adjust them, in which case the result is reported
// through events.
func (a *App) NewWindow(opts ...Option) (*Window, error) {
	return a.l.newWindow(opts)
}

// NewWindowDefault creates a window with default options.
func (a *App) NewWindowDefault() (*Window, error) {
	return a.l.newWindow(nil)
}

// AvailableMonitors lists the connected monitors.
func (a *App) AvailableMonitors() ([]Monitor, error) {
	a.l.checkThread()
	return a.l.monitors()
}

// PrimaryMonitor returns the primary monitor, if the platform has one.
func (a *App) PrimaryMonitor() (Monitor, bool) {
	a.l.checkThread()
	return a.l.primaryMonitor()
}

// CreateProxy returns a Proxy for the loop.
func (a *App) CreateProxy() *Proxy {
	return a.l.CreateProxy()
}

// Window returns the open window with the id.
func (a *App) Window(id event.WindowID) (*Window, bool) {
	a.l.checkThread()
	w, ok := a.l.windows[id]
	if !ok || w.closing {
		return nil, false
	}
	return w, true
}

// Windows returns the open windows in creation order.
func (a *App) Windows() []*Window {
	a.l.checkThread()
	ids := maps.Keys(a.l.windows)
	slices.Sort(ids)
	var windows []*Window
	for _, id := range ids {
		if w := a.l.windows[id]; !w.closing {
			windows = append(windows, w)
		}
	}
	return windows
}

// SetDeviceEventFilter changes when DeviceEvents are delivered.
func (a *App) SetDeviceEventFilter(f DeviceEventFilter) {
	a.l.checkThread()
	a.l.filter = f
}

func (l *EventLoop) monitors() ([]Monitor, error) {
	mons, err := l.driver.Monitors()
	if err != nil {
		return nil, fmt.Errorf("%w: monitors: %v", ErrQueryFailed, err)
	}
	res := make([]Monitor, len(mons))
	for i, m := range mons {
		res[i] = Monitor{m: m, d: l.driver}
	}
	return res, nil
}

func (l *EventLoop) primaryMonitor() (Monitor, bool) {
	m, ok := l.driver.PrimaryMonitor()
	if !ok {
		return Monitor{}, false
	}
	return Monitor{m: m, d: l.driver}, true
}
