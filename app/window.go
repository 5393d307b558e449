// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"taoui.org/app/internal/wm"
	"taoui.org/io/event"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/surface"
	"taoui.org/unit"
)

// Window is an operating system window. Its methods must be called on
// the goroutine of its EventLoop; use Proxy.Do from other goroutines.
//
// Setters request a change and return immediately. The resulting state
// is reported through events, such as system.ResizeEvent.
type Window struct {
	l   *EventLoop
	id  event.WindowID
	wnd wm.Window
	cnf Config
	// closing is set by Close. The window is removed from the loop
	// when its DestroyEvent is delivered.
	closing bool
}

func (l *EventLoop) newWindow(opts []Option) (*Window, error) {
	l.checkThread()
	if l.exited {
		return nil, ErrLoopExited
	}
	scale := 1.0
	if m, ok := l.driver.PrimaryMonitor(); ok && unit.ValidScaleFactor(m.ScaleFactor) {
		scale = m.ScaleFactor
	}
	cnf := defaultConfig(scale)
	cnf.apply(scale, opts)
	if err := cnf.validate(); err != nil {
		return nil, err
	}
	if cnf.Parent != nil && cnf.Parent.closing {
		cnf.Parent = nil
	}
	id := event.WindowID(l.nextID.Add(1))
	dcnf := cnf.driverConfig()
	wnd, err := l.driver.NewWindow(id, &dcnf)
	if err != nil {
		return nil, fmt.Errorf("app: create window: %w", err)
	}
	w := &Window{l: l, id: id, wnd: wnd, cnf: cnf}
	w.cnf.Size = wnd.InnerSize()
	if cnf.ContentProtected {
		if err := wnd.SetContentProtection(true); err != nil {
			l.log.Debug("content protection unavailable", zap.Stringer("window", id), zap.Error(err))
		}
	}
	l.windows[id] = w
	l.requestRedraw(id)
	l.log.Debug("window created", zap.Stringer("window", id), zap.String("title", cnf.Title))
	return w, nil
}

// ID returns the identifier of the window. It is unique for the
// lifetime of the loop.
func (w *Window) ID() event.WindowID {
	return w.id
}

func (w *Window) String() string {
	return fmt.Sprintf("Window(%d, %q)", w.id, w.cnf.Title)
}

// Option applies options to the window.
func (w *Window) Option(opts ...Option) error {
	w.l.checkThread()
	cnf := w.cnf
	cnf.apply(w.ScaleFactor(), opts)
	if err := cnf.validate(); err != nil {
		return err
	}
	if cnf.ContentProtected != w.cnf.ContentProtected {
		if err := w.wnd.SetContentProtection(cnf.ContentProtected); err != nil {
			cnf.ContentProtected = w.cnf.ContentProtected
		}
	}
	w.cnf = cnf
	w.configure()
	return nil
}

// update applies f to the configuration and sends it to the driver.
func (w *Window) update(f func(cnf *Config)) {
	w.l.checkThread()
	if w.closing {
		return
	}
	f(&w.cnf)
	w.configure()
}

func (w *Window) configure() {
	if w.closing {
		return
	}
	cnf := w.cnf.driverConfig()
	w.wnd.Configure(&cnf)
}

// ScaleFactor returns the ratio between physical and logical pixels.
func (w *Window) ScaleFactor() float64 {
	w.l.checkThread()
	return w.wnd.ScaleFactor()
}

// InnerPosition returns the position of the top-left corner of the
// client area.
func (w *Window) InnerPosition() (unit.PhysicalPosition, error) {
	w.l.checkThread()
	return queryPosition(w.wnd.InnerPosition())
}

// OuterPosition returns the position of the top-left corner of the
// window frame.
func (w *Window) OuterPosition() (unit.PhysicalPosition, error) {
	w.l.checkThread()
	return queryPosition(w.wnd.OuterPosition())
}

func queryPosition(p unit.PhysicalPosition, err error) (unit.PhysicalPosition, error) {
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, ErrUnsupported):
		return unit.PhysicalPosition{}, err
	default:
		return unit.PhysicalPosition{}, fmt.Errorf("%w: position: %v", ErrQueryFailed, err)
	}
}

// InnerSize returns the size of the client area.
func (w *Window) InnerSize() unit.PhysicalSize {
	w.l.checkThread()
	return w.wnd.InnerSize()
}

// OuterSize returns the size of the window including its frame.
func (w *Window) OuterSize() unit.PhysicalSize {
	w.l.checkThread()
	return w.wnd.OuterSize()
}

func (w *Window) IsMaximized() bool   { w.l.checkThread(); return w.cnf.Maximized }
func (w *Window) IsMinimized() bool   { w.l.checkThread(); return w.cnf.Minimized }
func (w *Window) IsVisible() bool     { w.l.checkThread(); return w.cnf.Visible }
func (w *Window) IsDecorated() bool   { w.l.checkThread(); return w.cnf.Decorated }
func (w *Window) IsResizable() bool   { w.l.checkThread(); return w.cnf.Resizable }
func (w *Window) IsClosable() bool    { w.l.checkThread(); return w.cnf.Closable }
func (w *Window) IsMinimizable() bool { w.l.checkThread(); return w.cnf.Minimizable }
func (w *Window) IsMaximizable() bool { w.l.checkThread(); return w.cnf.Maximizable }

// IsFocused reports whether the window has keyboard focus.
func (w *Window) IsFocused() bool {
	w.l.checkThread()
	return w.l.focused[w.id]
}

// Fullscreen returns the fullscreen state, nil if windowed.
func (w *Window) Fullscreen() Fullscreen {
	w.l.checkThread()
	return w.cnf.Fullscreen
}

// Theme returns the effective theme of the window.
func (w *Window) Theme() system.Theme {
	w.l.checkThread()
	return w.wnd.Theme()
}

func (w *Window) Title() string {
	w.l.checkThread()
	return w.cnf.Title
}

// CurrentMonitor returns the monitor with the largest overlap with the
// window, or the primary monitor if the window is not on any monitor.
func (w *Window) CurrentMonitor() (Monitor, bool) {
	w.l.checkThread()
	pos, err := w.wnd.OuterPosition()
	if err != nil && w.cnf.Position != nil {
		pos = *w.cnf.Position
	}
	bounds := unit.Rect{Min: pos, Size: w.wnd.OuterSize()}
	mons, err := w.l.monitors()
	if err != nil {
		return w.l.primaryMonitor()
	}
	var (
		best Monitor
		area uint64
	)
	for _, m := range mons {
		if a := m.m.Bounds().Intersect(bounds); a > area {
			best, area = m, a
		}
	}
	if area == 0 {
		return w.l.primaryMonitor()
	}
	return best, true
}

func (w *Window) PrimaryMonitor() (Monitor, bool) {
	w.l.checkThread()
	return w.l.primaryMonitor()
}

func (w *Window) AvailableMonitors() ([]Monitor, error) {
	w.l.checkThread()
	return w.l.monitors()
}

// RawHandle returns the native handle of the window.
func (w *Window) RawHandle() (surface.Handle, error) {
	w.l.checkThread()
	return w.wnd.RawHandle()
}

// SurfaceHandle describes the window as a render target for the
// graphics backend b. It fails with ErrUnsupported if the window
// cannot be used with b.
func (w *Window) SurfaceHandle(b surface.Backend) (surface.Descriptor, error) {
	w.l.checkThread()
	h, err := w.wnd.RawHandle()
	if err != nil {
		return surface.Descriptor{}, err
	}
	d := surface.Descriptor{
		Backend:     b,
		Handle:      h,
		Size:        w.wnd.InnerSize(),
		ScaleFactor: w.wnd.ScaleFactor(),
	}
	if !d.Valid() {
		return surface.Descriptor{}, fmt.Errorf("%w: %v surface for a %s window", ErrUnsupported, b, h.Platform())
	}
	return d, nil
}

func (w *Window) SetTitle(title string) {
	w.update(func(c *Config) { c.Title = title })
}

func (w *Window) SetVisible(visible bool) {
	w.update(func(c *Config) { c.Visible = visible })
}

// SetFocus brings the window to the front and gives it keyboard focus.
func (w *Window) SetFocus() {
	w.l.checkThread()
	if !w.closing {
		w.wnd.Focus()
	}
}

func (w *Window) SetResizable(resizable bool) {
	w.update(func(c *Config) { c.Resizable = resizable })
}

func (w *Window) SetDecorations(decorated bool) {
	w.update(func(c *Config) { c.Decorated = decorated })
}

func (w *Window) SetMinimized(minimized bool) {
	w.update(func(c *Config) { c.Minimized = minimized })
}

func (w *Window) SetMaximized(maximized bool) {
	w.update(func(c *Config) { c.Maximized = maximized })
}

func (w *Window) SetAlwaysOnTop(enabled bool) {
	w.update(func(c *Config) { AlwaysOnTop(enabled)(0, c) })
}

func (w *Window) SetAlwaysOnBottom(enabled bool) {
	w.update(func(c *Config) { AlwaysOnBottom(enabled)(0, c) })
}

// SetContentProtection excludes the window from screen capture.
func (w *Window) SetContentProtection(enabled bool) error {
	w.l.checkThread()
	if w.closing {
		return nil
	}
	if err := w.wnd.SetContentProtection(enabled); err != nil {
		return err
	}
	w.cnf.ContentProtected = enabled
	return nil
}

func (w *Window) SetClosable(closable bool) {
	w.update(func(c *Config) { c.Closable = closable })
}

func (w *Window) SetMinimizable(minimizable bool) {
	w.update(func(c *Config) { c.Minimizable = minimizable })
}

func (w *Window) SetMaximizable(maximizable bool) {
	w.update(func(c *Config) { c.Maximizable = maximizable })
}

// SetOuterPosition moves the window.
func (w *Window) SetOuterPosition(p unit.Position) {
	scale := w.ScaleFactor()
	w.update(func(c *Config) { Position(p)(scale, c) })
}

// SetInnerSize resizes the client area of the window. The size is
// clamped to the size constraints.
func (w *Window) SetInnerSize(s unit.Size) {
	scale := w.ScaleFactor()
	w.update(func(c *Config) { c.Size = s.ToPhysical(scale) })
}

// SetMinInnerSize sets the minimum size of the client area. A nil size
// removes the constraint.
func (w *Window) SetMinInnerSize(s unit.Size) error {
	return w.SetInnerSizeConstraints(s, sizeOf(w.cnf.MaxSize))
}

// SetMaxInnerSize sets the maximum size of the client area. A nil size
// removes the constraint.
func (w *Window) SetMaxInnerSize(s unit.Size) error {
	return w.SetInnerSizeConstraints(sizeOf(w.cnf.MinSize), s)
}

// SetInnerSizeConstraints sets both size constraints. It fails with
// ErrInvalidConstraints, leaving the constraints unchanged, if min
// exceeds max in either dimension.
func (w *Window) SetInnerSizeConstraints(min, max unit.Size) error {
	scale := w.ScaleFactor()
	pmin, pmax := physicalSize(min, scale), physicalSize(max, scale)
	if err := checkConstraints(pmin, pmax); err != nil {
		return err
	}
	w.update(func(c *Config) {
		c.MinSize, c.MaxSize = pmin, pmax
	})
	return nil
}

func sizeOf(s unit.PhysicalSize) unit.Size {
	if s == (unit.PhysicalSize{}) {
		return nil
	}
	return s
}

// SetFullscreen changes the fullscreen state. A nil f makes the window
// windowed.
func (w *Window) SetFullscreen(f Fullscreen) {
	w.update(func(c *Config) { c.Fullscreen = f })
}

func (w *Window) SetCursorIcon(cursor pointer.Cursor) {
	w.update(func(c *Config) { c.Cursor = cursor })
}

func (w *Window) SetCursorVisible(visible bool) {
	w.update(func(c *Config) { c.CursorVisible = visible })
}

// SetCursorGrab confines the cursor to the window.
func (w *Window) SetCursorGrab(grab bool) error {
	w.l.checkThread()
	if w.closing {
		return nil
	}
	return w.wnd.SetCursorGrab(grab)
}

// SetCursorPosition moves the cursor relative to the client area.
func (w *Window) SetCursorPosition(p unit.Position) error {
	w.l.checkThread()
	if w.closing {
		return nil
	}
	return w.wnd.SetCursorPosition(p.ToPhysical(w.wnd.ScaleFactor()))
}

// SetIMEPosition sets the position of the input method candidate
// window relative to the client area.
func (w *Window) SetIMEPosition(p unit.Position) {
	w.l.checkThread()
	if !w.closing {
		w.wnd.SetIMEPosition(p.ToPhysical(w.wnd.ScaleFactor()))
	}
}

// SetWindowIcon sets the icon of the window. A nil icon restores the
// default icon.
func (w *Window) SetWindowIcon(icon *Icon) {
	w.update(func(c *Config) { c.Icon = icon })
}

// SetTheme sets the preferred theme. A system.ThemeEvent reports the
// effective theme.
func (w *Window) SetTheme(t system.Theme) {
	w.update(func(c *Config) { c.Theme = t })
}

// SetProgressBar updates the taskbar progress indicator. A Progress of
// NoProgress keeps the current value.
func (w *Window) SetProgressBar(p ProgressBar) error {
	if err := p.validate(); err != nil {
		return err
	}
	w.update(func(c *Config) {
		if p.Progress == NoProgress {
			p.Progress = c.Progress.Progress
		}
		c.Progress = p
	})
	return nil
}

// SetBadgeCount sets the badge of the application icon. A count of zero
// or less removes it.
func (w *Window) SetBadgeCount(count int64, desktopFilename string) error {
	w.l.checkThread()
	if w.closing {
		return nil
	}
	return w.wnd.SetBadgeCount(count, desktopFilename)
}

// SetBadgeLabel sets a text badge of the application icon. An empty
// label removes it.
func (w *Window) SetBadgeLabel(label string) error {
	w.l.checkThread()
	if w.closing {
		return nil
	}
	return w.wnd.SetBadgeLabel(label)
}

// SetOverlayIcon sets a small icon over the taskbar button of the
// window. A nil icon removes it.
func (w *Window) SetOverlayIcon(icon *Icon) error {
	w.l.checkThread()
	if w.closing {
		return nil
	}
	return w.wnd.SetOverlayIcon(icon.image())
}

// DragWindow starts moving the window with the cursor. It is ignored
// unless the primary mouse button is pressed.
func (w *Window) DragWindow() error {
	w.l.checkThread()
	if w.closing {
		return nil
	}
	return w.wnd.Drag()
}

// RequestRedraw schedules a RedrawRequested for the window. Multiple
// requests within an iteration are coalesced.
func (w *Window) RequestRedraw() {
	w.l.checkThread()
	if !w.closing {
		w.l.requestRedraw(w.id)
	}
}

// Close destroys the window. A system.DestroyEvent is delivered as its
// last event. Close is idempotent.
func (w *Window) Close() {
	w.l.checkThread()
	w.close()
}

func (w *Window) close() {
	if w.closing {
		return
	}
	w.closing = true
	delete(w.l.focused, w.id)
	w.wnd.Destroy()
	w.l.push(wm.Event{Window: w.id, Event: system.DestroyEvent{}})
	w.l.log.Debug("window closed", zap.Stringer("window", w.id))
}
