// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"errors"
	"image"
	"sync"
	"time"

	"go.uber.org/zap"

	"taoui.org/app/internal/input"
	"taoui.org/io/event"
	"taoui.org/io/key"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/surface"
	"taoui.org/unit"
)

// Headless is a deterministic in-memory driver. It behaves like a
// well-mannered window manager: requests are honored immediately and
// reported as events. Its Inject methods simulate user input.
type Headless struct {
	cb     Callbacks
	log    *zap.Logger
	wake   chan struct{}
	router *input.Router

	mu       sync.Mutex
	monitors []Monitor
	modes    map[MonitorID][]VideoMode
	primary  MonitorID
	windows  map[event.WindowID]*headlessWindow
	focused  event.WindowID
	theme    system.Theme
	cascade  int32
	badge    int64
	label    string
	closed   bool
}

type headlessWindow struct {
	d  *Headless
	id event.WindowID

	// Protected by d.mu.
	cnf       Config
	size      unit.PhysicalSize
	pos       unit.PhysicalPosition
	restore   unit.Rect
	theme     system.Theme
	grabbed   bool
	protected bool
	drags     int
	ime       unit.PhysicalPosition
	destroyed bool
}

// HeadlessState is a snapshot of a headless window.
type HeadlessState struct {
	Config
	Size      unit.PhysicalSize
	Position  unit.PhysicalPosition
	Focused   bool
	Grabbed   bool
	Protected bool
	// Drags counts the interactive moves started by Drag.
	Drags     int
	Theme     system.Theme
	IME       unit.PhysicalPosition
	Destroyed bool
}

// ErrUnknownWindow is returned by Headless for window ids it did not
// create.
var ErrUnknownWindow = errors.New("unknown window")

const (
	headlessMonitor MonitorID = 1
	frameTop                  = 30
	frameSide                 = 1
)

// NewHeadless returns a headless driver with a single 1920x1080 monitor
// at scale factor 1.
func NewHeadless(cb Callbacks, log *zap.Logger) *Headless {
	d := &Headless{
		cb:      cb,
		log:     log,
		wake:    make(chan struct{}, 1),
		windows: make(map[event.WindowID]*headlessWindow),
		modes:   make(map[MonitorID][]VideoMode),
		theme:   system.ThemeLight,
	}
	d.router = input.NewRouter(d.emit)
	d.SetMonitors([]Monitor{{
		ID:          headlessMonitor,
		Name:        "headless-0",
		HasName:     true,
		Size:        unit.PhysicalSize{Width: 1920, Height: 1080},
		ScaleFactor: 1,
	}}, headlessMonitor)
	d.SetVideoModes(headlessMonitor, []VideoMode{
		{Size: unit.PhysicalSize{Width: 1920, Height: 1080}, BitDepth: 24, RefreshRate: 60},
		{Size: unit.PhysicalSize{Width: 1920, Height: 1080}, BitDepth: 24, RefreshRate: 144},
		{Size: unit.PhysicalSize{Width: 1280, Height: 720}, BitDepth: 24, RefreshRate: 60},
	})
	return d
}

func (d *Headless) Name() string { return "headless" }

func (d *Headless) emit(w event.WindowID, e event.Event) {
	d.cb.Event(Event{Window: w, Event: e})
}

func (d *Headless) NewWindow(id event.WindowID, cnf *Config) (Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, errors.New("headless: driver closed")
	}
	w := &headlessWindow{d: d, id: id}
	d.log.Debug("headless window created", zap.Uint64("window", uint64(id)), zap.String("title", cnf.Title))
	size := cnf.Size
	if size.Width == 0 || size.Height == 0 {
		size = unit.PhysicalSize{Width: 800, Height: 600}
	}
	w.size = cnf.ClampSize(size)
	if cnf.Position != nil {
		w.pos = *cnf.Position
	} else {
		d.cascade += 32
		w.pos = unit.PhysicalPosition{X: d.cascade, Y: d.cascade}
	}
	w.theme = d.effectiveTheme(cnf.Theme)
	w.cnf = *cnf
	w.cnf.Size = w.size
	d.windows[id] = w
	if cnf.Visible && !cnf.Minimized {
		d.setFocus(w.id)
	}
	if cnf.Maximized || cnf.Fullscreen.Mode != Windowed {
		w.cnf.Maximized = false
		w.cnf.Fullscreen = Fullscreen{}
		w.configure(cnf)
	}
	return w, nil
}

func (d *Headless) effectiveTheme(t system.Theme) system.Theme {
	if t == system.ThemeSystem {
		return d.theme
	}
	return t
}

func (d *Headless) Monitors() ([]Monitor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Monitor(nil), d.monitors...), nil
}

func (d *Headless) PrimaryMonitor() (Monitor, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.monitor(d.primary)
}

func (d *Headless) monitor(id MonitorID) (Monitor, bool) {
	for _, m := range d.monitors {
		if m.ID == id {
			return m, true
		}
	}
	return Monitor{}, false
}

func (d *Headless) VideoModes(m MonitorID) ([]VideoMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.monitor(m); !ok {
		return nil, errors.New("headless: monitor disconnected")
	}
	modes := append([]VideoMode(nil), d.modes[m]...)
	for i := range modes {
		modes[i].Monitor = m
	}
	return modes, nil
}

func (d *Headless) PollEvents() {}

func (d *Headless) WaitEvents(timeout time.Duration) {
	switch {
	case timeout < 0:
		<-d.wake
	case timeout == 0:
		select {
		case <-d.wake:
		default:
		}
	default:
		t := time.NewTimer(timeout)
		defer t.Stop()
		select {
		case <-d.wake:
		case <-t.C:
		}
	}
}

func (d *Headless) Wakeup() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Headless) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// SetMonitors replaces the connected monitors. A zero primary means
// no monitor is primary.
func (d *Headless) SetMonitors(monitors []Monitor, primary MonitorID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.monitors = append([]Monitor(nil), monitors...)
	d.primary = primary
}

// SetVideoModes sets the modes reported for a monitor.
func (d *Headless) SetVideoModes(m MonitorID, modes []VideoMode) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modes[m] = append([]VideoMode(nil), modes...)
}

// State returns a snapshot of the window id.
func (d *Headless) State(id event.WindowID) (HeadlessState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	w, ok := d.windows[id]
	if !ok {
		return HeadlessState{}, false
	}
	return HeadlessState{
		Config:    w.cnf,
		Size:      w.size,
		Position:  w.pos,
		Focused:   d.focused == id,
		Grabbed:   w.grabbed,
		Protected: w.protected,
		Drags:     w.drags,
		Theme:     w.theme,
		IME:       w.ime,
		Destroyed: w.destroyed,
	}, true
}

// Badge returns the application badge count and label.
func (d *Headless) Badge() (int64, string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.badge, d.label
}

// Inject delivers e for window w as if it came from the platform.
func (d *Headless) Inject(w event.WindowID, e event.Event) {
	d.emit(w, e)
	d.Wakeup()
}

// InjectDevice delivers a device event.
func (d *Headless) InjectDevice(dev event.DeviceID, e event.Event) {
	d.cb.Event(Event{Device: dev, Event: e})
	d.Wakeup()
}

// RequestClose simulates the user clicking the close button.
func (d *Headless) RequestClose(id event.WindowID) {
	d.Inject(id, &system.CloseRequestEvent{})
}

// Reopen simulates the application being reactivated.
func (d *Headless) Reopen() {
	d.mu.Lock()
	visible := false
	for _, w := range d.windows {
		if !w.destroyed && w.cnf.Visible {
			visible = true
		}
	}
	d.mu.Unlock()
	d.Inject(0, system.ReopenEvent{HasVisibleWindows: visible})
}

// Expose simulates the windowing system invalidating a window.
func (d *Headless) Expose(id event.WindowID) {
	d.Inject(id, RedrawRequest{})
}

// UserResize simulates the user resizing a window. The size is
// constrained like a window manager would.
func (d *Headless) UserResize(id event.WindowID, size unit.PhysicalSize) error {
	d.mu.Lock()
	w, ok := d.windows[id]
	if !ok || w.destroyed {
		d.mu.Unlock()
		return ErrUnknownWindow
	}
	if !w.cnf.Resizable {
		d.mu.Unlock()
		return nil
	}
	w.resize(w.cnf.ClampSize(size))
	d.mu.Unlock()
	d.Wakeup()
	return nil
}

// UserMove simulates the user moving a window.
func (d *Headless) UserMove(id event.WindowID, pos unit.PhysicalPosition) error {
	d.mu.Lock()
	w, ok := d.windows[id]
	if !ok || w.destroyed {
		d.mu.Unlock()
		return ErrUnknownWindow
	}
	w.move(pos)
	d.mu.Unlock()
	d.Wakeup()
	return nil
}

// SetSystemTheme changes the system theme. Windows following the
// system theme report a ThemeEvent.
func (d *Headless) SetSystemTheme(t system.Theme) {
	d.mu.Lock()
	d.theme = t
	for _, w := range d.windows {
		if w.cnf.Theme == system.ThemeSystem {
			w.setTheme(t)
		}
	}
	d.mu.Unlock()
	d.Wakeup()
}

// Key simulates a key press or release on window id.
func (d *Headless) Key(id event.WindowID, mods key.Modifiers, e key.Event) {
	d.router.Key(id, mods, e)
	d.cb.Event(Event{Event: key.RawEvent{Code: e.Code, State: e.State}})
	d.Wakeup()
}

// Button simulates a mouse button.
func (d *Headless) Button(id event.WindowID, mods key.Modifiers, b pointer.Button, state event.ElementState) {
	d.router.Button(id, mods, b, state)
	d.cb.Event(Event{Event: pointer.RawButtonEvent{Button: uint32(b), State: state}})
	d.Wakeup()
}

// CursorMove simulates the cursor moving over window id.
func (d *Headless) CursorMove(id event.WindowID, mods key.Modifiers, p unit.Point) {
	old, ok := d.router.Cursor(id)
	d.router.Move(id, mods, p)
	if ok {
		d.cb.Event(Event{Event: pointer.MotionEvent{DX: p.X - old.X, DY: p.Y - old.Y}})
	}
	d.Wakeup()
}

// Scroll simulates a wheel or touchpad scroll.
func (d *Headless) Scroll(id event.WindowID, mods key.Modifiers, delta pointer.ScrollDelta) {
	d.router.Wheel(id, mods, delta)
	d.cb.Event(Event{Event: pointer.RawWheelEvent{Delta: delta}})
	d.Wakeup()
}

// Pressed reports whether the button is held over window id.
func (d *Headless) Pressed(id event.WindowID, b pointer.Button) bool {
	return d.router.Pressed(id, b)
}

func (d *Headless) setFocus(id event.WindowID) {
	if d.focused == id {
		return
	}
	if old := d.focused; old != 0 {
		d.emit(old, system.FocusEvent{Focus: false})
	}
	d.focused = id
	if id != 0 {
		d.emit(id, system.FocusEvent{Focus: true})
	}
}

func (w *headlessWindow) Configure(cnf *Config) {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if w.destroyed {
		return
	}
	w.configure(cnf)
}

func (w *headlessWindow) configure(cnf *Config) {
	old := w.cnf
	w.cnf = *cnf
	d := w.d
	switch {
	case cnf.Fullscreen != old.Fullscreen:
		if old.Fullscreen.Mode == Windowed && !old.Maximized {
			w.restore = unit.Rect{Min: w.pos, Size: w.size}
		}
		switch cnf.Fullscreen.Mode {
		case Windowed:
			w.move(w.restore.Min)
			w.resize(w.restore.Size)
		case Borderless, Exclusive:
			m := w.monitor(cnf.Fullscreen.Monitor)
			size := m.Size
			if cnf.Fullscreen.Mode == Exclusive && cnf.Fullscreen.VideoMode.Size.Width != 0 {
				size = cnf.Fullscreen.VideoMode.Size
			}
			w.move(m.Position)
			w.resize(size)
		}
	case cnf.Maximized != old.Maximized && cnf.Fullscreen.Mode == Windowed:
		if cnf.Maximized {
			w.restore = unit.Rect{Min: w.pos, Size: w.size}
			m := w.monitor(0)
			w.move(m.Position)
			w.resize(cnf.ClampSize(m.Size))
		} else {
			w.move(w.restore.Min)
			w.resize(cnf.ClampSize(w.restore.Size))
		}
	default:
		if cnf.Size != old.Size || cnf.MinSize != old.MinSize || cnf.MaxSize != old.MaxSize {
			size := cnf.Size
			if size.Width == 0 || size.Height == 0 {
				size = w.size
			}
			w.resize(cnf.ClampSize(size))
		}
		if cnf.Position != nil && (old.Position == nil || *cnf.Position != *old.Position) {
			w.move(*cnf.Position)
		}
	}
	w.cnf.Size = w.size
	if cnf.Theme != old.Theme {
		w.setTheme(d.effectiveTheme(cnf.Theme))
	}
	if cnf.Minimized != old.Minimized {
		d.emit(w.id, system.VisibilityEvent{Minimized: cnf.Minimized})
		if cnf.Minimized && d.focused == w.id {
			d.setFocus(0)
		}
	}
	if !cnf.Visible && old.Visible && d.focused == w.id {
		d.setFocus(0)
	}
}

func (w *headlessWindow) monitor(id MonitorID) Monitor {
	d := w.d
	if id != 0 {
		if m, ok := d.monitor(id); ok {
			return m
		}
	}
	bounds := unit.Rect{Min: w.pos, Size: w.size}
	var best Monitor
	var area uint64
	for _, m := range d.monitors {
		if a := m.Bounds().Intersect(bounds); a > area || best.ID == 0 {
			best, area = m, a
		}
	}
	return best
}

func (w *headlessWindow) resize(s unit.PhysicalSize) {
	if s == w.size {
		return
	}
	w.size = s
	w.d.emit(w.id, system.ResizeEvent{Size: s})
}

func (w *headlessWindow) move(p unit.PhysicalPosition) {
	if p == w.pos {
		return
	}
	w.pos = p
	w.d.emit(w.id, system.MoveEvent{Position: p})
}

func (w *headlessWindow) setTheme(t system.Theme) {
	if t == w.theme {
		return
	}
	w.theme = t
	w.d.emit(w.id, system.ThemeEvent{Theme: t})
}

func (w *headlessWindow) frame() (top, side int32) {
	if !w.cnf.Decorated || w.cnf.Fullscreen.Mode != Windowed {
		return 0, 0
	}
	return frameTop, frameSide
}

func (w *headlessWindow) InnerSize() unit.PhysicalSize {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	return w.size
}

func (w *headlessWindow) OuterSize() unit.PhysicalSize {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	top, side := w.frame()
	return unit.PhysicalSize{
		Width:  w.size.Width + uint32(2*side),
		Height: w.size.Height + uint32(top+side),
	}
}

func (w *headlessWindow) InnerPosition() (unit.PhysicalPosition, error) {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	top, side := w.frame()
	return unit.PhysicalPosition{X: w.pos.X + side, Y: w.pos.Y + top}, nil
}

func (w *headlessWindow) OuterPosition() (unit.PhysicalPosition, error) {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	return w.pos, nil
}

func (w *headlessWindow) ScaleFactor() float64 {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if m := w.monitor(0); m.ID != 0 {
		return m.ScaleFactor
	}
	return 1
}

func (w *headlessWindow) Theme() system.Theme {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	return w.theme
}

func (w *headlessWindow) Focus() {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if !w.destroyed && w.cnf.Visible {
		w.d.setFocus(w.id)
	}
}

// Drag is ignored unless the primary button is held over the window.
func (w *headlessWindow) Drag() error {
	if !w.d.router.Pressed(w.id, pointer.ButtonLeft) {
		return nil
	}
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	w.drags++
	return nil
}

func (w *headlessWindow) SetCursorGrab(grab bool) error {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	w.grabbed = grab
	return nil
}

func (w *headlessWindow) SetCursorPosition(p unit.PhysicalPosition) error {
	w.d.router.Move(w.id, w.d.router.Modifiers(), unit.Point{X: float64(p.X), Y: float64(p.Y)})
	return nil
}

func (w *headlessWindow) SetIMEPosition(p unit.PhysicalPosition) {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	w.ime = p
}

func (w *headlessWindow) SetBadgeCount(count int64, desktopFilename string) error {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if count < 0 {
		count = 0
	}
	w.d.badge = count
	return nil
}

func (w *headlessWindow) SetBadgeLabel(label string) error {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	w.d.label = label
	return nil
}

func (w *headlessWindow) SetOverlayIcon(icon *image.NRGBA) error {
	return ErrUnsupported
}

func (w *headlessWindow) SetContentProtection(protect bool) error {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	w.protected = protect
	return nil
}

func (w *headlessWindow) RawHandle() (surface.Handle, error) {
	return surface.Headless{ID: uint64(w.id)}, nil
}

func (w *headlessWindow) Destroy() {
	w.d.mu.Lock()
	defer w.d.mu.Unlock()
	if w.destroyed {
		return
	}
	w.destroyed = true
	if w.d.focused == w.id {
		w.d.focused = 0
	}
	w.d.router.Forget(w.id)
}
