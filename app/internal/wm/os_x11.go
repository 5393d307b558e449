// SPDX-License-Identifier: Unlicense OR MIT

//go:build ((linux && !android) || freebsd || openbsd) && !headless

package wm

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xprop"
	"go.uber.org/zap"

	"taoui.org/app/internal/input"
	"taoui.org/app/internal/xkb"
	"taoui.org/io/event"
	"taoui.org/io/key"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/unit"
)

// x11Display is a driver for the X Window System written against the
// X11 protocol directly. Events are read by a goroutine and handled
// on the event loop thread in PollEvents and WaitEvents.
type x11Display struct {
	cb   Callbacks
	log  *zap.Logger
	xu   *xgbutil.XUtil
	conn *xgb.Conn
	root xproto.Window

	randr bool
	scale float64
	theme system.Theme

	atoms struct {
		protocols, deleteWindow, ping xproto.Atom
		wmState, resourceManager      xproto.Atom
	}

	events chan xgb.Event
	wake   chan struct{}
	// done is closed by Close to stop the reader.
	done chan struct{}
	// peeked is an event read ahead while detecting key repeats.
	peeked xgb.Event

	router  *input.Router
	windows map[xproto.Window]*x11Window
	cursors map[pointer.Cursor]xproto.Cursor
	blank   xproto.Cursor
	// keys tracks pressed keycodes to mark auto-repeated presses.
	keys map[xproto.Keycode]bool

	lastRoot unit.Point
	hasRoot  bool
	lost     bool
	closed   bool
}

// Device ids of the X11 core pointer and keyboard.
const (
	x11CorePointer  event.DeviceID = 2
	x11CoreKeyboard event.DeviceID = 3
)

// x11ScreenMonitor identifies the whole screen when RandR is
// unavailable. It cannot collide with RandR output ids.
const x11ScreenMonitor MonitorID = 1 << 32

var errX11Closed = errors.New("x11: connection closed")

func init() {
	x11Driver = newX11Display
}

func newX11Display(cb Callbacks, log *zap.Logger) (Driver, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: %w", err)
	}
	d := &x11Display{
		cb:      cb,
		log:     log,
		xu:      xu,
		conn:    xu.Conn(),
		root:    xu.RootWin(),
		events:  make(chan xgb.Event, 256),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		windows: make(map[xproto.Window]*x11Window),
		cursors: make(map[pointer.Cursor]xproto.Cursor),
		keys:    make(map[xproto.Keycode]bool),
		theme:   x11SystemTheme(),
	}
	d.router = input.NewRouter(d.emit)
	for _, a := range []struct {
		name string
		atom *xproto.Atom
	}{
		{"WM_PROTOCOLS", &d.atoms.protocols},
		{"WM_DELETE_WINDOW", &d.atoms.deleteWindow},
		{"_NET_WM_PING", &d.atoms.ping},
		{"_NET_WM_STATE", &d.atoms.wmState},
		{"RESOURCE_MANAGER", &d.atoms.resourceManager},
	} {
		if *a.atom, err = xprop.Atm(xu, a.name); err != nil {
			xu.Conn().Close()
			return nil, fmt.Errorf("x11: intern %s: %w", a.name, err)
		}
	}
	d.loadKeymap()
	if err := randr.Init(d.conn); err != nil {
		log.Debug("x11: RandR unavailable", zap.Error(err))
	} else {
		d.randr = true
		randr.SelectInput(d.conn, d.root, randr.NotifyMaskScreenChange)
	}
	// Watch the root window for Xft.dpi changes.
	xproto.ChangeWindowAttributes(d.conn, d.root, xproto.CwEventMask,
		[]uint32{xproto.EventMaskPropertyChange})
	d.scale = d.detectScale()
	log.Debug("x11: connected",
		zap.Int("screen", d.conn.DefaultScreen),
		zap.Bool("randr", d.randr),
		zap.Float64("scale", d.scale))
	go readEvents(d.conn.WaitForEvent, d.events, d.done, d.log)
	return d, nil
}

func (d *x11Display) Name() string { return "x11" }

func (d *x11Display) emit(w event.WindowID, e event.Event) {
	d.cb.Event(Event{Window: w, Event: e})
}

func (d *x11Display) device(dev event.DeviceID, e event.Event) {
	d.cb.Event(Event{Device: dev, Event: e})
}

// readEvents forwards the results of wait to events until the
// connection is closed or done is closed.
func readEvents(wait func() (xgb.Event, xgb.Error), events chan<- xgb.Event, done <-chan struct{}, log *zap.Logger) {
	for {
		ev, err := wait()
		if ev == nil && err == nil {
			close(events)
			return
		}
		if err != nil {
			log.Debug("x11: protocol error", zap.Error(err))
			continue
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

func (d *x11Display) loadKeymap() {
	keyMap, modMap := keybind.MapsGet(d.xu)
	keybind.KeyMapSet(d.xu, keyMap)
	keybind.ModMapSet(d.xu, modMap)
}

// detectScale derives the scale factor from the Xft.dpi resource set
// by desktop environments.
func (d *x11Display) detectScale() float64 {
	// Default fixed DPI value used by most desktop toolkits.
	const defaultDesktopDPI = 96
	rms, err := xprop.PropValStr(xprop.GetProperty(d.xu, d.root, "RESOURCE_MANAGER"))
	if err != nil {
		return 1
	}
	for _, line := range strings.Split(rms, "\n") {
		name, val, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(name) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 1
		}
		if s := dpi / defaultDesktopDPI; unit.ValidScaleFactor(s) {
			return s
		}
	}
	return 1
}

// x11SystemTheme reports the GTK theme variant.
func x11SystemTheme() system.Theme {
	if strings.HasSuffix(os.Getenv("GTK_THEME"), ":dark") {
		return system.ThemeDark
	}
	return system.ThemeLight
}

func (d *x11Display) Monitors() ([]Monitor, error) {
	if !d.randr {
		return []Monitor{d.screenMonitor()}, nil
	}
	res, err := randr.GetScreenResourcesCurrent(d.conn, d.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: screen resources: %w", err)
	}
	var mons []Monitor
	for _, out := range res.Outputs {
		info, err := randr.GetOutputInfo(d.conn, out, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("x11: output info: %w", err)
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(d.conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			return nil, fmt.Errorf("x11: crtc info: %w", err)
		}
		mons = append(mons, Monitor{
			ID:          MonitorID(out),
			Name:        string(info.Name),
			HasName:     len(info.Name) > 0,
			Position:    unit.PhysicalPosition{X: int32(crtc.X), Y: int32(crtc.Y)},
			Size:        unit.PhysicalSize{Width: uint32(crtc.Width), Height: uint32(crtc.Height)},
			ScaleFactor: d.scale,
		})
	}
	if len(mons) == 0 {
		mons = append(mons, d.screenMonitor())
	}
	return mons, nil
}

func (d *x11Display) screenMonitor() Monitor {
	s := d.xu.Screen()
	return Monitor{
		ID:          x11ScreenMonitor,
		Size:        unit.PhysicalSize{Width: uint32(s.WidthInPixels), Height: uint32(s.HeightInPixels)},
		ScaleFactor: d.scale,
	}
}

func (d *x11Display) PrimaryMonitor() (Monitor, bool) {
	mons, err := d.Monitors()
	if err != nil || len(mons) == 0 {
		return Monitor{}, false
	}
	if d.randr {
		if p, err := randr.GetOutputPrimary(d.conn, d.root).Reply(); err == nil && p.Output != 0 {
			for _, m := range mons {
				if m.ID == MonitorID(p.Output) {
					return m, true
				}
			}
		}
	}
	return mons[0], true
}

func (d *x11Display) monitor(id MonitorID) (Monitor, bool) {
	mons, err := d.Monitors()
	if err != nil {
		return Monitor{}, false
	}
	for _, m := range mons {
		if m.ID == id {
			return m, true
		}
	}
	return Monitor{}, false
}

func (d *x11Display) VideoModes(id MonitorID) ([]VideoMode, error) {
	depth := uint16(d.xu.Screen().RootDepth)
	if id == x11ScreenMonitor {
		m := d.screenMonitor()
		return []VideoMode{{Size: m.Size, BitDepth: depth, Monitor: id}}, nil
	}
	if !d.randr || id > math.MaxUint32 {
		return nil, fmt.Errorf("x11: unknown monitor %d", id)
	}
	res, err := randr.GetScreenResourcesCurrent(d.conn, d.root).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: screen resources: %w", err)
	}
	info, err := randr.GetOutputInfo(d.conn, randr.Output(id), res.ConfigTimestamp).Reply()
	if err != nil {
		return nil, fmt.Errorf("x11: output info: %w", err)
	}
	if info.Connection != randr.ConnectionConnected {
		return nil, fmt.Errorf("x11: monitor %d is disconnected", id)
	}
	var modes []VideoMode
	for _, mid := range info.Modes {
		for _, mi := range res.Modes {
			if mi.Id != uint32(mid) {
				continue
			}
			modes = append(modes, VideoMode{
				Size:        unit.PhysicalSize{Width: uint32(mi.Width), Height: uint32(mi.Height)},
				BitDepth:    depth,
				RefreshRate: x11RefreshRate(mi),
				Monitor:     id,
			})
		}
	}
	return modes, nil
}

// x11RefreshRate computes the rounded refresh rate in Hz of a mode.
func x11RefreshRate(mi randr.ModeInfo) uint16 {
	if mi.Htotal == 0 || mi.Vtotal == 0 {
		return 0
	}
	vtotal := float64(mi.Vtotal)
	if mi.ModeFlags&randr.ModeFlagDoubleScan != 0 {
		vtotal *= 2
	}
	if mi.ModeFlags&randr.ModeFlagInterlace != 0 {
		vtotal /= 2
	}
	return uint16(math.Round(float64(mi.DotClock) / (float64(mi.Htotal) * vtotal)))
}

func (d *x11Display) PollEvents() {
	for {
		ev, ok := d.next()
		if !ok {
			return
		}
		d.handle(ev)
	}
}

// next returns a ready event without blocking.
func (d *x11Display) next() (xgb.Event, bool) {
	if ev := d.peeked; ev != nil {
		d.peeked = nil
		return ev, true
	}
	select {
	case ev, ok := <-d.events:
		if !ok {
			d.connectionLost()
			return nil, false
		}
		return ev, true
	default:
		return nil, false
	}
}

func (d *x11Display) WaitEvents(timeout time.Duration) {
	if d.peeked != nil {
		d.PollEvents()
		return
	}
	var timer <-chan time.Time
	if timeout >= 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}
	select {
	case ev, ok := <-d.events:
		if !ok {
			d.connectionLost()
			return
		}
		d.handle(ev)
		d.PollEvents()
	case <-d.wake:
	case <-timer:
	}
}

func (d *x11Display) connectionLost() {
	// A nil channel blocks forever.
	d.events = nil
	if d.closed || d.lost {
		return
	}
	d.lost = true
	d.emit(0, ErrorEvent{Op: "x11: read events", Err: errX11Closed})
}

func (d *x11Display) Wakeup() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *x11Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	close(d.done)
	for _, w := range d.windows {
		w.Destroy()
	}
	for _, c := range d.cursors {
		xproto.FreeCursor(d.conn, c)
	}
	if d.blank != 0 {
		xproto.FreeCursor(d.conn, d.blank)
	}
	d.conn.Close()
	return nil
}

func (d *x11Display) handle(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		d.xu.TimeSet(e.Time)
		d.key(e.Event, e.Detail, e.State, event.Pressed)
	case xproto.KeyReleaseEvent:
		d.xu.TimeSet(e.Time)
		if d.autoRepeat(e) {
			return
		}
		d.key(e.Event, e.Detail, e.State, event.Released)
	case xproto.ButtonPressEvent:
		d.xu.TimeSet(e.Time)
		d.button(e, event.Pressed)
	case xproto.ButtonReleaseEvent:
		d.xu.TimeSet(e.Time)
		d.button(xproto.ButtonPressEvent(e), event.Released)
	case xproto.MotionNotifyEvent:
		d.motion(e)
	case xproto.EnterNotifyEvent:
		if w := d.windows[e.Event]; w != nil {
			d.emit(w.id, pointer.EnterEvent{})
			d.router.Move(w.id, xkb.Modifiers(e.State), unit.Point{X: float64(e.EventX), Y: float64(e.EventY)})
		}
	case xproto.LeaveNotifyEvent:
		if w := d.windows[e.Event]; w != nil {
			d.emit(w.id, pointer.LeaveEvent{})
		}
	case xproto.FocusInEvent:
		d.focus(e.Event, e.Mode, e.Detail, true)
	case xproto.FocusOutEvent:
		d.focus(e.Event, e.Mode, e.Detail, false)
	case xproto.ExposeEvent:
		if w := d.windows[e.Window]; w != nil && e.Count == 0 {
			d.emit(w.id, RedrawRequest{})
		}
	case xproto.ConfigureNotifyEvent:
		if w := d.windows[e.Window]; w != nil {
			w.configured(unit.PhysicalSize{Width: uint32(e.Width), Height: uint32(e.Height)})
		}
	case xproto.PropertyNotifyEvent:
		d.property(e)
	case xproto.ClientMessageEvent:
		d.clientMessage(e)
	case xproto.DestroyNotifyEvent:
		w := d.windows[e.Window]
		if w == nil {
			return
		}
		w.forget()
		d.emit(w.id, system.DestroyEvent{})
	case xproto.MappingNotifyEvent:
		if e.Request != xproto.MappingPointer {
			d.loadKeymap()
		}
	case randr.ScreenChangeNotifyEvent:
		d.log.Debug("x11: screen configuration changed",
			zap.Uint16("width", e.Width), zap.Uint16("height", e.Height))
	}
}

// autoRepeat reports whether the release e is followed by a press of
// the same key at the same time, which is how the X server reports
// key auto-repeat. The release is then dropped.
func (d *x11Display) autoRepeat(e xproto.KeyReleaseEvent) bool {
	ev, ok := d.next()
	if !ok {
		return false
	}
	d.peeked = ev
	p, ok := ev.(xproto.KeyPressEvent)
	return ok && p.Detail == e.Detail && p.Time == e.Time
}

func (d *x11Display) key(xw xproto.Window, kc xproto.Keycode, state uint16, st event.ElementState) {
	w := d.windows[xw]
	if w == nil {
		return
	}
	// The state mask holds the modifiers before the event.
	if mod := keybind.ModGet(d.xu, kc); mod != 0 {
		if st == event.Pressed {
			state |= mod
		} else {
			state &^= mod
		}
	}
	code := xkb.CodeForKeycode(uint8(kc))
	sym := d.keysym(kc, state)
	var text string
	if st == event.Pressed {
		text = x11KeysymText(sym)
	}
	repeat := st == event.Pressed && d.keys[kc]
	if st == event.Pressed {
		d.keys[kc] = true
	} else {
		delete(d.keys, kc)
	}
	d.router.Key(w.id, xkb.Modifiers(state), key.Event{
		Code:     code,
		Key:      xkb.Logical(uint32(sym), text),
		Text:     text,
		Location: code.Location(),
		State:    st,
		Repeat:   repeat,
	})
	if !repeat {
		d.device(x11CoreKeyboard, key.RawEvent{Code: code, State: st})
	}
}

// keysym selects the keysym of kc for the shift and lock state.
func (d *x11Display) keysym(kc xproto.Keycode, state uint16) xproto.Keysym {
	lower := keybind.KeysymGet(d.xu, kc, 0)
	upper := keybind.KeysymGet(d.xu, kc, 1)
	letter := lower >= 'a' && lower <= 'z'
	if upper == 0 {
		upper = lower
		if letter {
			upper = lower - 'a' + 'A'
		}
	}
	shift := state&xkb.ShiftMask != 0
	if letter && state&xkb.LockMask != 0 {
		shift = !shift
	}
	if shift {
		return upper
	}
	return lower
}

// x11KeysymText returns the text of a character keysym.
func x11KeysymText(sym xproto.Keysym) string {
	switch {
	case sym >= 0x20 && sym <= 0x7e, sym >= 0xa0 && sym <= 0xff:
		return string(rune(sym))
	case sym&0xff000000 == 0x01000000:
		return string(rune(sym & 0x00ffffff))
	case sym >= 0xffb0 && sym <= 0xffb9:
		// Keypad digits.
		return string(rune('0' + sym - 0xffb0))
	}
	return ""
}

var x11ScrollDeltas = map[xproto.Button]pointer.LineDelta{
	4: {Y: 1},
	5: {Y: -1},
	6: {X: 1},
	7: {X: -1},
}

func (d *x11Display) button(e xproto.ButtonPressEvent, st event.ElementState) {
	w := d.windows[e.Event]
	if w == nil {
		return
	}
	mods := xkb.Modifiers(e.State)
	if delta, ok := x11ScrollDeltas[e.Detail]; ok {
		if st == event.Pressed {
			d.router.Wheel(w.id, mods, delta)
			d.device(x11CorePointer, pointer.RawWheelEvent{Delta: delta})
		}
		return
	}
	var b pointer.Button
	switch e.Detail {
	case 1:
		b = pointer.ButtonLeft
	case 2:
		b = pointer.ButtonMiddle
	case 3:
		b = pointer.ButtonRight
	default:
		b = pointer.OtherButton(uint16(e.Detail))
	}
	d.router.Button(w.id, mods, b, st)
	d.device(x11CorePointer, pointer.RawButtonEvent{Button: uint32(e.Detail), State: st})
}

// motion reports cursor movement. Device motion is derived from the
// root coordinates of core events, so it stops outside the windows.
func (d *x11Display) motion(e xproto.MotionNotifyEvent) {
	w := d.windows[e.Event]
	if w == nil {
		return
	}
	d.router.Move(w.id, xkb.Modifiers(e.State), unit.Point{X: float64(e.EventX), Y: float64(e.EventY)})
	root := unit.Point{X: float64(e.RootX), Y: float64(e.RootY)}
	if d.hasRoot && root != d.lastRoot {
		d.device(x11CorePointer, pointer.MotionEvent{DX: root.X - d.lastRoot.X, DY: root.Y - d.lastRoot.Y})
	}
	d.lastRoot, d.hasRoot = root, true
}

func (d *x11Display) focus(xw xproto.Window, mode, detail byte, focus bool) {
	w := d.windows[xw]
	if w == nil || detail == xproto.NotifyDetailPointer {
		return
	}
	if mode == xproto.NotifyModeGrab || mode == xproto.NotifyModeUngrab {
		return
	}
	if w.focused == focus {
		return
	}
	w.focused = focus
	d.emit(w.id, system.FocusEvent{Focus: focus})
	if focus {
		if qp, err := xproto.QueryPointer(d.conn, xw).Reply(); err == nil {
			d.router.SyncModifiers(w.id, xkb.Modifiers(qp.Mask))
		}
	}
}

func (d *x11Display) property(e xproto.PropertyNotifyEvent) {
	if e.Window == d.root {
		if e.Atom != d.atoms.resourceManager {
			return
		}
		s := d.detectScale()
		if s == d.scale {
			return
		}
		d.scale = s
		for _, w := range d.windows {
			d.emit(w.id, system.ScaleEvent{ScaleFactor: s, Size: w.size})
		}
		return
	}
	w := d.windows[e.Window]
	if w == nil || e.Atom != d.atoms.wmState {
		return
	}
	states, err := ewmh.WmStateGet(d.xu, w.xw)
	if err != nil {
		return
	}
	w.stateChanged(states)
}

func (d *x11Display) clientMessage(e xproto.ClientMessageEvent) {
	w := d.windows[e.Window]
	if w == nil || e.Type != d.atoms.protocols || e.Format != 32 {
		return
	}
	switch xproto.Atom(e.Data.Data32[0]) {
	case d.atoms.deleteWindow:
		d.emit(w.id, &system.CloseRequestEvent{})
	case d.atoms.ping:
		e.Window = d.root
		xproto.SendEvent(d.conn, false, d.root,
			xproto.EventMaskSubstructureNotify|xproto.EventMaskSubstructureRedirect,
			string(e.Bytes()))
	}
}
