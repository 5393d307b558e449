// SPDX-License-Identifier: Unlicense OR MIT

//go:build ((darwin && !ios) || windows) && !headless

package wm

import (
	"errors"
	"fmt"
	"image"
	"math"
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"taoui.org/app/internal/input"
	"taoui.org/io/event"
	"taoui.org/io/key"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/unit"
)

// glfwDisplay is a driver for macOS and Windows built on GLFW. GLFW
// must be used from the main thread; the event loop guarantees it.
type glfwDisplay struct {
	cb     Callbacks
	log    *zap.Logger
	router *input.Router

	windows  map[*glfw.Window]*glfwWindow
	cursors  map[glfw.StandardCursor]*glfw.Cursor
	monitors map[*glfw.Monitor]MonitorID
	nextMon  MonitorID

	lastCursor unit.Point
	hasCursor  bool
	closed     bool
}

type glfwWindow struct {
	d  *glfwDisplay
	id event.WindowID
	w  *glfw.Window

	cnf       Config
	size      unit.PhysicalSize
	pos       unit.PhysicalPosition
	scale     float64
	theme     system.Theme
	restore   unit.Rect
	grabbed   bool
	protected bool
	// pending is a key press waiting for its character.
	pending   *key.Event
	mods      key.Modifiers
	destroyed bool
}

// Device ids for the GLFW mouse and keyboard.
const (
	glfwMouse    event.DeviceID = 1
	glfwKeyboard event.DeviceID = 2
)

var errGLFWClosed = errors.New("glfw: driver closed")

func init() {
	glfwDriver = newGLFWDisplay
}

func newGLFWDisplay(cb Callbacks, log *zap.Logger) (Driver, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw: %w", err)
	}
	d := &glfwDisplay{
		cb:       cb,
		log:      log,
		windows:  make(map[*glfw.Window]*glfwWindow),
		cursors:  make(map[glfw.StandardCursor]*glfw.Cursor),
		monitors: make(map[*glfw.Monitor]MonitorID),
	}
	d.router = input.NewRouter(d.emit)
	glfw.SetMonitorCallback(func(m *glfw.Monitor, e glfw.PeripheralEvent) {
		if e == glfw.Disconnected {
			delete(d.monitors, m)
		}
		log.Debug("glfw: monitor changed", zap.String("name", m.GetName()), zap.Bool("connected", e == glfw.Connected))
	})
	major, minor, rev := glfw.GetVersion()
	log.Debug("glfw: initialized", zap.String("version", fmt.Sprintf("%d.%d.%d", major, minor, rev)))
	return d, nil
}

func (d *glfwDisplay) Name() string { return "glfw" }

func (d *glfwDisplay) emit(w event.WindowID, e event.Event) {
	d.cb.Event(Event{Window: w, Event: e})
}

func (d *glfwDisplay) device(dev event.DeviceID, e event.Event) {
	d.cb.Event(Event{Device: dev, Event: e})
}

func (d *glfwDisplay) monitorID(m *glfw.Monitor) MonitorID {
	id, ok := d.monitors[m]
	if !ok {
		d.nextMon++
		id = d.nextMon
		d.monitors[m] = id
	}
	return id
}

func (d *glfwDisplay) describe(m *glfw.Monitor) Monitor {
	x, y := m.GetPos()
	sx, _ := m.GetContentScale()
	mon := Monitor{
		ID:          d.monitorID(m),
		Name:        m.GetName(),
		Position:    unit.PhysicalPosition{X: int32(x), Y: int32(y)},
		ScaleFactor: float64(sx),
	}
	mon.HasName = mon.Name != ""
	if vm := m.GetVideoMode(); vm != nil {
		mon.Size = unit.PhysicalSize{Width: uint32(vm.Width), Height: uint32(vm.Height)}
	}
	if !unit.ValidScaleFactor(mon.ScaleFactor) {
		mon.ScaleFactor = 1
	}
	return mon
}

func (d *glfwDisplay) Monitors() ([]Monitor, error) {
	var mons []Monitor
	for _, m := range glfw.GetMonitors() {
		mons = append(mons, d.describe(m))
	}
	return mons, nil
}

func (d *glfwDisplay) PrimaryMonitor() (Monitor, bool) {
	m := glfw.GetPrimaryMonitor()
	if m == nil {
		return Monitor{}, false
	}
	return d.describe(m), true
}

func (d *glfwDisplay) lookup(id MonitorID) *glfw.Monitor {
	for _, m := range glfw.GetMonitors() {
		if d.monitorID(m) == id {
			return m
		}
	}
	return nil
}

func (d *glfwDisplay) VideoModes(id MonitorID) ([]VideoMode, error) {
	m := d.lookup(id)
	if m == nil {
		return nil, fmt.Errorf("glfw: unknown monitor %d", id)
	}
	var modes []VideoMode
	for _, vm := range m.GetVideoModes() {
		modes = append(modes, VideoMode{
			Size:        unit.PhysicalSize{Width: uint32(vm.Width), Height: uint32(vm.Height)},
			BitDepth:    uint16(vm.RedBits + vm.GreenBits + vm.BlueBits),
			RefreshRate: uint16(vm.RefreshRate),
			Monitor:     id,
		})
	}
	return modes, nil
}

func (d *glfwDisplay) PollEvents() {
	glfw.PollEvents()
	d.flushKeys()
}

func (d *glfwDisplay) WaitEvents(timeout time.Duration) {
	switch {
	case timeout < 0:
		glfw.WaitEvents()
	case timeout == 0:
		glfw.PollEvents()
	default:
		glfw.WaitEventsTimeout(timeout.Seconds())
	}
	d.flushKeys()
}

func (d *glfwDisplay) Wakeup() {
	glfw.PostEmptyEvent()
}

func (d *glfwDisplay) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	for _, w := range d.windows {
		w.Destroy()
	}
	for _, c := range d.cursors {
		c.Destroy()
	}
	glfw.Terminate()
	return nil
}

// flushKeys delivers key presses that produced no character.
func (d *glfwDisplay) flushKeys() {
	for _, w := range d.windows {
		w.flushKey()
	}
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func (d *glfwDisplay) NewWindow(id event.WindowID, cnf *Config) (Window, error) {
	if d.closed {
		return nil, errGLFWClosed
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.False)
	glfw.WindowHint(glfw.Decorated, glfwBool(cnf.Decorated))
	glfw.WindowHint(glfw.Resizable, glfwBool(cnf.Resizable))
	glfw.WindowHint(glfw.Floating, glfwBool(cnf.AlwaysOnTop))
	glfw.WindowHint(glfw.TransparentFramebuffer, glfwBool(cnf.Transparent))
	glfw.WindowHint(glfw.Maximized, glfwBool(cnf.Maximized))
	size := cnf.Size
	if size.Width == 0 || size.Height == 0 {
		size = unit.PhysicalSize{Width: 800, Height: 600}
	}
	size = cnf.ClampSize(size)
	scale := 1.0
	if m := glfw.GetPrimaryMonitor(); m != nil {
		scale = d.describe(m).ScaleFactor
	}
	sw, sh := glfwToScreen(int32(size.Width), scale), glfwToScreen(int32(size.Height), scale)
	gw, err := glfw.CreateWindow(sw, sh, cnf.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw: create window: %w", err)
	}
	w := &glfwWindow{
		d:     d,
		id:    id,
		w:     gw,
		scale: scale,
		theme: glfwSystemTheme(),
	}
	if sx, _ := gw.GetContentScale(); unit.ValidScaleFactor(float64(sx)) {
		w.scale = float64(sx)
	}
	fw, fh := gw.GetFramebufferSize()
	w.size = unit.PhysicalSize{Width: uint32(fw), Height: uint32(fh)}
	d.windows[gw] = w
	w.installCallbacks()
	w.cnf = Config{
		Title:         cnf.Title,
		Size:          w.size,
		Decorated:     cnf.Decorated,
		Resizable:     cnf.Resizable,
		AlwaysOnTop:   cnf.AlwaysOnTop,
		Transparent:   cnf.Transparent,
		Maximized:     cnf.Maximized,
		Closable:      true,
		Minimizable:   true,
		Maximizable:   true,
		CursorVisible: true,
	}
	w.configure(cnf)
	if p, err := w.OuterPosition(); err == nil {
		w.pos = p
	}
	d.log.Debug("glfw: window created", zap.Uint64("window", uint64(id)))
	return w, nil
}

// glfwToScreen converts pixels to GLFW screen coordinates, which are
// points on macOS.
func glfwToScreen(v int32, scale float64) int {
	if runtime.GOOS != "darwin" {
		return int(v)
	}
	return int(math.Round(float64(v) / scale))
}

func glfwFromScreen(v int, scale float64) int32 {
	if runtime.GOOS != "darwin" {
		return int32(v)
	}
	return int32(math.Round(float64(v) * scale))
}

func (w *glfwWindow) installCallbacks() {
	d := w.d
	w.w.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		size := unit.PhysicalSize{Width: uint32(width), Height: uint32(height)}
		if size == w.size || width == 0 || height == 0 {
			return
		}
		w.size = size
		w.cnf.Size = size
		d.emit(w.id, system.ResizeEvent{Size: size})
	})
	w.w.SetPosCallback(func(_ *glfw.Window, x, y int) {
		p, err := w.OuterPosition()
		if err != nil || p == w.pos {
			return
		}
		w.pos = p
		d.emit(w.id, system.MoveEvent{Position: p})
	})
	w.w.SetCloseCallback(func(gw *glfw.Window) {
		gw.SetShouldClose(false)
		if w.cnf.Closable {
			d.emit(w.id, &system.CloseRequestEvent{})
		}
	})
	w.w.SetRefreshCallback(func(*glfw.Window) {
		d.emit(w.id, RedrawRequest{})
	})
	w.w.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		d.emit(w.id, system.FocusEvent{Focus: focused})
	})
	w.w.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		w.cnf.Minimized = iconified
		d.emit(w.id, system.VisibilityEvent{Minimized: iconified})
	})
	w.w.SetMaximizeCallback(func(_ *glfw.Window, maximized bool) {
		w.cnf.Maximized = maximized
	})
	w.w.SetContentScaleCallback(func(gw *glfw.Window, x, _ float32) {
		s := float64(x)
		if s == w.scale || !unit.ValidScaleFactor(s) {
			return
		}
		w.scale = s
		fw, fh := gw.GetFramebufferSize()
		d.emit(w.id, system.ScaleEvent{ScaleFactor: s, Size: unit.PhysicalSize{Width: uint32(fw), Height: uint32(fh)}})
	})
	w.w.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		w.key(k, scancode, action, mods)
	})
	w.w.SetCharCallback(func(_ *glfw.Window, r rune) {
		w.char(r)
	})
	w.w.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		st := event.Pressed
		if action == glfw.Release {
			st = event.Released
		}
		d.router.Button(w.id, glfwModifiers(mods), glfwButton(b), st)
		d.device(glfwMouse, pointer.RawButtonEvent{Button: uint32(b) + 1, State: st})
	})
	w.w.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		p := unit.Point{X: x, Y: y}
		if runtime.GOOS == "darwin" {
			p.X, p.Y = x*w.scale, y*w.scale
		}
		d.router.Move(w.id, w.mods, p)
		if d.hasCursor {
			d.device(glfwMouse, pointer.MotionEvent{DX: p.X - d.lastCursor.X, DY: p.Y - d.lastCursor.Y})
		}
		d.lastCursor, d.hasCursor = p, true
	})
	w.w.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		d.hasCursor = false
		if entered {
			d.emit(w.id, pointer.EnterEvent{})
		} else {
			d.emit(w.id, pointer.LeaveEvent{})
		}
	})
	w.w.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		delta := pointer.LineDelta{X: float32(xoff), Y: float32(yoff)}
		d.router.Wheel(w.id, w.mods, delta)
		d.device(glfwMouse, pointer.RawWheelEvent{Delta: delta})
	})
	w.w.SetDropCallback(func(_ *glfw.Window, names []string) {
		for _, n := range names {
			d.emit(w.id, system.DropEvent{Path: n})
		}
	})
}

func glfwModifiers(mods glfw.ModifierKey) key.Modifiers {
	var m key.Modifiers
	if mods&glfw.ModShift != 0 {
		m |= key.ModShift
	}
	if mods&glfw.ModControl != 0 {
		m |= key.ModCtrl
	}
	if mods&glfw.ModAlt != 0 {
		m |= key.ModAlt
	}
	if mods&glfw.ModSuper != 0 {
		m |= key.ModSuper
	}
	return m
}

func glfwButton(b glfw.MouseButton) pointer.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return pointer.ButtonLeft
	case glfw.MouseButtonRight:
		return pointer.ButtonRight
	case glfw.MouseButtonMiddle:
		return pointer.ButtonMiddle
	}
	return pointer.OtherButton(uint16(b) + 1)
}

func (w *glfwWindow) key(k glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	w.flushKey()
	code := glfwCodes[k]
	st := event.Pressed
	if action == glfw.Release {
		st = event.Released
	}
	// GLFW reports the modifiers before a modifier key changes them.
	w.mods = glfwModifiers(mods)
	if m, ok := glfwModifierKeys[code]; ok {
		if st == event.Pressed {
			w.mods |= m
		} else {
			w.mods &^= m
		}
	}
	e := key.Event{
		Code:     code,
		Location: code.Location(),
		State:    st,
		Repeat:   action == glfw.Repeat,
	}
	if n, ok := glfwNames[code]; ok {
		e.Key = key.Named(n)
	} else if name := glfw.GetKeyName(k, scancode); name != "" {
		e.Key = key.Character(name)
	} else {
		e.Key = key.Named(key.NameUnidentified)
	}
	if !e.Repeat {
		w.d.device(glfwKeyboard, key.RawEvent{Code: code, State: st})
	}
	if st == event.Pressed && e.Key.IsCharacter() {
		w.pending = &e
		return
	}
	w.d.router.Key(w.id, w.mods, e)
}

// char completes the pending key press with its text.
func (w *glfwWindow) char(r rune) {
	if w.pending == nil {
		return
	}
	e := *w.pending
	w.pending = nil
	e.Text = string(r)
	e.Key = key.Character(e.Text)
	w.d.router.Key(w.id, w.mods, e)
}

func (w *glfwWindow) flushKey() {
	if w.pending == nil {
		return
	}
	e := *w.pending
	w.pending = nil
	w.d.router.Key(w.id, w.mods, e)
}

func (w *glfwWindow) Configure(cnf *Config) {
	if w.destroyed {
		return
	}
	w.configure(cnf)
}

func (w *glfwWindow) configure(cnf *Config) {
	old := w.cnf
	w.cnf = *cnf
	w.cnf.Size = w.size
	gw := w.w
	if cnf.Title != old.Title {
		gw.SetTitle(cnf.Title)
	}
	if cnf.Decorated != old.Decorated {
		gw.SetAttrib(glfw.Decorated, glfwBool(cnf.Decorated))
	}
	if cnf.Resizable != old.Resizable {
		gw.SetAttrib(glfw.Resizable, glfwBool(cnf.Resizable))
	}
	if cnf.AlwaysOnTop != old.AlwaysOnTop {
		gw.SetAttrib(glfw.Floating, glfwBool(cnf.AlwaysOnTop))
	}
	if cnf.AlwaysOnBottom != old.AlwaysOnBottom {
		w.d.log.Debug("glfw: always on bottom is not supported")
	}
	if cnf.MinSize != old.MinSize || cnf.MaxSize != old.MaxSize {
		limit := func(v uint32) int {
			if v == 0 {
				return glfw.DontCare
			}
			return glfwToScreen(int32(v), w.scale)
		}
		gw.SetSizeLimits(limit(cnf.MinSize.Width), limit(cnf.MinSize.Height),
			limit(cnf.MaxSize.Width), limit(cnf.MaxSize.Height))
	}
	if cnf.Size != old.Size && cnf.Size.Width != 0 && cnf.Size.Height != 0 && cnf.Fullscreen.Mode == Windowed {
		s := cnf.ClampSize(cnf.Size)
		gw.SetSize(glfwToScreen(int32(s.Width), w.scale), glfwToScreen(int32(s.Height), w.scale))
	}
	if cnf.Position != nil && (old.Position == nil || *cnf.Position != *old.Position) {
		left, top, _, _ := gw.GetFrameSize()
		gw.SetPos(glfwToScreen(cnf.Position.X, w.scale)+left, glfwToScreen(cnf.Position.Y, w.scale)+top)
	}
	if cnf.Icon != old.Icon {
		if cnf.Icon != nil {
			gw.SetIcon([]image.Image{cnf.Icon})
		} else {
			gw.SetIcon(nil)
		}
	}
	if cnf.Cursor != old.Cursor || cnf.CursorVisible != old.CursorVisible {
		w.setCursor(cnf.Cursor, cnf.CursorVisible)
	}
	if cnf.Theme != old.Theme {
		t := cnf.Theme
		if t == system.ThemeSystem {
			t = glfwSystemTheme()
		}
		if t != w.theme {
			w.theme = t
			w.d.emit(w.id, system.ThemeEvent{Theme: t})
		}
	}
	if cnf.Fullscreen != old.Fullscreen {
		w.setFullscreen(cnf.Fullscreen, old.Fullscreen)
	}
	if cnf.Maximized != old.Maximized && cnf.Fullscreen.Mode == Windowed {
		if cnf.Maximized {
			gw.Maximize()
		} else {
			gw.Restore()
		}
	}
	if cnf.Visible != old.Visible {
		if cnf.Visible {
			gw.Show()
		} else {
			gw.Hide()
		}
	}
	if cnf.Minimized != old.Minimized {
		if cnf.Minimized {
			gw.Iconify()
		} else {
			gw.Restore()
		}
	}
	if cnf.Progress != old.Progress {
		w.d.log.Debug("glfw: taskbar progress is not supported")
	}
}

func (w *glfwWindow) setFullscreen(fs, old Fullscreen) {
	gw := w.w
	if fs.Mode == Windowed {
		r := w.restore
		gw.SetMonitor(nil, glfwToScreen(r.Min.X, w.scale), glfwToScreen(r.Min.Y, w.scale),
			glfwToScreen(int32(r.Size.Width), w.scale), glfwToScreen(int32(r.Size.Height), w.scale), glfw.DontCare)
		return
	}
	if old.Mode == Windowed {
		p, _ := w.InnerPosition()
		w.restore = unit.Rect{Min: p, Size: w.size}
	}
	m := w.d.lookup(fs.Monitor)
	if m == nil {
		m = w.w.GetMonitor()
	}
	if m == nil {
		m = glfw.GetPrimaryMonitor()
	}
	if m == nil {
		return
	}
	vm := m.GetVideoMode()
	width, height, rate := vm.Width, vm.Height, vm.RefreshRate
	if fs.Mode == Exclusive && fs.VideoMode.Size.Width != 0 {
		width, height = int(fs.VideoMode.Size.Width), int(fs.VideoMode.Size.Height)
		rate = int(fs.VideoMode.RefreshRate)
	}
	gw.SetMonitor(m, 0, 0, width, height, rate)
}

var glfwCursors = map[pointer.Cursor]glfw.StandardCursor{
	pointer.CursorText:             glfw.IBeamCursor,
	pointer.CursorVerticalText:     glfw.IBeamCursor,
	pointer.CursorCrosshair:        glfw.CrosshairCursor,
	pointer.CursorHand:             glfw.HandCursor,
	pointer.CursorGrab:             glfw.HandCursor,
	pointer.CursorEastResize:       glfw.HResizeCursor,
	pointer.CursorWestResize:       glfw.HResizeCursor,
	pointer.CursorEastWestResize:   glfw.HResizeCursor,
	pointer.CursorColResize:        glfw.HResizeCursor,
	pointer.CursorNorthResize:      glfw.VResizeCursor,
	pointer.CursorSouthResize:      glfw.VResizeCursor,
	pointer.CursorNorthSouthResize: glfw.VResizeCursor,
	pointer.CursorRowResize:        glfw.VResizeCursor,
}

func (w *glfwWindow) setCursor(c pointer.Cursor, visible bool) {
	if !visible {
		w.w.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
		return
	}
	if !w.grabbed {
		w.w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	shape, ok := glfwCursors[c]
	if !ok {
		shape = glfw.ArrowCursor
	}
	cur, ok := w.d.cursors[shape]
	if !ok {
		cur = glfw.CreateStandardCursor(shape)
		w.d.cursors[shape] = cur
	}
	w.w.SetCursor(cur)
}

func (w *glfwWindow) InnerSize() unit.PhysicalSize {
	return w.size
}

func (w *glfwWindow) OuterSize() unit.PhysicalSize {
	left, top, right, bottom := w.w.GetFrameSize()
	return unit.PhysicalSize{
		Width:  w.size.Width + uint32(glfwFromScreen(left+right, w.scale)),
		Height: w.size.Height + uint32(glfwFromScreen(top+bottom, w.scale)),
	}
}

func (w *glfwWindow) InnerPosition() (unit.PhysicalPosition, error) {
	x, y := w.w.GetPos()
	return unit.PhysicalPosition{X: glfwFromScreen(x, w.scale), Y: glfwFromScreen(y, w.scale)}, nil
}

func (w *glfwWindow) OuterPosition() (unit.PhysicalPosition, error) {
	x, y := w.w.GetPos()
	left, top, _, _ := w.w.GetFrameSize()
	return unit.PhysicalPosition{X: glfwFromScreen(x-left, w.scale), Y: glfwFromScreen(y-top, w.scale)}, nil
}

func (w *glfwWindow) ScaleFactor() float64 {
	return w.scale
}

func (w *glfwWindow) Theme() system.Theme {
	return w.theme
}

func (w *glfwWindow) Focus() {
	if w.cnf.Visible {
		w.w.Focus()
	}
}

// Drag is not supported by GLFW; interactive moves require native
// window manager integration.
func (w *glfwWindow) Drag() error {
	if !w.d.router.Pressed(w.id, pointer.ButtonLeft) {
		return nil
	}
	return ErrUnsupported
}

func (w *glfwWindow) SetCursorGrab(grab bool) error {
	w.grabbed = grab
	if grab {
		w.w.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.w.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		w.setCursor(w.cnf.Cursor, w.cnf.CursorVisible)
	}
	return nil
}

func (w *glfwWindow) SetCursorPosition(p unit.PhysicalPosition) error {
	x, y := float64(p.X), float64(p.Y)
	if runtime.GOOS == "darwin" {
		x, y = x/w.scale, y/w.scale
	}
	w.w.SetCursorPos(x, y)
	return nil
}

func (w *glfwWindow) SetIMEPosition(p unit.PhysicalPosition) {}

func (w *glfwWindow) SetBadgeCount(count int64, desktopFilename string) error {
	return ErrUnsupported
}

func (w *glfwWindow) SetBadgeLabel(label string) error {
	return ErrUnsupported
}

func (w *glfwWindow) SetOverlayIcon(icon *image.NRGBA) error {
	return ErrUnsupported
}

func (w *glfwWindow) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	delete(w.d.windows, w.w)
	w.d.router.Forget(w.id)
	w.w.Destroy()
}

// glfwModifierKeys are the modifiers changed by each modifier key.
var glfwModifierKeys = map[key.Code]key.Modifiers{
	key.CodeShiftLeft:    key.ModShift,
	key.CodeShiftRight:   key.ModShift,
	key.CodeControlLeft:  key.ModCtrl,
	key.CodeControlRight: key.ModCtrl,
	key.CodeAltLeft:      key.ModAlt,
	key.CodeAltRight:     key.ModAlt,
	key.CodeSuperLeft:    key.ModSuper,
	key.CodeSuperRight:   key.ModSuper,
}

var glfwNames = map[key.Code]key.Name{
	key.CodeArrowLeft:    key.NameArrowLeft,
	key.CodeArrowRight:   key.NameArrowRight,
	key.CodeArrowUp:      key.NameArrowUp,
	key.CodeArrowDown:    key.NameArrowDown,
	key.CodeEnter:        key.NameEnter,
	key.CodeNumpadEnter:  key.NameEnter,
	key.CodeEscape:       key.NameEscape,
	key.CodeHome:         key.NameHome,
	key.CodeEnd:          key.NameEnd,
	key.CodeBackspace:    key.NameBackspace,
	key.CodeDelete:       key.NameDelete,
	key.CodeInsert:       key.NameInsert,
	key.CodePageUp:       key.NamePageUp,
	key.CodePageDown:     key.NamePageDown,
	key.CodeTab:          key.NameTab,
	key.CodeSpace:        key.NameSpace,
	key.CodeControlLeft:  key.NameControl,
	key.CodeControlRight: key.NameControl,
	key.CodeShiftLeft:    key.NameShift,
	key.CodeShiftRight:   key.NameShift,
	key.CodeAltLeft:      key.NameAlt,
	key.CodeAltRight:     key.NameAlt,
	key.CodeSuperLeft:    key.NameSuper,
	key.CodeSuperRight:   key.NameSuper,
	key.CodeCapsLock:     key.NameCapsLock,
	key.CodeNumLock:      key.NameNumLock,
	key.CodeScrollLock:   key.NameScrollLock,
	key.CodeContextMenu:  key.NameContextMenu,
	key.CodePrintScreen:  key.NamePrintScreen,
	key.CodePause:        key.NamePause,
	key.CodeF1:           key.NameF1,
	key.CodeF2:           key.NameF2,
	key.CodeF3:           key.NameF3,
	key.CodeF4:           key.NameF4,
	key.CodeF5:           key.NameF5,
	key.CodeF6:           key.NameF6,
	key.CodeF7:           key.NameF7,
	key.CodeF8:           key.NameF8,
	key.CodeF9:           key.NameF9,
	key.CodeF10:          key.NameF10,
	key.CodeF11:          key.NameF11,
	key.CodeF12:          key.NameF12,
}

var glfwCodes = map[glfw.Key]key.Code{
	glfw.KeyGraveAccent:  key.CodeBackquote,
	glfw.KeyBackslash:    key.CodeBackslash,
	glfw.KeyLeftBracket:  key.CodeBracketLeft,
	glfw.KeyRightBracket: key.CodeBracketRight,
	glfw.KeyComma:        key.CodeComma,
	glfw.Key0:            key.CodeDigit0,
	glfw.Key1:            key.CodeDigit1,
	glfw.Key2:            key.CodeDigit2,
	glfw.Key3:            key.CodeDigit3,
	glfw.Key4:            key.CodeDigit4,
	glfw.Key5:            key.CodeDigit5,
	glfw.Key6:            key.CodeDigit6,
	glfw.Key7:            key.CodeDigit7,
	glfw.Key8:            key.CodeDigit8,
	glfw.Key9:            key.CodeDigit9,
	glfw.KeyEqual:        key.CodeEqual,
	glfw.KeyA:            key.CodeKeyA,
	glfw.KeyB:            key.CodeKeyB,
	glfw.KeyC:            key.CodeKeyC,
	glfw.KeyD:            key.CodeKeyD,
	glfw.KeyE:            key.CodeKeyE,
	glfw.KeyF:            key.CodeKeyF,
	glfw.KeyG:            key.CodeKeyG,
	glfw.KeyH:            key.CodeKeyH,
	glfw.KeyI:            key.CodeKeyI,
	glfw.KeyJ:            key.CodeKeyJ,
	glfw.KeyK:            key.CodeKeyK,
	glfw.KeyL:            key.CodeKeyL,
	glfw.KeyM:            key.CodeKeyM,
	glfw.KeyN:            key.CodeKeyN,
	glfw.KeyO:            key.CodeKeyO,
	glfw.KeyP:            key.CodeKeyP,
	glfw.KeyQ:            key.CodeKeyQ,
	glfw.KeyR:            key.CodeKeyR,
	glfw.KeyS:            key.CodeKeyS,
	glfw.KeyT:            key.CodeKeyT,
	glfw.KeyU:            key.CodeKeyU,
	glfw.KeyV:            key.CodeKeyV,
	glfw.KeyW:            key.CodeKeyW,
	glfw.KeyX:            key.CodeKeyX,
	glfw.KeyY:            key.CodeKeyY,
	glfw.KeyZ:            key.CodeKeyZ,
	glfw.KeyMinus:        key.CodeMinus,
	glfw.KeyPeriod:       key.CodePeriod,
	glfw.KeyApostrophe:   key.CodeQuote,
	glfw.KeySemicolon:    key.CodeSemicolon,
	glfw.KeySlash:        key.CodeSlash,
	glfw.KeyLeftAlt:      key.CodeAltLeft,
	glfw.KeyRightAlt:     key.CodeAltRight,
	glfw.KeyBackspace:    key.CodeBackspace,
	glfw.KeyCapsLock:     key.CodeCapsLock,
	glfw.KeyMenu:         key.CodeContextMenu,
	glfw.KeyLeftControl:  key.CodeControlLeft,
	glfw.KeyRightControl: key.CodeControlRight,
	glfw.KeyEnter:        key.CodeEnter,
	glfw.KeyLeftSuper:    key.CodeSuperLeft,
	glfw.KeyRightSuper:   key.CodeSuperRight,
	glfw.KeyLeftShift:    key.CodeShiftLeft,
	glfw.KeyRightShift:   key.CodeShiftRight,
	glfw.KeySpace:        key.CodeSpace,
	glfw.KeyTab:          key.CodeTab,
	glfw.KeyDelete:       key.CodeDelete,
	glfw.KeyEnd:          key.CodeEnd,
	glfw.KeyHome:         key.CodeHome,
	glfw.KeyInsert:       key.CodeInsert,
	glfw.KeyPageDown:     key.CodePageDown,
	glfw.KeyPageUp:       key.CodePageUp,
	glfw.KeyDown:         key.CodeArrowDown,
	glfw.KeyLeft:         key.CodeArrowLeft,
	glfw.KeyRight:        key.CodeArrowRight,
	glfw.KeyUp:           key.CodeArrowUp,
	glfw.KeyNumLock:      key.CodeNumLock,
	glfw.KeyKP0:          key.CodeNumpad0,
	glfw.KeyKP1:          key.CodeNumpad1,
	glfw.KeyKP2:          key.CodeNumpad2,
	glfw.KeyKP3:          key.CodeNumpad3,
	glfw.KeyKP4:          key.CodeNumpad4,
	glfw.KeyKP5:          key.CodeNumpad5,
	glfw.KeyKP6:          key.CodeNumpad6,
	glfw.KeyKP7:          key.CodeNumpad7,
	glfw.KeyKP8:          key.CodeNumpad8,
	glfw.KeyKP9:          key.CodeNumpad9,
	glfw.KeyKPAdd:        key.CodeNumpadAdd,
	glfw.KeyKPDecimal:    key.CodeNumpadDecimal,
	glfw.KeyKPDivide:     key.CodeNumpadDivide,
	glfw.KeyKPEnter:      key.CodeNumpadEnter,
	glfw.KeyKPMultiply:   key.CodeNumpadMultiply,
	glfw.KeyKPSubtract:   key.CodeNumpadSubtract,
	glfw.KeyEscape:       key.CodeEscape,
	glfw.KeyF1:           key.CodeF1,
	glfw.KeyF2:           key.CodeF2,
	glfw.KeyF3:           key.CodeF3,
	glfw.KeyF4:           key.CodeF4,
	glfw.KeyF5:           key.CodeF5,
	glfw.KeyF6:           key.CodeF6,
	glfw.KeyF7:           key.CodeF7,
	glfw.KeyF8:           key.CodeF8,
	glfw.KeyF9:           key.CodeF9,
	glfw.KeyF10:          key.CodeF10,
	glfw.KeyF11:          key.CodeF11,
	glfw.KeyF12:          key.CodeF12,
	glfw.KeyPrintScreen:  key.CodePrintScreen,
	glfw.KeyScrollLock:   key.CodeScrollLock,
	glfw.KeyPause:        key.CodePause,
}
