// SPDX-License-Identifier: Unlicense OR MIT

//go:build ((linux && !android) || freebsd || openbsd) && !headless

package wm

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xcursor"
	"github.com/BurntSushi/xgbutil/xprop"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/image/draw"
	"golang.org/x/sys/unix"

	"taoui.org/io/event"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/surface"
	"taoui.org/unit"
)

type x11Window struct {
	d      *x11Display
	id     event.WindowID
	xw     xproto.Window
	visual xproto.Visualid

	// cnf is the last applied configuration.
	cnf       Config
	size      unit.PhysicalSize
	pos       unit.PhysicalPosition
	theme     system.Theme
	states    []string
	mapped    bool
	focused   bool
	minimized bool
	grabbed   bool
	destroyed bool
}

// Motif window manager hints, understood by most window managers
// for removing decorations and window functions.
const (
	mwmHintsFunctions   = 1 << 0
	mwmHintsDecorations = 1 << 1

	mwmFuncResize   = 1 << 1
	mwmFuncMove     = 1 << 2
	mwmFuncMinimize = 1 << 3
	mwmFuncMaximize = 1 << 4
	mwmFuncClose    = 1 << 5
)

const (
	netStateAbove      = "_NET_WM_STATE_ABOVE"
	netStateBelow      = "_NET_WM_STATE_BELOW"
	netStateFullscreen = "_NET_WM_STATE_FULLSCREEN"
	netStateHidden     = "_NET_WM_STATE_HIDDEN"
	netStateMaxVert    = "_NET_WM_STATE_MAXIMIZED_VERT"
	netStateMaxHorz    = "_NET_WM_STATE_MAXIMIZED_HORZ"
)

// x11MaxIconSize bounds the icon data sent to the window manager.
const x11MaxIconSize = 256

const x11EventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskExposure |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskFocusChange |
	xproto.EventMaskPropertyChange

var x11Cursors = map[pointer.Cursor]uint16{
	pointer.CursorDefault:                  xcursor.LeftPtr,
	pointer.CursorCrosshair:                xcursor.Crosshair,
	pointer.CursorHand:                     xcursor.Hand2,
	pointer.CursorArrow:                    xcursor.LeftPtr,
	pointer.CursorMove:                     xcursor.Fleur,
	pointer.CursorText:                     xcursor.XTerm,
	pointer.CursorWait:                     xcursor.Watch,
	pointer.CursorHelp:                     xcursor.QuestionArrow,
	pointer.CursorProgress:                 xcursor.Watch,
	pointer.CursorNotAllowed:               xcursor.XCursor,
	pointer.CursorContextMenu:              xcursor.LeftPtr,
	pointer.CursorCell:                     xcursor.Plus,
	pointer.CursorVerticalText:             xcursor.XTerm,
	pointer.CursorAlias:                    xcursor.LeftPtr,
	pointer.CursorCopy:                     xcursor.LeftPtr,
	pointer.CursorNoDrop:                   xcursor.Circle,
	pointer.CursorGrab:                     xcursor.Hand1,
	pointer.CursorGrabbing:                 xcursor.Fleur,
	pointer.CursorAllScroll:                xcursor.Fleur,
	pointer.CursorZoomIn:                   xcursor.Plus,
	pointer.CursorZoomOut:                  xcursor.Plus,
	pointer.CursorEastResize:               xcursor.RightSide,
	pointer.CursorNorthResize:              xcursor.TopSide,
	pointer.CursorNorthEastResize:          xcursor.TopRightCorner,
	pointer.CursorNorthWestResize:          xcursor.TopLeftCorner,
	pointer.CursorSouthResize:              xcursor.BottomSide,
	pointer.CursorSouthEastResize:          xcursor.BottomRightCorner,
	pointer.CursorSouthWestResize:          xcursor.BottomLeftCorner,
	pointer.CursorWestResize:               xcursor.LeftSide,
	pointer.CursorEastWestResize:           xcursor.SBHDoubleArrow,
	pointer.CursorNorthSouthResize:         xcursor.SBVDoubleArrow,
	pointer.CursorNorthEastSouthWestResize: xcursor.Sizing,
	pointer.CursorNorthWestSouthEastResize: xcursor.Sizing,
	pointer.CursorColResize:                xcursor.SBHDoubleArrow,
	pointer.CursorRowResize:                xcursor.SBVDoubleArrow,
}

func (d *x11Display) NewWindow(id event.WindowID, cnf *Config) (Window, error) {
	if d.closed || d.lost {
		return nil, errX11Closed
	}
	xw, err := xproto.NewWindowId(d.conn)
	if err != nil {
		return nil, fmt.Errorf("x11: window id: %w", err)
	}
	size := cnf.Size
	if size.Width == 0 || size.Height == 0 {
		size = unit.PhysicalSize{Width: 800, Height: 600}
	}
	size = cnf.ClampSize(size)
	var pos unit.PhysicalPosition
	if cnf.Position != nil {
		pos = *cnf.Position
	}
	s := d.xu.Screen()
	depth, visual := s.RootDepth, s.RootVisual
	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{s.BlackPixel, x11EventMask}
	if cnf.Transparent {
		if vdepth, v, ok := d.argbVisual(); ok {
			cmap, err := xproto.NewColormapId(d.conn)
			if err == nil {
				xproto.CreateColormap(d.conn, xproto.ColormapAllocNone, cmap, d.root, v)
				depth, visual = vdepth, v
				mask = xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask | xproto.CwColormap
				values = []uint32{0, 0, x11EventMask, uint32(cmap)}
			}
		} else {
			d.log.Debug("x11: no 32-bit visual for a transparent window")
		}
	}
	err = xproto.CreateWindowChecked(d.conn, depth, xw, d.root,
		int16(pos.X), int16(pos.Y), uint16(size.Width), uint16(size.Height), 0,
		xproto.WindowClassInputOutput, visual, mask, values).Check()
	if err != nil {
		return nil, fmt.Errorf("x11: create window: %w", err)
	}
	w := &x11Window{
		d:      d,
		id:     id,
		xw:     xw,
		visual: visual,
		size:   size,
		pos:    pos,
		theme:  d.theme,
	}
	d.windows[xw] = w
	w.setupProperties(cnf)
	// The state of a new X11 window.
	w.cnf = Config{
		Size:          size,
		Position:      cnf.Position,
		Decorated:     true,
		Resizable:     true,
		Closable:      true,
		Minimizable:   true,
		Maximizable:   true,
		CursorVisible: true,
	}
	w.apply(cnf, true)
	d.log.Debug("x11: window created",
		zap.Uint64("window", uint64(id)),
		zap.Uint32("xid", uint32(xw)))
	return w, nil
}

// argbVisual finds a 32-bit TrueColor visual for transparent windows.
func (d *x11Display) argbVisual() (byte, xproto.Visualid, bool) {
	for _, dep := range d.xu.Screen().AllowedDepths {
		if dep.Depth != 32 {
			continue
		}
		for _, v := range dep.Visuals {
			if v.Class == xproto.VisualClassTrueColor {
				return dep.Depth, v.VisualId, true
			}
		}
	}
	return 0, 0, false
}

// setupProperties sets the properties that never change.
func (w *x11Window) setupProperties(cnf *Config) {
	xu := w.d.xu
	if cnf.AppID != "" {
		icccm.WmClassSet(xu, w.xw, &icccm.WmClass{Instance: cnf.AppID, Class: cnf.AppID})
	}
	icccm.WmProtocolsSet(xu, w.xw, []string{"WM_DELETE_WINDOW", "_NET_WM_PING"})
	ewmh.WmWindowTypeSet(xu, w.xw, []string{"_NET_WM_WINDOW_TYPE_NORMAL"})
	ewmh.WmPidSet(xu, w.xw, uint(unix.Getpid()))
	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		icccm.WmClientMachineSet(xu, w.xw, unix.ByteSliceToString(uts.Nodename[:]))
	}
}

func (w *x11Window) Configure(cnf *Config) {
	if w.destroyed {
		return
	}
	w.apply(cnf, false)
}

// apply makes the window match cnf. Properties are set before the
// window is mapped, states after.
func (w *x11Window) apply(cnf *Config, create bool) {
	old := w.cnf
	w.cnf = *cnf
	w.cnf.Size = w.size
	d, xu := w.d, w.d.xu
	if cnf.Title != old.Title || create {
		ewmh.WmNameSet(xu, w.xw, cnf.Title)
		icccm.WmNameSet(xu, w.xw, cnf.Title)
	}
	if cnf.Icon != old.Icon {
		w.setIcon(cnf.Icon)
	}
	if cnf.Parent != old.Parent {
		if p, ok := cnf.Parent.(*x11Window); ok {
			icccm.WmTransientForSet(xu, w.xw, p.xw)
		} else {
			w.deleteProperty("WM_TRANSIENT_FOR")
		}
	}
	if cnf.Decorated != old.Decorated || cnf.Resizable != old.Resizable ||
		cnf.Closable != old.Closable || cnf.Minimizable != old.Minimizable ||
		cnf.Maximizable != old.Maximizable {
		w.setMotifHints(cnf)
	}
	sizeChanged := cnf.Size != old.Size && cnf.Size.Width != 0 && cnf.Size.Height != 0
	if create || sizeChanged || cnf.MinSize != old.MinSize || cnf.MaxSize != old.MaxSize ||
		cnf.Resizable != old.Resizable {
		size := w.size
		if sizeChanged {
			size = cnf.ClampSize(cnf.Size)
		}
		w.setNormalHints(cnf, size)
		if size != w.size {
			xproto.ConfigureWindow(d.conn, w.xw,
				xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
				[]uint32{size.Width, size.Height})
		}
	}
	if cnf.Position != nil && (old.Position == nil || *cnf.Position != *old.Position) && !create {
		xproto.ConfigureWindow(d.conn, w.xw,
			xproto.ConfigWindowX|xproto.ConfigWindowY,
			[]uint32{uint32(cnf.Position.X), uint32(cnf.Position.Y)})
	}
	if cnf.Theme != old.Theme || create {
		w.setTheme(cnf.Theme)
	}
	if cnf.Cursor != old.Cursor || cnf.CursorVisible != old.CursorVisible {
		w.setCursor(cnf.Cursor, cnf.CursorVisible)
	}
	if cnf.Progress != old.Progress {
		d.log.Debug("x11: taskbar progress is not supported")
	}
	if cnf.AlwaysOnTop != old.AlwaysOnTop {
		w.setState(cnf.AlwaysOnTop, netStateAbove, "")
	}
	if cnf.AlwaysOnBottom != old.AlwaysOnBottom {
		w.setState(cnf.AlwaysOnBottom, netStateBelow, "")
	}
	if cnf.Maximized != old.Maximized {
		w.setState(cnf.Maximized, netStateMaxVert, netStateMaxHorz)
	}
	if cnf.Fullscreen != old.Fullscreen {
		w.setFullscreen(cnf.Fullscreen)
	}
	if cnf.Minimized && !old.Minimized && !w.mapped {
		icccm.WmHintsSet(xu, w.xw, &icccm.Hints{
			Flags:        icccm.HintState,
			InitialState: icccm.StateIconic,
		})
	}
	if cnf.Visible != old.Visible {
		if cnf.Visible {
			xproto.MapWindow(d.conn, w.xw)
		} else {
			xproto.UnmapWindow(d.conn, w.xw)
		}
		w.mapped = cnf.Visible
		if !cnf.Visible && w.focused {
			w.focused = false
			d.emit(w.id, system.FocusEvent{Focus: false})
		}
	}
	if cnf.Minimized != old.Minimized && w.mapped && !create {
		if cnf.Minimized {
			ewmh.ClientEvent(xu, w.xw, "WM_CHANGE_STATE", icccm.StateIconic)
		} else {
			xproto.MapWindow(d.conn, w.xw)
			ewmh.ActiveWindowReqExtra(xu, w.xw, 1, xu.TimeGet(), 0)
		}
	}
}

func (w *x11Window) deleteProperty(name string) {
	if atom, err := xprop.Atm(w.d.xu, name); err == nil {
		xproto.DeleteProperty(w.d.conn, w.xw, atom)
	}
}

func (w *x11Window) setMotifHints(cnf *Config) {
	funcs := uint(mwmFuncMove)
	if cnf.Resizable {
		funcs |= mwmFuncResize
	}
	if cnf.Minimizable {
		funcs |= mwmFuncMinimize
	}
	if cnf.Maximizable && cnf.Resizable {
		funcs |= mwmFuncMaximize
	}
	if cnf.Closable {
		funcs |= mwmFuncClose
	}
	var decorations uint
	if cnf.Decorated {
		decorations = 1
	}
	xprop.ChangeProp32(w.d.xu, w.xw, "_MOTIF_WM_HINTS", "_MOTIF_WM_HINTS",
		mwmHintsFunctions|mwmHintsDecorations, funcs, decorations, 0, 0)
}

func (w *x11Window) setNormalHints(cnf *Config, size unit.PhysicalSize) {
	nh := &icccm.NormalHints{
		Width:  uint(size.Width),
		Height: uint(size.Height),
	}
	minSize, maxSize := cnf.MinSize, cnf.MaxSize
	if !cnf.Resizable {
		minSize, maxSize = size, size
	}
	if minSize != (unit.PhysicalSize{}) {
		nh.Flags |= icccm.SizeHintPMinSize
		nh.MinWidth, nh.MinHeight = uint(minSize.Width), uint(minSize.Height)
	}
	if maxSize != (unit.PhysicalSize{}) {
		nh.Flags |= icccm.SizeHintPMaxSize
		nh.MaxWidth, nh.MaxHeight = uint(maxSize.Width), uint(maxSize.Height)
		if nh.MaxWidth == 0 {
			nh.MaxWidth = 1<<15 - 1
		}
		if nh.MaxHeight == 0 {
			nh.MaxHeight = 1<<15 - 1
		}
	}
	if cnf.Position != nil {
		nh.Flags |= icccm.SizeHintUSPosition
		nh.X, nh.Y = int(cnf.Position.X), int(cnf.Position.Y)
	}
	icccm.WmNormalHintsSet(w.d.xu, w.xw, nh)
}

// setState adds or removes _NET_WM_STATE atoms. Unmapped windows
// carry their initial state in the property itself.
func (w *x11Window) setState(on bool, first, second string) {
	atoms := []string{first}
	if second != "" {
		atoms = append(atoms, second)
	}
	for _, a := range atoms {
		i := slices.Index(w.states, a)
		switch {
		case on && i < 0:
			w.states = append(w.states, a)
		case !on && i >= 0:
			w.states = slices.Delete(w.states, i, i+1)
		}
	}
	if !w.mapped {
		ewmh.WmStateSet(w.d.xu, w.xw, w.states)
		return
	}
	action := ewmh.StateRemove
	if on {
		action = ewmh.StateAdd
	}
	ewmh.WmStateReqExtra(w.d.xu, w.xw, action, first, second, 1)
}

// setFullscreen implements both fullscreen modes as a borderless window
// covering the monitor; display modes are left unchanged.
func (w *x11Window) setFullscreen(fs Fullscreen) {
	if fs.Mode == Windowed {
		w.setState(false, netStateFullscreen, "")
		return
	}
	if fs.Mode == Exclusive {
		w.d.log.Debug("x11: exclusive fullscreen uses the current video mode")
	}
	if fs.Monitor != 0 {
		if m, ok := w.d.monitor(fs.Monitor); ok {
			xproto.ConfigureWindow(w.d.conn, w.xw,
				xproto.ConfigWindowX|xproto.ConfigWindowY,
				[]uint32{uint32(m.Position.X), uint32(m.Position.Y)})
		}
	}
	w.setState(true, netStateFullscreen, "")
}

func (w *x11Window) setTheme(t system.Theme) {
	effective := t
	if t == system.ThemeSystem {
		effective = w.d.theme
		w.deleteProperty("_GTK_THEME_VARIANT")
	} else {
		variant := "light"
		if t == system.ThemeDark {
			variant = "dark"
		}
		xprop.ChangeProp(w.d.xu, w.xw, 8, "_GTK_THEME_VARIANT", "UTF8_STRING", []byte(variant))
	}
	if effective != w.theme {
		w.theme = effective
		w.d.emit(w.id, system.ThemeEvent{Theme: effective})
	}
}

func (w *x11Window) setIcon(img *image.NRGBA) {
	if img == nil {
		w.deleteProperty("_NET_WM_ICON")
		return
	}
	b := img.Bounds()
	if b.Dx() > x11MaxIconSize || b.Dy() > x11MaxIconSize {
		scaled := image.NewNRGBA(image.Rect(0, 0, x11MaxIconSize, x11MaxIconSize))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, b, draw.Src, nil)
		img, b = scaled, scaled.Bounds()
	}
	data := make([]uint, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			data = append(data, uint(c.A)<<24|uint(c.R)<<16|uint(c.G)<<8|uint(c.B))
		}
	}
	ewmh.WmIconSet(w.d.xu, w.xw, []ewmh.WmIcon{{
		Width:  uint(b.Dx()),
		Height: uint(b.Dy()),
		Data:   data,
	}})
}

func (w *x11Window) setCursor(c pointer.Cursor, visible bool) {
	cur, err := w.d.cursor(c, visible)
	if err != nil {
		w.d.log.Debug("x11: cursor", zap.Stringer("cursor", c), zap.Error(err))
		return
	}
	xproto.ChangeWindowAttributes(w.d.conn, w.xw, xproto.CwCursor, []uint32{uint32(cur)})
}

func (d *x11Display) cursor(c pointer.Cursor, visible bool) (xproto.Cursor, error) {
	if !visible {
		return d.blankCursor()
	}
	if cur, ok := d.cursors[c]; ok {
		return cur, nil
	}
	shape, ok := x11Cursors[c]
	if !ok {
		shape = xcursor.LeftPtr
	}
	cur, err := xcursor.CreateCursor(d.xu, shape)
	if err != nil {
		return 0, err
	}
	d.cursors[c] = cur
	return cur, nil
}

// blankCursor creates an invisible cursor from an empty bitmap.
func (d *x11Display) blankCursor() (xproto.Cursor, error) {
	if d.blank != 0 {
		return d.blank, nil
	}
	pix, err := xproto.NewPixmapId(d.conn)
	if err != nil {
		return 0, err
	}
	cur, err := xproto.NewCursorId(d.conn)
	if err != nil {
		return 0, err
	}
	xproto.CreatePixmap(d.conn, 1, pix, xproto.Drawable(d.root), 1, 1)
	defer xproto.FreePixmap(d.conn, pix)
	err = xproto.CreateCursorChecked(d.conn, cur, pix, pix, 0, 0, 0, 0, 0, 0, 0, 0).Check()
	if err != nil {
		return 0, err
	}
	d.blank = cur
	return cur, nil
}

// configured handles a ConfigureNotify of the window.
func (w *x11Window) configured(size unit.PhysicalSize) {
	if size != w.size {
		w.size = size
		w.cnf.Size = size
		w.d.emit(w.id, system.ResizeEvent{Size: size})
	}
	if pos, err := w.OuterPosition(); err == nil && pos != w.pos {
		w.pos = pos
		w.d.emit(w.id, system.MoveEvent{Position: pos})
	}
}

// stateChanged tracks _NET_WM_STATE changes made by the window manager.
func (w *x11Window) stateChanged(states []string) {
	w.states = states
	hidden := slices.Contains(states, netStateHidden)
	if hidden != w.minimized {
		w.minimized = hidden
		w.cnf.Minimized = hidden
		w.d.emit(w.id, system.VisibilityEvent{Minimized: hidden})
	}
	w.cnf.Maximized = slices.Contains(states, netStateMaxVert) && slices.Contains(states, netStateMaxHorz)
}

func (w *x11Window) frameExtents() *ewmh.FrameExtents {
	if !w.cnf.Decorated {
		return &ewmh.FrameExtents{}
	}
	ext, err := ewmh.FrameExtentsGet(w.d.xu, w.xw)
	if err != nil {
		// Not reparented, or no EWMH window manager.
		return &ewmh.FrameExtents{}
	}
	return ext
}

func (w *x11Window) InnerSize() unit.PhysicalSize {
	return w.size
}

func (w *x11Window) OuterSize() unit.PhysicalSize {
	ext := w.frameExtents()
	return unit.PhysicalSize{
		Width:  w.size.Width + uint32(ext.Left+ext.Right),
		Height: w.size.Height + uint32(ext.Top+ext.Bottom),
	}
}

func (w *x11Window) InnerPosition() (unit.PhysicalPosition, error) {
	r, err := xproto.TranslateCoordinates(w.d.conn, w.xw, w.d.root, 0, 0).Reply()
	if err != nil {
		return unit.PhysicalPosition{}, fmt.Errorf("x11: translate coordinates: %w", err)
	}
	return unit.PhysicalPosition{X: int32(r.DstX), Y: int32(r.DstY)}, nil
}

func (w *x11Window) OuterPosition() (unit.PhysicalPosition, error) {
	p, err := w.InnerPosition()
	if err != nil {
		return p, err
	}
	ext := w.frameExtents()
	return unit.PhysicalPosition{X: p.X - int32(ext.Left), Y: p.Y - int32(ext.Top)}, nil
}

func (w *x11Window) ScaleFactor() float64 {
	return w.d.scale
}

func (w *x11Window) Theme() system.Theme {
	return w.theme
}

func (w *x11Window) Focus() {
	if !w.mapped {
		return
	}
	xu := w.d.xu
	ewmh.ActiveWindowReqExtra(xu, w.xw, 1, xu.TimeGet(), 0)
	xproto.ConfigureWindow(w.d.conn, w.xw, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
}

// Drag hands the pointer to the window manager for an interactive
// move. It is ignored unless the primary button is held.
func (w *x11Window) Drag() error {
	if !w.d.router.Pressed(w.id, pointer.ButtonLeft) {
		return nil
	}
	qp, err := xproto.QueryPointer(w.d.conn, w.d.root).Reply()
	if err != nil {
		return fmt.Errorf("x11: query pointer: %w", err)
	}
	xproto.UngrabPointer(w.d.conn, xproto.TimeCurrentTime)
	return ewmh.WmMoveresizeExtra(w.d.xu, w.xw, ewmh.Move, int(qp.RootX), int(qp.RootY), 1, 1)
}

func (w *x11Window) SetCursorGrab(grab bool) error {
	if !grab {
		if w.grabbed {
			xproto.UngrabPointer(w.d.conn, xproto.TimeCurrentTime)
			w.grabbed = false
		}
		return nil
	}
	const mask = xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskPointerMotion | xproto.EventMaskEnterWindow | xproto.EventMaskLeaveWindow
	r, err := xproto.GrabPointer(w.d.conn, true, w.xw, mask,
		xproto.GrabModeAsync, xproto.GrabModeAsync, w.xw, xproto.CursorNone,
		xproto.TimeCurrentTime).Reply()
	if err != nil {
		return fmt.Errorf("x11: grab pointer: %w", err)
	}
	if r.Status != xproto.GrabStatusSuccess {
		return fmt.Errorf("x11: grab pointer: status %d", r.Status)
	}
	w.grabbed = true
	return nil
}

func (w *x11Window) SetCursorPosition(p unit.PhysicalPosition) error {
	return xproto.WarpPointerChecked(w.d.conn, xproto.WindowNone, w.xw, 0, 0, 0, 0,
		int16(p.X), int16(p.Y)).Check()
}

// SetIMEPosition is a no-op: the driver does not implement an input
// method protocol.
func (w *x11Window) SetIMEPosition(p unit.PhysicalPosition) {}

func (w *x11Window) SetBadgeCount(count int64, desktopFilename string) error {
	return ErrUnsupported
}

func (w *x11Window) SetBadgeLabel(label string) error {
	return ErrUnsupported
}

func (w *x11Window) SetOverlayIcon(icon *image.NRGBA) error {
	return ErrUnsupported
}

func (w *x11Window) SetContentProtection(protect bool) error {
	if !protect {
		return nil
	}
	return ErrUnsupported
}

func (w *x11Window) RawHandle() (surface.Handle, error) {
	return surface.X11{
		Window:   uint32(w.xw),
		VisualID: uint32(w.visual),
		Screen:   w.d.conn.DefaultScreen,
	}, nil
}

// forget removes the window from the driver after the X server
// destroyed it.
func (w *x11Window) forget() {
	w.destroyed = true
	delete(w.d.windows, w.xw)
	w.d.router.Forget(w.id)
}

func (w *x11Window) Destroy() {
	if w.destroyed {
		return
	}
	if w.grabbed {
		xproto.UngrabPointer(w.d.conn, xproto.TimeCurrentTime)
	}
	w.forget()
	xproto.DestroyWindow(w.d.conn, w.xw)
}
