// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taoui.org/app/internal/wm"
	"taoui.org/io/event"
	"taoui.org/io/key"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/surface"
	"taoui.org/unit"
)

func TestWindowIDs(t *testing.T) {
	l, _ := newTestLoop(t)
	a := l.App()
	w1, err := a.NewWindowDefault()
	require.NoError(t, err)
	w2, err := a.NewWindowDefault()
	require.NoError(t, err)
	assert.Equal(t, event.WindowID(1), w1.ID())
	assert.Equal(t, event.WindowID(2), w2.ID())
	assert.Equal(t, []*Window{w1, w2}, a.Windows())
	got, ok := a.Window(w2.ID())
	require.True(t, ok)
	assert.Same(t, w2, got)
}

func TestWindowDefaults(t *testing.T) {
	l, d := newTestLoop(t)
	w, err := l.App().NewWindowDefault()
	require.NoError(t, err)
	assert.Equal(t, unit.PhysicalSize{Width: 800, Height: 600}, w.InnerSize())
	assert.Equal(t, unit.PhysicalSize{Width: 802, Height: 631}, w.OuterSize())
	assert.True(t, w.IsVisible())
	assert.True(t, w.IsDecorated())
	assert.True(t, w.IsResizable())
	assert.True(t, w.IsFocused())
	assert.Nil(t, w.Fullscreen())
	assert.Equal(t, system.ThemeLight, w.Theme())
	st, _ := d.State(w.ID())
	assert.Equal(t, ID, st.AppID)
	outer, err := w.OuterPosition()
	require.NoError(t, err)
	inner, err := w.InnerPosition()
	require.NoError(t, err)
	assert.Equal(t, unit.PhysicalPosition{X: outer.X + 1, Y: outer.Y + 30}, inner)
}

func TestWindowLogicalOptions(t *testing.T) {
	l, d := newTestLoop(t)
	d.SetMonitors([]wm.Monitor{hiDPIMonitor}, hiDPIMonitor.ID)
	w, err := l.App().NewWindow(
		Size(unit.LogicalSize{Width: 400, Height: 300}),
		Position(unit.LogicalPosition{X: 10, Y: 20}),
	)
	require.NoError(t, err)
	assert.Equal(t, unit.PhysicalSize{Width: 800, Height: 600}, w.InnerSize())
	pos, err := w.OuterPosition()
	require.NoError(t, err)
	assert.Equal(t, unit.PhysicalPosition{X: 20, Y: 40}, pos)
	assert.Equal(t, 2.0, w.ScaleFactor())
}

func TestSizeConstraints(t *testing.T) {
	l, _ := newTestLoop(t)
	a := l.App()
	_, err := a.NewWindow(
		MinSize(unit.PhysicalSize{Width: 500, Height: 100}),
		MaxSize(unit.PhysicalSize{Width: 400, Height: 400}),
	)
	require.ErrorIs(t, err, ErrInvalidConstraints)

	w, err := a.NewWindow(MaxSize(unit.PhysicalSize{Width: 640, Height: 480}))
	require.NoError(t, err)
	assert.Equal(t, unit.PhysicalSize{Width: 640, Height: 480}, w.InnerSize())

	w.SetInnerSize(unit.PhysicalSize{Width: 1000, Height: 200})
	assert.Equal(t, unit.PhysicalSize{Width: 640, Height: 200}, w.InnerSize())

	err = w.SetMinInnerSize(unit.PhysicalSize{Width: 700, Height: 100})
	require.ErrorIs(t, err, ErrInvalidConstraints)
	assert.Equal(t, unit.PhysicalSize{}, w.cnf.MinSize)

	require.NoError(t, w.SetMinInnerSize(unit.PhysicalSize{Width: 300, Height: 300}))
	assert.Equal(t, unit.PhysicalSize{Width: 640, Height: 300}, w.InnerSize())

	require.NoError(t, w.SetMaxInnerSize(nil))
	w.SetInnerSize(unit.PhysicalSize{Width: 1000, Height: 900})
	assert.Equal(t, unit.PhysicalSize{Width: 1000, Height: 900}, w.InnerSize())
}

func TestResizeEvents(t *testing.T) {
	l, d := newTestLoop(t)
	w, err := l.App().NewWindow(Resizable(true))
	require.NoError(t, err)
	require.NoError(t, d.UserResize(w.ID(), unit.PhysicalSize{Width: 300, Height: 200}))
	w.SetMaximized(true)
	r := &recorder{f: exitAfter(1)}
	require.NoError(t, l.Run(r))
	var sizes []unit.PhysicalSize
	for _, e := range r.events {
		if e, ok := e.(WindowEvent); ok {
			if e, ok := e.Event.(system.ResizeEvent); ok {
				sizes = append(sizes, e.Size)
			}
		}
	}
	assert.Equal(t, []unit.PhysicalSize{
		{Width: 300, Height: 200},
		{Width: 1920, Height: 1080},
	}, sizes)
}

func TestCloseRequest(t *testing.T) {
	tests := []struct {
		name   string
		cancel bool
	}{
		{"close", false},
		{"veto", true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l, d := newTestLoop(t)
			w, err := l.App().NewWindow()
			require.NoError(t, err)
			d.RequestClose(w.ID())
			exit := exitAfter(1)
			r := &recorder{}
			r.f = func(e event.Event, a *App) (ControlFlow, error) {
				if e, ok := e.(WindowEvent); ok {
					if e, ok := e.Event.(*system.CloseRequestEvent); ok {
						e.Cancel = test.cancel
					}
				}
				return exit(e, a)
			}
			require.NoError(t, l.Run(r))
			destroyed := fmt.Sprintf("%d:system.DestroyEvent", w.ID())
			if test.cancel {
				assert.NotContains(t, r.names(), destroyed)
			} else {
				assert.Contains(t, r.names(), destroyed)
			}
		})
	}
}

func TestCloseIdempotent(t *testing.T) {
	l, d := newTestLoop(t)
	a := l.App()
	w, err := a.NewWindow()
	require.NoError(t, err)
	other, err := a.NewWindow()
	require.NoError(t, err)
	r := &recorder{}
	iterations := 0
	r.f = func(e event.Event, a *App) (ControlFlow, error) {
		switch e.(type) {
		case MainEventsCleared:
			if iterations == 0 {
				w.Close()
				w.Close()
				d.Inject(w.ID(), system.FocusEvent{Focus: true})
				w.RequestRedraw()
			}
		case RedrawEventsCleared:
			iterations++
			if iterations == 2 {
				return Exit, nil
			}
		}
		return ControlFlow{}, nil
	}
	require.NoError(t, l.Run(r))
	var forW []event.Event
	for _, e := range r.events {
		switch e := e.(type) {
		case WindowEvent:
			if e.Window == w.ID() {
				forW = append(forW, e.Event)
			}
		case RedrawRequested:
			assert.NotEqual(t, w.ID(), e.Window)
		}
	}
	require.NotEmpty(t, forW)
	assert.Equal(t, event.Event(system.DestroyEvent{}), forW[len(forW)-1])
	destroys := 0
	for _, e := range forW {
		if _, ok := e.(system.DestroyEvent); ok {
			destroys++
		}
	}
	assert.Equal(t, 1, destroys)
	_, ok := a.Window(w.ID())
	assert.False(t, ok)
	assert.Equal(t, []*Window{other}, a.Windows())
	st, _ := d.State(w.ID())
	assert.True(t, st.Destroyed)
}

func TestRedrawOrder(t *testing.T) {
	l, _ := newTestLoop(t)
	a := l.App()
	w1, err := a.NewWindow()
	require.NoError(t, err)
	w2, err := a.NewWindow()
	require.NoError(t, err)
	redraws := func(r *recorder) []event.WindowID {
		var ids []event.WindowID
		for _, e := range r.events {
			if e, ok := e.(RedrawRequested); ok {
				ids = append(ids, e.Window)
			}
		}
		return ids
	}
	r := new(recorder)
	_, err = l.Pump(r)
	require.NoError(t, err)
	assert.Equal(t, []event.WindowID{w1.ID(), w2.ID()}, redraws(r))

	w2.RequestRedraw()
	w1.RequestRedraw()
	w2.RequestRedraw()
	r = new(recorder)
	_, err = l.Pump(r)
	require.NoError(t, err)
	assert.Equal(t, []event.WindowID{w2.ID(), w1.ID()}, redraws(r))

	// Requests made while redrawing are deferred to the next iteration.
	r = &recorder{f: func(e event.Event, a *App) (ControlFlow, error) {
		if e, ok := e.(RedrawRequested); ok {
			w, _ := a.Window(e.Window)
			w.RequestRedraw()
		}
		return ControlFlow{}, nil
	}}
	w1.RequestRedraw()
	_, err = l.Pump(r)
	require.NoError(t, err)
	assert.Equal(t, []event.WindowID{w1.ID()}, redraws(r))
	r.events = nil
	_, err = l.Pump(r)
	require.NoError(t, err)
	assert.Equal(t, []event.WindowID{w1.ID()}, redraws(r))
}

func TestExposeRedraw(t *testing.T) {
	l, d := newTestLoop(t)
	w, err := l.App().NewWindow()
	require.NoError(t, err)
	_, err = l.Pump(new(recorder))
	require.NoError(t, err)
	d.Expose(w.ID())
	d.Expose(w.ID())
	r := new(recorder)
	_, err = l.Pump(r)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"NewEvents(Poll)",
		"app.MainEventsCleared",
		fmt.Sprintf("Redraw(%d)", w.ID()),
		"app.RedrawEventsCleared",
	}, r.names())
}

func TestDeviceEventFilter(t *testing.T) {
	tests := []struct {
		filter  DeviceEventFilter
		focused bool
		exp     bool
	}{
		{FilterUnfocused, true, true},
		{FilterUnfocused, false, false},
		{FilterAlways, true, false},
		{FilterNever, false, true},
	}
	for _, test := range tests {
		t.Run(fmt.Sprintf("%v/focused=%v", test.filter, test.focused), func(t *testing.T) {
			l, d := newTestLoop(t)
			a := l.App()
			a.SetDeviceEventFilter(test.filter)
			w, err := a.NewWindow(Visible(test.focused))
			require.NoError(t, err)
			_, err = l.Pump(new(recorder))
			require.NoError(t, err)
			assert.Equal(t, test.focused, w.IsFocused())
			d.InjectDevice(7, pointer.MotionEvent{DX: 1, DY: 2})
			r := new(recorder)
			_, err = l.Pump(r)
			require.NoError(t, err)
			exp := DeviceEvent{Device: 7, Event: pointer.MotionEvent{DX: 1, DY: 2}}
			if test.exp {
				assert.Contains(t, r.events, event.Event(exp))
			} else {
				assert.NotContains(t, r.events, event.Event(exp))
			}
		})
	}
}

func TestModifiersOrdering(t *testing.T) {
	l, d := newTestLoop(t)
	w, err := l.App().NewWindow()
	require.NoError(t, err)
	_, err = l.Pump(new(recorder))
	require.NoError(t, err)
	shift := key.Named(key.NameShift)
	d.Key(w.ID(), 0, key.Event{Code: key.CodeShiftLeft, Key: shift, State: event.Pressed})
	d.Button(w.ID(), key.ModShift, pointer.ButtonLeft, event.Pressed)
	d.Key(w.ID(), key.ModShift, key.Event{Code: key.CodeShiftLeft, Key: shift, State: event.Released})
	d.Button(w.ID(), 0, pointer.ButtonLeft, event.Released)
	r := new(recorder)
	_, err = l.Pump(r)
	require.NoError(t, err)
	var got []event.Event
	for _, e := range r.events {
		if e, ok := e.(WindowEvent); ok {
			got = append(got, e.Event)
		}
	}
	exp := []event.Event{
		key.Event{Code: key.CodeShiftLeft, Key: shift, State: event.Pressed, Location: key.LocationLeft},
		key.ModifiersEvent{Modifiers: key.ModShift},
		pointer.ButtonEvent{Button: pointer.ButtonLeft, State: event.Pressed},
		key.Event{Code: key.CodeShiftLeft, Key: shift, State: event.Released, Location: key.LocationLeft},
		key.ModifiersEvent{},
		pointer.ButtonEvent{Button: pointer.ButtonLeft, State: event.Released},
	}
	assert.Equal(t, exp, got)
}

func TestDragWindow(t *testing.T) {
	l, d := newTestLoop(t)
	w, err := l.App().NewWindow()
	require.NoError(t, err)
	require.NoError(t, w.DragWindow())
	st, _ := d.State(w.ID())
	assert.Equal(t, 0, st.Drags)
	d.Button(w.ID(), 0, pointer.ButtonLeft, event.Pressed)
	require.NoError(t, w.DragWindow())
	st, _ = d.State(w.ID())
	assert.Equal(t, 1, st.Drags)
}

func TestFullscreen(t *testing.T) {
	l, d := newTestLoop(t)
	a := l.App()
	w, err := a.NewWindow(Position(unit.PhysicalPosition{X: 100, Y: 100}))
	require.NoError(t, err)
	mon, ok := a.PrimaryMonitor()
	require.True(t, ok)
	modes, err := mon.VideoModes()
	require.NoError(t, err)
	best, ok := BestVideoMode(modes)
	require.True(t, ok)

	w.SetFullscreen(Exclusive{Mode: best})
	assert.Equal(t, Exclusive{Mode: best}, w.Fullscreen())
	assert.Equal(t, mon.Size(), w.InnerSize())
	assert.Equal(t, w.InnerSize(), w.OuterSize())

	w.SetFullscreen(nil)
	assert.Equal(t, unit.PhysicalSize{Width: 800, Height: 600}, w.InnerSize())
	pos, err := w.OuterPosition()
	require.NoError(t, err)
	assert.Equal(t, unit.PhysicalPosition{X: 100, Y: 100}, pos)

	w.SetFullscreen(Borderless{})
	st, _ := d.State(w.ID())
	assert.Equal(t, mon.Size(), st.Size)
}

func TestSettersReachDriver(t *testing.T) {
	l, d := newTestLoop(t)
	w, err := l.App().NewWindow(ContentProtected(true), AlwaysOnBottom(true))
	require.NoError(t, err)
	w.SetTitle("renamed")
	w.SetAlwaysOnTop(true)
	w.SetCursorIcon(pointer.CursorText)
	w.SetCursorVisible(false)
	w.SetClosable(false)
	w.SetTheme(system.ThemeDark)
	require.NoError(t, w.SetCursorGrab(true))
	w.SetIMEPosition(unit.PhysicalPosition{X: 5, Y: 6})
	require.NoError(t, w.SetProgressBar(ProgressBar{Progress: 40, State: ProgressNormal}))
	require.NoError(t, w.SetProgressBar(ProgressBar{Progress: NoProgress, State: ProgressPaused}))
	require.ErrorIs(t, w.SetProgressBar(ProgressBar{Progress: 101}), ErrInvalidProgress)
	require.NoError(t, w.SetBadgeCount(4, ""))
	assert.ErrorIs(t, w.SetOverlayIcon(nil), ErrUnsupported)

	st, _ := d.State(w.ID())
	assert.Equal(t, "renamed", st.Title)
	assert.True(t, st.AlwaysOnTop)
	assert.False(t, st.AlwaysOnBottom)
	assert.Equal(t, pointer.CursorText, st.Cursor)
	assert.False(t, st.CursorVisible)
	assert.False(t, st.Closable)
	assert.Equal(t, system.ThemeDark, st.Theme)
	assert.True(t, st.Grabbed)
	assert.True(t, st.Protected)
	assert.Equal(t, unit.PhysicalPosition{X: 5, Y: 6}, st.IME)
	assert.Equal(t, 40, st.Progress.Value)
	assert.Equal(t, uint8(ProgressPaused), st.Progress.State)
	count, _ := d.Badge()
	assert.Equal(t, int64(4), count)
	assert.Equal(t, system.ThemeDark, w.Theme())
}

func TestSurfaceHandle(t *testing.T) {
	l, _ := newTestLoop(t)
	w, err := l.App().NewWindow()
	require.NoError(t, err)
	h, err := w.RawHandle()
	require.NoError(t, err)
	assert.Equal(t, surface.Headless{ID: uint64(w.ID())}, h)
	_, err = w.SurfaceHandle(surface.Vulkan)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestMinimizeLosesFocus(t *testing.T) {
	l, _ := newTestLoop(t)
	w, err := l.App().NewWindow()
	require.NoError(t, err)
	w.SetMinimized(true)
	r := new(recorder)
	_, err = l.Pump(r)
	require.NoError(t, err)
	assert.True(t, w.IsMinimized())
	assert.False(t, w.IsFocused())
	assert.Contains(t, r.events, event.Event(WindowEvent{Window: w.ID(), Event: system.VisibilityEvent{Minimized: true}}))
}

func TestCloseOneOfTwoWindows(t *testing.T) {
	l, d := newTestLoop(t)
	a := l.App()
	first, err := a.NewWindow()
	require.NoError(t, err)
	second, err := a.NewWindow()
	require.NoError(t, err)
	d.RequestClose(first.ID())
	var after []event.Event
	firstGone := false
	r := &recorder{}
	r.f = func(e event.Event, a *App) (ControlFlow, error) {
		we, ok := e.(WindowEvent)
		if !ok {
			return Wait, nil
		}
		if firstGone && we.Window == second.ID() {
			after = append(after, we.Event)
		}
		switch we.Event.(type) {
		case system.DestroyEvent:
			if we.Window == first.ID() {
				firstGone = true
				if err := d.UserResize(second.ID(), unit.PhysicalSize{Width: 500, Height: 400}); err != nil {
					return ControlFlow{}, err
				}
			}
			if len(a.Windows()) == 0 {
				return Exit, nil
			}
		case system.ResizeEvent:
			if firstGone && we.Window == second.ID() {
				d.RequestClose(second.ID())
			}
		}
		return Wait, nil
	}
	require.NoError(t, l.Run(r))
	require.True(t, firstGone)
	assert.Contains(t, after, event.Event(system.ResizeEvent{Size: unit.PhysicalSize{Width: 500, Height: 400}}))
	require.NotEmpty(t, after)
	assert.Equal(t, event.Event(system.DestroyEvent{}), after[len(after)-1])
	// The loop exits on the last destroy, not the first.
	names := r.names()
	destroys := 0
	for i, n := range names {
		if strings.HasSuffix(n, ":system.DestroyEvent") {
			destroys++
			if destroys == 1 {
				assert.NotEqual(t, "app.LoopDestroyed", names[i+1])
			}
		}
	}
	assert.Equal(t, 2, destroys)
	assert.Equal(t, "app.LoopDestroyed", names[len(names)-1])
}

func TestBadgeAfterClose(t *testing.T) {
	l, d := newTestLoop(t)
	w, err := l.App().NewWindow()
	require.NoError(t, err)
	w.Close()
	assert.NoError(t, w.SetBadgeCount(7, ""))
	assert.NoError(t, w.SetBadgeLabel("new"))
	assert.NoError(t, w.SetOverlayIcon(nil))
	count, label := d.Badge()
	assert.Zero(t, count)
	assert.Empty(t, label)
}
