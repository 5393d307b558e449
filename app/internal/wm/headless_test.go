// SPDX-License-Identifier: Unlicense OR MIT

package wm

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"taoui.org/io/event"
	"taoui.org/io/key"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/surface"
	"taoui.org/unit"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Event(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) take() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	evs := r.events
	r.events = nil
	return evs
}

func newTestHeadless(t *testing.T) (*Headless, *recorder) {
	t.Helper()
	r := new(recorder)
	d, err := New("headless", r, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d.(*Headless), r
}

func visibleConfig() *Config {
	return &Config{
		Title:       "test",
		Size:        unit.PhysicalSize{Width: 640, Height: 480},
		Visible:     true,
		Decorated:   true,
		Resizable:   true,
		Closable:    true,
		Minimizable: true,
		Maximizable: true,
	}
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New("amiga", new(recorder), nil)
	assert.ErrorIs(t, err, ErrNoDriver)
}

func TestHeadlessWindowGeometry(t *testing.T) {
	d, r := newTestHeadless(t)
	cnf := visibleConfig()
	pos := unit.PhysicalPosition{X: 100, Y: 50}
	cnf.Position = &pos
	w, err := d.NewWindow(1, cnf)
	require.NoError(t, err)

	assert.Equal(t, []Event{{Window: 1, Event: system.FocusEvent{Focus: true}}}, r.take())
	assert.Equal(t, unit.PhysicalSize{Width: 640, Height: 480}, w.InnerSize())
	assert.Equal(t, unit.PhysicalSize{Width: 642, Height: 511}, w.OuterSize())
	outer, err := w.OuterPosition()
	require.NoError(t, err)
	assert.Equal(t, pos, outer)
	inner, err := w.InnerPosition()
	require.NoError(t, err)
	assert.Equal(t, unit.PhysicalPosition{X: 101, Y: 80}, inner)
	assert.Equal(t, 1.0, w.ScaleFactor())

	h, err := w.RawHandle()
	require.NoError(t, err)
	assert.Equal(t, surface.Headless{ID: 1}, h)
}

func TestHeadlessConfigureDiff(t *testing.T) {
	d, r := newTestHeadless(t)
	cnf := visibleConfig()
	w, err := d.NewWindow(1, cnf)
	require.NoError(t, err)
	r.take()

	next := *cnf
	next.Size = unit.PhysicalSize{Width: 2000, Height: 100}
	next.MaxSize = unit.PhysicalSize{Width: 1000}
	w.Configure(&next)
	assert.Equal(t, []Event{
		{Window: 1, Event: system.ResizeEvent{Size: unit.PhysicalSize{Width: 1000, Height: 100}}},
	}, r.take())

	// Reapplying the same configuration is a no-op.
	w.Configure(&next)
	assert.Empty(t, r.take())

	next.Theme = system.ThemeDark
	w.Configure(&next)
	assert.Equal(t, []Event{{Window: 1, Event: system.ThemeEvent{Theme: system.ThemeDark}}}, r.take())
	assert.Equal(t, system.ThemeDark, w.Theme())
}

func TestHeadlessFullscreenRestore(t *testing.T) {
	d, r := newTestHeadless(t)
	cnf := visibleConfig()
	pos := unit.PhysicalPosition{X: 10, Y: 20}
	cnf.Position = &pos
	w, err := d.NewWindow(1, cnf)
	require.NoError(t, err)
	r.take()

	fs := *cnf
	fs.Fullscreen = Fullscreen{Mode: Borderless}
	w.Configure(&fs)
	st, ok := d.State(1)
	require.True(t, ok)
	assert.Equal(t, unit.PhysicalSize{Width: 1920, Height: 1080}, st.Size)
	assert.Equal(t, unit.PhysicalPosition{}, st.Position)
	assert.Equal(t, unit.PhysicalSize{Width: 1920, Height: 1080}, w.OuterSize())

	w.Configure(cnf)
	st, _ = d.State(1)
	assert.Equal(t, unit.PhysicalSize{Width: 640, Height: 480}, st.Size)
	assert.Equal(t, pos, st.Position)
}

func TestHeadlessExclusiveVideoMode(t *testing.T) {
	d, _ := newTestHeadless(t)
	modes, err := d.VideoModes(headlessMonitor)
	require.NoError(t, err)
	require.Len(t, modes, 3)
	for _, m := range modes {
		assert.Equal(t, headlessMonitor, m.Monitor)
	}
	cnf := visibleConfig()
	cnf.Fullscreen = Fullscreen{Mode: Exclusive, VideoMode: modes[2]}
	_, err = d.NewWindow(1, cnf)
	require.NoError(t, err)
	st, _ := d.State(1)
	assert.Equal(t, modes[2].Size, st.Size)
	assert.Equal(t, Exclusive, st.Fullscreen.Mode)
}

func TestHeadlessMonitors(t *testing.T) {
	d, _ := newTestHeadless(t)
	left := Monitor{ID: 1, Name: "left", HasName: true, Size: unit.PhysicalSize{Width: 1000, Height: 1000}, ScaleFactor: 1}
	right := Monitor{ID: 2, Position: unit.PhysicalPosition{X: 1000}, Size: unit.PhysicalSize{Width: 1000, Height: 1000}, ScaleFactor: 2}
	d.SetMonitors([]Monitor{left, right}, 0)
	_, ok := d.PrimaryMonitor()
	assert.False(t, ok)

	cnf := visibleConfig()
	pos := unit.PhysicalPosition{X: 1200, Y: 100}
	cnf.Position = &pos
	w, err := d.NewWindow(1, cnf)
	require.NoError(t, err)
	assert.Equal(t, 2.0, w.ScaleFactor())

	_, err = d.VideoModes(3)
	assert.Error(t, err)
}

func TestHeadlessFocus(t *testing.T) {
	d, r := newTestHeadless(t)
	w1, err := d.NewWindow(1, visibleConfig())
	require.NoError(t, err)
	_, err = d.NewWindow(2, visibleConfig())
	require.NoError(t, err)
	assert.Equal(t, []Event{
		{Window: 1, Event: system.FocusEvent{Focus: true}},
		{Window: 1, Event: system.FocusEvent{Focus: false}},
		{Window: 2, Event: system.FocusEvent{Focus: true}},
	}, r.take())

	w1.Focus()
	st, _ := d.State(1)
	assert.True(t, st.Focused)
	r.take()

	hidden := visibleConfig()
	hidden.Visible = false
	w1.Configure(hidden)
	assert.Equal(t, []Event{{Window: 1, Event: system.FocusEvent{Focus: false}}}, r.take())
}

func TestHeadlessSystemTheme(t *testing.T) {
	d, r := newTestHeadless(t)
	w, err := d.NewWindow(1, visibleConfig())
	require.NoError(t, err)
	r.take()
	d.SetSystemTheme(system.ThemeDark)
	assert.Equal(t, []Event{{Window: 1, Event: system.ThemeEvent{Theme: system.ThemeDark}}}, r.take())
	assert.Equal(t, system.ThemeDark, w.Theme())
}

func TestHeadlessUserResize(t *testing.T) {
	d, r := newTestHeadless(t)
	cnf := visibleConfig()
	cnf.MinSize = unit.PhysicalSize{Width: 300, Height: 300}
	_, err := d.NewWindow(1, cnf)
	require.NoError(t, err)
	r.take()

	require.NoError(t, d.UserResize(1, unit.PhysicalSize{Width: 100, Height: 400}))
	assert.Equal(t, []Event{
		{Window: 1, Event: system.ResizeEvent{Size: unit.PhysicalSize{Width: 300, Height: 400}}},
	}, r.take())
	assert.ErrorIs(t, d.UserResize(9, unit.PhysicalSize{}), ErrUnknownWindow)
}

func TestHeadlessInput(t *testing.T) {
	d, r := newTestHeadless(t)
	w, err := d.NewWindow(1, visibleConfig())
	require.NoError(t, err)
	r.take()

	require.NoError(t, w.Drag())
	d.Button(1, 0, pointer.ButtonLeft, event.Pressed)
	assert.True(t, d.Pressed(1, pointer.ButtonLeft))
	require.NoError(t, w.Drag())
	st, _ := d.State(1)
	assert.Equal(t, 1, st.Drags)

	d.Key(1, 0, key.Event{Code: key.CodeKeyA, Key: key.Character("a"), Text: "a", State: event.Pressed})
	var raw, win int
	for _, e := range r.take() {
		if e.Window == 0 {
			raw++
		} else {
			win++
		}
	}
	assert.NotZero(t, raw)
	assert.NotZero(t, win)

	w.Destroy()
	assert.False(t, d.Pressed(1, pointer.ButtonLeft))
	st, _ = d.State(1)
	assert.True(t, st.Destroyed)
}

func TestHeadlessBadge(t *testing.T) {
	d, _ := newTestHeadless(t)
	w, err := d.NewWindow(1, visibleConfig())
	require.NoError(t, err)
	require.NoError(t, w.SetBadgeCount(-3, ""))
	require.NoError(t, w.SetBadgeLabel("new"))
	count, label := d.Badge()
	assert.Equal(t, int64(0), count)
	assert.Equal(t, "new", label)
	assert.ErrorIs(t, w.SetOverlayIcon(nil), ErrUnsupported)
}

func TestHeadlessWaitEvents(t *testing.T) {
	d, _ := newTestHeadless(t)
	start := time.Now()
	d.WaitEvents(20 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	d.Wakeup()
	d.Wakeup()
	done := make(chan struct{})
	go func() {
		d.WaitEvents(-1)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("WaitEvents ignored Wakeup")
	}
}
