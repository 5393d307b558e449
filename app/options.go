// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"

	"taoui.org/app/internal/wm"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/unit"
)

// Option configures a window. The scale factor converts logical
// sizes and positions to physical pixels.
type Option func(scale float64, cnf *Config)

// Config is the requested state of a window.
type Config struct {
	Title string
	// Size is the inner size.
	Size unit.PhysicalSize
	// MinSize and MaxSize constrain the inner size. A zero dimension
	// is unconstrained.
	MinSize, MaxSize unit.PhysicalSize
	// Position is the outer position, or nil for a position chosen by
	// the windowing system.
	Position *unit.PhysicalPosition

	Decorated   bool
	Resizable   bool
	Visible     bool
	Transparent bool
	Minimized   bool
	Maximized   bool
	Closable    bool
	Minimizable bool
	Maximizable bool

	AlwaysOnTop      bool
	AlwaysOnBottom   bool
	ContentProtected bool

	Fullscreen Fullscreen
	// Theme is the preferred theme; system.ThemeSystem follows the
	// system.
	Theme  system.Theme
	Icon   *Icon
	Parent *Window

	Cursor        pointer.Cursor
	CursorVisible bool

	Progress ProgressBar
}

func defaultConfig(scale float64) Config {
	return Config{
		Title:         "tao window",
		Size:          unit.LogicalSize{Width: 800, Height: 600}.ToPhysical(scale),
		Decorated:     true,
		Resizable:     true,
		Visible:       true,
		Closable:      true,
		Minimizable:   true,
		Maximizable:   true,
		CursorVisible: true,
		Progress:      ProgressBar{Progress: NoProgress},
	}
}

func (c *Config) apply(scale float64, opts []Option) {
	for _, o := range opts {
		o(scale, c)
	}
}

func (c *Config) validate() error {
	if err := checkConstraints(c.MinSize, c.MaxSize); err != nil {
		return err
	}
	return c.Progress.validate()
}

func checkConstraints(min, max unit.PhysicalSize) error {
	if min.Width != 0 && max.Width != 0 && min.Width > max.Width ||
		min.Height != 0 && max.Height != 0 && min.Height > max.Height {
		return fmt.Errorf("%w: min %v, max %v", ErrInvalidConstraints, min, max)
	}
	return nil
}

func (c *Config) driverConfig() wm.Config {
	cnf := wm.Config{
		AppID:          ID,
		Title:          c.Title,
		Size:           c.Size,
		MinSize:        c.MinSize,
		MaxSize:        c.MaxSize,
		Decorated:      c.Decorated,
		Resizable:      c.Resizable,
		Visible:        c.Visible,
		Transparent:    c.Transparent,
		Minimized:      c.Minimized,
		Maximized:      c.Maximized,
		Closable:       c.Closable,
		Minimizable:    c.Minimizable,
		Maximizable:    c.Maximizable,
		AlwaysOnTop:    c.AlwaysOnTop,
		AlwaysOnBottom: c.AlwaysOnBottom,
		Fullscreen:     driverFullscreen(c.Fullscreen),
		Theme:          c.Theme,
		Icon:           c.Icon.image(),
		Cursor:         c.Cursor,
		CursorVisible:  c.CursorVisible,
		Progress:       c.Progress.driverProgress(),
	}
	if c.Position != nil {
		p := *c.Position
		cnf.Position = &p
	}
	if c.Parent != nil {
		cnf.Parent = c.Parent.wnd
	}
	return cnf
}

// Title sets the title of the window.
func Title(t string) Option {
	return func(_ float64, cnf *Config) {
		cnf.Title = t
	}
}

// Size sets the inner size of the window.
func Size(s unit.Size) Option {
	return func(scale float64, cnf *Config) {
		cnf.Size = s.ToPhysical(scale)
	}
}

// MinSize sets the minimum inner size of the window. A nil size removes
// the constraint.
func MinSize(s unit.Size) Option {
	return func(scale float64, cnf *Config) {
		cnf.MinSize = physicalSize(s, scale)
	}
}

// MaxSize sets the maximum inner size of the window. A nil size removes
// the constraint.
func MaxSize(s unit.Size) Option {
	return func(scale float64, cnf *Config) {
		cnf.MaxSize = physicalSize(s, scale)
	}
}

// Position sets the outer position of the window.
func Position(p unit.Position) Option {
	return func(scale float64, cnf *Config) {
		pp := p.ToPhysical(scale)
		cnf.Position = &pp
	}
}

// Decorated controls whether the windowing system draws a title bar and
// borders.
func Decorated(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.Decorated = enabled
	}
}

// Resizable controls whether the user may resize the window.
func Resizable(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.Resizable = enabled
	}
}

// Transparent requests a window with an alpha channel.
func Transparent(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.Transparent = enabled
	}
}

func Visible(visible bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.Visible = visible
	}
}

func Maximized(maximized bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.Maximized = maximized
	}
}

// FullscreenMode sets the fullscreen state. A nil f is windowed.
func FullscreenMode(f Fullscreen) Option {
	return func(_ float64, cnf *Config) {
		cnf.Fullscreen = f
	}
}

// WindowIcon sets the icon of the window.
func WindowIcon(icon *Icon) Option {
	return func(_ float64, cnf *Config) {
		cnf.Icon = icon
	}
}

// PreferredTheme sets the theme of the window.
func PreferredTheme(t system.Theme) Option {
	return func(_ float64, cnf *Config) {
		cnf.Theme = t
	}
}

// Parent makes the window an owned window of p.
func Parent(p *Window) Option {
	return func(_ float64, cnf *Config) {
		cnf.Parent = p
	}
}

// AlwaysOnTop keeps the window above other windows.
func AlwaysOnTop(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.AlwaysOnTop = enabled
		if enabled {
			cnf.AlwaysOnBottom = false
		}
	}
}

// AlwaysOnBottom keeps the window below other windows.
func AlwaysOnBottom(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.AlwaysOnBottom = enabled
		if enabled {
			cnf.AlwaysOnTop = false
		}
	}
}

// ContentProtected excludes the window contents from screen capture
// where the platform supports it.
func ContentProtected(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.ContentProtected = enabled
	}
}

func Closable(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.Closable = enabled
	}
}

func Minimizable(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.Minimizable = enabled
	}
}

func Maximizable(enabled bool) Option {
	return func(_ float64, cnf *Config) {
		cnf.Maximizable = enabled
	}
}

func physicalSize(s unit.Size, scale float64) unit.PhysicalSize {
	if s == nil {
		return unit.PhysicalSize{}
	}
	return s.ToPhysical(scale)
}
