// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"taoui.org/app"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
	"taoui.org/unit"
)

// scene describes the windows opened by the scene command. Sizes and
// positions are in logical pixels.
type scene struct {
	// ExitAfter is a duration after which the demo exits, such as "2s".
	ExitAfter string   `yaml:"exit_after" toml:"exit_after"`
	Messages  []string `yaml:"messages" toml:"messages"`
	// QuitKeys is a key.Set that exits the demo, such as "Short-Q|Escape".
	QuitKeys string        `yaml:"quit_keys" toml:"quit_keys"`
	Windows  []sceneWindow `yaml:"windows" toml:"windows"`

	exitAfter time.Duration
	dir       string
}

type sceneWindow struct {
	Title       string      `yaml:"title" toml:"title"`
	Size        *sceneSize  `yaml:"size" toml:"size"`
	MinSize     *sceneSize  `yaml:"min_size" toml:"min_size"`
	MaxSize     *sceneSize  `yaml:"max_size" toml:"max_size"`
	Position    *scenePoint `yaml:"position" toml:"position"`
	Resizable   *bool       `yaml:"resizable" toml:"resizable"`
	Decorated   *bool       `yaml:"decorated" toml:"decorated"`
	Visible     *bool       `yaml:"visible" toml:"visible"`
	Transparent bool        `yaml:"transparent" toml:"transparent"`
	Maximized   bool        `yaml:"maximized" toml:"maximized"`
	AlwaysOnTop bool        `yaml:"always_on_top" toml:"always_on_top"`
	Theme       string      `yaml:"theme" toml:"theme"`
	Fullscreen  string      `yaml:"fullscreen" toml:"fullscreen"`
	// Cursor is a cursor name such as "Hand" or "EwResize".
	Cursor string `yaml:"cursor" toml:"cursor"`
	// Icon is a PNG file relative to the scene file.
	Icon string `yaml:"icon" toml:"icon"`
}

type sceneSize struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

type scenePoint struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

var errEmptyScene = errors.New("scene has no windows")

// loadScene reads a YAML or TOML scene, depending on the file
// extension.
func loadScene(path string) (*scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc := new(scene)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		err = dec.Decode(sc)
	case ".toml":
		dec := toml.NewDecoder(f)
		dec.DisallowUnknownFields()
		err = dec.Decode(sc)
	default:
		return nil, fmt.Errorf("%s: unknown scene format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sc.dir = filepath.Dir(path)
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func (sc *scene) validate() error {
	if len(sc.Windows) == 0 {
		return errEmptyScene
	}
	if sc.ExitAfter != "" {
		d, err := time.ParseDuration(sc.ExitAfter)
		if err != nil {
			return fmt.Errorf("exit_after: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("exit_after: %s is not positive", sc.ExitAfter)
		}
		sc.exitAfter = d
	}
	for i, w := range sc.Windows {
		if _, err := parseTheme(w.Theme); err != nil {
			return fmt.Errorf("window %d: %w", i, err)
		}
		switch w.Fullscreen {
		case "", "borderless", "exclusive":
		default:
			return fmt.Errorf("window %d: invalid fullscreen mode %q", i, w.Fullscreen)
		}
		if _, ok := pointer.ParseCursor(w.Cursor); w.Cursor != "" && !ok {
			return fmt.Errorf("window %d: unknown cursor %q", i, w.Cursor)
		}
		if w.Size != nil && (w.Size.Width <= 0 || w.Size.Height <= 0) {
			return fmt.Errorf("window %d: size %gx%g is empty", i, w.Size.Width, w.Size.Height)
		}
	}
	return nil
}

func parseTheme(s string) (system.Theme, error) {
	switch s {
	case "", "system":
		return system.ThemeSystem, nil
	case "light":
		return system.ThemeLight, nil
	case "dark":
		return system.ThemeDark, nil
	}
	return 0, fmt.Errorf("invalid theme %q", s)
}

// options converts w to window options. Exclusive fullscreen uses the
// best video mode of the primary monitor.
func (w sceneWindow) options(a *app.App, dir string) ([]app.Option, error) {
	var opts []app.Option
	if w.Title != "" {
		opts = append(opts, app.Title(w.Title))
	}
	if s := w.Size; s != nil {
		opts = append(opts, app.Size(unit.LogicalSize{Width: s.Width, Height: s.Height}))
	}
	if s := w.MinSize; s != nil {
		opts = append(opts, app.MinSize(unit.LogicalSize{Width: s.Width, Height: s.Height}))
	}
	if s := w.MaxSize; s != nil {
		opts = append(opts, app.MaxSize(unit.LogicalSize{Width: s.Width, Height: s.Height}))
	}
	if p := w.Position; p != nil {
		opts = append(opts, app.Position(unit.LogicalPosition{X: p.X, Y: p.Y}))
	}
	if w.Resizable != nil {
		opts = append(opts, app.Resizable(*w.Resizable))
	}
	if w.Decorated != nil {
		opts = append(opts, app.Decorated(*w.Decorated))
	}
	if w.Visible != nil {
		opts = append(opts, app.Visible(*w.Visible))
	}
	opts = append(opts,
		app.Transparent(w.Transparent),
		app.Maximized(w.Maximized),
		app.AlwaysOnTop(w.AlwaysOnTop),
	)
	t, err := parseTheme(w.Theme)
	if err != nil {
		return nil, err
	}
	opts = append(opts, app.PreferredTheme(t))
	switch w.Fullscreen {
	case "borderless":
		opts = append(opts, app.FullscreenMode(app.Borderless{}))
	case "exclusive":
		m, ok := a.PrimaryMonitor()
		if !ok {
			return nil, errors.New("exclusive fullscreen needs a primary monitor")
		}
		modes, err := m.VideoModes()
		if err != nil {
			return nil, err
		}
		mode, ok := app.BestVideoMode(modes)
		if !ok {
			return nil, fmt.Errorf("monitor %v has no video modes", m)
		}
		opts = append(opts, app.FullscreenMode(app.Exclusive{Mode: mode}))
	}
	if w.Icon != "" {
		path := w.Icon
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		icon, err := app.LoadIcon(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, app.WindowIcon(icon))
	}
	return opts, nil
}
