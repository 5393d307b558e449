// SPDX-License-Identifier: Unlicense OR MIT

// Command taodemo exercises the taoui.org event loop.
//
// Usage:
//
//	taodemo [flags] monitors
//	taodemo [flags] scene file.yaml|file.toml
//	taodemo [flags] pump [-frames n]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"taoui.org/app"
	"taoui.org/io/event"
	"taoui.org/io/key"
	"taoui.org/io/pointer"
	"taoui.org/io/system"
)

var (
	backend = flag.String("backend", "", "window driver (x11, glfw, headless). Defaults to $TAO_BACKEND.")
	verbose = flag.Bool("v", false, "log event loop activity to stderr")
)

const mainUsage = `The taodemo command exercises the event loop and its drivers.

Usage:

	taodemo [flags] <command> [arguments]

The commands are:

	monitors    list monitors and their video modes
	scene       open the windows described by a YAML or TOML file
	pump        run a fixed number of loop iterations with Pump

Flags:

	-backend    window driver (x11, glfw, headless)
	-v          log event loop activity to stderr
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
	}
	flag.Parse()
	if err := mainErr(os.Stdout, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "taodemo: %v\n", err)
		if code := app.ExitCode(err); code != 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}

func mainErr(out io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.New("specify a command")
	}
	var run func(l *app.EventLoop) error
	switch cmd, args := args[0], args[1:]; cmd {
	case "monitors":
		run = func(l *app.EventLoop) error { return listMonitors(l, out) }
	case "scene":
		if len(args) != 1 {
			return errors.New("usage: taodemo scene <file>")
		}
		sc, err := loadScene(args[0])
		if err != nil {
			return err
		}
		run = func(l *app.EventLoop) error { return runScene(l, sc, out) }
	case "pump":
		fs := flag.NewFlagSet("pump", flag.ContinueOnError)
		frames := fs.Int("frames", 3, "number of iterations")
		if err := fs.Parse(args); err != nil {
			return err
		}
		if *frames < 0 {
			return fmt.Errorf("invalid frame count %d", *frames)
		}
		run = func(l *app.EventLoop) error { return pump(l, *frames, out) }
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	l, err := newLoop()
	if err != nil {
		return err
	}
	return run(l)
}

func newLoop() (*app.EventLoop, error) {
	cnf, err := app.LoadRunConfig()
	if err != nil {
		return nil, err
	}
	if *backend != "" {
		cnf.Backend = *backend
	}
	return app.NewEventLoop(loopOptions(cnf)...)
}

// loopOptions leaves logging to the TAO_LOG_* variables unless -v is
// given.
func loopOptions(cnf app.RunConfig) []app.LoopOption {
	opts := []app.LoopOption{app.WithConfig(cnf)}
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			opts = append(opts, app.WithLogger(l))
		}
	}
	return opts
}

func listMonitors(l *app.EventLoop, out io.Writer) error {
	return l.Run(app.HandlerFunc(func(e event.Event, a *app.App) (app.ControlFlow, error) {
		if _, ok := e.(app.NewEvents); !ok {
			return app.ControlFlow{}, nil
		}
		mons, err := a.AvailableMonitors()
		if err != nil {
			return app.ControlFlow{}, err
		}
		primary, hasPrimary := a.PrimaryMonitor()
		for _, m := range mons {
			mark := " "
			if hasPrimary && m.Equal(primary) {
				mark = "*"
			}
			fmt.Fprintf(out, "%s %v\n", mark, m)
			modes, err := m.VideoModes()
			if err != nil {
				return app.ControlFlow{}, err
			}
			for _, vm := range modes {
				fmt.Fprintf(out, "    %v\n", vm)
			}
		}
		return app.Exit, nil
	}))
}

// runScene opens the scene windows and prints their events until every
// window is closed or the scene times out.
func runScene(l *app.EventLoop, sc *scene, out io.Writer) error {
	a := l.App()
	open := make(map[event.WindowID]bool)
	for i, spec := range sc.Windows {
		opts, err := spec.options(a, sc.dir)
		if err != nil {
			return fmt.Errorf("window %d: %w", i, err)
		}
		w, err := a.NewWindow(opts...)
		if err != nil {
			return fmt.Errorf("window %d: %w", i, err)
		}
		if c, ok := pointer.ParseCursor(spec.Cursor); ok {
			w.SetCursorIcon(c)
		}
		open[w.ID()] = true
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	proxy := l.CreateProxy()
	for _, msg := range sc.Messages {
		msg := msg
		p := proxy.Clone()
		g.Go(func() error {
			return p.SendEvent(app.MessageEvent{Value: msg})
		})
	}
	if sc.exitAfter > 0 {
		g.Go(func() error {
			return proxy.StartTimer(ctx, sc.exitAfter)
		})
	}
	var mods key.Modifiers
	err := l.Run(app.HandlerFunc(func(e event.Event, a *app.App) (app.ControlFlow, error) {
		switch e := e.(type) {
		case app.WindowEvent:
			switch ke := e.Event.(type) {
			case key.ModifiersEvent:
				mods = ke.Modifiers
			case key.Event:
				if sc.QuitKeys != "" && ke.State == event.Pressed && key.Set(sc.QuitKeys).Contains(ke.Key, mods) {
					fmt.Fprintf(out, "quit %v\n", ke.Key)
					return app.Exit, nil
				}
			case system.DestroyEvent:
				delete(open, e.Window)
				fmt.Fprintf(out, "%v\n", e)
				if len(open) == 0 {
					return app.Exit, nil
				}
			case system.ResizeEvent, system.MoveEvent, system.FocusEvent, system.ThemeEvent, *system.CloseRequestEvent:
				fmt.Fprintf(out, "%v\n", e)
			}
		case app.UserEvent:
			switch v := e.Value.(type) {
			case app.MessageEvent:
				fmt.Fprintf(out, "message %q\n", v.Value)
			case app.TimerEvent:
				fmt.Fprintln(out, "timeout")
				return app.Exit, nil
			}
		case app.Reopen:
			fmt.Fprintf(out, "reopen visible=%v\n", e.HasVisibleWindows)
		}
		return app.Wait, nil
	}))
	cancel()
	if gerr := g.Wait(); gerr != nil && !errors.Is(gerr, app.ErrLoopClosed) && err == nil {
		err = gerr
	}
	return err
}

// pump runs frames iterations and one final iteration that exits the
// loop.
func pump(l *app.EventLoop, frames int, out io.Writer) error {
	if _, err := l.App().NewWindow(app.Title("pump"), app.Visible(false)); err != nil {
		return err
	}
	quit := false
	redraws := 0
	h := app.HandlerFunc(func(e event.Event, a *app.App) (app.ControlFlow, error) {
		switch e.(type) {
		case app.RedrawRequested:
			redraws++
		case app.MainEventsCleared:
			if quit {
				return app.Exit, nil
			}
		}
		return app.Poll, nil
	})
	for i := 0; i <= frames; i++ {
		quit = i == frames
		st, err := l.Pump(h)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "frame %d: %v\n", i, st.Flow)
		if st.Exited {
			break
		}
	}
	fmt.Fprintf(out, "redraws %d\n", redraws)
	return nil
}
