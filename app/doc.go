// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app provides a platform-independent interface to native windows
and the event loop that drives them.

# Event loop

An EventLoop owns every window created through it and delivers all
window, device and user events to a single Handler. The loop must be
created and run by the same goroutine, which is locked to its OS
thread; on macOS and Windows that goroutine must be the main
goroutine, so call NewEventLoop from main or an init function.

For example:

	l, err := app.NewEventLoop()
	if err != nil {
		log.Fatal(err)
	}
	err = l.Run(app.HandlerFunc(func(e event.Event, a *app.App) (app.ControlFlow, error) {
		switch e := e.(type) {
		case app.NewEvents:
			if e.Cause == app.StartInit {
				_, err := a.NewWindow(app.Title("Hello"))
				return app.Wait, err
			}
		case app.WindowEvent:
			if _, ok := e.Event.(system.DestroyEvent); ok {
				return app.Exit, nil
			}
		}
		return app.ControlFlow{}, nil
	}))

Each iteration of the loop delivers NewEvents, then the queued events in
arrival order, then MainEventsCleared, then one RedrawRequested per
window that asked for one, then RedrawEventsCleared. The ControlFlow
returned by the handler decides whether the loop then polls, waits for
the next event, waits until a deadline or exits. The zero ControlFlow
keeps the current mode.

# Threads

Windows, App and the EventLoop itself may only be used from the loop's
goroutine; calling them from elsewhere panics with ErrWrongThread. Other
goroutines talk to the loop through a Proxy, which sends UserEvents and
runs functions against windows on the loop's goroutine.

# Backends

The windowing system is selected when the loop is created: X11 on Linux
and BSDs, GLFW on macOS and Windows. Building with the headless tag, or
setting TAO_BACKEND=headless, selects an in-memory backend without a
display.
*/
package app
