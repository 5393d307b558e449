// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"taoui.org/app/internal/wm"
	"taoui.org/io/event"
	"taoui.org/io/system"
)

// Handler receives the events of an EventLoop. The returned
// ControlFlow takes effect after the event is handled; a non-nil error
// terminates the loop.
type Handler interface {
	HandleEvent(e event.Event, a *App) (ControlFlow, error)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(e event.Event, a *App) (ControlFlow, error)

func (f HandlerFunc) HandleEvent(e event.Event, a *App) (ControlFlow, error) {
	return f(e, a)
}

// RunReturnHandler is a Handler driven by RunReturn.
type RunReturnHandler interface {
	Handler
	// Render is called after every iteration, including iterations
	// cut short by Exit.
	Render(a *App) error
	// ShouldQuit is checked before every iteration. It is the only
	// way to end RunReturn without an error.
	ShouldQuit() bool
}

// PumpStatus is the result of Pump.
type PumpStatus struct {
	// Flow is the effective ControlFlow after the iteration.
	Flow ControlFlow
	// Exited reports whether the loop terminated. Code is the exit
	// code.
	Exited bool
	Code   int
}

// LoopOption configures NewEventLoop.
type LoopOption func(o *loopOptions)

type loopOptions struct {
	cnf    *RunConfig
	log    *zap.Logger
	driver func(cb wm.Callbacks, log *zap.Logger) (wm.Driver, error)
}

// WithConfig replaces the configuration otherwise read from the
// environment.
func WithConfig(cnf RunConfig) LoopOption {
	return func(o *loopOptions) {
		o.cnf = &cnf
	}
}

// WithLogger sets the logger of the loop and its driver.
func WithLogger(log *zap.Logger) LoopOption {
	return func(o *loopOptions) {
		o.log = log
	}
}

// EventLoop owns the windows of an application and delivers their
// events. It is bound to the goroutine that created it.
type EventLoop struct {
	cnf    RunConfig
	log    *zap.Logger
	driver wm.Driver
	owner  uint64
	app    App
	nextID atomic.Uint64

	mu sync.Mutex
	// queue holds driver events, user events and commands in arrival
	// order. Protected by mu.
	queue  []any
	closed bool

	windows map[event.WindowID]*Window
	focused map[event.WindowID]bool
	redraws []event.WindowID
	filter  DeviceEventFilter

	flow    ControlFlow
	resume  StartCause
	started bool
	running bool
	// exited is set by Exit. It ends the loop, or only the current
	// iteration under RunReturn.
	exited    bool
	runReturn bool
	done      bool
	code      int
}

type userItem struct {
	v any
}

type commandItem struct {
	id event.WindowID
	f  func(w *Window)
}

type callbacks struct {
	l *EventLoop
}

// NewEventLoop creates an event loop bound to the calling goroutine,
// which is locked to its OS thread. Unless WithConfig is given, the
// configuration is read from the environment.
func NewEventLoop(opts ...LoopOption) (*EventLoop, error) {
	var o loopOptions
	for _, opt := range opts {
		opt(&o)
	}
	var cnf RunConfig
	if o.cnf != nil {
		cnf = *o.cnf
	} else {
		c, err := LoadRunConfig()
		if err != nil {
			return nil, err
		}
		cnf = c
	}
	log := o.log
	if log == nil {
		log = cnf.logger()
	}
	runtime.LockOSThread()
	l := &EventLoop{
		cnf:     cnf,
		log:     log,
		owner:   goid(),
		windows: make(map[event.WindowID]*Window),
		focused: make(map[event.WindowID]bool),
		filter:  cnf.DeviceEventFilter,
		flow:    Poll,
	}
	l.app.l = l
	cb := callbacks{l: l}
	var (
		d   wm.Driver
		err error
	)
	if o.driver != nil {
		d, err = o.driver(cb, log)
	} else {
		d, err = wm.New(cnf.Backend, cb, log)
	}
	if err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("app: %w: %v", ErrUnsupported, err)
	}
	if d.Name() == "glfw" && runtime.GOOS == "darwin" && !cnf.AnyThread && l.owner != 1 {
		d.Close()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("app: %w: the event loop must be created on the main goroutine", ErrUnsupported)
	}
	l.driver = d
	log.Info("event loop created", zap.String("driver", d.Name()))
	return l, nil
}

// App returns the context for creating windows before the loop runs.
func (l *EventLoop) App() *App {
	l.checkThread()
	return &l.app
}

// CreateProxy returns a Proxy for sending events to the loop from any
// goroutine.
func (l *EventLoop) CreateProxy() *Proxy {
	return &Proxy{l: l}
}

// Run delivers events to h until the loop exits. It returns nil for exit
// code 0, an *ExitError for other exit codes, the error of a failing
// handler or a *BackendError if the windowing system failed.
func (l *EventLoop) Run(h Handler) error {
	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()
	for {
		if err := l.iterate(h, l.nextCause()); err != nil || l.exited {
			return l.exitError(l.finish(h, err))
		}
		l.resume = l.wait()
	}
}

// Pump runs a single iteration of the loop without blocking.
func (l *EventLoop) Pump(h Handler) (PumpStatus, error) {
	if err := l.enter(); err != nil {
		return PumpStatus{}, err
	}
	defer l.leave()
	if err := l.iterate(h, l.nextCause()); err != nil || l.exited {
		err = l.finish(h, err)
		return PumpStatus{Flow: l.flow, Exited: true, Code: l.code}, err
	}
	return PumpStatus{Flow: l.flow}, nil
}

// RunReturn runs iterations until h.ShouldQuit reports true, calling
// h.Render after each iteration and blocking between iterations as
// requested by the ControlFlow. Exit ends the current iteration only:
// the events that remain are delivered in the next one. The loop is
// terminated when RunReturn returns, with an *ExitError if the last Exit
// carried a non-zero code.
func (l *EventLoop) RunReturn(h RunReturnHandler) error {
	if err := l.enter(); err != nil {
		return err
	}
	defer l.leave()
	l.runReturn = true
	for !h.ShouldQuit() {
		if err := l.iterate(h, l.nextCause()); err != nil {
			return l.finish(h, err)
		}
		if l.exited {
			l.exited = false
			l.flow = Poll
		}
		if err := h.Render(&l.app); err != nil {
			return l.finish(h, fmt.Errorf("app: render: %w", err))
		}
		l.resume = l.wait()
	}
	l.exited = true
	l.flow = Exit
	return l.exitError(l.finish(h, nil))
}

func (l *EventLoop) enter() error {
	l.checkThread()
	switch {
	case l.running:
		return ErrLoopBusy
	case l.done:
		return ErrLoopExited
	}
	l.running = true
	return nil
}

func (l *EventLoop) leave() {
	l.running = false
}

func (l *EventLoop) checkThread() {
	if goid() != l.owner {
		panic(ErrWrongThread)
	}
}

func (l *EventLoop) exitError(err error) error {
	if err == nil && l.code != 0 {
		return &ExitError{Code: l.code}
	}
	return err
}

// nextCause returns the cause of the next iteration. Without a
// preceding wait the cause is derived from the current ControlFlow.
func (l *EventLoop) nextCause() StartCause {
	if !l.started {
		return StartInit
	}
	if c := l.resume; c != nil {
		l.resume = nil
		return c
	}
	now := time.Now()
	switch l.flow.mode {
	case flowWait:
		return StartWaitCancelled{Start: now}
	case flowWaitUntil:
		if !now.Before(l.flow.deadline) {
			return StartResumeTimeReached{Start: now, RequestedResume: l.flow.deadline}
		}
		return StartWaitCancelled{Start: now, RequestedResume: l.flow.deadline}
	default:
		return StartPoll
	}
}

// iterate runs one iteration: NewEvents, the queued events,
// MainEventsCleared, the redraws and RedrawEventsCleared.
func (l *EventLoop) iterate(h Handler, cause StartCause) error {
	l.started = true
	if err := l.dispatch(h, NewEvents{Cause: cause}); err != nil {
		return err
	}
	l.driver.PollEvents()
	for !l.exited {
		it, ok := l.pop()
		if !ok {
			break
		}
		if err := l.process(h, it); err != nil {
			return err
		}
	}
	if err := l.dispatch(h, MainEventsCleared{}); err != nil || l.exited {
		return err
	}
	redraws := l.redraws
	l.redraws = nil
	for i, id := range redraws {
		if w, ok := l.windows[id]; !ok || w.closing {
			continue
		}
		if err := l.dispatch(h, RedrawRequested{Window: id}); err != nil {
			return err
		}
		if l.exited {
			// Keep the undelivered requests for the next iteration.
			for _, id := range redraws[i+1:] {
				l.requestRedraw(id)
			}
			return nil
		}
	}
	return l.dispatch(h, RedrawEventsCleared{})
}

// wait blocks according to the ControlFlow and returns the cause of
// the next iteration.
func (l *EventLoop) wait() StartCause {
	start := time.Now()
	switch l.flow.mode {
	case flowWait:
		for !l.pending() {
			l.driver.WaitEvents(-1)
		}
		return StartWaitCancelled{Start: start}
	case flowWaitUntil:
		deadline := l.flow.deadline
		for {
			now := time.Now()
			if !now.Before(deadline) {
				return StartResumeTimeReached{Start: start, RequestedResume: deadline}
			}
			if l.pending() {
				return StartWaitCancelled{Start: start, RequestedResume: deadline}
			}
			l.driver.WaitEvents(deadline.Sub(now))
		}
	default:
		return StartPoll
	}
}

// dispatch delivers e to h. Nothing is delivered after an exit.
func (l *EventLoop) dispatch(h Handler, e event.Event) error {
	if l.exited {
		return nil
	}
	flow, err := h.HandleEvent(e, &l.app)
	if err != nil {
		return fmt.Errorf("app: handling %T: %w", e, err)
	}
	switch {
	case flow.IsKeep():
	case flow.IsExit():
		l.exited = true
		l.code = flow.code
		l.flow = flow
		if !l.runReturn {
			l.close()
		}
	default:
		l.flow = flow.resolve(time.Now())
	}
	return nil
}

func (l *EventLoop) process(h Handler, it any) error {
	switch it := it.(type) {
	case userItem:
		return l.dispatch(h, UserEvent{Value: it.v})
	case commandItem:
		if w, ok := l.windows[it.id]; ok && !w.closing {
			it.f(w)
		}
		return nil
	case wm.Event:
		return l.processDriverEvent(h, it)
	default:
		panic(fmt.Errorf("app: unknown queue item %T", it))
	}
}

func (l *EventLoop) processDriverEvent(h Handler, e wm.Event) error {
	switch ev := e.Event.(type) {
	case wm.ErrorEvent:
		l.log.Error("windowing system failed", zap.String("op", ev.Op), zap.Error(ev.Err))
		return &BackendError{Op: ev.Op, Err: ev.Err}
	case system.ReopenEvent:
		return l.dispatch(h, Reopen{HasVisibleWindows: ev.HasVisibleWindows})
	}
	if e.Window == 0 {
		if !l.deliverDeviceEvents() {
			return nil
		}
		return l.dispatch(h, DeviceEvent{Device: e.Device, Event: e.Event})
	}
	w, ok := l.windows[e.Window]
	if !ok {
		return nil
	}
	if _, ok := e.Event.(system.DestroyEvent); ok {
		if !w.closing {
			// Destroyed by the windowing system.
			w.closing = true
			w.wnd.Destroy()
		}
		l.forget(w.id)
		return l.dispatch(h, WindowEvent{Window: w.id, Event: e.Event})
	}
	if w.closing {
		return nil
	}
	switch ev := e.Event.(type) {
	case wm.RedrawRequest:
		l.requestRedraw(w.id)
		return nil
	case system.FocusEvent:
		if ev.Focus {
			l.focused[w.id] = true
		} else {
			delete(l.focused, w.id)
		}
	case system.VisibilityEvent:
		w.cnf.Minimized = ev.Minimized
	case system.ResizeEvent:
		w.cnf.Size = ev.Size
	case system.MoveEvent:
		pos := ev.Position
		w.cnf.Position = &pos
	case *system.CloseRequestEvent:
		if err := l.dispatch(h, WindowEvent{Window: w.id, Event: ev}); err != nil {
			return err
		}
		if !ev.Cancel {
			w.close()
		}
		return nil
	}
	return l.dispatch(h, WindowEvent{Window: w.id, Event: e.Event})
}

func (l *EventLoop) deliverDeviceEvents() bool {
	switch l.filter {
	case FilterAlways:
		return false
	case FilterUnfocused:
		return len(l.focused) > 0
	default:
		return true
	}
}

func (l *EventLoop) requestRedraw(id event.WindowID) {
	if !slices.Contains(l.redraws, id) {
		l.redraws = append(l.redraws, id)
	}
}

// forget removes a destroyed window from the loop.
func (l *EventLoop) forget(id event.WindowID) {
	delete(l.windows, id)
	delete(l.focused, id)
	if i := slices.Index(l.redraws, id); i >= 0 {
		l.redraws = slices.Delete(l.redraws, i, i+1)
	}
}

// finish terminates the loop: LoopDestroyed is delivered unless the
// loop failed, remaining windows are destroyed and the driver closed.
func (l *EventLoop) finish(h Handler, err error) error {
	l.exited = true
	l.close()
	if err == nil {
		if _, herr := h.HandleEvent(LoopDestroyed{}, &l.app); herr != nil {
			err = fmt.Errorf("app: handling %T: %w", LoopDestroyed{}, herr)
		}
	}
	ids := maps.Keys(l.windows)
	slices.Sort(ids)
	for _, id := range ids {
		if w := l.windows[id]; !w.closing {
			w.closing = true
			w.wnd.Destroy()
		}
		l.forget(id)
	}
	if cerr := l.driver.Close(); cerr != nil {
		l.log.Warn("closing driver failed", zap.Error(cerr))
	}
	l.done = true
	runtime.UnlockOSThread()
	if err != nil {
		l.log.Error("event loop failed", zap.Error(err))
	} else {
		l.log.Info("event loop exited", zap.Int("code", l.code))
	}
	return err
}

// close rejects further proxy sends and drops the queued items.
func (l *EventLoop) close() {
	l.mu.Lock()
	l.closed = true
	l.queue = nil
	l.mu.Unlock()
}

// push appends an item to the queue. It fails after the loop has
// terminated.
func (l *EventLoop) push(it any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return ErrLoopClosed
	}
	l.queue = append(l.queue, it)
	return nil
}

func (l *EventLoop) pop() (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	it := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return it, true
}

func (l *EventLoop) pending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) > 0 || len(l.redraws) > 0
}

func (c callbacks) Event(e wm.Event) {
	// Events after termination are dropped.
	c.l.push(e)
}
