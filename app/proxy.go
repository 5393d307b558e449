// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"time"

	"taoui.org/io/event"
)

// Proxy sends events to an EventLoop. Its methods are safe for
// concurrent use and never wait for the loop to handle the event.
// Events sent from a single goroutine are delivered in order.
type Proxy struct {
	l *EventLoop
}

// SendEvent queues a UserEvent carrying v and wakes the loop. It returns
// ErrLoopClosed if the loop has terminated.
func (p *Proxy) SendEvent(v any) error {
	if err := p.l.push(userItem{v: v}); err != nil {
		return err
	}
	p.l.driver.Wakeup()
	return nil
}

// Clone returns another Proxy for the same loop.
func (p *Proxy) Clone() *Proxy {
	return &Proxy{l: p.l}
}

// Do runs f on the loop goroutine with the window id, in order with the
// other queued events. f is not called if the window is closed by the
// time the command is processed.
func (p *Proxy) Do(id event.WindowID, f func(w *Window)) error {
	if err := p.l.push(commandItem{id: id, f: f}); err != nil {
		return err
	}
	p.l.driver.Wakeup()
	return nil
}

// StartTimer sends a TimerEvent every d until ctx is done or the loop
// terminates. It blocks, and returns nil when ctx is done and
// ErrLoopClosed when the loop terminated.
func (p *Proxy) StartTimer(ctx context.Context, d time.Duration) error {
	t := time.NewTicker(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if err := p.SendEvent(TimerEvent{}); err != nil {
				return err
			}
		}
	}
}
