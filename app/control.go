// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"time"
)

// ControlFlow tells the event loop what to do after the current
// iteration. The zero ControlFlow keeps the current mode, including
// the deadline of a WaitUntil.
type ControlFlow struct {
	mode     flowMode
	deadline time.Time
	// delay is a deadline relative to the time the handler returned.
	delay time.Duration
	code  int
}

type flowMode uint8

const (
	flowKeep flowMode = iota
	flowPoll
	flowWait
	flowWaitUntil
	flowExit
)

var (
	// Poll starts the next iteration as soon as the current one ends.
	Poll = ControlFlow{mode: flowPoll}
	// Wait blocks until an event arrives.
	Wait = ControlFlow{mode: flowWait}
	// Exit terminates the loop with exit code 0.
	Exit = ControlFlow{mode: flowExit}
)

// WaitUntil blocks until an event arrives or the deadline passes,
// whichever comes first.
func WaitUntil(deadline time.Time) ControlFlow {
	return ControlFlow{mode: flowWaitUntil, deadline: deadline}
}

// WaitFor is like WaitUntil with a deadline d after the handler
// returns.
func WaitFor(d time.Duration) ControlFlow {
	return ControlFlow{mode: flowWaitUntil, delay: d}
}

// ExitWithCode terminates the loop with an exit code.
func ExitWithCode(code int) ControlFlow {
	return ControlFlow{mode: flowExit, code: code}
}

// IsKeep reports whether c is the zero ControlFlow.
func (c ControlFlow) IsKeep() bool { return c.mode == flowKeep }

// IsExit reports whether c exits the loop.
func (c ControlFlow) IsExit() bool { return c.mode == flowExit }

// Deadline returns the deadline of a WaitUntil.
func (c ControlFlow) Deadline() (time.Time, bool) {
	return c.deadline, c.mode == flowWaitUntil
}

// ExitCode returns the exit code of an Exit.
func (c ControlFlow) ExitCode() int { return c.code }

// resolve turns a relative deadline into an absolute one.
func (c ControlFlow) resolve(now time.Time) ControlFlow {
	if c.mode == flowWaitUntil && c.deadline.IsZero() {
		c.deadline = now.Add(c.delay)
		c.delay = 0
	}
	return c
}

func (c ControlFlow) String() string {
	switch c.mode {
	case flowKeep:
		return "Keep"
	case flowPoll:
		return "Poll"
	case flowWait:
		return "Wait"
	case flowWaitUntil:
		if c.deadline.IsZero() {
			return fmt.Sprintf("WaitFor(%v)", c.delay)
		}
		return fmt.Sprintf("WaitUntil(%s)", c.deadline.Format(time.RFC3339Nano))
	case flowExit:
		return fmt.Sprintf("Exit(%d)", c.code)
	default:
		panic("invalid ControlFlow")
	}
}

// StartCause describes why an iteration of the event loop started.
type StartCause interface {
	implementsStartCause()
}

// StartInit is the cause of the first iteration.
var StartInit StartCause = startInit{}

// StartPoll is the cause of an iteration after a Poll.
var StartPoll StartCause = startPoll{}

type startInit struct{}
type startPoll struct{}

// StartWaitCancelled is the cause of an iteration that started because
// an event arrived during a Wait or WaitUntil.
type StartWaitCancelled struct {
	Start time.Time
	// RequestedResume is the deadline of the interrupted
	// WaitUntil, or the zero time for a Wait.
	RequestedResume time.Time
}

// StartResumeTimeReached is the cause of an iteration that started
// because the deadline of a WaitUntil passed.
type StartResumeTimeReached struct {
	Start           time.Time
	RequestedResume time.Time
}

func (startInit) implementsStartCause()              {}
func (startPoll) implementsStartCause()              {}
func (StartWaitCancelled) implementsStartCause()     {}
func (StartResumeTimeReached) implementsStartCause() {}

func (startInit) String() string { return "Init" }
func (startPoll) String() string { return "Poll" }

func (c StartWaitCancelled) String() string {
	return "WaitCancelled"
}

func (c StartResumeTimeReached) String() string {
	return "ResumeTimeReached"
}
