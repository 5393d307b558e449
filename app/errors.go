// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"errors"
	"fmt"

	"taoui.org/app/internal/wm"
)

var (
	// ErrUnsupported is returned by operations the platform cannot
	// perform. It is never fatal.
	ErrUnsupported = wm.ErrUnsupported
	// ErrLoopClosed is returned when sending to a loop that has
	// terminated.
	ErrLoopClosed = errors.New("app: event loop closed")
	// ErrLoopExited is returned when running a loop that has exited.
	ErrLoopExited = errors.New("app: event loop exited")
	// ErrLoopBusy is returned when a loop is run from its own handler.
	ErrLoopBusy = errors.New("app: event loop already running")
	// ErrWrongThread is the panic value for using a window or loop
	// from a goroutine other than the loop's.
	ErrWrongThread = errors.New("app: called from outside the event loop goroutine")
	// ErrQueryFailed is returned when the platform fails to answer
	// a query.
	ErrQueryFailed = errors.New("app: query failed")
	// ErrInvalidConstraints is returned for size constraints with
	// a minimum larger than the maximum.
	ErrInvalidConstraints = errors.New("app: minimum size exceeds maximum size")
	// ErrInvalidIcon is returned for malformed icon data.
	ErrInvalidIcon = errors.New("app: invalid icon")
	// ErrInvalidProgress is returned for progress values outside 0..100.
	ErrInvalidProgress = errors.New("app: progress out of range")
)

// BackendError is a fatal error of the windowing system. It terminates
// the event loop.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("app: %s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// ExitError is returned by Run when the handler exits the loop with a
// non-zero exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("app: exit code %d", e.Code)
}

// ExitCode extracts the exit code of an error returned by Run. It
// returns 0 for a nil error and 1 for other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var e *ExitError
	if errors.As(err, &e) {
		return e.Code
	}
	return 1
}
