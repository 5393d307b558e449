// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"

	"taoui.org/app/internal/wm"
)

// NoProgress leaves the progress value of a ProgressBar unchanged.
const NoProgress = -1

// ProgressState is the state of a taskbar progress indicator.
type ProgressState uint8

const (
	ProgressNone ProgressState = iota
	ProgressNormal
	// ProgressIndeterminate is a progress of unknown length.
	ProgressIndeterminate
	ProgressPaused
	ProgressError
)

// ProgressBar describes the taskbar progress indicator of a window.
type ProgressBar struct {
	// Progress is NoProgress or a percentage.
	Progress int
	State    ProgressState
	// DesktopFilename is the desktop entry of the application, used
	// on Linux.
	DesktopFilename string
}

func (p ProgressBar) validate() error {
	if p.Progress < NoProgress || p.Progress > 100 {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, p.Progress)
	}
	if p.State > ProgressError {
		return fmt.Errorf("%w: state %d", ErrInvalidProgress, p.State)
	}
	return nil
}

func (p ProgressBar) driverProgress() wm.Progress {
	return wm.Progress{
		Value:           p.Progress,
		State:           uint8(p.State),
		DesktopFilename: p.DesktopFilename,
	}
}

func (s ProgressState) String() string {
	switch s {
	case ProgressNone:
		return "None"
	case ProgressNormal:
		return "Normal"
	case ProgressIndeterminate:
		return "Indeterminate"
	case ProgressPaused:
		return "Paused"
	case ProgressError:
		return "Error"
	default:
		return fmt.Sprintf("ProgressState(%d)", uint8(s))
	}
}
