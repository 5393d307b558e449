// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"testing"
	"time"
)

func TestControlFlow(t *testing.T) {
	var keep ControlFlow
	if !keep.IsKeep() || keep.String() != "Keep" {
		t.Errorf("zero ControlFlow is %v, expected Keep", keep)
	}
	if !Exit.IsExit() || Exit.ExitCode() != 0 {
		t.Errorf("Exit: %v", Exit)
	}
	if c := ExitWithCode(4); !c.IsExit() || c.ExitCode() != 4 || c.String() != "Exit(4)" {
		t.Errorf("ExitWithCode(4): %v", c)
	}
	if _, ok := Poll.Deadline(); ok {
		t.Error("Poll has a deadline")
	}
}

func TestWaitForResolve(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := WaitFor(time.Second)
	if c.String() != "WaitFor(1s)" {
		t.Errorf("unresolved WaitFor: %v", c)
	}
	d, ok := c.resolve(now).Deadline()
	if !ok || !d.Equal(now.Add(time.Second)) {
		t.Errorf("resolved deadline %v, expected %v", d, now.Add(time.Second))
	}
	abs := WaitUntil(now)
	if got := abs.resolve(now.Add(time.Hour)); got != abs {
		t.Errorf("resolve changed an absolute deadline: %v", got)
	}
}
