// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import "testing"

func TestOtherButton(t *testing.T) {
	for _, n := range []uint16{0, 4, 255, 65535} {
		b := OtherButton(n)
		got, ok := b.Other()
		if !ok || got != n {
			t.Errorf("OtherButton(%d).Other() = %d, %v", n, got, ok)
		}
	}
	for _, b := range []Button{ButtonLeft, ButtonRight, ButtonMiddle} {
		if _, ok := b.Other(); ok {
			t.Errorf("%v reported as an other button", b)
		}
	}
	if got := OtherButton(8).String(); got != "Other(8)" {
		t.Errorf("OtherButton(8).String() = %q", got)
	}
}

func TestCursorNames(t *testing.T) {
	if cursorCount != 35 {
		t.Fatalf("got %d cursors, expected 35", cursorCount)
	}
	for c := Cursor(0); c < cursorCount; c++ {
		name := c.String()
		if name == "" {
			t.Fatalf("cursor %d has no name", c)
		}
		got, ok := ParseCursor(name)
		if !ok || got != c {
			t.Errorf("ParseCursor(%q) = %v, %v", name, got, ok)
		}
	}
	if _, ok := ParseCursor("Sideways"); ok {
		t.Error("unknown cursor name parsed")
	}
}
