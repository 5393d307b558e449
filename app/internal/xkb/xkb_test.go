// SPDX-License-Identifier: Unlicense OR MIT

package xkb

import (
	"testing"

	"taoui.org/io/key"
)

func TestCodeForKeycode(t *testing.T) {
	tests := map[uint8]key.Code{
		9:   key.CodeEscape,
		38:  key.CodeKeyA,
		50:  key.CodeShiftLeft,
		65:  key.CodeSpace,
		113: key.CodeArrowLeft,
		114: key.CodeArrowRight,
		3:   key.CodeUnidentified,
		255: key.CodeUnidentified,
	}
	for kc, exp := range tests {
		if got := CodeForKeycode(kc); got != exp {
			t.Errorf("CodeForKeycode(%d) = %v, expected %v", kc, got, exp)
		}
	}
	kc, ok := KeycodeForCode(key.CodeKeyA)
	if !ok || kc != 38 {
		t.Errorf("KeycodeForCode(KeyA) = %d, %v", kc, ok)
	}
}

func TestLogical(t *testing.T) {
	if k := Logical(0xff1b, ""); k != key.Named(key.NameEscape) {
		t.Errorf("Escape keysym = %v", k)
	}
	if k := Logical('a', "a"); k != key.Character("a") {
		t.Errorf("'a' keysym = %v", k)
	}
	if k := Logical(0x1234567, ""); k != key.Named(key.NameUnidentified) {
		t.Errorf("unknown keysym = %v", k)
	}
}

func TestModifiers(t *testing.T) {
	got := Modifiers(ShiftMask | ControlMask | Mod1Mask | Mod4Mask | LockMask)
	exp := key.ModShift | key.ModCtrl | key.ModAlt | key.ModSuper
	if got != exp {
		t.Errorf("Modifiers = %v, expected %v", got, exp)
	}
}
