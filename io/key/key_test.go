// SPDX-License-Identifier: Unlicense OR MIT

package key

import (
	"testing"
)

func TestKeySet(t *testing.T) {
	const allMods = ModAlt | ModShift | ModSuper | ModCtrl
	tests := []struct {
		Set        Set
		Matches    []Event
		Mismatches []Event
	}{
		{"A", []Event{{Key: Character("a")}}, []Event{{Key: Character("b")}}},
		{"[A,B,C]", []Event{{Key: Character("A")}, {Key: Character("b")}}, []Event{}},
		{"Escape|Q", []Event{{Key: Named(NameEscape)}, {Key: Character("q")}}, []Event{{Key: Named(NameEnter)}}},
	}
	for _, tst := range tests {
		for _, e := range tst.Matches {
			if !tst.Set.Contains(e.Key, 0) {
				t.Errorf("key set %q didn't contain %+v", tst.Set, e)
			}
		}
		for _, e := range tst.Mismatches {
			if tst.Set.Contains(e.Key, 0) {
				t.Errorf("key set %q contains %+v", tst.Set, e)
			}
		}
	}

	modTests := []struct {
		Set   Set
		Key   Key
		Match []Modifiers
		Miss  []Modifiers
	}{
		{"Short-Q", Character("q"), []Modifiers{ModShortcut}, []Modifiers{0, ModShift}},
		{"(Ctrl)-A", Character("a"), []Modifiers{ModCtrl, 0}, []Modifiers{ModShift}},
		{"Shift-[A,B,C]", Character("b"), []Modifiers{ModShift}, []Modifiers{ModShift | ModCtrl}},
		{Set(allMods.String() + "-A"), Character("a"), []Modifiers{allMods}, []Modifiers{ModAlt}},
		{"Ctrl--", Character("-"), []Modifiers{ModCtrl}, []Modifiers{0}},
	}
	for _, tst := range modTests {
		for _, m := range tst.Match {
			if !tst.Set.Contains(tst.Key, m) {
				t.Errorf("key set %q didn't contain %v with %v", tst.Set, tst.Key, m)
			}
		}
		for _, m := range tst.Miss {
			if tst.Set.Contains(tst.Key, m) {
				t.Errorf("key set %q contains %v with %v", tst.Set, tst.Key, m)
			}
		}
	}
}

func TestModifierFor(t *testing.T) {
	tests := map[Code]Modifiers{
		CodeShiftLeft:    ModShift,
		CodeShiftRight:   ModShift,
		CodeControlRight: ModCtrl,
		CodeAltLeft:      ModAlt,
		CodeSuperRight:   ModSuper,
		CodeKeyA:         0,
	}
	for c, exp := range tests {
		if got := ModifierFor(c); got != exp {
			t.Errorf("ModifierFor(%v) = %v, expected %v", c, got, exp)
		}
	}
}

func TestCodeString(t *testing.T) {
	for c := Code(0); c < codeCount; c++ {
		if c.String() == "" {
			t.Errorf("code %d has no name", c)
		}
	}
	if got := Code(60000).String(); got != "Unidentified" {
		t.Errorf("out of range code = %q", got)
	}
	if got := CodeNumpad4.Location(); got != LocationNumpad {
		t.Errorf("Numpad4 location = %v", got)
	}
	if got := CodeShiftRight.Location(); got != LocationRight {
		t.Errorf("ShiftRight location = %v", got)
	}
}

func TestKeyString(t *testing.T) {
	if got := (Key{}).String(); got != "Unidentified" {
		t.Errorf("empty key = %q", got)
	}
	if k := Character("x"); !k.IsCharacter() || k.String() != "x" {
		t.Errorf("character key = %+v", k)
	}
	if got := (ModCtrl | ModShift).String(); got != "Ctrl-Shift" {
		t.Errorf("modifiers = %q", got)
	}
}
