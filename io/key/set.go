// SPDX-License-Identifier: Unlicense OR MIT

package key

import (
	"runtime"
	"strings"
)

// ModShortcut is the platform's shortcut modifier, usually the ctrl
// key. On Apple platforms it is the command key.
var ModShortcut = ModCtrl

func init() {
	switch runtime.GOOS {
	case "darwin", "ios":
		ModShortcut = ModSuper
	}
}

// Set is an expression that describes a set of key combinations, in the
// form "<modifiers>-<keyset>|...". Modifiers are separated by dashes, optional
// modifiers are enclosed by parentheses. A key set is either a literal key
// name or a list of key names separated by commas and enclosed in brackets.
//
// The "Short" modifier matches the shortcut modifier (ModShortcut).
//
// Examples:
//
//   - A|B matches the A and B keys
//   - [A,B] also matches the A and B keys
//   - Shift-A matches A key if shift is pressed, and no other modifier.
//   - Shift-(Ctrl)-A matches A if shift is pressed, and optionally ctrl.
type Set string

// Contains reports whether the set contains the logical key k with
// exactly the required modifiers in m.
func (s Set) Contains(k Key, m Modifiers) bool {
	name := strings.ToUpper(k.String())
	for _, chord := range strings.Split(string(s), "|") {
		if chordContains(chord, name, m) {
			return true
		}
	}
	return false
}

func chordContains(chord, name string, m Modifiers) bool {
	var required, optional Modifiers
	for {
		sep := strings.IndexByte(chord, '-')
		// A lone "-" names the minus key.
		if sep == -1 || sep == len(chord)-1 {
			break
		}
		mod := chord[:sep]
		chord = chord[sep+1:]
		opt := false
		if strings.HasPrefix(mod, "(") && strings.HasSuffix(mod, ")") {
			opt = true
			mod = mod[1 : len(mod)-1]
		}
		mask := modifierNamed(mod)
		if opt {
			optional |= mask
		} else {
			required |= mask
		}
	}
	if m&^optional != required {
		return false
	}
	keys := []string{chord}
	if strings.HasPrefix(chord, "[") && strings.HasSuffix(chord, "]") {
		keys = strings.Split(chord[1:len(chord)-1], ",")
	}
	for _, k := range keys {
		if strings.ToUpper(strings.TrimSpace(k)) == name {
			return true
		}
	}
	return false
}

func modifierNamed(name string) Modifiers {
	switch name {
	case "Ctrl":
		return ModCtrl
	case "Shift":
		return ModShift
	case "Alt":
		return ModAlt
	case "Super":
		return ModSuper
	case "Short":
		return ModShortcut
	}
	return 0
}
