// SPDX-License-Identifier: Unlicense OR MIT

// Package key implements keyboard events.
//
// A keyboard event reports two views of the same key: the physical
// Code, which names the location of the key independent of the
// keyboard layout, and the logical Key, which is what the key produces
// in the active layout.
//
// Modifier state is not carried by keyboard events. Instead, a
// ModifiersEvent is delivered before any keyboard or pointer event
// whose interpretation depends on a changed modifier state.
package key

import (
	"strings"

	"taoui.org/io/event"
)

// An Event is generated when a key is pressed or released.
type Event struct {
	// Code is the physical key.
	Code Code
	// Key is the logical key in the current layout.
	Key Key
	// Text is the text produced by the key press, if any.
	Text string
	// Location distinguishes keys that appear more than once on
	// a keyboard.
	Location Location
	// State is the state of the key when the event was fired.
	State event.ElementState
	// Repeat is set for key presses generated by auto-repeat.
	Repeat bool
}

// ModifiersEvent reports a change of the modifier keys state.
type ModifiersEvent struct {
	Modifiers Modifiers
}

// RawEvent is a device level key event, delivered regardless of
// window focus subject to the loop's device event filter.
type RawEvent struct {
	Code  Code
	State event.ElementState
}

// Modifiers is a set of modifier keys.
type Modifiers uint32

const (
	// ModCtrl is the ctrl modifier key.
	ModCtrl Modifiers = 1 << iota
	// ModShift is the shift modifier key.
	ModShift
	// ModAlt is the alt modifier key, or the option
	// key on Apple keyboards.
	ModAlt
	// ModSuper is the "logo" modifier key, often
	// represented by a Windows logo or the command key
	// on Apple keyboards.
	ModSuper
)

// Location of a key on the keyboard.
type Location uint8

const (
	LocationStandard Location = iota
	LocationLeft
	LocationRight
	LocationNumpad
)

// Name is the identifier for a non-character logical key.
type Name string

const (
	NameUnidentified Name = "Unidentified"
	NameArrowLeft    Name = "ArrowLeft"
	NameArrowRight   Name = "ArrowRight"
	NameArrowUp      Name = "ArrowUp"
	NameArrowDown    Name = "ArrowDown"
	NameEnter        Name = "Enter"
	NameEscape       Name = "Escape"
	NameHome         Name = "Home"
	NameEnd          Name = "End"
	NameBackspace    Name = "Backspace"
	NameDelete       Name = "Delete"
	NameInsert       Name = "Insert"
	NamePageUp       Name = "PageUp"
	NamePageDown     Name = "PageDown"
	NameTab          Name = "Tab"
	NameSpace        Name = "Space"
	NameControl      Name = "Control"
	NameShift        Name = "Shift"
	NameAlt          Name = "Alt"
	NameSuper        Name = "Super"
	NameCapsLock     Name = "CapsLock"
	NameNumLock      Name = "NumLock"
	NameScrollLock   Name = "ScrollLock"
	NameContextMenu  Name = "ContextMenu"
	NamePrintScreen  Name = "PrintScreen"
	NamePause        Name = "Pause"
	NameF1           Name = "F1"
	NameF2           Name = "F2"
	NameF3           Name = "F3"
	NameF4           Name = "F4"
	NameF5           Name = "F5"
	NameF6           Name = "F6"
	NameF7           Name = "F7"
	NameF8           Name = "F8"
	NameF9           Name = "F9"
	NameF10          Name = "F10"
	NameF11          Name = "F11"
	NameF12          Name = "F12"
)

// Key is a logical key: either a named key or the character
// a key produces. Exactly one of Name and Char is set.
type Key struct {
	Name Name
	Char string
}

// Named returns the Key for a named key.
func Named(n Name) Key {
	return Key{Name: n}
}

// Character returns the Key for the characters s.
func Character(s string) Key {
	return Key{Char: s}
}

// IsCharacter reports whether k produces characters.
func (k Key) IsCharacter() bool {
	return k.Char != ""
}

func (k Key) String() string {
	if k.Char != "" {
		return k.Char
	}
	if k.Name == "" {
		return string(NameUnidentified)
	}
	return string(k.Name)
}

// Contain reports whether m contains all modifiers
// in m2.
func (m Modifiers) Contain(m2 Modifiers) bool {
	return m&m2 == m2
}

// ModifierFor returns the modifier toggled by the physical key c, or 0
// if c is not a modifier key.
func ModifierFor(c Code) Modifiers {
	switch c {
	case CodeControlLeft, CodeControlRight:
		return ModCtrl
	case CodeShiftLeft, CodeShiftRight:
		return ModShift
	case CodeAltLeft, CodeAltRight:
		return ModAlt
	case CodeSuperLeft, CodeSuperRight:
		return ModSuper
	}
	return 0
}

func (Event) ImplementsEvent()          {}
func (ModifiersEvent) ImplementsEvent() {}
func (RawEvent) ImplementsEvent()       {}

func (m Modifiers) String() string {
	var strs []string
	if m.Contain(ModCtrl) {
		strs = append(strs, "Ctrl")
	}
	if m.Contain(ModShift) {
		strs = append(strs, "Shift")
	}
	if m.Contain(ModAlt) {
		strs = append(strs, "Alt")
	}
	if m.Contain(ModSuper) {
		strs = append(strs, "Super")
	}
	return strings.Join(strs, "-")
}

func (l Location) String() string {
	switch l {
	case LocationStandard:
		return "Standard"
	case LocationLeft:
		return "Left"
	case LocationRight:
		return "Right"
	case LocationNumpad:
		return "Numpad"
	default:
		panic("invalid Location")
	}
}
