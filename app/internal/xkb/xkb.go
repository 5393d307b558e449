// SPDX-License-Identifier: Unlicense OR MIT

// Package xkb maps X11 keycodes, keysyms and modifier masks to the
// layout independent key codes and named keys of package key.
//
// X11 keycodes are Linux evdev scancodes offset by 8.
package xkb

import (
	"taoui.org/io/key"
)

// Modifier masks of the core X11 protocol.
const (
	ShiftMask   = 1 << 0
	LockMask    = 1 << 1
	ControlMask = 1 << 2
	Mod1Mask    = 1 << 3
	Mod4Mask    = 1 << 6
)

// evdev scancodes, indexed by keycode-8.
var evdevCodes = map[uint8]key.Code{
	1:   key.CodeEscape,
	2:   key.CodeDigit1,
	3:   key.CodeDigit2,
	4:   key.CodeDigit3,
	5:   key.CodeDigit4,
	6:   key.CodeDigit5,
	7:   key.CodeDigit6,
	8:   key.CodeDigit7,
	9:   key.CodeDigit8,
	10:  key.CodeDigit9,
	11:  key.CodeDigit0,
	12:  key.CodeMinus,
	13:  key.CodeEqual,
	14:  key.CodeBackspace,
	15:  key.CodeTab,
	16:  key.CodeKeyQ,
	17:  key.CodeKeyW,
	18:  key.CodeKeyE,
	19:  key.CodeKeyR,
	20:  key.CodeKeyT,
	21:  key.CodeKeyY,
	22:  key.CodeKeyU,
	23:  key.CodeKeyI,
	24:  key.CodeKeyO,
	25:  key.CodeKeyP,
	26:  key.CodeBracketLeft,
	27:  key.CodeBracketRight,
	28:  key.CodeEnter,
	29:  key.CodeControlLeft,
	30:  key.CodeKeyA,
	31:  key.CodeKeyS,
	32:  key.CodeKeyD,
	33:  key.CodeKeyF,
	34:  key.CodeKeyG,
	35:  key.CodeKeyH,
	36:  key.CodeKeyJ,
	37:  key.CodeKeyK,
	38:  key.CodeKeyL,
	39:  key.CodeSemicolon,
	40:  key.CodeQuote,
	41:  key.CodeBackquote,
	42:  key.CodeShiftLeft,
	43:  key.CodeBackslash,
	44:  key.CodeKeyZ,
	45:  key.CodeKeyX,
	46:  key.CodeKeyC,
	47:  key.CodeKeyV,
	48:  key.CodeKeyB,
	49:  key.CodeKeyN,
	50:  key.CodeKeyM,
	51:  key.CodeComma,
	52:  key.CodePeriod,
	53:  key.CodeSlash,
	54:  key.CodeShiftRight,
	55:  key.CodeNumpadMultiply,
	56:  key.CodeAltLeft,
	57:  key.CodeSpace,
	58:  key.CodeCapsLock,
	59:  key.CodeF1,
	60:  key.CodeF2,
	61:  key.CodeF3,
	62:  key.CodeF4,
	63:  key.CodeF5,
	64:  key.CodeF6,
	65:  key.CodeF7,
	66:  key.CodeF8,
	67:  key.CodeF9,
	68:  key.CodeF10,
	69:  key.CodeNumLock,
	70:  key.CodeScrollLock,
	71:  key.CodeNumpad7,
	72:  key.CodeNumpad8,
	73:  key.CodeNumpad9,
	74:  key.CodeNumpadSubtract,
	75:  key.CodeNumpad4,
	76:  key.CodeNumpad5,
	77:  key.CodeNumpad6,
	78:  key.CodeNumpadAdd,
	79:  key.CodeNumpad1,
	80:  key.CodeNumpad2,
	81:  key.CodeNumpad3,
	82:  key.CodeNumpad0,
	83:  key.CodeNumpadDecimal,
	87:  key.CodeF11,
	88:  key.CodeF12,
	96:  key.CodeNumpadEnter,
	97:  key.CodeControlRight,
	98:  key.CodeNumpadDivide,
	99:  key.CodePrintScreen,
	100: key.CodeAltRight,
	102: key.CodeHome,
	103: key.CodeArrowUp,
	104: key.CodePageUp,
	105: key.CodeArrowLeft,
	106: key.CodeArrowRight,
	107: key.CodeEnd,
	108: key.CodeArrowDown,
	109: key.CodePageDown,
	110: key.CodeInsert,
	111: key.CodeDelete,
	119: key.CodePause,
	125: key.CodeSuperLeft,
	126: key.CodeSuperRight,
	127: key.CodeContextMenu,
}

var keysymNames = map[uint32]key.Name{
	0x0020: key.NameSpace,
	0xff08: key.NameBackspace,
	0xff09: key.NameTab,
	0xff0d: key.NameEnter,
	0xff13: key.NamePause,
	0xff14: key.NameScrollLock,
	0xff1b: key.NameEscape,
	0xff50: key.NameHome,
	0xff51: key.NameArrowLeft,
	0xff52: key.NameArrowUp,
	0xff53: key.NameArrowRight,
	0xff54: key.NameArrowDown,
	0xff55: key.NamePageUp,
	0xff56: key.NamePageDown,
	0xff57: key.NameEnd,
	0xff61: key.NamePrintScreen,
	0xff63: key.NameInsert,
	0xff67: key.NameContextMenu,
	0xff7f: key.NameNumLock,
	0xff8d: key.NameEnter,
	0xffbe: key.NameF1,
	0xffbf: key.NameF2,
	0xffc0: key.NameF3,
	0xffc1: key.NameF4,
	0xffc2: key.NameF5,
	0xffc3: key.NameF6,
	0xffc4: key.NameF7,
	0xffc5: key.NameF8,
	0xffc6: key.NameF9,
	0xffc7: key.NameF10,
	0xffc8: key.NameF11,
	0xffc9: key.NameF12,
	0xffe1: key.NameShift,
	0xffe2: key.NameShift,
	0xffe3: key.NameControl,
	0xffe4: key.NameControl,
	0xffe5: key.NameCapsLock,
	0xffe7: key.NameSuper,
	0xffe8: key.NameSuper,
	0xffe9: key.NameAlt,
	0xffea: key.NameAlt,
	0xffeb: key.NameSuper,
	0xffec: key.NameSuper,
	0xffff: key.NameDelete,
}

// CodeForKeycode returns the physical key for the X11 keycode kc.
func CodeForKeycode(kc uint8) key.Code {
	if kc < 8 {
		return key.CodeUnidentified
	}
	if c, ok := evdevCodes[kc-8]; ok {
		return c
	}
	return key.CodeUnidentified
}

// KeycodeForCode is the inverse of CodeForKeycode.
func KeycodeForCode(c key.Code) (uint8, bool) {
	for sc, code := range evdevCodes {
		if code == c {
			return sc + 8, true
		}
	}
	return 0, false
}

// NameForKeysym returns the named key for the keysym sym, if it is
// not a character key.
func NameForKeysym(sym uint32) (key.Name, bool) {
	n, ok := keysymNames[sym]
	return n, ok
}

// Logical returns the logical key for a keysym and the text it produced.
func Logical(sym uint32, text string) key.Key {
	if n, ok := NameForKeysym(sym); ok {
		return key.Named(n)
	}
	if text != "" {
		return key.Character(text)
	}
	return key.Named(key.NameUnidentified)
}

// Modifiers converts an X11 key or button state mask.
func Modifiers(state uint16) key.Modifiers {
	var kmods key.Modifiers
	if state&ShiftMask != 0 {
		kmods |= key.ModShift
	}
	if state&ControlMask != 0 {
		kmods |= key.ModCtrl
	}
	if state&Mod1Mask != 0 {
		kmods |= key.ModAlt
	}
	if state&Mod4Mask != 0 {
		kmods |= key.ModSuper
	}
	return kmods
}
