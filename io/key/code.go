// SPDX-License-Identifier: Unlicense OR MIT

package key

// Code identifies a physical key by its position on a US keyboard,
// independent of the active layout.
type Code uint16

const (
	CodeUnidentified Code = iota
	CodeBackquote
	CodeBackslash
	CodeBracketLeft
	CodeBracketRight
	CodeComma
	CodeDigit0
	CodeDigit1
	CodeDigit2
	CodeDigit3
	CodeDigit4
	CodeDigit5
	CodeDigit6
	CodeDigit7
	CodeDigit8
	CodeDigit9
	CodeEqual
	CodeKeyA
	CodeKeyB
	CodeKeyC
	CodeKeyD
	CodeKeyE
	CodeKeyF
	CodeKeyG
	CodeKeyH
	CodeKeyI
	CodeKeyJ
	CodeKeyK
	CodeKeyL
	CodeKeyM
	CodeKeyN
	CodeKeyO
	CodeKeyP
	CodeKeyQ
	CodeKeyR
	CodeKeyS
	CodeKeyT
	CodeKeyU
	CodeKeyV
	CodeKeyW
	CodeKeyX
	CodeKeyY
	CodeKeyZ
	CodeMinus
	CodePeriod
	CodeQuote
	CodeSemicolon
	CodeSlash
	CodeAltLeft
	CodeAltRight
	CodeBackspace
	CodeCapsLock
	CodeContextMenu
	CodeControlLeft
	CodeControlRight
	CodeEnter
	CodeSuperLeft
	CodeSuperRight
	CodeShiftLeft
	CodeShiftRight
	CodeSpace
	CodeTab
	CodeDelete
	CodeEnd
	CodeHome
	CodeInsert
	CodePageDown
	CodePageUp
	CodeArrowDown
	CodeArrowLeft
	CodeArrowRight
	CodeArrowUp
	CodeNumLock
	CodeNumpad0
	CodeNumpad1
	CodeNumpad2
	CodeNumpad3
	CodeNumpad4
	CodeNumpad5
	CodeNumpad6
	CodeNumpad7
	CodeNumpad8
	CodeNumpad9
	CodeNumpadAdd
	CodeNumpadDecimal
	CodeNumpadDivide
	CodeNumpadEnter
	CodeNumpadMultiply
	CodeNumpadSubtract
	CodeEscape
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
	CodePrintScreen
	CodeScrollLock
	CodePause

	codeCount
)

var codeNames = [codeCount]string{
	CodeUnidentified:   "Unidentified",
	CodeBackquote:      "Backquote",
	CodeBackslash:      "Backslash",
	CodeBracketLeft:    "BracketLeft",
	CodeBracketRight:   "BracketRight",
	CodeComma:          "Comma",
	CodeDigit0:         "Digit0",
	CodeDigit1:         "Digit1",
	CodeDigit2:         "Digit2",
	CodeDigit3:         "Digit3",
	CodeDigit4:         "Digit4",
	CodeDigit5:         "Digit5",
	CodeDigit6:         "Digit6",
	CodeDigit7:         "Digit7",
	CodeDigit8:         "Digit8",
	CodeDigit9:         "Digit9",
	CodeEqual:          "Equal",
	CodeKeyA:           "KeyA",
	CodeKeyB:           "KeyB",
	CodeKeyC:           "KeyC",
	CodeKeyD:           "KeyD",
	CodeKeyE:           "KeyE",
	CodeKeyF:           "KeyF",
	CodeKeyG:           "KeyG",
	CodeKeyH:           "KeyH",
	CodeKeyI:           "KeyI",
	CodeKeyJ:           "KeyJ",
	CodeKeyK:           "KeyK",
	CodeKeyL:           "KeyL",
	CodeKeyM:           "KeyM",
	CodeKeyN:           "KeyN",
	CodeKeyO:           "KeyO",
	CodeKeyP:           "KeyP",
	CodeKeyQ:           "KeyQ",
	CodeKeyR:           "KeyR",
	CodeKeyS:           "KeyS",
	CodeKeyT:           "KeyT",
	CodeKeyU:           "KeyU",
	CodeKeyV:           "KeyV",
	CodeKeyW:           "KeyW",
	CodeKeyX:           "KeyX",
	CodeKeyY:           "KeyY",
	CodeKeyZ:           "KeyZ",
	CodeMinus:          "Minus",
	CodePeriod:         "Period",
	CodeQuote:          "Quote",
	CodeSemicolon:      "Semicolon",
	CodeSlash:          "Slash",
	CodeAltLeft:        "AltLeft",
	CodeAltRight:       "AltRight",
	CodeBackspace:      "Backspace",
	CodeCapsLock:       "CapsLock",
	CodeContextMenu:    "ContextMenu",
	CodeControlLeft:    "ControlLeft",
	CodeControlRight:   "ControlRight",
	CodeEnter:          "Enter",
	CodeSuperLeft:      "SuperLeft",
	CodeSuperRight:     "SuperRight",
	CodeShiftLeft:      "ShiftLeft",
	CodeShiftRight:     "ShiftRight",
	CodeSpace:          "Space",
	CodeTab:            "Tab",
	CodeDelete:         "Delete",
	CodeEnd:            "End",
	CodeHome:           "Home",
	CodeInsert:         "Insert",
	CodePageDown:       "PageDown",
	CodePageUp:         "PageUp",
	CodeArrowDown:      "ArrowDown",
	CodeArrowLeft:      "ArrowLeft",
	CodeArrowRight:     "ArrowRight",
	CodeArrowUp:        "ArrowUp",
	CodeNumLock:        "NumLock",
	CodeNumpad0:        "Numpad0",
	CodeNumpad1:        "Numpad1",
	CodeNumpad2:        "Numpad2",
	CodeNumpad3:        "Numpad3",
	CodeNumpad4:        "Numpad4",
	CodeNumpad5:        "Numpad5",
	CodeNumpad6:        "Numpad6",
	CodeNumpad7:        "Numpad7",
	CodeNumpad8:        "Numpad8",
	CodeNumpad9:        "Numpad9",
	CodeNumpadAdd:      "NumpadAdd",
	CodeNumpadDecimal:  "NumpadDecimal",
	CodeNumpadDivide:   "NumpadDivide",
	CodeNumpadEnter:    "NumpadEnter",
	CodeNumpadMultiply: "NumpadMultiply",
	CodeNumpadSubtract: "NumpadSubtract",
	CodeEscape:         "Escape",
	CodeF1:             "F1",
	CodeF2:             "F2",
	CodeF3:             "F3",
	CodeF4:             "F4",
	CodeF5:             "F5",
	CodeF6:             "F6",
	CodeF7:             "F7",
	CodeF8:             "F8",
	CodeF9:             "F9",
	CodeF10:            "F10",
	CodeF11:            "F11",
	CodeF12:            "F12",
	CodePrintScreen:    "PrintScreen",
	CodeScrollLock:     "ScrollLock",
	CodePause:          "Pause",
}

func (c Code) String() string {
	if c >= codeCount {
		return codeNames[CodeUnidentified]
	}
	return codeNames[c]
}

// Location returns the location of the physical key c.
func (c Code) Location() Location {
	switch c {
	case CodeAltLeft, CodeControlLeft, CodeShiftLeft, CodeSuperLeft:
		return LocationLeft
	case CodeAltRight, CodeControlRight, CodeShiftRight, CodeSuperRight:
		return LocationRight
	}
	if c >= CodeNumLock && c <= CodeNumpadSubtract && c != CodeNumLock {
		return LocationNumpad
	}
	return LocationStandard
}
