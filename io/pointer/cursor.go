// SPDX-License-Identifier: Unlicense OR MIT

package pointer

// Cursor is a standard cursor shape, named after the CSS cursor
// keywords. Drivers map shapes they lack to the closest available one,
// or to CursorDefault.
type Cursor byte

const (
	CursorDefault Cursor = iota
	CursorCrosshair
	// CursorHand is the pointing hand shown over links.
	CursorHand
	CursorArrow
	CursorMove
	// CursorText is the I-beam.
	CursorText
	// CursorWait means the application is busy and ignores input.
	CursorWait
	CursorHelp
	// CursorProgress means the application is busy but still
	// responsive.
	CursorProgress
	CursorNotAllowed
	CursorContextMenu
	CursorCell
	CursorVerticalText
	CursorAlias
	CursorCopy
	CursorNoDrop
	CursorGrab
	CursorGrabbing
	CursorAllScroll
	CursorZoomIn
	CursorZoomOut

	// Edge and corner resize shapes, by compass direction.
	CursorEastResize
	CursorNorthResize
	CursorNorthEastResize
	CursorNorthWestResize
	CursorSouthResize
	CursorSouthEastResize
	CursorSouthWestResize
	CursorWestResize
	// Bidirectional resize shapes.
	CursorEastWestResize
	CursorNorthSouthResize
	CursorNorthEastSouthWestResize
	CursorNorthWestSouthEastResize
	CursorColResize
	CursorRowResize

	cursorCount
)

var cursorNames = [cursorCount]string{
	CursorDefault:                  "Default",
	CursorCrosshair:                "Crosshair",
	CursorHand:                     "Hand",
	CursorArrow:                    "Arrow",
	CursorMove:                     "Move",
	CursorText:                     "Text",
	CursorWait:                     "Wait",
	CursorHelp:                     "Help",
	CursorProgress:                 "Progress",
	CursorNotAllowed:               "NotAllowed",
	CursorContextMenu:              "ContextMenu",
	CursorCell:                     "Cell",
	CursorVerticalText:             "VerticalText",
	CursorAlias:                    "Alias",
	CursorCopy:                     "Copy",
	CursorNoDrop:                   "NoDrop",
	CursorGrab:                     "Grab",
	CursorGrabbing:                 "Grabbing",
	CursorAllScroll:                "AllScroll",
	CursorZoomIn:                   "ZoomIn",
	CursorZoomOut:                  "ZoomOut",
	CursorEastResize:               "EResize",
	CursorNorthResize:              "NResize",
	CursorNorthEastResize:          "NeResize",
	CursorNorthWestResize:          "NwResize",
	CursorSouthResize:              "SResize",
	CursorSouthEastResize:          "SeResize",
	CursorSouthWestResize:          "SwResize",
	CursorWestResize:               "WResize",
	CursorEastWestResize:           "EwResize",
	CursorNorthSouthResize:         "NsResize",
	CursorNorthEastSouthWestResize: "NeswResize",
	CursorNorthWestSouthEastResize: "NwseResize",
	CursorColResize:                "ColResize",
	CursorRowResize:                "RowResize",
}

func (c Cursor) String() string {
	if c >= cursorCount {
		panic("invalid Cursor")
	}
	return cursorNames[c]
}

// ParseCursor returns the Cursor named s, as returned by String.
func ParseCursor(s string) (Cursor, bool) {
	for i, n := range cursorNames {
		if n == s {
			return Cursor(i), true
		}
	}
	return CursorDefault, false
}
