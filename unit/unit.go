// SPDX-License-Identifier: Unlicense OR MIT

/*
Package unit implements device independent units and the sizes and
positions built from them.

Physical pixels, or px, are the pixels of the underlying display. Their
size vary between platforms and displays.

Logical pixels, or dp, are physical pixels divided by the scale factor
of the display a window is on. 1 dp has the same apparent size across
platforms and display resolutions.

Windows report their geometry in physical pixels. Use logical values
to describe what an application wants, and convert with the scale
factor of the window or monitor at hand.
*/
package unit

import (
	"fmt"
	"math"
)

// Value is a value with a unit.
type Value struct {
	V float64
	U Unit
}

// Unit represents a unit for a Value.
type Unit uint8

const (
	// UnitPx represent device pixels in the resolution of
	// the underlying display.
	UnitPx Unit = iota
	// UnitDp represents logical pixels. 1 dp will have the same
	// apparent size across platforms and display resolutions.
	UnitDp
)

// Px returns the Value for v device pixels.
func Px(v float64) Value {
	return Value{V: v, U: UnitPx}
}

// Dp returns the Value for v logical pixels.
func Dp(v float64) Value {
	return Value{V: v, U: UnitDp}
}

// IsZero reports whether v is unset.
func (v Value) IsZero() bool {
	return v.V == 0
}

// ToPhysical converts v to device pixels for the scale factor.
func (v Value) ToPhysical(scale float64) float64 {
	if v.U == UnitPx {
		return v.V
	}
	return v.V * scale
}

// ToLogical converts v to logical pixels for the scale factor.
func (v Value) ToLogical(scale float64) float64 {
	if v.U == UnitDp {
		return v.V
	}
	return v.V / scale
}

func (v Value) String() string {
	return fmt.Sprintf("%g%s", v.V, v.U)
}

func (u Unit) String() string {
	switch u {
	case UnitPx:
		return "px"
	case UnitDp:
		return "dp"
	default:
		panic("unknown unit")
	}
}

// ValidScaleFactor reports whether s can be used to convert between
// logical and physical pixels.
func ValidScaleFactor(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}

// Size is either a PhysicalSize or a LogicalSize.
type Size interface {
	ToPhysical(scale float64) PhysicalSize
	ToLogical(scale float64) LogicalSize
}

// Position is either a PhysicalPosition or a LogicalPosition.
type Position interface {
	ToPhysical(scale float64) PhysicalPosition
	ToLogical(scale float64) LogicalPosition
}

// PhysicalSize is a size in device pixels.
type PhysicalSize struct {
	Width, Height uint32
}

// LogicalSize is a size in logical pixels.
type LogicalSize struct {
	Width, Height float64
}

// PhysicalPosition is a position in device pixels. The origin is
// the top-left corner of the desktop.
type PhysicalPosition struct {
	X, Y int32
}

// LogicalPosition is a position in logical pixels.
type LogicalPosition struct {
	X, Y float64
}

// Point is a sub-pixel position in device pixels, as reported by
// pointer devices.
type Point struct {
	X, Y float64
}

func (s PhysicalSize) ToPhysical(scale float64) PhysicalSize { return s }

func (s PhysicalSize) ToLogical(scale float64) LogicalSize {
	checkScale(scale)
	return LogicalSize{
		Width:  float64(s.Width) / scale,
		Height: float64(s.Height) / scale,
	}
}

// Area returns Width*Height.
func (s PhysicalSize) Area() uint64 {
	return uint64(s.Width) * uint64(s.Height)
}

func (s PhysicalSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

func (s LogicalSize) ToPhysical(scale float64) PhysicalSize {
	checkScale(scale)
	return PhysicalSize{
		Width:  roundU32(s.Width * scale),
		Height: roundU32(s.Height * scale),
	}
}

func (s LogicalSize) ToLogical(scale float64) LogicalSize { return s }

func (p PhysicalPosition) ToPhysical(scale float64) PhysicalPosition { return p }

func (p PhysicalPosition) ToLogical(scale float64) LogicalPosition {
	checkScale(scale)
	return LogicalPosition{
		X: float64(p.X) / scale,
		Y: float64(p.Y) / scale,
	}
}

func (p PhysicalPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func (p LogicalPosition) ToPhysical(scale float64) PhysicalPosition {
	checkScale(scale)
	return PhysicalPosition{
		X: int32(math.Round(p.X * scale)),
		Y: int32(math.Round(p.Y * scale)),
	}
}

func (p LogicalPosition) ToLogical(scale float64) LogicalPosition { return p }

// Rect is an axis aligned rectangle in device pixels.
type Rect struct {
	Min  PhysicalPosition
	Size PhysicalSize
}

// Intersect returns the area of the overlap between r and o.
func (r Rect) Intersect(o Rect) uint64 {
	x0 := max64(int64(r.Min.X), int64(o.Min.X))
	y0 := max64(int64(r.Min.Y), int64(o.Min.Y))
	x1 := min64(int64(r.Min.X)+int64(r.Size.Width), int64(o.Min.X)+int64(o.Size.Width))
	y1 := min64(int64(r.Min.Y)+int64(r.Size.Height), int64(o.Min.Y)+int64(o.Size.Height))
	if x1 <= x0 || y1 <= y0 {
		return 0
	}
	return uint64(x1-x0) * uint64(y1-y0)
}

func checkScale(s float64) {
	if !ValidScaleFactor(s) {
		panic(fmt.Sprintf("unit: invalid scale factor %v", s))
	}
}

func roundU32(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(math.Round(v))
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
