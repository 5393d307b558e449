// SPDX-License-Identifier: Unlicense OR MIT

package unit_test

import (
	"math"
	"testing"

	"taoui.org/unit"
)

func TestLogicalToPhysical(t *testing.T) {
	tests := []struct {
		scale float64
		in    unit.LogicalSize
		exp   unit.PhysicalSize
	}{
		{1, unit.LogicalSize{Width: 800, Height: 600}, unit.PhysicalSize{Width: 800, Height: 600}},
		{2, unit.LogicalSize{Width: 800, Height: 600}, unit.PhysicalSize{Width: 1600, Height: 1200}},
		{1.5, unit.LogicalSize{Width: 101, Height: 33}, unit.PhysicalSize{Width: 152, Height: 50}},
		{1, unit.LogicalSize{Width: -5, Height: 0}, unit.PhysicalSize{}},
	}
	for _, test := range tests {
		if got := test.in.ToPhysical(test.scale); got != test.exp {
			t.Errorf("%v at scale %v: got %v, expected %v", test.in, test.scale, got, test.exp)
		}
	}
}

func TestPositionRoundTrip(t *testing.T) {
	{
		exp := unit.PhysicalPosition{X: -40, Y: 300}
		got := exp.ToLogical(2).ToPhysical(2)
		if got != exp {
			t.Errorf("round trip mismatch %v != %v", exp, got)
		}
	}

	{
		exp := unit.LogicalPosition{X: 10, Y: 20.5}
		got := unit.LogicalPosition{X: 10, Y: 20.5}.ToLogical(3)
		if got != exp {
			t.Errorf("ToLogical on logical value changed it: %v != %v", exp, got)
		}
	}
}

func TestValueConversion(t *testing.T) {
	if got := unit.Dp(100).ToPhysical(1.25); got != 125 {
		t.Errorf("Dp(100) at 1.25 = %v, expected 125", got)
	}
	if got := unit.Px(100).ToLogical(2); got != 50 {
		t.Errorf("Px(100) at 2 = %v, expected 50", got)
	}
	if got := unit.Px(7).ToPhysical(3); got != 7 {
		t.Errorf("Px(7) must not be scaled, got %v", got)
	}
	if !(unit.Value{}).IsZero() {
		t.Error("zero Value must report IsZero")
	}
}

func TestValidScaleFactor(t *testing.T) {
	for _, s := range []float64{0, -1, math.Inf(1), math.NaN()} {
		if unit.ValidScaleFactor(s) {
			t.Errorf("scale factor %v accepted", s)
		}
	}
	if !unit.ValidScaleFactor(1.75) {
		t.Error("scale factor 1.75 rejected")
	}
}

func TestInvalidScalePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero scale factor")
		}
	}()
	unit.LogicalSize{Width: 1, Height: 1}.ToPhysical(0)
}

func TestRectIntersect(t *testing.T) {
	a := unit.Rect{Min: unit.PhysicalPosition{X: 0, Y: 0}, Size: unit.PhysicalSize{Width: 100, Height: 100}}
	tests := []struct {
		b   unit.Rect
		exp uint64
	}{
		{unit.Rect{Min: unit.PhysicalPosition{X: 50, Y: 50}, Size: unit.PhysicalSize{Width: 100, Height: 100}}, 2500},
		{unit.Rect{Min: unit.PhysicalPosition{X: 100, Y: 0}, Size: unit.PhysicalSize{Width: 10, Height: 10}}, 0},
		{unit.Rect{Min: unit.PhysicalPosition{X: -10, Y: -10}, Size: unit.PhysicalSize{Width: 20, Height: 20}}, 100},
	}
	for _, test := range tests {
		if got := a.Intersect(test.b); got != test.exp {
			t.Errorf("Intersect(%v) = %d, expected %d", test.b, got, test.exp)
		}
	}
}
