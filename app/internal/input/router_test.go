// SPDX-License-Identifier: Unlicense OR MIT

package input

import (
	"reflect"
	"testing"

	"taoui.org/io/event"
	"taoui.org/io/key"
	"taoui.org/io/pointer"
	"taoui.org/unit"
)

type recorder struct {
	events []event.Event
}

func (r *recorder) emit(w event.WindowID, e event.Event) {
	r.events = append(r.events, e)
}

func press(c key.Code, k key.Key) key.Event {
	return key.Event{Code: c, Key: k, State: event.Pressed}
}

func release(c key.Code, k key.Key) key.Event {
	return key.Event{Code: c, Key: k, State: event.Released}
}

func TestModifiersBeforeKey(t *testing.T) {
	r := new(recorder)
	q := NewRouter(r.emit)
	// Shift down, then 'A' reported with the shift bit set, then shift up.
	q.Key(1, 0, press(key.CodeShiftLeft, key.Named(key.NameShift)))
	q.Key(1, key.ModShift, press(key.CodeKeyA, key.Character("A")))
	q.Key(1, key.ModShift, release(key.CodeShiftLeft, key.Named(key.NameShift)))

	exp := []event.Event{
		key.Event{Code: key.CodeShiftLeft, Key: key.Named(key.NameShift), State: event.Pressed, Location: key.LocationLeft},
		key.ModifiersEvent{Modifiers: key.ModShift},
		key.Event{Code: key.CodeKeyA, Key: key.Character("A"), State: event.Pressed},
		key.Event{Code: key.CodeShiftLeft, Key: key.Named(key.NameShift), State: event.Released, Location: key.LocationLeft},
		key.ModifiersEvent{Modifiers: 0},
	}
	if !reflect.DeepEqual(r.events, exp) {
		t.Errorf("got events\n%+v\nexpected\n%+v", r.events, exp)
	}
}

func TestModifiersFromPlatformState(t *testing.T) {
	r := new(recorder)
	q := NewRouter(r.emit)
	// The platform reports ctrl without a preceding ctrl key event,
	// as happens when the key was pressed while another window had focus.
	q.Button(3, key.ModCtrl, pointer.ButtonLeft, event.Pressed)
	if len(r.events) != 2 {
		t.Fatalf("got %d events, expected 2", len(r.events))
	}
	if _, ok := r.events[0].(key.ModifiersEvent); !ok {
		t.Errorf("first event is %T, expected key.ModifiersEvent", r.events[0])
	}
	if !q.Pressed(3, pointer.ButtonLeft) {
		t.Error("left button not tracked as pressed")
	}
	q.Button(3, key.ModCtrl, pointer.ButtonLeft, event.Released)
	if q.Pressed(3, pointer.ButtonLeft) {
		t.Error("left button still pressed after release")
	}
	if len(r.events) != 3 {
		t.Errorf("unchanged modifiers emitted an extra event: %+v", r.events)
	}
}

func TestBothShiftKeys(t *testing.T) {
	r := new(recorder)
	q := NewRouter(r.emit)
	q.Key(1, 0, press(key.CodeShiftLeft, key.Named(key.NameShift)))
	q.Key(1, key.ModShift, press(key.CodeShiftRight, key.Named(key.NameShift)))
	q.Key(1, key.ModShift, release(key.CodeShiftLeft, key.Named(key.NameShift)))
	if got := q.Modifiers(); got != key.ModShift {
		t.Errorf("modifiers after releasing one shift = %v, expected Shift", got)
	}
	q.Key(1, key.ModShift, release(key.CodeShiftRight, key.Named(key.NameShift)))
	if got := q.Modifiers(); got != 0 {
		t.Errorf("modifiers after releasing both = %v", got)
	}
}

func TestCursorAndForget(t *testing.T) {
	r := new(recorder)
	q := NewRouter(r.emit)
	q.Move(2, 0, unit.Point{X: 1.5, Y: 2})
	q.Wheel(2, 0, pointer.LineDelta{Y: 1})
	if p, ok := q.Cursor(2); !ok || p != (unit.Point{X: 1.5, Y: 2}) {
		t.Errorf("cursor = %v, %v", p, ok)
	}
	q.Button(2, 0, pointer.ButtonLeft, event.Pressed)
	q.Forget(2)
	if _, ok := q.Cursor(2); ok {
		t.Error("cursor kept after Forget")
	}
	if q.Pressed(2, pointer.ButtonLeft) {
		t.Error("button kept after Forget")
	}
	if _, ok := r.events[1].(pointer.WheelEvent); !ok {
		t.Errorf("second event is %T", r.events[1])
	}
}
