// SPDX-License-Identifier: Unlicense OR MIT

//go:build ((linux && !android) || freebsd || openbsd) && !headless

package wm

import (
	"testing"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestReadEventsStopsOnDone(t *testing.T) {
	wait := func() (xgb.Event, xgb.Error) {
		return xproto.ExposeEvent{}, nil
	}
	events := make(chan xgb.Event, 1)
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		readEvents(wait, events, done, zap.NewNop())
		close(stopped)
	}()
	// Nobody drains events: the reader blocks on the full channel.
	<-events
	close(done)
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("reader still blocked after done was closed")
	}
}

func TestReadEventsClosesOnEOF(t *testing.T) {
	calls := 0
	wait := func() (xgb.Event, xgb.Error) {
		calls++
		if calls == 1 {
			return xproto.ExposeEvent{}, nil
		}
		return nil, nil
	}
	events := make(chan xgb.Event, 4)
	readEvents(wait, events, make(chan struct{}), zap.NewNop())
	var got []xgb.Event
	for ev := range events {
		got = append(got, ev)
	}
	assert.Equal(t, []xgb.Event{xproto.ExposeEvent{}}, got)
}
