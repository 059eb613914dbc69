package monitor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"hotwatch/internal/clock"
	"hotwatch/internal/notify"
	"hotwatch/internal/types"

	"go.uber.org/zap/zaptest"
)

type fakeDevices struct {
	next   types.DeviceSet
	err    error
	polls  int
	onPoll func(n int)
}

func (f *fakeDevices) Devices(ctx context.Context) (types.DeviceSet, error) {
	f.polls++
	if err := ctx.Err(); err != nil {
		return types.NewDeviceSet(), err
	}
	if f.onPoll != nil {
		f.onPoll(f.polls)
	}
	if f.err != nil {
		return types.NewDeviceSet(), f.err
	}
	return types.NewDeviceSet(f.next.Sorted()...), nil
}

type fakeLookup struct {
	id  types.Identity
	err error
}

func (f *fakeLookup) Lookup(ctx context.Context) (types.Identity, error) {
	if err := ctx.Err(); err != nil {
		return types.UnknownIdentity, err
	}
	if f.err != nil {
		return types.UnknownIdentity, f.err
	}
	return f.id, nil
}

type sentMessage struct {
	at  time.Time
	msg notify.Message
}

type recordingNotifier struct {
	clock clock.Clock
	sent  []sentMessage
}

func (r *recordingNotifier) Notify(_ context.Context, m notify.Message) {
	r.sent = append(r.sent, sentMessage{at: r.clock.Now(), msg: m})
}

func (r *recordingNotifier) kinds() []notify.Kind {
	out := make([]notify.Kind, 0, len(r.sent))
	for _, s := range r.sent {
		out = append(out, s.msg.Kind)
	}
	return out
}

func (r *recordingNotifier) ofKind(k notify.Kind) []notify.Message {
	var out []notify.Message
	for _, s := range r.sent {
		if s.msg.Kind == k {
			out = append(out, s.msg)
		}
	}
	return out
}

type recordingEvents struct {
	lines []string
}

func (e *recordingEvents) Log(format string, v ...any) {
	e.lines = append(e.lines, fmt.Sprintf(format, v...))
}

type harness struct {
	m       *Monitor
	clk     *clock.Fake
	devices *fakeDevices
	lookup  *fakeLookup
	notes   *recordingNotifier
	events  *recordingEvents
}

var (
	ispA = types.Identity{Address: "1.2.3.4", Provider: "ISP-A"}
	ispB = types.Identity{Address: "1.2.3.4", Provider: "ISP-B"}
	ispC = types.Identity{Address: "5.6.7.8", Provider: "ISP-C"}
)

func newHarness(t *testing.T, start time.Time) *harness {
	t.Helper()
	clk := clock.NewFake(start)
	h := &harness{
		clk:     clk,
		devices: &fakeDevices{next: types.NewDeviceSet()},
		lookup:  &fakeLookup{id: ispA},
		notes:   &recordingNotifier{clock: clk},
		events:  &recordingEvents{},
	}
	h.m = New(Config{
		Devices:  h.devices,
		Identity: h.lookup,
		Notifier: h.notes,
		Events:   h.events,
		Clock:    clk,
	}, zaptest.NewLogger(t))
	return h
}

// start begins a run and drops the started notification
func (h *harness) start() *State {
	st := h.m.Start(context.Background())
	h.notes.sent = nil
	h.events.lines = nil
	return st
}

// poll sets the next device set and runs one cycle
func (h *harness) poll(st *State, addrs ...string) time.Duration {
	h.devices.next = types.NewDeviceSet(addrs...)
	return h.m.Cycle(context.Background(), st)
}

func noon() time.Time {
	return time.Date(2024, 5, 17, 12, 0, 0, 0, time.Local)
}
