package button

import (
	"context"
	"testing"
	"time"

	"blinky-go/bus"
	"blinky-go/hal/gpioirq"
	"blinky-go/hal/halcore"
	"blinky-go/types"
)

func TestFlagsIndependent(t *testing.T) {
	e := NewEdges()
	e.Push()
	if !e.Pushed() || e.Released() {
		t.Fatal("push must only set pushed")
	}
	e.Release()
	e.ClearPushed()
	if e.Pushed() || !e.Released() {
		t.Fatal("clearing pushed must not touch released")
	}
	e.ClearReleased()
	if e.Released() {
		t.Fatal("released not cleared")
	}
}

func TestWaitReturnsImmediatelyWhenSet(t *testing.T) {
	e := NewEdges()
	e.Push()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := e.WaitPushed(ctx); err != nil {
		t.Fatalf("WaitPushed: %v", err)
	}
	if !e.Pushed() {
		t.Fatal("wait must not consume the flag")
	}
}

func TestWaitBlocksUntilEdge(t *testing.T) {
	e := NewEdges()
	e.Push() // a stale wake token must not satisfy WaitReleased

	done := make(chan error, 1)
	go func() { done <- e.WaitReleased(context.Background()) }()

	select {
	case <-done:
		t.Fatal("WaitReleased returned before release")
	case <-time.After(20 * time.Millisecond):
	}
	e.Release()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("WaitReleased: %v", err)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("WaitReleased did not wake")
	}
}

func TestWaitHonoursContext(t *testing.T) {
	e := NewEdges()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := e.WaitPushed(ctx); err != context.Canceled {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestWatchMapsLevels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := bus.NewBus(8)
	sub := b.NewConnection("t").Subscribe(types.TopicButtonEdge())

	ch := make(chan gpioirq.GPIOEvent, 4)
	e := NewEdges()
	done := make(chan struct{})
	go func() { Watch(ctx, ch, e, b); close(done) }()

	ch <- gpioirq.GPIOEvent{DevID: "button", Level: true, Edge: halcore.EdgeRising}
	if err := waitFlag(e.Pushed); err != nil {
		t.Fatal(err)
	}
	expectEdge(t, sub, types.EdgePushed)

	ch <- gpioirq.GPIOEvent{DevID: "button", Level: false, Edge: halcore.EdgeFalling}
	if err := waitFlag(e.Released); err != nil {
		t.Fatal(err)
	}
	expectEdge(t, sub, types.EdgeReleased)

	close(ch)
	select {
	case <-done:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("Watch did not return on closed channel")
	}
}

func waitFlag(f func() bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	for !f() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
	return nil
}

func expectEdge(t *testing.T, s *bus.Subscription, want types.ButtonEdge) {
	t.Helper()
	select {
	case m := <-s.Channel():
		if v := m.Payload.(types.ButtonValue); v.Edge != want {
			t.Fatalf("edge = %s, want %s", v.Edge, want)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatalf("no %s edge published", want)
	}
}
