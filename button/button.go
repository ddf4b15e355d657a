// Package button turns button interrupts into the two edge flags the
// sequencer consumes.
package button

import (
	"context"
	"sync/atomic"

	"blinky-go/bus"
	"blinky-go/hal/gpioirq"
	"blinky-go/types"
)

// Edges holds the pushed/released flags. The interrupt side sets them with
// Push/Release (never blocking); the sequencer reads and clears them.
// There is no debouncing: a bouncing contact sets the flags as often as it
// bounces.
type Edges struct {
	pushed   atomic.Bool
	released atomic.Bool
	wake     chan struct{}
}

func NewEdges() *Edges {
	return &Edges{wake: make(chan struct{}, 1)}
}

func (e *Edges) Push() {
	e.pushed.Store(true)
	e.signal()
}

func (e *Edges) Release() {
	e.released.Store(true)
	e.signal()
}

func (e *Edges) signal() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Edges) Pushed() bool   { return e.pushed.Load() }
func (e *Edges) Released() bool { return e.released.Load() }
func (e *Edges) ClearPushed()   { e.pushed.Store(false) }
func (e *Edges) ClearReleased() { e.released.Store(false) }

// WaitPushed blocks until the pushed flag is set. It does not clear it.
func (e *Edges) WaitPushed(ctx context.Context) error { return e.wait(ctx, &e.pushed) }

// WaitReleased blocks until the released flag is set. It does not clear it.
func (e *Edges) WaitReleased(ctx context.Context) error { return e.wait(ctx, &e.released) }

func (e *Edges) wait(ctx context.Context, flag *atomic.Bool) error {
	for !flag.Load() {
		select {
		case <-e.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Watch feeds edges from GPIO events whose Level is the logical "pressed"
// state, and publishes each edge on pub when non-nil. It returns when ctx
// is done or events is closed.
func Watch(ctx context.Context, events <-chan gpioirq.GPIOEvent, e *Edges, pub bus.Publisher) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			edge := types.EdgeReleased
			if ev.Level {
				edge = types.EdgePushed
				e.Push()
			} else {
				e.Release()
			}
			if pub != nil {
				pub.Publish(&bus.Message{
					Topic:   types.TopicButtonEdge(),
					Payload: types.ButtonValue{Edge: edge},
				})
			}
		}
	}
}
