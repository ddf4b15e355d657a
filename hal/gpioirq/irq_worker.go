// hal/gpioirq/irq_worker.go
package gpioirq

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"blinky-go/hal/halcore"
)

// GPIOEvent is delivered from the worker to its consumer.
type GPIOEvent struct {
	DevID string
	Level bool // logical level, inversion applied
	Edge  halcore.Edge
	TS    time.Time
}

// Worker moves pin interrupts out of interrupt context. There is no
// debouncing: every observed level change becomes an event.
type Worker struct {
	// Written by ISR; MUST NOT block the ISR:
	isrQ chan isrEvent
	// Consumed by the button watcher:
	outQ    chan GPIOEvent
	stopped chan struct{}

	mu     sync.RWMutex
	inputs map[string]*watch // devID -> watch

	drops uint32 // ISR drop counter
}

type isrEvent struct {
	devID string
	level bool // captured in ISR
}

type watch struct {
	pin       halcore.IRQPin
	edge      halcore.Edge
	invert    bool
	lastLevel bool
}

func New(isrBuf, outBuf int) *Worker {
	if isrBuf <= 0 {
		isrBuf = 16
	}
	if outBuf <= 0 {
		outBuf = 16
	}
	return &Worker{
		isrQ:    make(chan isrEvent, isrBuf),
		outQ:    make(chan GPIOEvent, outBuf),
		stopped: make(chan struct{}),
		inputs:  map[string]*watch{},
	}
}

func (w *Worker) Start(ctx context.Context) {
	go func() {
		defer close(w.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-w.isrQ:
				w.handleISR(ev)
			}
		}
	}()
}

// Done is closed once the worker goroutine has exited.
func (w *Worker) Done() <-chan struct{} { return w.stopped }

func (w *Worker) Events() <-chan GPIOEvent { return w.outQ }

// RegisterInput arms the pin's interrupt and returns a cancel func. edge is
// the logical edge wanted; with invert set the pin is armed for the opposite
// physical edge.
func (w *Worker) RegisterInput(devID string, pin halcore.IRQPin, edge halcore.Edge, invert bool) (func(), error) {
	if edge == halcore.EdgeNone {
		return func() {}, nil
	}

	// Take the initial *logical* level snapshot so that subsequent edge
	// detection compares like-for-like.
	init := pin.Get()
	if invert {
		init = !init
	}
	wh := &watch{pin: pin, edge: edge, invert: invert, lastLevel: init}

	w.mu.Lock()
	w.inputs[devID] = wh
	w.mu.Unlock()

	// ISR handler: fast register read + non-blocking channel send.
	handler := func() {
		l := pin.Get()
		select {
		case w.isrQ <- isrEvent{devID: devID, level: l}:
		default:
			atomic.AddUint32(&w.drops, 1)
		}
	}
	if err := pin.SetIRQ(physical(edge, invert), handler); err != nil {
		w.mu.Lock()
		delete(w.inputs, devID)
		w.mu.Unlock()
		return nil, err
	}

	return func() {
		w.mu.Lock()
		if cur, ok := w.inputs[devID]; ok {
			_ = cur.pin.ClearIRQ()
			delete(w.inputs, devID)
		}
		w.mu.Unlock()
	}, nil
}

func (w *Worker) handleISR(ev isrEvent) {
	w.mu.RLock()
	wh := w.inputs[ev.devID]
	w.mu.RUnlock()
	if wh == nil {
		return
	}
	raw := ev.level
	if wh.invert {
		raw = !raw
	}

	var e halcore.Edge
	switch {
	case !wh.lastLevel && raw:
		e = halcore.EdgeRising
	case wh.lastLevel && !raw:
		e = halcore.EdgeFalling
	}
	wh.lastLevel = raw

	if e == halcore.EdgeNone || !wanted(wh.edge, e) {
		return
	}
	select {
	case w.outQ <- GPIOEvent{DevID: ev.devID, Level: raw, Edge: e, TS: time.Now()}:
	default:
		// drop to protect system if consumer is slow
	}
}

// wanted reports whether a seen (logical) edge matches the configuration.
func wanted(cfg, seen halcore.Edge) bool {
	if cfg == halcore.EdgeBoth {
		return true
	}
	return cfg == seen
}

func physical(e halcore.Edge, invert bool) halcore.Edge {
	if !invert {
		return e
	}
	switch e {
	case halcore.EdgeRising:
		return halcore.EdgeFalling
	case halcore.EdgeFalling:
		return halcore.EdgeRising
	}
	return e
}

func (w *Worker) ISRDrops() uint32 { return atomic.LoadUint32(&w.drops) }
