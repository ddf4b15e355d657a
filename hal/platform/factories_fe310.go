// hal/platform/factories_fe310.go
//go:build fe310

package platform

import (
	"io"
	"machine"
	"os"
	"sync"
	"time"

	"blinky-go/hal/halcore"
)

// pollInterval is how often the emulated pin-change interrupt samples.
const pollInterval = 2 * time.Millisecond

// CPUFrequency returns the running core frequency.
func CPUFrequency() uint32 { return machine.CPUFrequency() }

// TraceWriters returns the console (UART0 via the on-board debugger).
func TraceWriters() []io.Writer { return []io.Writer{os.Stdout} }

// DefaultPinFactory maps GPIO numbers directly to machine.Pin(n).
func DefaultPinFactory() halcore.PinFactory { return &fe310PinFactory{pins: map[int]*fe310Pin{}} }

// DefaultPixelFactory: the HiFive1 has no addressable pixels.
func DefaultPixelFactory() halcore.PixelFactory { return noPixels{} }

type noPixels struct{}

func (noPixels) Channel(int, int, int, uint8) (halcore.PixelChannel, bool) { return nil, false }

// ---- GPIO implementation ----

type fe310PinFactory struct {
	mu   sync.Mutex
	pins map[int]*fe310Pin
}

func (f *fe310PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// FE310-G002 exposes GPIO0..GPIO31 on a single port.
	if n < 0 || n > 31 {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[n]
	if !ok {
		p = &fe310Pin{p: machine.Pin(n), n: n}
		f.pins[n] = p
	}
	return p, true
}

type fe310Pin struct {
	p machine.Pin
	n int

	mu   sync.Mutex
	stop chan struct{}
}

// ConfigureInput ignores pull: the FE310 port only offers plain input mode.
func (r *fe310Pin) ConfigureInput(_ halcore.Pull) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinInput})
	return nil
}

func (r *fe310Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *fe310Pin) Set(level bool) { r.p.Set(level) }
func (r *fe310Pin) Get() bool      { return r.p.Get() }
func (r *fe310Pin) Number() int    { return r.n }

// SetIRQ emulates a pin-change interrupt with a sampling goroutine; the
// FE310 machine port has no SetInterrupt.
func (r *fe310Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	r.ClearIRQ()
	if edge == halcore.EdgeNone || handler == nil {
		return nil
	}
	stop := make(chan struct{})
	r.mu.Lock()
	r.stop = stop
	r.mu.Unlock()

	go func() {
		last := r.p.Get()
		for {
			select {
			case <-stop:
				return
			default:
			}
			time.Sleep(pollInterval)
			l := r.p.Get()
			if l == last {
				continue
			}
			if edge == halcore.EdgeBoth ||
				(edge == halcore.EdgeRising && l) ||
				(edge == halcore.EdgeFalling && !l) {
				handler()
			}
			last = l
		}
	}()
	return nil
}

func (r *fe310Pin) ClearIRQ() error {
	r.mu.Lock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	r.mu.Unlock()
	return nil
}
