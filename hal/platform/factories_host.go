// hal/platform/factories_host.go
//go:build !tinygo

package platform

import (
	"io"
	"os"
	"sync"

	"blinky-go/hal/halcore"
)

// HostCPUHz is reported by CPUFrequency on host builds.
var HostCPUHz uint32 = 320_000_000

// CPUFrequency returns the simulated core clock.
func CPUFrequency() uint32 { return HostCPUHz }

// TraceWriters returns the host console.
func TraceWriters() []io.Writer { return []io.Writer{os.Stdout} }

// ----------------------------- GPIO (host) -----------------------------------

// FakePin implements GPIOPin and IRQPin for host-side tests and the simulator.
type FakePin struct {
	mu       sync.RWMutex
	number   int
	level    bool
	modeOut  bool
	pull     halcore.Pull
	configs  int
	irqEdge  halcore.Edge
	irqFunc  func()
	onChange func(level bool)
}

func (p *FakePin) ConfigureInput(pull halcore.Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.configs++
	// An idle pulled-up input reads high.
	if pull == halcore.PullUp {
		p.level = true
	}
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.configs++
	cb := p.onChange
	p.mu.Unlock()
	if cb != nil {
		cb(initial)
	}
	return nil
}

// Set drives the level and, like a pin-change interrupt, calls the armed
// handler when the change matches the configured edge.
func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	old := p.level
	p.level = level
	want := irqWanted(p.irqEdge, edgeFrom(old, level))
	irq := p.irqFunc
	cb := p.onChange
	p.mu.Unlock()

	if cb != nil && old != level {
		cb(level)
	}
	if want && irq != nil {
		irq() // ISR-style callback used by gpioirq.Worker
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	v := p.level
	p.mu.RUnlock()
	return v
}

func (p *FakePin) Number() int { return p.number }

// IsOutput reports the configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// Configures counts ConfigureInput/ConfigureOutput calls.
func (p *FakePin) Configures() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.configs
}

// OnChange registers an observer of output level changes.
func (p *FakePin) OnChange(fn func(level bool)) {
	p.mu.Lock()
	p.onChange = fn
	p.mu.Unlock()
}

func (p *FakePin) SetIRQ(edge halcore.Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = halcore.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

func edgeFrom(old, new bool) halcore.Edge {
	switch {
	case !old && new:
		return halcore.EdgeRising
	case old && !new:
		return halcore.EdgeFalling
	default:
		return halcore.EdgeNone
	}
}

func irqWanted(cfg, seen halcore.Edge) bool {
	switch cfg {
	case halcore.EdgeBoth:
		return seen == halcore.EdgeRising || seen == halcore.EdgeFalling
	case halcore.EdgeNone:
		return false
	default:
		return cfg == seen
	}
}

// HostPinFactory returns stable *FakePin instances per number.
type HostPinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *HostPinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	return f.pin(n)
}

func (f *HostPinFactory) pin(n int) (*FakePin, bool) {
	if n < 0 || n > maxHostPin {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = &FakePin{number: n}
		f.pins[n] = p
	}
	return p, true
}

// Get exposes the underlying *FakePin (e.g. to drive button edges).
func (f *HostPinFactory) Get(n int) (*FakePin, bool) { return f.pin(n) }

const maxHostPin = 63

// DefaultPinFactory provides a host GPIO factory.
func DefaultPinFactory() halcore.PinFactory { return NewHostPinFactory() }

func NewHostPinFactory() *HostPinFactory {
	return &HostPinFactory{pins: make(map[int]*FakePin)}
}

// ----------------------------- Pixel (host) ----------------------------------

// FakePixel is an in-memory RGB pixel.
type FakePixel struct {
	mu    sync.Mutex
	rgb   [3]uint8
	ready bool
}

// RGB returns the current colour.
func (p *FakePixel) RGB() [3]uint8 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rgb
}

type fakePixelChannel struct {
	px         *FakePixel
	ch         int
	brightness uint8
}

func (c *fakePixelChannel) ConfigureOutput(initial bool) error {
	c.px.mu.Lock()
	c.px.ready = true
	c.px.mu.Unlock()
	c.Set(initial)
	return nil
}

func (c *fakePixelChannel) Set(on bool) {
	c.px.mu.Lock()
	if on {
		c.px.rgb[c.ch] = c.brightness
	} else {
		c.px.rgb[c.ch] = 0
	}
	c.px.mu.Unlock()
}

// HostPixelFactory hands out channels of per-pin FakePixels.
type HostPixelFactory struct {
	mu     sync.Mutex
	pixels map[int]*FakePixel
}

func (f *HostPixelFactory) Channel(pin, _ int, channel int, brightness uint8) (halcore.PixelChannel, bool) {
	if channel < halcore.ChannelRed || channel > halcore.ChannelBlue {
		return nil, false
	}
	px, ok := f.Get(pin)
	if !ok {
		return nil, false
	}
	return &fakePixelChannel{px: px, ch: channel, brightness: brightness}, true
}

// Get returns the FakePixel on a data pin, creating it on first use.
func (f *HostPixelFactory) Get(pin int) (*FakePixel, bool) {
	if pin < 0 || pin > maxHostPin {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pixels == nil {
		f.pixels = make(map[int]*FakePixel)
	}
	px, ok := f.pixels[pin]
	if !ok {
		px = &FakePixel{}
		f.pixels[pin] = px
	}
	return px, true
}

// DefaultPixelFactory provides a host pixel factory.
func DefaultPixelFactory() halcore.PixelFactory { return &HostPixelFactory{} }
