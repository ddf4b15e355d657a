// hal/platform/factories_rp2xxx.go
//go:build rp2040 || rp2350

package platform

import (
	"image/color"
	"io"
	"machine"
	"os"
	"sync"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ws2812"

	"blinky-go/hal/halcore"
)

// CPUFrequency returns the running core frequency.
func CPUFrequency() uint32 { return machine.CPUFrequency() }

// TraceWriters returns the USB CDC console plus a UART0 mirror on GP0/GP1
// for boards without USB attached to a host.
func TraceWriters() []io.Writer {
	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.Pin(0),
		RX:       machine.Pin(1),
	})
	return []io.Writer{os.Stdout, u}
}

// DefaultPinFactory returns a GPIO factory that maps logical numbers directly
// to machine.Pin(n). This matches Pico/Pico 2 GP numbering.
func DefaultPinFactory() halcore.PinFactory { return rp2PinFactory{} }

// ---- GPIO implementation (includes IRQ support) ----

type rp2PinFactory struct{}

func (rp2PinFactory) ByNumber(n int) (halcore.GPIOPin, bool) {
	// Constrain to RP2's user GPIOs (GP0..GP29).
	if n < 0 || n > 29 {
		return nil, false
	}
	return &rp2Pin{p: machine.Pin(n), n: n}, true
}

type rp2Pin struct {
	p machine.Pin
	n int
}

func (r *rp2Pin) ConfigureInput(pull halcore.Pull) error {
	var mode machine.PinMode
	switch pull {
	case halcore.PullUp:
		mode = machine.PinInputPullup
	case halcore.PullDown:
		mode = machine.PinInputPulldown
	default:
		mode = machine.PinInput
	}
	r.p.Configure(machine.PinConfig{Mode: mode})
	return nil
}

func (r *rp2Pin) ConfigureOutput(initial bool) error {
	r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	r.p.Set(initial)
	return nil
}

func (r *rp2Pin) Set(level bool) { r.p.Set(level) }
func (r *rp2Pin) Get() bool      { return r.p.Get() }
func (r *rp2Pin) Number() int    { return r.n }

// IRQ support. The RP2 port provides SetInterrupt with PinChange flags.
func (r *rp2Pin) SetIRQ(edge halcore.Edge, handler func()) error {
	return r.p.SetInterrupt(toPinChange(edge), func(machine.Pin) { handler() })
}

func (r *rp2Pin) ClearIRQ() error {
	var zero machine.PinChange
	return r.p.SetInterrupt(zero, nil)
}

func toPinChange(e halcore.Edge) machine.PinChange {
	switch e {
	case halcore.EdgeRising:
		return machine.PinRising
	case halcore.EdgeFalling:
		return machine.PinFalling
	case halcore.EdgeBoth:
		return machine.PinToggle
	default:
		var zero machine.PinChange
		return zero
	}
}

// ---- WS2812 pixel implementation ----

// DefaultPixelFactory drives WS2812 pixels; each colour channel of a pixel
// is handed out as its own on/off output.
func DefaultPixelFactory() halcore.PixelFactory {
	return &rp2PixelFactory{pixels: map[int]*rp2Pixel{}}
}

type rp2PixelFactory struct {
	mu     sync.Mutex
	pixels map[int]*rp2Pixel
}

func (f *rp2PixelFactory) Channel(pin, power, channel int, brightness uint8) (halcore.PixelChannel, bool) {
	if pin < 0 || pin > 29 || power > 29 {
		return nil, false
	}
	if channel < halcore.ChannelRed || channel > halcore.ChannelBlue {
		return nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	px, ok := f.pixels[pin]
	if !ok {
		px = &rp2Pixel{data: machine.Pin(pin), power: power}
		f.pixels[pin] = px
	}
	return &rp2PixelChannel{px: px, ch: channel, level: brightness}, true
}

type rp2Pixel struct {
	mu    sync.Mutex
	data  machine.Pin
	power int // -1: always powered
	dev   ws2812.Device
	ready bool
	rgb   [3]uint8
}

func (p *rp2Pixel) init() {
	if p.ready {
		return
	}
	if p.power >= 0 {
		pw := machine.Pin(p.power)
		pw.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pw.High()
	}
	p.data.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.dev = ws2812.New(p.data)
	p.ready = true
}

func (p *rp2Pixel) set(ch int, v uint8) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.init()
	p.rgb[ch] = v
	_ = p.dev.WriteColors([]color.RGBA{{R: p.rgb[0], G: p.rgb[1], B: p.rgb[2]}})
}

type rp2PixelChannel struct {
	px    *rp2Pixel
	ch    int
	level uint8
}

func (c *rp2PixelChannel) ConfigureOutput(initial bool) error {
	c.Set(initial)
	return nil
}

func (c *rp2PixelChannel) Set(on bool) {
	var v uint8
	if on {
		v = c.level
	}
	c.px.set(c.ch, v)
}
