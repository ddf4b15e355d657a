// Package blink wires a board descriptor and the platform HAL into a
// running blink sequencer.
package blink

import (
	"context"

	"blinky-go/bus"
	"blinky-go/button"
	"blinky-go/config"
	"blinky-go/errcode"
	"blinky-go/hal/gpioirq"
	"blinky-go/hal/halcore"
	"blinky-go/led"
	"blinky-go/sequencer"
	"blinky-go/sysclock"
	"blinky-go/trace"
)

const buttonID = "button"

type Option func(*Service)

func WithClock(c sysclock.Clock) Option        { return func(s *Service) { s.clock = c } }
func WithTracer(t *trace.Tracer) Option        { return func(s *Service) { s.tr = t } }
func WithPublisher(p bus.Publisher) Option     { return func(s *Service) { s.pub = p } }
func WithPixels(f halcore.PixelFactory) Option { return func(s *Service) { s.pixels = f } }
func WithCPUFrequency(hz uint32) Option        { return func(s *Service) { s.cpuHz = hz } }

type Service struct {
	cfg    config.Config
	pins   halcore.PinFactory
	pixels halcore.PixelFactory
	clock  sysclock.Clock
	tr     *trace.Tracer
	pub    bus.Publisher
	cpuHz  uint32
}

func New(cfg config.Config, pins halcore.PinFactory, opts ...Option) *Service {
	s := &Service{cfg: cfg, pins: pins}
	for _, o := range opts {
		o(s)
	}
	if s.clock == nil {
		s.clock = sysclock.New(cfg.FrequencyHz)
	}
	if s.tr == nil {
		s.tr = trace.New()
	}
	return s
}

// Run traces the greeting and clock lines, builds the LEDs and the button
// pipeline and runs the sequencer. It returns only on a wiring error or when
// ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}

	s.tr.Greeting(s.cfg.Greeting)
	s.tr.Clock(s.cpuHz)

	leds, err := s.BuildLEDs()
	if err != nil {
		return err
	}
	pin, err := s.buttonPin()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	edges := button.NewEdges()
	w := gpioirq.New(16, 16)
	w.Start(ctx)
	stop, err := w.RegisterInput(buttonID, pin, halcore.EdgeBoth, s.cfg.Button.ActiveLow)
	if err != nil {
		return errcode.Wrap(errcode.Error, "button irq", "", err)
	}
	defer stop()
	go button.Watch(ctx, w.Events(), edges, s.pub)

	seq := sequencer.New(leds, s.clock, edges,
		sequencer.WithTracer(s.tr),
		sequencer.WithPublisher(s.pub),
	)
	return seq.Run(ctx)
}

// BuildLEDs resolves every configured LED to a HAL output, in order.
func (s *Service) BuildLEDs() (led.Array, error) {
	leds := make(led.Array, 0, len(s.cfg.LEDs))
	for _, l := range s.cfg.LEDs {
		var out led.Output
		port, offset := l.Port, l.Offset
		if l.IsPixel() {
			if s.pixels == nil {
				return nil, errcode.Wrap(errcode.Unsupported, "led "+l.Name, "no pixel driver", nil)
			}
			ch, ok := s.pixels.Channel(s.cfg.Pixel.Pin, s.cfg.Pixel.Power, l.ChannelIndex(), l.Brightness)
			if !ok {
				return nil, errcode.Wrap(errcode.UnknownPin, "led "+l.Name, "pixel", nil)
			}
			out, port, offset = ch, s.cfg.Pixel.Pin, l.ChannelIndex()
		} else {
			p, ok := s.pins.ByNumber(l.PinNumber())
			if !ok {
				return nil, errcode.Wrap(errcode.UnknownPin, "led "+l.Name, "", nil)
			}
			out = p
		}
		leds = append(leds, led.New(out, port, offset, l.ActiveLow).Named(l.Name))
	}
	return leds, nil
}

func (s *Service) buttonPin() (halcore.IRQPin, error) {
	b := s.cfg.Button
	p, ok := s.pins.ByNumber(b.PinNumber())
	if !ok {
		return nil, errcode.Wrap(errcode.UnknownPin, buttonID, "", nil)
	}
	irq, ok := p.(halcore.IRQPin)
	if !ok {
		return nil, errcode.Wrap(errcode.NotIRQCapable, buttonID, "", nil)
	}
	pull := halcore.PullNone
	switch b.Pull {
	case "up":
		pull = halcore.PullUp
	case "down":
		pull = halcore.PullDown
	}
	if err := irq.ConfigureInput(pull); err != nil {
		return nil, err
	}
	return irq, nil
}
