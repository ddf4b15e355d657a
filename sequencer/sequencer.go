// Package sequencer runs the blink state machine: an automatic round-robin
// phase (AUTO) until the button is pushed, then a manual phase (MANUAL) that
// advances one LED per push/release cycle forever.
package sequencer

import (
	"context"

	"blinky-go/bus"
	"blinky-go/button"
	"blinky-go/led"
	"blinky-go/sysclock"
	"blinky-go/trace"
	"blinky-go/types"
)

type Option func(*Sequencer)

// WithTracer sets the destination of the per-second trace lines.
func WithTracer(t *trace.Tracer) Option { return func(s *Sequencer) { s.tr = t } }

// WithPublisher publishes phase, LED and second observations.
func WithPublisher(p bus.Publisher) Option { return func(s *Sequencer) { s.pub = p } }

// Sequencer is single-threaded: only the goroutine running it may call its
// methods. Other goroutines observe it through the publisher.
type Sequencer struct {
	leds  led.Array
	clock sysclock.Clock
	edges *button.Edges
	tr    *trace.Tracer
	pub   bus.Publisher

	onTicks, offTicks uint32

	cursor  int
	seconds uint32
	phase   types.Phase
}

// New builds a sequencer over a non-empty LED array.
func New(leds led.Array, clock sysclock.Clock, edges *button.Edges, opts ...Option) *Sequencer {
	s := &Sequencer{leds: leds, clock: clock, edges: edges}
	s.onTicks, s.offTicks = sysclock.BlinkTicks(clock.FrequencyHz())
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Sequencer) Phase() types.Phase { return s.phase }
func (s *Sequencer) Cursor() int        { return s.cursor }
func (s *Sequencer) Seconds() uint32    { return s.seconds }
func (s *Sequencer) OnTicks() uint32    { return s.onTicks }
func (s *Sequencer) OffTicks() uint32   { return s.offTicks }

// Run executes Startup, AUTO and MANUAL. It only returns on a power-up
// error or when ctx is done.
func (s *Sequencer) Run(ctx context.Context) error {
	if err := s.Startup(); err != nil {
		return err
	}
	if err := s.RunAuto(ctx); err != nil {
		return err
	}
	return s.RunManual(ctx)
}

// Startup powers up every LED, leaving them off.
func (s *Sequencer) Startup() error {
	return s.leds.PowerUpAll()
}

// RunAuto flashes all LEDs for the first second, then blinks one LED per
// second in array order. It returns nil as soon as a push is seen after an
// LED has been turned off; the pushed flag is left set.
func (s *Sequencer) RunAuto(ctx context.Context) error {
	s.setPhase(types.PhaseAuto)

	// First interval is one full second with everything lit.
	for i := range s.leds {
		s.turnOn(i)
	}
	s.clock.SleepFor(s.clock.FrequencyHz())
	for i := range s.leds {
		s.turnOff(i)
	}
	s.clock.SleepFor(s.offTicks)
	s.second()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.turnOn(s.cursor)
		s.clock.SleepFor(s.onTicks)

		s.turnOff(s.cursor)
		if s.edges.Pushed() {
			return nil
		}
		s.clock.SleepFor(s.offTicks)
		if s.edges.Pushed() {
			return nil
		}

		s.second()
		s.cursor = s.leds.Next(s.cursor)
	}
}

// RunManual advances to the next LED, lights it on release, holds it for
// the on time, then turns it off on the next push. It never returns unless
// ctx is done.
func (s *Sequencer) RunManual(ctx context.Context) error {
	s.setPhase(types.PhaseManual)

	for {
		s.cursor = s.leds.Next(s.cursor)

		if err := s.edges.WaitReleased(ctx); err != nil {
			return err
		}
		s.turnOn(s.cursor)
		s.clock.SleepFor(s.onTicks)
		s.edges.ClearReleased()

		if err := s.edges.WaitPushed(ctx); err != nil {
			return err
		}
		s.turnOff(s.cursor)
		s.edges.ClearPushed()
	}
}

func (s *Sequencer) turnOn(i int) {
	s.leds[i].TurnOn()
	s.emitLED(i, true)
}

func (s *Sequencer) turnOff(i int) {
	s.leds[i].TurnOff()
	s.emitLED(i, false)
}

func (s *Sequencer) second() {
	s.seconds++
	s.tr.Second(s.seconds)
	s.emit(types.TopicSecond(), types.SecondValue{N: s.seconds}, false)
}

func (s *Sequencer) setPhase(p types.Phase) {
	s.phase = p
	s.emit(types.TopicPhase(), types.PhaseValue{Phase: p}, true)
}

func (s *Sequencer) emitLED(i int, on bool) {
	s.emit(types.TopicLED(i), types.LEDValue{Index: i, Name: s.leds[i].Name(), On: on}, true)
}

func (s *Sequencer) emit(t bus.Topic, payload any, retained bool) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(&bus.Message{Topic: t, Payload: payload, Retained: retained})
}
