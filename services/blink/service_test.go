//go:build !tinygo

package blink

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"blinky-go/bus"
	"blinky-go/config"
	"blinky-go/errcode"
	"blinky-go/hal/halcore"
	"blinky-go/hal/platform"
	"blinky-go/trace"
	"blinky-go/types"
)

// stepClock sleeps a millisecond per call regardless of the tick count.
type stepClock struct{ hz uint32 }

func (c stepClock) FrequencyHz() uint32 { return c.hz }
func (c stepClock) SleepFor(uint32)     { time.Sleep(time.Millisecond) }

type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.b.String()
}

func waitFor(t *testing.T, sub *bus.Subscription, match func(*bus.Message) bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case m := <-sub.Channel():
			if match(m) {
				return
			}
		case <-deadline:
			t.Fatalf("timeout on %v", sub.Topic())
		}
	}
}

func TestServiceEndToEnd(t *testing.T) {
	cfg, _ := config.Lookup("hifive1b")
	pins := platform.NewHostPinFactory()
	b := bus.NewBus(64)
	c := b.NewConnection("test")
	phases := c.Subscribe(types.TopicPhase())
	edges := c.Subscribe(types.TopicButtonEdge())
	leds := c.Subscribe(bus.T("seq", "led", bus.SingleWild))

	out := &syncBuffer{}
	svc := New(cfg, pins,
		WithClock(stepClock{hz: 4}),
		WithTracer(newTracer(out)),
		WithPublisher(b),
		WithCPUFrequency(16_000_000),
	)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	waitFor(t, phases, func(m *bus.Message) bool {
		return m.Payload.(types.PhaseValue).Phase == types.PhaseAuto
	})

	btn, _ := pins.Get(18)
	btn.Set(false) // active-low: pressed
	waitFor(t, edges, func(m *bus.Message) bool {
		return m.Payload.(types.ButtonValue).Edge == types.EdgePushed
	})
	waitFor(t, phases, func(m *bus.Message) bool {
		return m.Payload.(types.PhaseValue).Phase == types.PhaseManual
	})

	// Drain AUTO traffic, then release and expect some LED to light.
	for len(leds.Channel()) > 0 {
		<-leds.Channel()
	}
	btn.Set(true)
	waitFor(t, leds, func(m *bus.Message) bool { return m.Payload.(types.LEDValue).On })

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}

	lines := strings.Split(out.String(), "\n")
	if lines[0] != "Hello RISC-V World!" || lines[1] != "System clock: 16000000 Hz" {
		t.Fatalf("trace head = %q", lines[:2])
	}
	if !strings.HasPrefix(lines[2], "Second 1") {
		t.Fatalf("third line = %q", lines[2])
	}
}

func TestBuildLEDsPolarityAndPins(t *testing.T) {
	cfg, _ := config.Lookup("hifive1b")
	pins := platform.NewHostPinFactory()
	arr, err := New(cfg, pins).BuildLEDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(arr) != 3 || arr[0].Name() != "red" || arr[0].Offset() != 22 {
		t.Fatalf("leds = %+v", arr)
	}
	if err := arr.PowerUpAll(); err != nil {
		t.Fatal(err)
	}
	red, _ := pins.Get(22)
	if !red.Get() || !red.IsOutput() {
		t.Fatal("active-low LED must idle high as an output")
	}
	arr[0].TurnOn()
	if red.Get() {
		t.Fatal("active-low LED must drive low when on")
	}
}

func TestBuildLEDsPixels(t *testing.T) {
	cfg, _ := config.Lookup("xiao-rp2040")
	px := &platform.HostPixelFactory{}
	arr, err := New(cfg, platform.NewHostPinFactory(), WithPixels(px)).BuildLEDs()
	if err != nil {
		t.Fatal(err)
	}
	_ = arr.PowerUpAll()
	arr[1].TurnOn()
	p, _ := px.Get(12)
	if got := p.RGB(); got != [3]uint8{0, 32, 0} {
		t.Fatalf("rgb = %v", got)
	}

	if _, err := New(cfg, platform.NewHostPinFactory()).BuildLEDs(); errcode.Of(err) != errcode.Unsupported {
		t.Fatalf("without pixel driver: %v", err)
	}
}

type noPins struct{}

func (noPins) ByNumber(int) (halcore.GPIOPin, bool) { return nil, false }

type plainPin struct{ halcore.GPIOPin }

type plainPins struct{ f *platform.HostPinFactory }

func (p plainPins) ByNumber(n int) (halcore.GPIOPin, bool) {
	pin, ok := p.f.ByNumber(n)
	return plainPin{pin}, ok
}

func TestRunWiringErrors(t *testing.T) {
	cfg, _ := config.Lookup("hifive1b")
	ctx := context.Background()

	if err := New(cfg, noPins{}).Run(ctx); errcode.Of(err) != errcode.UnknownPin {
		t.Fatalf("no pins: %v", err)
	}
	if err := New(cfg, plainPins{platform.NewHostPinFactory()}).Run(ctx); errcode.Of(err) != errcode.NotIRQCapable {
		t.Fatalf("plain pins: %v", err)
	}
	bad := cfg
	bad.FrequencyHz = 0
	if err := New(bad, platform.NewHostPinFactory()).Run(ctx); errcode.Of(err) != errcode.InvalidFrequency {
		t.Fatalf("bad config: %v", err)
	}
}

func newTracer(w *syncBuffer) *trace.Tracer { return trace.New(w) }
