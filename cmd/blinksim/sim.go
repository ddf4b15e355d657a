//go:build !tinygo

package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"blinky-go/bus"
	"blinky-go/config"
	"blinky-go/errcode"
	"blinky-go/hal/platform"
	"blinky-go/services/blink"
	"blinky-go/services/metrics"
	"blinky-go/trace"
	"blinky-go/types"
)

func simulate(ctx context.Context, o *options, cfg config.Config, in io.Reader, out io.Writer, log *slog.Logger) error {
	script, err := parseScript(o.Script)
	if err != nil {
		return err
	}

	b := bus.NewBus(64)
	pins := platform.NewHostPinFactory()
	btn, ok := pins.Get(cfg.Button.PinNumber())
	if !ok {
		return errcode.Wrap(errcode.UnknownPin, "button", "", nil)
	}

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer cancel()

	// Subscribe before the service starts so no transition is missed.
	phase := b.NewConnection("driver").Subscribe(types.TopicPhase())
	obs := b.NewConnection("log")
	seqSub := obs.Subscribe(types.TopicSeqAll())
	btnSub := obs.Subscribe(types.TopicButtonAll())
	wg.Add(1)
	go func() {
		defer wg.Done()
		observe(ctx, cfg, seqSub, btnSub, log)
	}()

	if o.MetricsAddr != "" {
		srv, err := serveMetrics(ctx, o.MetricsAddr, b, log)
		if err != nil {
			return err
		}
		defer srv.Close()
	}

	opts := []blink.Option{
		blink.WithPixels(&platform.HostPixelFactory{}),
		blink.WithPublisher(b.NewConnection("blink")),
		blink.WithTracer(trace.New(out)),
		blink.WithCPUFrequency(platform.CPUFrequency()),
	}
	if o.clock != nil {
		opts = append(opts, blink.WithClock(o.clock))
	}
	svc := blink.New(cfg, pins, opts...)
	errc := make(chan error, 1)
	go func() { errc <- svc.Run(ctx) }()

	if err := waitAuto(ctx, phase, errc); err != nil {
		return finish(err)
	}

	d := &driver{pin: btn, pushed: !cfg.Button.ActiveLow, log: log}
	for _, c := range script {
		if d.exec(ctx, c) {
			cancel()
			return finish(<-errc)
		}
	}

	lines := make(chan string)
	go readLines(ctx, in, lines)
	for {
		select {
		case err := <-errc:
			return finish(err)
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			c, err := parseCommand(line)
			if err != nil {
				log.Warn("bad command", "line", line, "err", err)
				continue
			}
			if d.exec(ctx, c) {
				cancel()
				return finish(<-errc)
			}
		}
	}
}

// finish maps a shutdown by cancellation to a clean exit.
func finish(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func waitAuto(ctx context.Context, phase *bus.Subscription, errc <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			return err
		case m := <-phase.Channel():
			if v, ok := m.Payload.(types.PhaseValue); ok && v.Phase != types.PhaseIdle {
				return nil
			}
		}
	}
}

func readLines(ctx context.Context, in io.Reader, out chan<- string) {
	defer close(out)
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		select {
		case out <- strings.TrimSpace(sc.Text()):
		case <-ctx.Done():
			return
		}
	}
}

// driver moves the simulated button pin.
type driver struct {
	pin    *platform.FakePin
	pushed bool // pin level while pressed
	log    *slog.Logger
}

// exec runs one command and reports whether the simulation should stop.
func (d *driver) exec(ctx context.Context, c command) bool {
	switch c.op {
	case opPush:
		d.log.Debug("button", "action", "push")
		d.pin.Set(d.pushed)
	case opRelease:
		d.log.Debug("button", "action", "release")
		d.pin.Set(!d.pushed)
	case opClick:
		d.pin.Set(d.pushed)
		sleep(ctx, clickHold)
		d.pin.Set(!d.pushed)
	case opWait:
		sleep(ctx, c.wait)
	case opQuit:
		return true
	}
	return ctx.Err() != nil
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// observe logs sequencer and button events until ctx is done, then drains
// what is already queued.
func observe(ctx context.Context, cfg config.Config, seq, btn *bus.Subscription, log *slog.Logger) {
	lit := make([]bool, len(cfg.LEDs))
	handle := func(m *bus.Message) {
		switch v := m.Payload.(type) {
		case types.PhaseValue:
			log.Info("phase", "phase", v.Phase.String())
		case types.SecondValue:
			log.Info("second", "n", v.N)
		case types.LEDValue:
			if v.Index >= 0 && v.Index < len(lit) {
				lit[v.Index] = v.On
			}
			log.Info("led", "name", v.Name, "on", v.On, "row", ledRow(cfg.LEDs, lit))
		case types.ButtonValue:
			log.Info("button", "edge", string(v.Edge))
		}
	}
	for {
		select {
		case m := <-seq.Channel():
			handle(m)
		case m := <-btn.Channel():
			handle(m)
		case <-ctx.Done():
			for {
				select {
				case m := <-seq.Channel():
					handle(m)
				case m := <-btn.Channel():
					handle(m)
				default:
					return
				}
			}
		}
	}
}

// ledRow renders lit LEDs by the first letter of their name and dark ones
// as '.'.
func ledRow(leds []config.LED, lit []bool) string {
	var sb strings.Builder
	for i, l := range leds {
		switch {
		case i >= len(lit) || !lit[i]:
			sb.WriteByte('.')
		case l.Name == "":
			sb.WriteByte('*')
		default:
			sb.WriteString(strings.ToUpper(l.Name[:1]))
		}
	}
	return sb.String()
}

func serveMetrics(ctx context.Context, addr string, b *bus.Bus, log *slog.Logger) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errcode.Wrap(errcode.InvalidParams, "metrics", addr, err)
	}
	c := metrics.New(nil)
	go c.Run(ctx, b.NewConnection("metrics"))

	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", "err", err)
		}
	}()
	log.Info("metrics", "addr", ln.Addr().String())
	return srv, nil
}
