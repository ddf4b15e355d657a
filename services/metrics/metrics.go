//go:build !tinygo

// Package metrics exports sequencer observations from the bus as
// prometheus metrics (host tools only).
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blinky-go/bus"
	"blinky-go/types"
)

type Collector struct {
	reg *prometheus.Registry

	ledOn   *prometheus.GaugeVec
	phase   prometheus.Gauge
	seconds prometheus.Counter
	edges   *prometheus.CounterVec
}

// New registers the blinky metrics on reg (a fresh registry when nil).
func New(reg *prometheus.Registry) *Collector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Collector{
		reg: reg,
		ledOn: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "blinky_led_on",
			Help: "1 while the LED is lit.",
		}, []string{"led"}),
		phase: f.NewGauge(prometheus.GaugeOpts{
			Name: "blinky_phase",
			Help: "Sequencer phase: 0 idle, 1 auto, 2 manual.",
		}),
		seconds: f.NewCounter(prometheus.CounterOpts{
			Name: "blinky_seconds_total",
			Help: "Seconds counted during the automatic phase.",
		}),
		edges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "blinky_button_edges_total",
			Help: "Button edges seen, without debouncing.",
		}, []string{"edge"}),
	}
}

// Handler serves the registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Run consumes sequencer and button topics until ctx is done.
func (c *Collector) Run(ctx context.Context, conn *bus.Connection) {
	seq := conn.Subscribe(types.TopicSeqAll())
	btn := conn.Subscribe(types.TopicButtonAll())
	defer conn.Unsubscribe(seq)
	defer conn.Unsubscribe(btn)

	for {
		select {
		case <-ctx.Done():
			return
		case m := <-seq.Channel():
			c.Observe(m)
		case m := <-btn.Channel():
			c.Observe(m)
		}
	}
}

// Observe applies one bus message.
func (c *Collector) Observe(m *bus.Message) {
	switch v := m.Payload.(type) {
	case types.LEDValue:
		name := v.Name
		if name == "" {
			name = m.Topic[len(m.Topic)-1]
		}
		on := 0.0
		if v.On {
			on = 1
		}
		c.ledOn.WithLabelValues(name).Set(on)
	case types.PhaseValue:
		c.phase.Set(float64(v.Phase))
	case types.SecondValue:
		c.seconds.Inc()
	case types.ButtonValue:
		c.edges.WithLabelValues(string(v.Edge)).Inc()
	}
}
