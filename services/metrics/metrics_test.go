//go:build !tinygo

package metrics

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"blinky-go/bus"
	"blinky-go/types"
)

func TestObserve(t *testing.T) {
	c := New(nil)
	c.Observe(&bus.Message{Topic: types.TopicLED(0), Payload: types.LEDValue{Index: 0, Name: "red", On: true}})
	c.Observe(&bus.Message{Topic: types.TopicLED(1), Payload: types.LEDValue{Index: 1, On: true}})
	c.Observe(&bus.Message{Topic: types.TopicLED(0), Payload: types.LEDValue{Index: 0, Name: "red", On: false}})
	c.Observe(&bus.Message{Topic: types.TopicPhase(), Payload: types.PhaseValue{Phase: types.PhaseManual}})
	c.Observe(&bus.Message{Topic: types.TopicSecond(), Payload: types.SecondValue{N: 1}})
	c.Observe(&bus.Message{Topic: types.TopicSecond(), Payload: types.SecondValue{N: 2}})
	c.Observe(&bus.Message{Topic: types.TopicButtonEdge(), Payload: types.ButtonValue{Edge: types.EdgePushed}})
	c.Observe(&bus.Message{Topic: types.TopicButtonEdge(), Payload: "ignored"})

	if v := testutil.ToFloat64(c.ledOn.WithLabelValues("red")); v != 0 {
		t.Fatalf("red = %v", v)
	}
	if v := testutil.ToFloat64(c.ledOn.WithLabelValues("1")); v != 1 {
		t.Fatalf("unnamed led = %v", v)
	}
	if v := testutil.ToFloat64(c.phase); v != 2 {
		t.Fatalf("phase = %v", v)
	}
	if v := testutil.ToFloat64(c.seconds); v != 2 {
		t.Fatalf("seconds = %v", v)
	}
	if v := testutil.ToFloat64(c.edges.WithLabelValues("pushed")); v != 1 {
		t.Fatalf("pushed edges = %v", v)
	}
}

func TestRunAndHandler(t *testing.T) {
	b := bus.NewBus(16)
	c := New(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Retained phase published before Run is replayed on subscribe.
	b.Publish(&bus.Message{Topic: types.TopicPhase(), Payload: types.PhaseValue{Phase: types.PhaseAuto}, Retained: true})
	go c.Run(ctx, b.NewConnection("metrics"))

	deadline := time.Now().Add(time.Second)
	for testutil.ToFloat64(c.phase) != 1 {
		if time.Now().After(deadline) {
			t.Fatal("phase not observed")
		}
		time.Sleep(time.Millisecond)
	}

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "blinky_phase 1") {
		t.Fatalf("metrics body lacks phase:\n%s", body)
	}
}
