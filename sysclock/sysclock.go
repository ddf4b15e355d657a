// Package sysclock provides the tick clock the blink sequencer counts in.
package sysclock

import (
	"time"

	"blinky-go/x/timex"
)

// DefaultFrequencyHz is the tick rate used when a board does not set one.
const DefaultFrequencyHz = 1000

// Clock supplies a constant tick frequency and a blocking delay.
type Clock interface {
	FrequencyHz() uint32
	SleepFor(ticks uint32)
}

// BlinkTicks splits one second into the LED on time (3/4) and the remainder.
// on+off is always exactly hz.
func BlinkTicks(hz uint32) (on, off uint32) {
	on = uint32(uint64(hz) * 3 / 4)
	return on, hz - on
}

// Ticker is a Clock backed by time.Sleep.
type Ticker struct {
	hz uint32
}

// New returns a Ticker running at hz; zero selects DefaultFrequencyHz.
func New(hz uint32) *Ticker {
	if hz == 0 {
		hz = DefaultFrequencyHz
	}
	return &Ticker{hz: hz}
}

func (t *Ticker) FrequencyHz() uint32 { return t.hz }

func (t *Ticker) SleepFor(ticks uint32) {
	if ticks == 0 {
		return
	}
	time.Sleep(timex.TicksToDuration(ticks, t.hz))
}
