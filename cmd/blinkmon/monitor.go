//go:build !tinygo

package main

import (
	"bufio"
	"io"
	"log/slog"

	"blinky-go/trace"
)

// Monitor tracks the trace of one board.
type Monitor struct {
	log *slog.Logger

	Greeting string
	ClockHz  uint32
	Last     uint32 // last Second seen, 0 before the first
	Gaps     int
	Resets   int
}

// Follow consumes lines until r is exhausted or fails.
func (m *Monitor) Follow(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m.Feed(sc.Text())
	}
	return sc.Err()
}

// Feed applies one line and reports whether it broke the Second sequence.
func (m *Monitor) Feed(line string) (trace.Record, bool) {
	rec := trace.ParseLine(line)
	broken := false
	switch rec.Kind {
	case trace.KindGreeting:
		// A greeting means the board restarted.
		if m.Greeting != "" {
			m.Resets++
		}
		m.Greeting, m.Last = rec.Text, 0
		m.info("boot", "greeting", rec.Text)
	case trace.KindClock:
		m.ClockHz = rec.Value
		m.info("clock", "hz", rec.Value)
	case trace.KindSecond:
		if rec.Value != m.Last+1 {
			broken = true
			m.Gaps++
			m.warn("second out of sequence", "got", rec.Value, "want", m.Last+1)
		} else {
			m.debug("second", "n", rec.Value)
		}
		m.Last = rec.Value
	default:
		if rec.Text != "" {
			m.info("console", "line", rec.Text)
		}
	}
	return rec, broken
}

func (m *Monitor) info(msg string, args ...any) {
	if m.log != nil {
		m.log.Info(msg, args...)
	}
}

func (m *Monitor) warn(msg string, args ...any) {
	if m.log != nil {
		m.log.Warn(msg, args...)
	}
}

func (m *Monitor) debug(msg string, args ...any) {
	if m.log != nil {
		m.log.Debug(msg, args...)
	}
}
