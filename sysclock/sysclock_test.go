package sysclock

import (
	"testing"
	"time"
)

func TestBlinkTicksSumToOneSecond(t *testing.T) {
	for _, hz := range []uint32{1, 2, 3, 7, 32, 100, 1000, 32768, 4294967295} {
		on, off := BlinkTicks(hz)
		if on+off != hz {
			t.Fatalf("hz=%d: on %d + off %d != hz", hz, on, off)
		}
	}
}

func TestBlinkTicks32Hz(t *testing.T) {
	on, off := BlinkTicks(32)
	if on != 24 || off != 8 {
		t.Fatalf("BlinkTicks(32) = %d,%d want 24,8", on, off)
	}
}

func TestNewDefaults(t *testing.T) {
	if got := New(0).FrequencyHz(); got != DefaultFrequencyHz {
		t.Fatalf("New(0).FrequencyHz() = %d", got)
	}
}

func TestTickerSleepFor(t *testing.T) {
	c := New(1000)
	start := time.Now()
	c.SleepFor(20)
	if el := time.Since(start); el < 20*time.Millisecond {
		t.Fatalf("SleepFor(20) at 1kHz returned after %v", el)
	}
	start = time.Now()
	c.SleepFor(0)
	if el := time.Since(start); el > 10*time.Millisecond {
		t.Fatalf("SleepFor(0) took %v", el)
	}
}
