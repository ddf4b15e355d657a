package timex

import "time"

// TicksToDuration converts a tick count at freqHz to a duration. The product
// is taken before the division so that frequencies which do not divide 1e9
// still add up to exactly one second per freqHz ticks.
func TicksToDuration(ticks, freqHz uint32) time.Duration {
	if freqHz == 0 {
		freqHz = 1
	}
	return time.Duration(uint64(ticks) * 1_000_000_000 / uint64(freqHz))
}
