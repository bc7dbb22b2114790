package timex

import "time"

var boot = time.Now()

// NowUs returns microseconds since process start from the monotonic clock.
// Safe to call from an interrupt handler: no allocation.
func NowUs() uint64 { return uint64(time.Since(boot) / time.Microsecond) }

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}
