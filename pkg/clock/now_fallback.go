//go:build !unix

package clock

import "time"

// epoch is the reference point for fallback timer values.
var epoch = time.Now()

// now falls back to Go's monotonic wall clock on platforms without a
// per-process CPU-time source. Monotonic readings are immune to system
// clock adjustments but do include time spent descheduled.
func now() uint64 {
	return uint64(time.Since(epoch).Nanoseconds())
}
