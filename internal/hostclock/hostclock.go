// Package hostclock provides the microsecond clock shared by sessions and
// engines. Readings are anchored to the wall clock at process start and
// advance on the monotonic clock, so consecutive readings never go backwards
// even if the wall clock steps.
package hostclock

import "time"

var (
	start      = time.Now()
	startMicro = start.UnixMicro()
)

// Micros returns the current clock reading in microseconds.
func Micros() int64 {
	return startMicro + time.Since(start).Microseconds()
}
