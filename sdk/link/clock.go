package link

import "github.com/docwilco/linksync/internal/hostclock"

// ClockMicros reads the process-wide clock in microseconds. It is
// independent of any session, always succeeds, and is monotonically
// non-decreasing across consecutive calls. Pass its readings to the
// beat/phase queries and scheduling setters.
func ClockMicros() int64 {
	return hostclock.Micros()
}
