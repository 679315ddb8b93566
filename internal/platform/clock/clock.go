package clock

import "time"

// Clock abstracts time to keep tracker transitions deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// NowMilli returns the clock's current instant as Unix milliseconds, the
// resolution nights are stored with.
func NowMilli(c Clock) int64 {
	return c.Now().UnixMilli()
}
