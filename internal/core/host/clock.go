package host

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Timestamp returns the clock's current time in unix seconds.
func Timestamp(c Clock) uint64 {
	sec := c.Now().Unix()
	if sec < 0 {
		return 0
	}
	return uint64(sec)
}
