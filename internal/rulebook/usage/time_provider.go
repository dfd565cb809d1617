package usage

import "time"

// TimeProvider supplies the timestamps stamped on usage records.
// Tests inject a fixed provider instead of the wall clock.
type TimeProvider interface {
	Now() time.Time
}

type realTime struct{}

func (realTime) Now() time.Time {
	return time.Now().UTC()
}
