package hal

import "time"

type monotonicClock struct {
	start time.Time
}

func newMonotonicClock() *monotonicClock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) Micros() uint64 {
	return uint64(time.Since(c.start).Microseconds())
}
