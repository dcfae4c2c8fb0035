package ferrytime

import (
	"sync"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func (c *SystemClock) Now() time.Time {
	now := time.Now()

	if c.Location != nil {
		return now.In(c.Location)
	}

	return now
}

// FixedClock always reports the same instant until it is moved with Set
type FixedClock struct {
	mu   sync.Mutex
	time time.Time
}

func NewFixedClock(t time.Time) *FixedClock {
	return &FixedClock{time: t}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.time
}

func (c *FixedClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.time = t
}
