package ferrytime

import (
	"fmt"
	"sync"
	"time"
)

type ScheduleType string

const (
	ScheduleTypeWeekday ScheduleType = "weekday"
	ScheduleTypeWeekend ScheduleType = "weekend"
	ScheduleTypeSpecial ScheduleType = "special"
)

func ParseScheduleType(s string) (ScheduleType, error) {
	switch ScheduleType(s) {
	case ScheduleTypeWeekday, ScheduleTypeWeekend, ScheduleTypeSpecial:
		return ScheduleType(s), nil
	}

	return "", fmt.Errorf("unknown schedule type %q", s)
}

// ScheduleTypeFor works out whether the weekday or weekend schedule is running at t.
// Before the morning cutoff we are still running yesterday's schedule.
func ScheduleTypeFor(t time.Time) ScheduleType {
	day := ServiceDay(t).Weekday()

	if day == time.Saturday || day == time.Sunday {
		return ScheduleTypeWeekend
	}

	return ScheduleTypeWeekday
}

// ScheduleTypeCache memoises today's schedule type.
// Nothing invalidates it automatically, whoever owns it must call Reset when the service day rolls over.
type ScheduleTypeCache struct {
	clock Clock

	mu     sync.Mutex
	cached ScheduleType
}

func NewScheduleTypeCache(clock Clock) *ScheduleTypeCache {
	return &ScheduleTypeCache{clock: clock}
}

func (c *ScheduleTypeCache) Get() ScheduleType {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached == "" {
		c.cached = ScheduleTypeFor(c.clock.Now())
	}

	return c.cached
}

func (c *ScheduleTypeCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cached = ""
}
