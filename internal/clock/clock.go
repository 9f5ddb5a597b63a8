package clock

import (
	"sync"
	"time"
)

// Clock supplies "now" for every time-dependent rule. Components never read
// the system clock directly, so tests can pin renewal windows, year rollovers
// and sweep runs to exact dates.
type Clock interface {
	Now() time.Time
}

type SystemClock struct {
	Location *time.Location
}

func NewSystemClock(location *time.Location) *SystemClock {
	if location == nil {
		location = time.UTC
	}
	return &SystemClock{Location: location}
}

func (clock *SystemClock) Now() time.Time {
	return time.Now().In(clock.Location)
}

type fixedClock struct {
	instant time.Time
}

// Fixed returns a clock frozen at the given instant.
func Fixed(instant time.Time) Clock {
	return fixedClock{instant: instant}
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

// Simulated wraps a base clock with a process-wide override used by the admin
// "mock date" endpoint. The override persists until cleared.
type Simulated struct {
	base Clock

	mu       sync.RWMutex
	override *time.Time
}

func NewSimulated(base Clock) *Simulated {
	return &Simulated{base: base}
}

func (clock *Simulated) Now() time.Time {
	clock.mu.RLock()
	defer clock.mu.RUnlock()
	if clock.override != nil {
		return *clock.override
	}
	return clock.base.Now()
}

func (clock *Simulated) SetOverride(instant time.Time) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.override = &instant
}

func (clock *Simulated) ClearOverride() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.override = nil
}

func (clock *Simulated) Overridden() bool {
	clock.mu.RLock()
	defer clock.mu.RUnlock()
	return clock.override != nil
}
