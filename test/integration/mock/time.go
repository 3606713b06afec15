package mock

import (
	"sync"
	"time"
)

// Time is a settable clock handed to the application as its time source.
type Time struct {
	mu  sync.Mutex
	now time.Time
}

func NewTime(now time.Time) *Time {
	return &Time{now: now}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.now = currentTime
}

func (t *Time) Now() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now
}
