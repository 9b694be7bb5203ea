package generator

import (
	"context"
	"time"
)

// Scheduler gives way to the host between records.
type Scheduler interface {
	Yield(ctx context.Context) error
}

// SleepScheduler pauses for Interval, zero interval returns at once.
type SleepScheduler struct {
	Interval time.Duration
}

// Yield returns ctx error when ctx is done before the pause ends.
func (s SleepScheduler) Yield(ctx context.Context) error {
	if s.Interval <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.Interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
