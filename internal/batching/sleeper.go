package batching

import (
	"context"
	"time"
)

// Sleeper pauses between batches.
type Sleeper interface {
	Sleep(executionContext context.Context, delay time.Duration) error
}

// TimerSleeper waits on a timer and returns early with the context error on cancellation.
type TimerSleeper struct{}

// Sleep blocks for delay or until executionContext is done.
func (TimerSleeper) Sleep(executionContext context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-executionContext.Done():
		return executionContext.Err()
	case <-timer.C:
		return nil
	}
}
