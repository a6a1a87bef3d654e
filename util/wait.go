package util

import (
	"fmt"
	"time"
)

// WaitFunc polls cond every interval, returning as soon as it reports
// true. If timeout elapses first, WaitFunc returns an error instead of
// waiting out the rest of the current interval.
func WaitFunc(cond func() bool, interval, timeout time.Duration) error {
	if cond() {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		select {
		case <-ticker.C:
			if cond() {
				return nil
			}
		case <-deadline.C:
			return fmt.Errorf("timed out after %v waiting for condition", timeout)
		}
	}
}
