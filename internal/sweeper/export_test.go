package sweeper

import "time"

// SetRetryDelay shortens the first backoff interval of an allocation sweeper
func SetRetryDelay(s Sweeper, d time.Duration) {
	s.(*allocationSweeper).retryDelay = d
}
