package backoff

import (
	"math"
	"time"
)

// Next returns when attempt number retryCount should run: 30s, 60s, 120s, 240s, etc.
func Next(now time.Time, retryCount int, base time.Duration) time.Time {
	return now.Add(time.Duration(math.Pow(2, float64(retryCount-1))) * base)
}
