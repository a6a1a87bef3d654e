package util

import (
	"math"
	"math/rand"
	"time"
)

// DefaultBackoff returns a delay with an exponential backoff based on the
// number of retries, using a factor of 2 and full jitter.
func DefaultBackoff(base, maxNS float64, retries int) time.Duration {
	return Backoff(base, maxNS, 1.0, 2.0, retries)
}

// Backoff returns a delay with an exponential backoff based on the number of
// retries. Same algorithm used in gRPC.
func Backoff(base, maxNS, jitter, factor float64, retries int) time.Duration {
	delay := base * math.Pow(factor, float64(retries))
	if delay > maxNS {
		delay = maxNS
	}
	delay *= 1 + jitter*(rand.Float64()*2-1)
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay)
}
