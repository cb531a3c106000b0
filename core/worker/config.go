package worker

import "runtime"

// Config holds configuration for the worker pool.
type Config struct {
	// Count is the number of concurrent workers; 0 picks a size from the host.
	Count int `mapstructure:"count" default:"0"`
}

// Size returns the effective pool size: Count when positive, otherwise
// min(32, GOMAXPROCS+4).
func (c Config) Size() int {
	if c.Count > 0 {
		return c.Count
	}
	return min(32, runtime.GOMAXPROCS(0)+4)
}
