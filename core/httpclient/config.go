package httpclient

import "time"

// Config holds timeouts and the retry policy of the comparison client.
type Config struct {
	// ConnectTimeoutSeconds bounds TCP connection setup.
	ConnectTimeoutSeconds int `mapstructure:"connect_timeout_seconds" default:"10"`
	// ReadTimeoutSeconds bounds the wait for each read of the response.
	ReadTimeoutSeconds int `mapstructure:"read_timeout_seconds" default:"10"`
	// RetryMax is the number of retries after the first attempt for 503/504 answers.
	RetryMax int `mapstructure:"retry_max" default:"5"`
	// RetryWaitMinMillis is the first backoff interval; it doubles on every retry.
	RetryWaitMinMillis int `mapstructure:"retry_wait_min_ms" default:"1000"`
	// RetryWaitMaxMillis caps the backoff interval.
	RetryWaitMaxMillis int `mapstructure:"retry_wait_max_ms" default:"120000"`
}

// ConnectTimeout returns the connect timeout, defaulting to 10s.
func (c Config) ConnectTimeout() time.Duration {
	return secondsOr(c.ConnectTimeoutSeconds, 10)
}

// ReadTimeout returns the read timeout, defaulting to 10s.
func (c Config) ReadTimeout() time.Duration {
	return secondsOr(c.ReadTimeoutSeconds, 10)
}

func (c Config) retryWaitMin() time.Duration {
	if c.RetryWaitMinMillis <= 0 {
		return time.Second
	}
	return time.Duration(c.RetryWaitMinMillis) * time.Millisecond
}

func (c Config) retryWaitMax() time.Duration {
	if c.RetryWaitMaxMillis <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.RetryWaitMaxMillis) * time.Millisecond
}

func secondsOr(v, def int) time.Duration {
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Second
}
