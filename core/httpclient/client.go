package httpclient

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// RetryStatuses are the answers treated as transient by CheckRetry.
var RetryStatuses = map[int]struct{}{
	http.StatusServiceUnavailable: {},
	http.StatusGatewayTimeout:     {},
}

// New creates a retrying HTTP client for one endpoint.
// Connection-level failures are returned immediately; only 503 and 504
// responses are retried, with exponential backoff starting at RetryWaitMin.
// Connecting is bounded by the connect timeout; every read, including the
// wait for headers, by the read timeout.
func New(cfg Config, logger *zap.Logger) *retryablehttp.Client {
	connectTimeout := cfg.ConnectTimeout()
	readTimeout := cfg.ReadTimeout()

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: withReadIdleTimeout((&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext, readTimeout),
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   100,
		IdleConnTimeout:       90 * time.Second,
		ResponseHeaderTimeout: readTimeout,
		ExpectContinueTimeout: 1 * time.Second,
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	client := retryablehttp.NewClient()
	// No overall deadline: the read timeout applies between reads, so a
	// large body that keeps streaming is read to the end.
	client.HTTPClient = &http.Client{Transport: transport}
	client.Logger = NewZapAdapter(logger.Named("httpclient"))
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = cfg.retryWaitMin()
	client.RetryWaitMax = cfg.retryWaitMax()
	client.CheckRetry = CheckRetry
	client.Backoff = retryablehttp.DefaultBackoff

	return client
}

// CheckRetry retries 503 and 504 answers and nothing else.
func CheckRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return false, err
	}
	if _, ok := RetryStatuses[resp.StatusCode]; ok {
		return true, nil
	}
	return false, nil
}
