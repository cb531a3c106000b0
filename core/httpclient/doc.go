// Package httpclient builds the HTTP clients used to query the servers under
// comparison.
//
// Each client is a go-retryablehttp client over a transport with separate
// connect and read timeouts. Only 503 and 504 answers are retried; connection
// errors surface immediately so the caller can abort the run.
package httpclient
