package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"

	"github.com/hashicorp/go-retryablehttp"
)

// ErrorKind separates connection failures from every other fetch failure.
type ErrorKind int

const (
	// KindTransport covers DNS failures, refused and reset connections.
	KindTransport ErrorKind = iota
	// KindUnexpected covers everything else: exhausted retries, unreadable or
	// non-JSON bodies.
	KindUnexpected
)

func (k ErrorKind) String() string {
	if k == KindTransport {
		return "transport"
	}
	return "unexpected"
}

// FetchError is a fatal failure to obtain one of the two responses.
type FetchError struct {
	Kind ErrorKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s error fetching %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves the decoded answers of the old and new servers for a path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (oldBody, newBody any, err error)
}

// HTTPFetcher queries two servers, one retrying client per server.
type HTTPFetcher struct {
	oldBase   string
	newBase   string
	oldClient *retryablehttp.Client
	newClient *retryablehttp.Client
}

// NewHTTPFetcher creates a fetcher for the given endpoints.
func NewHTTPFetcher(endpoints EndpointConfig, oldClient, newClient *retryablehttp.Client) *HTTPFetcher {
	return &HTTPFetcher{
		oldBase:   strings.TrimRight(endpoints.Old, "/"),
		newBase:   strings.TrimRight(endpoints.New, "/"),
		oldClient: oldClient,
		newClient: newClient,
	}
}

// Fetch performs the old request, then the new one. Either failure aborts
// the pair and is returned as a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) (any, any, error) {
	oldBody, err := get(ctx, f.oldClient, f.oldBase+"/"+path)
	if err != nil {
		return nil, nil, err
	}
	newBody, err := get(ctx, f.newClient, f.newBase+"/"+path)
	if err != nil {
		return nil, nil, err
	}
	return oldBody, newBody, nil
}

func get(ctx context.Context, client *retryablehttp.Client, url string) (any, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{Kind: KindUnexpected, URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: classify(err), URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: classify(err), URL: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	body, err := decodeJSON(data)
	if err != nil {
		return nil, &FetchError{
			Kind: KindUnexpected,
			URL:  url,
			Err:  fmt.Errorf("status %d: invalid JSON body: %w", resp.StatusCode, err),
		}
	}
	return body, nil
}

// decodeJSON decodes a single JSON document, keeping numbers as json.Number
// so large integers survive exactly.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON document")
	}
	return body, nil
}

// classify decides whether err is a connection-level failure.
func classify(err error) ErrorKind {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindTransport
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return KindTransport
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return KindTransport
	}
	return KindUnexpected
}
