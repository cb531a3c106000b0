package compare

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

type countingHandler struct {
	calls atomic.Int32
	body  func(path string) string
}

func (h *countingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.calls.Add(1)
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(h.body(r.URL.Path)))
}

func staticBody(body string) func(string) string {
	return func(string) string { return body }
}

func TestRunner_IdenticalResponses(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, ModeID, "Go", "GO-2021-0061\nGO-2021-0062\nGO-2021-0063\n")

	body := func(path string) string { return `{"path": "` + path + `", "aliases": ["a", "b"]}` }
	oldH := &countingHandler{body: body}
	newH := &countingHandler{body: body}
	oldSrv := httptest.NewServer(oldH)
	defer oldSrv.Close()
	newSrv := httptest.NewServer(newH)
	defer newSrv.Close()

	reporter, logs := newObservedReporter(zapcore.InfoLevel)
	opts := Options{Mode: ModeID, Category: "Go"}
	runner := NewRunner(opts, FileSource{Dir: dir}, newTestFetcher(oldSrv.URL, newSrv.URL), reporter, 4)

	err := runner.Run(context.Background())

	require.NoError(t, err)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, int32(3), oldH.calls.Load())
	assert.Equal(t, int32(3), newH.calls.Load())
}

func TestRunner_ReportsEachDifference(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, ModePackage, CategoryAll, "django\nflask\nrequests\n")

	oldSrv := httptest.NewServer(&countingHandler{body: staticBody(`{"b": [1, 2, 3]}`)})
	defer oldSrv.Close()
	newSrv := httptest.NewServer(&countingHandler{body: func(path string) string {
		if path == "/pkgs/flask" {
			return `{"b": [3, 2, 1]}`
		}
		return `{"b": [1, 2, 4]}`
	}})
	defer newSrv.Close()

	reporter, logs := newObservedReporter(zapcore.InfoLevel)
	opts := Options{Mode: ModePackage, Category: CategoryAll}
	runner := NewRunner(opts, FileSource{Dir: dir}, newTestFetcher(oldSrv.URL, newSrv.URL), reporter, 2)

	require.NoError(t, runner.Run(context.Background()))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	keys := []string{warnings[0].ContextMap()["key"].(string), warnings[1].ContextMap()["key"].(string)}
	assert.ElementsMatch(t, []string{"django", "requests"}, keys)
}

func TestRunner_NewEndpointUnreachable(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, ModeID, "PyPI", "PYSEC-2021-1\n")

	oldSrv := httptest.NewServer(&countingHandler{body: staticBody(`[]`)})
	defer oldSrv.Close()

	reporter, logs := newObservedReporter(zapcore.InfoLevel)
	opts := Options{Mode: ModeID, Category: "PyPI"}
	runner := NewRunner(opts, FileSource{Dir: dir}, newTestFetcher(oldSrv.URL, closedURL(t)), reporter, 1)

	err := runner.Run(context.Background())

	var abort *AbortError
	require.ErrorAs(t, err, &abort)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindTransport, fe.Kind)

	errorsLogged := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, errorsLogged, 1)
	assert.Equal(t, "Failed to connect", errorsLogged[0].Message)
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestRunner_MissingList(t *testing.T) {
	h := &countingHandler{body: staticBody(`[]`)}
	srv := httptest.NewServer(h)
	defer srv.Close()

	reporter, logs := newObservedReporter(zapcore.InfoLevel)
	opts := Options{Mode: ModeID, Category: "DWF"}
	runner := NewRunner(opts, FileSource{Dir: t.TempDir()}, newTestFetcher(srv.URL, srv.URL), reporter, 2)

	err := runner.Run(context.Background())

	assert.ErrorIs(t, err, ErrListNotFound)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Equal(t, 1, logs.Len())
	assert.Zero(t, h.calls.Load())
}

type fakeFetcher struct {
	fetch func(ctx context.Context, path string) (any, any, error)
}

func (f fakeFetcher) Fetch(ctx context.Context, path string) (any, any, error) {
	return f.fetch(ctx, path)
}

func TestRunner_FirstFatalErrorWins(t *testing.T) {
	dir := t.TempDir()
	writeList(t, dir, ModeID, CategoryAll, "A\nB\nC\nD\n")

	boom := &FetchError{Kind: KindUnexpected, URL: "http://old/ids/B", Err: errors.New("bad json")}
	fetcher := fakeFetcher{fetch: func(ctx context.Context, path string) (any, any, error) {
		if path == "ids/B" {
			return nil, nil, boom
		}
		<-ctx.Done()
		return nil, nil, &FetchError{Kind: KindUnexpected, URL: path, Err: ctx.Err()}
	}}

	reporter, logs := newObservedReporter(zapcore.InfoLevel)
	runner := NewRunner(Options{Mode: ModeID, Category: CategoryAll}, FileSource{Dir: dir}, fetcher, reporter, 4)

	err := runner.Run(context.Background())

	assert.ErrorIs(t, err, boom)
	entries := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "http://old/ids/B", entries[0].ContextMap()["url"])
}
