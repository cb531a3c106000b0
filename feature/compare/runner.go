package compare

import (
	"context"
	"fmt"

	"osv-diff/core/worker"
)

// AbortError is returned by Runner.Run after the cause has been logged.
type AbortError struct {
	Err error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("comparison aborted: %v", e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// Runner drives one harness run: load the list, compare every key, report.
type Runner struct {
	opts     Options
	source   ListSource
	fetcher  Fetcher
	reporter *Reporter
	workers  int
}

// NewRunner creates a runner. workers bounds the number of concurrent comparisons.
func NewRunner(opts Options, source ListSource, fetcher Fetcher, reporter *Reporter, workers int) *Runner {
	return &Runner{
		opts:     opts,
		source:   source,
		fetcher:  fetcher,
		reporter: reporter,
		workers:  workers,
	}
}

// Run compares every listed key. Differences are reported as they are found
// and never fail the run. The first fetch error cancels the remaining work
// and is returned as an *AbortError; a missing list fails before any request
// is sent.
func (r *Runner) Run(ctx context.Context) error {
	keys, err := r.source.Load(ctx, r.opts.Mode, r.opts.Category)
	if err != nil {
		r.reporter.Fatal(err)
		return &AbortError{Err: err}
	}

	requests := make([]Request, len(keys))
	for i, key := range keys {
		requests[i] = Request{Mode: r.opts.Mode, Category: r.opts.Category, Key: key}
	}

	r.reporter.Start(r.opts, len(requests))

	if err := worker.Run(ctx, r.workers, requests, r.compare); err != nil {
		r.reporter.Fatal(err)
		return &AbortError{Err: err}
	}
	return nil
}

func (r *Runner) compare(ctx context.Context, req Request) error {
	oldBody, newBody, err := r.fetcher.Fetch(ctx, req.Path())
	if err != nil {
		return err
	}

	r.reporter.Report(Result{
		Request: req,
		Diff:    ComputeDiff(oldBody, newBody),
		Old:     oldBody,
		New:     newBody,
	})
	return nil
}
