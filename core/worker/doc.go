// Package worker provides the bounded worker pool that runs comparisons.
//
// Work items are independent and unordered. The pool is fail-fast: the first
// error cancels the shared context so in-flight items stop at their next
// blocking call, and that first error is the only one reported.
package worker
