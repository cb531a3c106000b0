// Package compare implements the old/new server comparison harness.
//
// A run reads a list of OSV identifiers or package names, queries the same
// route on two OSV servers (conventionally the RDB-backed build on :1325 and
// the Redis-backed build on :1326) and logs every structural difference
// between the two JSON answers.
//
// # Components
//
//   - BuildPath: maps (mode, fetchtype, key) to ids/{key}, {type}/ids/{key},
//     pkgs/{key} or {type}/pkgs/{key}.
//   - HTTPFetcher: GETs the path on the old server, then on the new one, with
//     connect/read timeouts and 503/504 retries.
//   - ComputeDiff: order-insensitive structural diff; arrays are multisets,
//     object keys are significant.
//   - Runner: loads the list and fans requests out over a bounded pool.
//   - Reporter: one WARN entry per differing key, one ERROR entry for the
//     failure that ends the run.
//
// # Failure model
//
// Differences never fail a run. A transport or fetch failure on any key
// cancels the remaining work and makes Run return an *AbortError, which the
// command turns into exit status 1. A missing list fails before any request
// is sent.
package compare
