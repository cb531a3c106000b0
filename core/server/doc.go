// Package server holds the configuration of the fixture replay server.
//
// The replay server stands in for an OSV server when running the harness
// offline. This package only defines its settings (bind address, port and
// the directory of recorded responses); the cmd package starts it.
package server
