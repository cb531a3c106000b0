// Package config provides configuration management for osv-diff.
//
// It utilizes Viper for loading configuration from environment variables,
// an optional .env file and command-line flags bound by the cmd package.
// Defaults live next to each field as `default:"..."` struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - Endpoints: base URLs of the old and new OSV servers
//   - HTTP: connect/read timeouts and the 503/504 retry policy
//   - List: directory (or bucket) holding the id/package lists
//   - Worker: size of the comparison worker pool
//   - Log: logging level and format
//   - Storage: S3/MinIO credentials used when lists live in a bucket
//   - Server: port and recording root of the fixture replay server
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Endpoints.Old)
package config
