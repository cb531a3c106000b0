// Package fixture implements a replay server for recorded OSV responses.
//
// It answers the OSV server routes from JSON files on disk so the comparison
// harness can run without a database-backed server. A recording for the
// harness path "Go/ids/GO-2021-0061" lives at {root}/Go/ids/GO-2021-0061.json.
//
// # HTTP Endpoints
//
//   - GET /health
//   - GET /ids/:id and GET /:type/ids/:id
//   - GET /pkgs/:name and GET /:type/pkgs/:name
//
// Paths without a recording answer 200 with an empty JSON list, as the OSV
// server does for unknown keys.
package fixture
