// Package httpserver exposes the workflow coordinator over a JSON HTTP API.
//
// The API serves the presentation layer: asset listing with aggregate
// statistics, publish and reveal operations, manual refresh, the workflow
// status register, the action history, and the ledger availability probe.
// Operational endpoints (livez, readyz, drain, undrain, pprof) follow the
// usual load-balancer contract: drain flips readiness off and waits out the
// configured drain period before shutdown proceeds.
package httpserver
