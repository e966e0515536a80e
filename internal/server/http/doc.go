// Package httpserver exposes the seat engine over a JSON HTTP API:
// reserve (first-fit and exact position), per-row occupancy, inventory-wide
// availability, lifecycle (initialize/reset), store stats, and health.
//
// Wire contract: success is 200/201, any business rejection (no capacity,
// bad coordinates, bad range) is 409, and store faults are 503. Load
// tooling relies on only those codes appearing under normal operation.
package httpserver
