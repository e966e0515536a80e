// Package runtime wires configuration and the selected store backend
// (Redis or embedded Pebble) into a single handle passed to services and
// transports.
package runtime
