// Package client implements the usher CLI's client-side commands: thin
// wrappers over the HTTP API for reserving seats, reading occupancy, and
// driving the inventory lifecycle against a running server.
package client
