// Package inspector serves a live view of a running scenario.
//
// The router exposes the inspector page at /, the current document at
// /document, Prometheus metrics at /metrics and a websocket at /ws that
// streams one message per scenario step. New websocket clients receive the
// latest snapshot as soon as they connect.
package inspector
