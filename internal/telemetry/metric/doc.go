// Package metric provides Prometheus metrics for rediswire.
//
// It counts commands by outcome, observes per-command latency, and
// tracks bytes moved over the wire. The registry is self-contained so
// tests and parallel benchmark runs do not collide on the default
// global registry.
package metric
