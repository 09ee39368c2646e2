// Package bench implements a small load generator for measuring
// request/reply latency and throughput against a server. Each worker
// owns its own connection, since a single connection allows only one
// outstanding request at a time.
package bench
