// Package client bridges the blocking command API onto the
// message-oriented connection underneath it.
//
// A connection delivers whole reply buffers through callbacks; the
// bridge correlates exactly one sent frame with its one expected reply
// and suspends the caller until that reply lands. The Client facade
// composes tokenizing, framing, the bridge, and reply decoding into a
// single Do call, and owns the AUTH and SELECT sequencing that runs
// through the same pipeline.
package client
