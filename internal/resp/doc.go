// Package resp implements the client side of the Redis serialization
// protocol: turning a human-typed command line into argument tokens,
// framing those tokens as a multi-bulk request, and decoding one
// complete reply buffer into a typed result.
//
// The package is transport-free. Framing and delivery of reply buffers
// belong to internal/client; this package only deals with bytes that
// have already been fully received.
package resp
