// Package secretbox seals small secrets for storage at rest.
//
// A sealed blob is self-describing: a version byte, the cipher
// identifier, the argon2id salt, and the AEAD output (nonce-prefixed).
// Because the salt travels inside the blob, a passphrase alone is
// enough to open it later.
//
// The AEAD is chosen per architecture: AES-GCM where hardware AES is
// available (amd64, arm64), ChaCha20-Poly1305 elsewhere.
package secretbox
