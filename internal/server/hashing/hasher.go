// Package hashing provides one-way password hashing for the auth service.
//
// Hashing is deliberately slow, so the concrete implementation bounds how
// many digests may be computed concurrently: a burst of registrations must
// not starve unrelated requests of CPU.
package hashing

import "context"

// Hasher hashes plaintext passwords and verifies candidates against stored
// digests. Digests are one-way and must never be logged.
type Hasher interface {
	// Hash computes a salted digest of password. It may block while waiting
	// for a worker slot and honors ctx cancellation during the wait.
	Hash(ctx context.Context, password []byte) (string, error)

	// Verify reports whether password matches digest. Any mismatch,
	// including a malformed digest, yields false, never an error.
	Verify(password []byte, digest string) bool
}
