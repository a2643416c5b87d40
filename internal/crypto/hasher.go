// Package crypto holds the credential hashing primitive shared by every
// authentication path.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashSecret computes the SHA-256 hex digest of a plaintext secret.
//
// The transform is pure and deterministic: the same input always yields the
// same output, with no recoverable inverse. Determinism is contractual — the
// digest is stored in both the local cache and the remote directory and is
// compared across devices, so no per-record salt can be involved. An empty
// input still hashes deterministically (used defensively when a field is
// missing).
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}
