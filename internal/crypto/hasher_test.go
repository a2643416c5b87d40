package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHashSecret_Deterministic verifies that hashing the same secret twice
// yields the same digest.
func TestHashSecret_Deterministic(t *testing.T) {
	assert.Equal(t, HashSecret("secret1"), HashSecret("secret1"))
}

// TestHashSecret_KnownVector pins the digest format to plain SHA-256 hex —
// the remote directory stores digests produced by other devices, so the
// algorithm must never drift.
func TestHashSecret_KnownVector(t *testing.T) {
	assert.Equal(t,
		"5b11618c2e44027877d0cd0921ed166b9f176f50587fc91e7534dd2946db77d6",
		HashSecret("secret1"))
}

// TestHashSecret_DistinctInputs verifies that different secrets produce
// different digests.
func TestHashSecret_DistinctInputs(t *testing.T) {
	assert.NotEqual(t, HashSecret("secret1"), HashSecret("secret2"))
}

// TestHashSecret_EmptyInput verifies that an empty secret still hashes
// deterministically.
func TestHashSecret_EmptyInput(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashSecret(""))
	assert.Len(t, HashSecret(""), 64)
}
