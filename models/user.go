package models

import (
	"strings"
	"time"
)

// UserRecord represents a registered account as stored in the local
// credential cache and mirrored by the remote directory.
// Sensitive fields must never be exposed outside trusted boundaries.
type UserRecord struct {
	// Email is the unique, case-insensitive account identity.
	// Always stored normalized (lower-cased and trimmed).
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Mobile is the optional contact number used for delivery context.
	Mobile string `json:"mobile"`

	// PasswordDigest is the output of the credential hasher.
	// This value MUST be a digest, never the plaintext password.
	PasswordDigest string `json:"password_digest"`

	// RegisteredAt is the timestamp when the account was committed.
	RegisteredAt time.Time `json:"registered_at"`
}

// NormalizeEmail lower-cases and trims an email so that every store and
// comparison operates on the same canonical key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
