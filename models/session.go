package models

import "time"

// Session is a live authenticated device binding. For non-administrative
// accounts at most one session is considered live at a time: liveness is
// equality between the locally held ID and the most recent ID recorded in
// the remote directory for the same account.
type Session struct {
	// ID is the opaque per-login token, unique per issuance.
	ID string `json:"session_id"`

	// Email is the normalized identity of the session owner.
	Email string `json:"email"`

	// Name and Mobile are carried for attribution of logged activity.
	Name   string `json:"name"`
	Mobile string `json:"mobile"`

	// IssuedAt is the time the session was minted.
	IssuedAt time.Time `json:"issued_at"`
}
