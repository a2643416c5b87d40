package store

import "errors"

var (
	// ErrUserNotFound means the email has no record in the local cache.
	ErrUserNotFound = errors.New("user not found in local cache")

	// ErrLocalSessionNotFound means no session is currently persisted.
	ErrLocalSessionNotFound = errors.New("local session not found")
)
