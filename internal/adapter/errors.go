package adapter

import "errors"

var (
	// ErrRemoteUserNotFound covers every failed user lookup: absent account,
	// transport failure, malformed payload. Callers fall back to the local
	// cache rather than distinguishing the causes.
	ErrRemoteUserNotFound = errors.New("remote user not found")

	// ErrRemoteSessionNotFound covers every inconclusive session check:
	// the NOT_FOUND sentinel, an error page, an implausibly short body, or
	// a transport failure. The watchdog treats it as "do not act".
	ErrRemoteSessionNotFound = errors.New("remote session not found")
)
