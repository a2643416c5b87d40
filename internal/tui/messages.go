package tui

import (
	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/models"
)

// NavigateTo switches the active page. When Payload is non-nil it is
// re-delivered as a message after the switch so the target page can pick up
// cross-page state.
type NavigateTo struct {
	Page    string
	Payload interface{}
}

// MenuNotice is a one-line status shown on the menu page after a completed
// flow or a forced termination.
type MenuNotice struct {
	Text string
}

// LoginResult carries the outcome of an async login command.
type LoginResult struct {
	Account models.UserRecord
	Err     error
}

// SignupResult carries the outcome of the signup pre-check and code
// dispatch.
type SignupResult struct {
	Challenge service.ChallengeManager
	Pending   service.Credentials
	Err       error
}

// ResetLookupResult carries the outcome of the password-reset lookup and
// code dispatch.
type ResetLookupResult struct {
	Challenge service.ChallengeManager
	Email     string
	Err       error
}

// ChallengeBegun hands an in-progress OTP challenge to the verification
// page.
type ChallengeBegun struct {
	Challenge service.ChallengeManager
	Pending   service.Credentials // set for the signup flow
	Email     string              // set for the reset flow
}

// SignupVerified reports a code-confirmed signup; the root model finishes
// the registration and opens a session.
type SignupVerified struct {
	Pending service.Credentials
}

// ResetAuthorized unlocks the new-password page for the given account.
type ResetAuthorized struct {
	Email string
}

// ResetResult carries the outcome of the password rewrite.
type ResetResult struct {
	Err error
}

// StartSessionResult carries the outcome of session issuance after a
// successful login or signup.
type StartSessionResult struct {
	Session models.Session
	Err     error
}

// SessionStarted is delivered to the home page when a session becomes
// active.
type SessionStarted struct {
	Session models.Session
}

// SessionEnded closes the active session. Forced marks a watchdog
// termination, in which case Reason is shown on the menu.
type SessionEnded struct {
	Reason string
	Forced bool
}

// AccountsLoaded carries the cached registry for the admin page.
type AccountsLoaded struct {
	Accounts []models.UserRecord
	Err      error
}

// AccountRevoked reports the outcome of an admin revocation.
type AccountRevoked struct {
	Email string
	Err   error
}

// QueryRecorded confirms a dispatched support-query attribution.
type QueryRecorded struct{}

type cooldownTickMsg struct{}

type copiedMsg struct{}

type clearStatusMsg struct{}
