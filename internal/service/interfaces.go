package service

import (
	"context"
	"time"

	"github.com/osmlabs/authkeeper/models"
)

// Credentials carries the user-supplied identity fields of a signup or login
// form. Password is plaintext here and must be digested before it reaches
// any store or wire.
type Credentials struct {
	Name     string
	Email    string
	Mobile   string
	Password string
}

// AuthService resolves identities against the two-tier credential truth:
// the remote directory is authoritative-but-unreliable, the local cache is
// available-but-possibly-stale. Every read tries remote first and falls back
// to local; every write lands locally synchronously and remotely
// best-effort.
type AuthService interface {
	// Login authenticates an email/password pair. Sources are checked in
	// order: the fixed administrative pair, the remote directory, then the
	// local cache (covers accounts that have not propagated yet). The first
	// matching source wins. No match yields [ErrIdentityCheckFailed] — the
	// reason never reveals whether the email exists.
	Login(ctx context.Context, email, password string) (models.UserRecord, error)

	// BeginSignup pre-checks the remote directory for an existing account.
	// Returns [ErrEmailAlreadyRegistered] when the email is taken. The
	// signup path intentionally reveals account existence.
	BeginSignup(ctx context.Context, email string) error

	// CommitSignup finalizes an OTP-verified signup: digests the password,
	// publishes the registration best-effort, and upserts the local cache
	// so login works before directory propagation.
	CommitSignup(ctx context.Context, creds Credentials) (models.UserRecord, error)

	// ResetPassword replaces the account's digest: published best-effort to
	// the directory and rewritten in the local cache when present.
	ResetPassword(ctx context.Context, email, newPassword string) error

	// LookupLocalAccount finds the cached record for the password-reset
	// flow. Returns [ErrAccountNotFound] when absent — this flow requires
	// knowing account existence, an intentional asymmetry with Login.
	LookupLocalAccount(ctx context.Context, email string) (models.UserRecord, error)

	// RecordQuery publishes a USER_QUERY attribution event for the chat
	// core. Fire-and-forget.
	RecordQuery(session models.Session, query string, unclear bool)

	// ListAccounts returns the local registry for the administrative
	// surface. The directory is never enumerated.
	ListAccounts(ctx context.Context) ([]models.UserRecord, error)

	// RevokeAccount deletes the account from the local cache only.
	RevokeAccount(ctx context.Context, email string) error
}

// SessionService mints, restores, and tears down the current local session.
type SessionService interface {
	// Issue mints a fresh session for the account, persists it locally and
	// — unless the account is the administrative one — publishes a
	// SESSION_SYNC event best-effort. Returns immediately; publication
	// failure is swallowed.
	Issue(ctx context.Context, account models.UserRecord) (models.Session, error)

	// Restore reloads the persisted session after a process restart.
	// Returns [store.ErrLocalSessionNotFound] when none exists.
	Restore(ctx context.Context) (models.Session, error)

	// Logout clears the local session unconditionally. No directory event
	// is published: other devices learn about replacement, never about a
	// voluntary end.
	Logout(ctx context.Context) error

	// IsAdmin reports whether the normalized email is the administrative
	// account, which is exempt from the single-session invariant.
	IsAdmin(email string) bool
}

// SessionWatchdog is the recurring reconciliation loop comparing the local
// session id against the directory's view and terminating the local session
// on divergence. Fail-open: an inconclusive fetch never terminates.
type SessionWatchdog interface {
	// Start launches the reconciliation loop for session. Any previously
	// running loop is stopped first. Administrative sessions are excluded
	// entirely: Start is a no-op for them. If interval is zero or negative
	// it defaults to 5 seconds.
	Start(ctx context.Context, session models.Session, interval time.Duration)

	// Poke requests an immediate out-of-band check (e.g. the terminal
	// regained focus). Never blocks; ignored while no loop runs.
	Poke()

	// Stop cancels the loop and blocks until it has fully exited. Safe to
	// call when not running. Must not be called from the termination
	// callback — the watchdog stops its own loop on conflict.
	Stop()
}

// ChallengeManager drives one OTP flow: Idle → Delivering → AwaitingCode →
// Verified, with mismatches leaving the flow retryable.
type ChallengeManager interface {
	// Begin generates a fresh 4-digit code and requests out-of-band
	// delivery. Dispatch failure still advances to AwaitingCode: the UI
	// cannot distinguish "delivered" from "dispatch accepted", and a
	// delivery outage must not strand the user.
	Begin(ctx context.Context, purpose models.ChallengePurpose, email, mobile, name string) error

	// Resend replaces the code with a fresh one, implicitly invalidating
	// the previous code. Only permitted once the cooldown has elapsed.
	Resend(ctx context.Context) error

	// Verify compares the submitted code against the last generated one by
	// exact string equality. Returns nil on match,
	// [ErrChallengeCodeMismatch] on mismatch (flow stays retryable), or
	// [ErrTooManyChallengeAttempts] once the configured cap is exceeded.
	Verify(submitted string) error

	// State reports the current lifecycle state.
	State() models.ChallengeState

	// Purpose reports which flow this challenge gates.
	Purpose() models.ChallengePurpose

	// Target returns the delivery context the challenge was begun with.
	Target() (email, mobile, name string)

	// CooldownRemaining returns whole seconds until Resend is permitted.
	CooldownRemaining() int
}
