package service

import "errors"

var (
	// ErrIdentityCheckFailed is the uniform login rejection. It deliberately
	// does not distinguish "unknown email" from "wrong password".
	ErrIdentityCheckFailed = errors.New("identity check failed, please verify your email and password")

	// ErrEmailAlreadyRegistered means the remote directory already holds an
	// account for the signup email.
	ErrEmailAlreadyRegistered = errors.New("this email is already registered")

	// ErrAccountNotFound means the password-reset email has no cached
	// account on this device.
	ErrAccountNotFound = errors.New("no account found for this email")

	// ErrChallengeNotActive means Verify or Resend was called outside the
	// AwaitingCode state.
	ErrChallengeNotActive = errors.New("no verification code is pending")

	// ErrChallengeCodeMismatch means the submitted code does not match the
	// last generated one. The challenge stays open for another attempt.
	ErrChallengeCodeMismatch = errors.New("incorrect verification code")

	// ErrTooManyChallengeAttempts means the configured verification attempt
	// cap has been exhausted.
	ErrTooManyChallengeAttempts = errors.New("too many verification attempts")

	// ErrResendCooldownActive means Resend was requested before the cooldown
	// window elapsed.
	ErrResendCooldownActive = errors.New("please wait before requesting another code")
)
