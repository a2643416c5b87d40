package models

// ChallengePurpose identifies which flow an OTP challenge gates.
type ChallengePurpose string

const (
	// PurposeSignup gates account creation.
	PurposeSignup ChallengePurpose = "signup"

	// PurposeReset gates password recovery.
	PurposeReset ChallengePurpose = "password-reset"
)

// ChallengeState is the lifecycle state of an in-flight OTP challenge.
type ChallengeState int

const (
	// ChallengeIdle means no challenge has been started.
	ChallengeIdle ChallengeState = iota

	// ChallengeDelivering means a code was generated and dispatch is in
	// progress.
	ChallengeDelivering

	// ChallengeAwaitingCode means dispatch was accepted (or optimistically
	// assumed) and the user may submit a code.
	ChallengeAwaitingCode

	// ChallengeVerified means the submitted code matched.
	ChallengeVerified
)

func (s ChallengeState) String() string {
	switch s {
	case ChallengeIdle:
		return "idle"
	case ChallengeDelivering:
		return "delivering"
	case ChallengeAwaitingCode:
		return "awaiting-code"
	case ChallengeVerified:
		return "verified"
	default:
		return "unknown"
	}
}
