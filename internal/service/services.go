// Package service holds the application core: identity resolution across
// the two credential tiers, session issuance and reconciliation, OTP
// challenge flows, and fire-and-forget directory writes.
package service

import (
	"github.com/osmlabs/authkeeper/internal/adapter"
	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/store"
)

// Dependencies collects everything the service layer is built from.
type Dependencies struct {
	Store     store.CredentialStore
	Gateway   adapter.GatewayClient
	Admin     AdminIdentity
	Challenge ChallengeConfig
	Logger    *logger.Logger

	// Terminate is invoked by the watchdog when the local session has been
	// superseded on another device.
	Terminate func(reason string)
}

// Services bundles the constructed application services.
type Services struct {
	Auth       AuthService
	Sessions   SessionService
	Watchdog   SessionWatchdog
	Dispatcher *EventDispatcher

	// NewChallenge mints a fresh single-flow OTP manager. Challenges are
	// per-attempt, never shared.
	NewChallenge func() ChallengeManager
}

func NewServices(deps Dependencies) *Services {
	dispatcher := NewEventDispatcher(deps.Gateway, deps.Logger)

	return &Services{
		Auth:       NewAuthService(deps.Store, deps.Gateway, dispatcher, deps.Admin, deps.Logger),
		Sessions:   NewSessionService(deps.Store, dispatcher, deps.Admin, deps.Logger),
		Watchdog:   NewSessionWatchdog(deps.Gateway, deps.Admin, deps.Terminate, deps.Logger),
		Dispatcher: dispatcher,
		NewChallenge: func() ChallengeManager {
			return NewChallengeManager(deps.Gateway, deps.Challenge, deps.Logger)
		},
	}
}
