package adapter

import (
	"context"

	"github.com/osmlabs/authkeeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_adapter.go -package=mock

// GatewayClient is the client-side contract for the externally owned
// directory gateway. The gateway is eventually consistent, offers no
// transactional guarantees and no synchronous write confirmation, so every
// consumer must tolerate silent write loss and stale or absent reads.
type GatewayClient interface {
	// FetchUser looks up an account by normalized email. Any transport
	// failure, non-success status, or malformed payload is reported as
	// [ErrRemoteUserNotFound] — reads are fail-open by contract.
	FetchUser(ctx context.Context, email string) (models.UserRecord, error)

	// FetchActiveSessionID returns the directory's view of the most recent
	// session id for the account. Payloads that look like default error
	// pages, are implausibly short, or carry the NOT_FOUND sentinel are
	// reported as [ErrRemoteSessionNotFound], never as a crash.
	FetchActiveSessionID(ctx context.Context, email string) (string, error)

	// PublishEvent posts a status-tagged form write to the gateway. The
	// call itself is synchronous; fire-and-forget semantics are layered
	// above it, and callers must treat any returned error as ignorable.
	PublishEvent(ctx context.Context, event models.GatewayEvent) error
}
