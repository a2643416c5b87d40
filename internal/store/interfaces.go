package store

import (
	"context"

	"github.com/osmlabs/authkeeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mock_store.go -package=mock

// CredentialStore is the process-local durable mapping of email to account
// record, plus the persisted current session. It is the fallback source of
// truth for authentication and the authoritative source for the
// administrative listing surface (the remote directory exposes no list
// operation).
//
// Administrative removal affects this store only; a revoked account can
// still authenticate through the directory path on a device holding
// propagated credentials. Known asymmetry, kept deliberately.
type CredentialStore interface {
	// ListUsers returns every cached account record.
	ListUsers(ctx context.Context) ([]models.UserRecord, error)

	// UpsertUser inserts or replaces the record keyed by normalized email.
	UpsertUser(ctx context.Context, record models.UserRecord) error

	// RemoveUser deletes the record keyed by normalized email. Removing an
	// absent record is a no-op.
	RemoveUser(ctx context.Context, email string) error

	// FindUser returns the record keyed by normalized email or
	// [ErrUserNotFound].
	FindUser(ctx context.Context, email string) (models.UserRecord, error)

	// SaveSession persists the current local session.
	SaveSession(ctx context.Context, session models.Session) error

	// Session returns the persisted current session or
	// [ErrLocalSessionNotFound].
	Session(ctx context.Context) (models.Session, error)

	// ClearSession drops the persisted session. Clearing an absent session
	// is a no-op.
	ClearSession(ctx context.Context) error

	// Migrate reconciles the persisted state with the running build's
	// version tag: on mismatch the current session is dropped and the user
	// registry is preserved.
	Migrate(ctx context.Context, versionTag string) error
}
