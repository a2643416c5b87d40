package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osmlabs/authkeeper/internal/adapter"
	"github.com/osmlabs/authkeeper/internal/crypto"
	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/store"
	"github.com/osmlabs/authkeeper/models"
)

// AdminIdentity is the fixed administrative account baked into the build:
// a normalized email and the SHA-256 digest of its password. The record
// never exists in either credential tier and is exempt from session
// reconciliation.
type AdminIdentity struct {
	Email          string
	PasswordDigest string
}

type authService struct {
	store      store.CredentialStore
	gateway    adapter.GatewayClient
	dispatcher *EventDispatcher
	admin      AdminIdentity
	logger     *logger.Logger
}

func NewAuthService(
	credStore store.CredentialStore,
	gateway adapter.GatewayClient,
	dispatcher *EventDispatcher,
	admin AdminIdentity,
	l *logger.Logger,
) AuthService {
	admin.Email = models.NormalizeEmail(admin.Email)
	return &authService{
		store:      credStore,
		gateway:    gateway,
		dispatcher: dispatcher,
		admin:      admin,
		logger:     l,
	}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.UserRecord, error) {
	email = models.NormalizeEmail(email)
	digest := crypto.HashSecret(password)

	if email == a.admin.Email {
		if digest == a.admin.PasswordDigest {
			a.logger.Info().Str("email", email).Msg("administrative login")
			return models.UserRecord{Email: a.admin.Email, Name: "Admin", Mobile: "N/A"}, nil
		}
		return models.UserRecord{}, ErrIdentityCheckFailed
	}

	if remote, err := a.gateway.FetchUser(ctx, email); err == nil {
		if remote.PasswordDigest == digest {
			a.logger.Info().Str("email", email).Msg("login resolved by directory")
			return remote, nil
		}
		// The directory holds a different digest. The cached record may
		// still be ahead of it right after a reset, so fall through.
	}

	if local, err := a.store.FindUser(ctx, email); err == nil && local.PasswordDigest == digest {
		a.logger.Info().Str("email", email).Msg("login resolved by local cache")
		return local, nil
	}

	return models.UserRecord{}, ErrIdentityCheckFailed
}

func (a *authService) BeginSignup(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)

	if _, err := a.gateway.FetchUser(ctx, email); err == nil {
		return ErrEmailAlreadyRegistered
	}
	// A directory miss and a directory outage look the same here; signup
	// proceeds in both cases and the gateway deduplicates on its side.
	return nil
}

func (a *authService) CommitSignup(ctx context.Context, creds Credentials) (models.UserRecord, error) {
	record := models.UserRecord{
		Email:          models.NormalizeEmail(creds.Email),
		Name:           creds.Name,
		Mobile:         creds.Mobile,
		PasswordDigest: crypto.HashSecret(creds.Password),
		RegisteredAt:   time.Now().UTC(),
	}

	a.dispatcher.Publish(models.GatewayEvent{
		Kind:      models.EventVerifiedSignup,
		Email:     record.Email,
		Name:      record.Name,
		Mobile:    record.Mobile,
		EmailCode: "REG_NEW",
		Password:  record.PasswordDigest,
	})

	if err := a.store.UpsertUser(ctx, record); err != nil {
		return models.UserRecord{}, fmt.Errorf("cache signed-up account: %w", err)
	}

	a.logger.Info().Str("email", record.Email).Msg("signup committed")
	return record, nil
}

func (a *authService) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = models.NormalizeEmail(email)
	digest := crypto.HashSecret(newPassword)

	a.dispatcher.Publish(models.GatewayEvent{
		Kind:     models.EventResetPassword,
		Email:    email,
		Name:     "RECOVERY",
		Mobile:   "RECOVERY",
		Password: digest,
	})

	record, err := a.store.FindUser(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Nothing cached on this device; the directory write above is
			// the only effect.
			return nil
		}
		return fmt.Errorf("load account for reset: %w", err)
	}

	record.PasswordDigest = digest
	if err = a.store.UpsertUser(ctx, record); err != nil {
		return fmt.Errorf("rewrite cached digest: %w", err)
	}

	a.logger.Info().Str("email", email).Msg("password reset applied")
	return nil
}

func (a *authService) LookupLocalAccount(ctx context.Context, email string) (models.UserRecord, error) {
	record, err := a.store.FindUser(ctx, models.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.UserRecord{}, ErrAccountNotFound
		}
		return models.UserRecord{}, fmt.Errorf("lookup account: %w", err)
	}
	return record, nil
}

func (a *authService) RecordQuery(session models.Session, query string, unclear bool) {
	isUnclear := "FALSE"
	if unclear {
		isUnclear = "TRUE"
	}

	a.dispatcher.Publish(models.GatewayEvent{
		Kind:      models.EventUserQuery,
		Email:     session.Email,
		Name:      session.Name,
		Mobile:    session.Mobile,
		SessionID: session.ID,
		Query:     query,
		IsUnclear: isUnclear,
	})
}

func (a *authService) ListAccounts(ctx context.Context) ([]models.UserRecord, error) {
	return a.store.ListUsers(ctx)
}

func (a *authService) RevokeAccount(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	if err := a.store.RemoveUser(ctx, email); err != nil {
		return fmt.Errorf("revoke account: %w", err)
	}

	a.logger.Info().Str("email", email).Msg("account revoked from local cache")
	return nil
}
