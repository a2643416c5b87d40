package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/store"
	"github.com/osmlabs/authkeeper/models"
)

type sessionService struct {
	store      store.CredentialStore
	dispatcher *EventDispatcher
	admin      AdminIdentity
	logger     *logger.Logger

	now func() time.Time
}

func NewSessionService(
	credStore store.CredentialStore,
	dispatcher *EventDispatcher,
	admin AdminIdentity,
	l *logger.Logger,
) SessionService {
	admin.Email = models.NormalizeEmail(admin.Email)
	return &sessionService{
		store:      credStore,
		dispatcher: dispatcher,
		admin:      admin,
		logger:     l,
		now:        time.Now,
	}
}

// newSessionID mints an id of the form SID_<unix-millis>_<random>. The
// millisecond prefix makes ids sortable in the directory sheet; the random
// suffix disambiguates same-millisecond logins across devices.
func (s *sessionService) newSessionID() string {
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
	return fmt.Sprintf("SID_%d_%s", s.now().UnixMilli(), random)
}

func (s *sessionService) Issue(ctx context.Context, account models.UserRecord) (models.Session, error) {
	session := models.Session{
		ID:       s.newSessionID(),
		Email:    models.NormalizeEmail(account.Email),
		Name:     account.Name,
		Mobile:   account.Mobile,
		IssuedAt: s.now().UTC(),
	}

	if err := s.store.SaveSession(ctx, session); err != nil {
		return models.Session{}, fmt.Errorf("persist session: %w", err)
	}

	// The administrative session is never registered with the directory:
	// it must not displace a field user's session, and the watchdog never
	// reconciles it.
	if !s.IsAdmin(session.Email) {
		s.dispatcher.Publish(models.GatewayEvent{
			Kind:      models.EventSessionSync,
			Email:     session.Email,
			Name:      session.Name,
			Mobile:    session.Mobile,
			SessionID: session.ID,
		})
	}

	s.logger.Info().Str("email", session.Email).Str("session_id", session.ID).Msg("session issued")
	return session, nil
}

func (s *sessionService) Restore(ctx context.Context) (models.Session, error) {
	return s.store.Session(ctx)
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info().Msg("local session cleared")
	return nil
}

func (s *sessionService) IsAdmin(email string) bool {
	return models.NormalizeEmail(email) == s.admin.Email
}
