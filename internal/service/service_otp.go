package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/osmlabs/authkeeper/internal/adapter"
	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/models"
)

// ChallengeConfig tunes one OTP flow. MaxAttempts of zero means unlimited
// verification attempts.
type ChallengeConfig struct {
	ResendCooldown time.Duration
	MaxAttempts    int
}

type challengeManager struct {
	gateway adapter.GatewayClient
	logger  *logger.Logger
	cfg     ChallengeConfig

	now func() time.Time

	mu          sync.Mutex
	state       models.ChallengeState
	purpose     models.ChallengePurpose
	code        string
	email       string
	mobile      string
	name        string
	attempts    int
	resendAfter time.Time
}

// NewChallengeManager builds a single-flow OTP manager. Each signup or
// reset attempt gets its own manager; state is never shared across flows.
func NewChallengeManager(gateway adapter.GatewayClient, cfg ChallengeConfig, l *logger.Logger) ChallengeManager {
	return &challengeManager{
		gateway: gateway,
		logger:  l,
		cfg:     cfg,
		now:     time.Now,
		state:   models.ChallengeIdle,
	}
}

// generateCode draws a uniform 4-digit code in [1000, 9999] from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", fmt.Errorf("draw verification code: %w", err)
	}
	return fmt.Sprintf("%d", 1000+n.Int64()), nil
}

func (m *challengeManager) Begin(ctx context.Context, purpose models.ChallengePurpose, email, mobile, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purpose = purpose
	m.email = models.NormalizeEmail(email)
	m.mobile = mobile
	m.name = name
	m.attempts = 0

	return m.dispatchLocked(ctx)
}

func (m *challengeManager) Resend(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != models.ChallengeAwaitingCode {
		return ErrChallengeNotActive
	}
	if m.now().Before(m.resendAfter) {
		return ErrResendCooldownActive
	}

	m.attempts = 0
	return m.dispatchLocked(ctx)
}

// dispatchLocked generates a fresh code and requests delivery. Callers must
// hold mu. The state advances to AwaitingCode even when the dispatch write
// fails: the code may still have been relayed, and a stranded user is worse
// than a wasted retry.
func (m *challengeManager) dispatchLocked(ctx context.Context) error {
	code, err := generateCode()
	if err != nil {
		return err
	}

	m.code = code
	m.state = models.ChallengeDelivering

	err = m.gateway.PublishEvent(ctx, models.GatewayEvent{
		Kind:      models.EventOtpDispatched,
		Email:     m.email,
		Name:      m.name,
		Mobile:    m.mobile,
		EmailCode: code,
	})
	if err != nil {
		m.logger.Warn().Err(err).Str("email", m.email).Msg("verification code dispatch failed, proceeding optimistically")
	} else {
		m.logger.Debug().Str("email", m.email).Str("purpose", string(m.purpose)).Msg("verification code dispatched")
	}

	m.state = models.ChallengeAwaitingCode
	m.resendAfter = m.now().Add(m.cfg.ResendCooldown)
	return nil
}

func (m *challengeManager) Verify(submitted string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != models.ChallengeAwaitingCode {
		return ErrChallengeNotActive
	}

	if m.cfg.MaxAttempts > 0 && m.attempts >= m.cfg.MaxAttempts {
		return ErrTooManyChallengeAttempts
	}

	if submitted == m.code {
		m.state = models.ChallengeVerified
		return nil
	}

	m.attempts++
	if m.cfg.MaxAttempts > 0 && m.attempts >= m.cfg.MaxAttempts {
		return ErrTooManyChallengeAttempts
	}
	return ErrChallengeCodeMismatch
}

func (m *challengeManager) State() models.ChallengeState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *challengeManager) Purpose() models.ChallengePurpose {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purpose
}

func (m *challengeManager) Target() (email, mobile, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email, m.mobile, m.name
}

func (m *challengeManager) CooldownRemaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	remaining := m.resendAfter.Sub(m.now())
	if remaining <= 0 {
		return 0
	}
	return int((remaining + time.Second - 1) / time.Second)
}
