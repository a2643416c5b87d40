package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osmlabs/authkeeper/internal/adapter"
	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/models"
)

// DefaultWatchdogInterval is the reconciliation period used when Start
// receives a non-positive interval.
const DefaultWatchdogInterval = 5 * time.Second

// TerminationReason is the operator-facing message delivered with a forced
// logout.
const TerminationReason = "You have logged in on another device. Only one active session is allowed per account."

type sessionWatchdog struct {
	gateway   adapter.GatewayClient
	logger    *logger.Logger
	admin     AdminIdentity
	terminate func(reason string)

	mu     sync.Mutex
	cancel context.CancelFunc
	poke   chan struct{}
	wg     sync.WaitGroup

	// inFlight suppresses overlapping reconciliations: a slow fetch makes
	// the next tick a no-op instead of queueing behind it.
	inFlight atomic.Bool
}

// NewSessionWatchdog builds the reconciliation loop. terminate is invoked
// exactly once per conflict, after the loop has shut itself down; it must
// not call Stop.
func NewSessionWatchdog(
	gateway adapter.GatewayClient,
	admin AdminIdentity,
	terminate func(reason string),
	l *logger.Logger,
) SessionWatchdog {
	admin.Email = models.NormalizeEmail(admin.Email)
	return &sessionWatchdog{
		gateway:   gateway,
		logger:    l,
		admin:     admin,
		terminate: terminate,
	}
}

func (w *sessionWatchdog) Start(ctx context.Context, session models.Session, interval time.Duration) {
	w.Stop()

	if models.NormalizeEmail(session.Email) == w.admin.Email {
		w.logger.Debug().Str("email", session.Email).Msg("watchdog skipped for administrative session")
		return
	}

	if interval <= 0 {
		interval = DefaultWatchdogInterval
	}

	loopCtx, cancel := context.WithCancel(ctx)
	poke := make(chan struct{}, 1)

	w.mu.Lock()
	w.cancel = cancel
	w.poke = poke
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop(loopCtx, session, interval, poke)

	w.logger.Info().
		Str("email", session.Email).
		Str("session_id", session.ID).
		Dur("interval", interval).
		Msg("session watchdog started")
}

func (w *sessionWatchdog) loop(ctx context.Context, session models.Session, interval time.Duration, poke <-chan struct{}) {
	defer w.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-poke:
		}

		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.check(ctx, session)
		}()
	}
}

func (w *sessionWatchdog) check(ctx context.Context, session models.Session) {
	if !w.inFlight.CompareAndSwap(false, true) {
		return
	}
	defer w.inFlight.Store(false)

	remoteID, err := w.gateway.FetchActiveSessionID(ctx, session.Email)
	if err != nil {
		// Inconclusive: outage, error page, or no directory record yet.
		// Never terminate on a failed read.
		w.logger.Debug().Err(err).Str("email", session.Email).Msg("session check inconclusive")
		return
	}

	if remoteID == session.ID {
		return
	}

	w.logger.Warn().
		Str("email", session.Email).
		Str("local_session_id", session.ID).
		Str("remote_session_id", remoteID).
		Msg("session superseded by another device")

	// Stop scheduling further checks before surfacing the termination.
	// Only the cancel is taken here; Stop's wg.Wait would deadlock on the
	// goroutine we are in.
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.poke = nil
	w.mu.Unlock()

	if cancel == nil {
		return // a concurrent Stop already won
	}
	cancel()

	w.terminate(TerminationReason)
}

func (w *sessionWatchdog) Poke() {
	w.mu.Lock()
	poke := w.poke
	w.mu.Unlock()

	if poke == nil {
		return
	}
	select {
	case poke <- struct{}{}:
	default:
	}
}

func (w *sessionWatchdog) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.poke = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}
