package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/osmlabs/authkeeper/internal/adapter"
	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/mock"
	"github.com/osmlabs/authkeeper/models"
)

func newWatchdogFixture(t *testing.T) (SessionWatchdog, *mock.MockGatewayClient, chan string) {
	t.Helper()

	ctrl := gomock.NewController(t)
	gateway := mock.NewMockGatewayClient(ctrl)

	terminated := make(chan string, 1)
	watchdog := NewSessionWatchdog(gateway, testAdmin, func(reason string) {
		terminated <- reason
	}, logger.Nop())
	return watchdog, gateway, terminated
}

var fieldSession = models.Session{
	ID:    "SID_1_local",
	Email: "tech@omegaseikimobility.com",
}

func TestWatchdog_TerminatesOnSupersededSession(t *testing.T) {
	watchdog, gateway, terminated := newWatchdogFixture(t)

	gateway.EXPECT().
		FetchActiveSessionID(gomock.Any(), fieldSession.Email).
		Return("SID_2_other", nil).
		MinTimes(1)

	watchdog.Start(context.Background(), fieldSession, 10*time.Millisecond)
	defer watchdog.Stop()

	select {
	case reason := <-terminated:
		assert.Equal(t, TerminationReason, reason)
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog never terminated a superseded session")
	}
}

func TestWatchdog_FailOpenOnInconclusiveFetch(t *testing.T) {
	watchdog, gateway, terminated := newWatchdogFixture(t)

	// outage, error page, short payload: all surface as this error
	gateway.EXPECT().
		FetchActiveSessionID(gomock.Any(), gomock.Any()).
		Return("", adapter.ErrRemoteSessionNotFound).
		MinTimes(3)

	watchdog.Start(context.Background(), fieldSession, 10*time.Millisecond)
	defer watchdog.Stop()

	select {
	case <-terminated:
		t.Fatal("an inconclusive fetch must never terminate the session")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchdog_MatchingSessionKeepsRunning(t *testing.T) {
	watchdog, gateway, terminated := newWatchdogFixture(t)

	gateway.EXPECT().
		FetchActiveSessionID(gomock.Any(), fieldSession.Email).
		Return(fieldSession.ID, nil).
		MinTimes(2)

	watchdog.Start(context.Background(), fieldSession, 10*time.Millisecond)
	defer watchdog.Stop()

	select {
	case <-terminated:
		t.Fatal("a matching session id must not terminate")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatchdog_AdminSessionExempt(t *testing.T) {
	watchdog, _, terminated := newWatchdogFixture(t)

	// no FetchActiveSessionID expectation: any reconciliation fails the test
	watchdog.Start(context.Background(), models.Session{
		ID:    "SID_3_admin",
		Email: "Admin@OSM.local",
	}, 5*time.Millisecond)
	defer watchdog.Stop()

	select {
	case <-terminated:
		t.Fatal("the administrative session must never be reconciled")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestWatchdog_PokeTriggersImmediateCheck(t *testing.T) {
	watchdog, gateway, _ := newWatchdogFixture(t)

	checked := make(chan struct{}, 1)
	gateway.EXPECT().
		FetchActiveSessionID(gomock.Any(), fieldSession.Email).
		DoAndReturn(func(context.Context, string) (string, error) {
			select {
			case checked <- struct{}{}:
			default:
			}
			return fieldSession.ID, nil
		}).
		MinTimes(1)

	// interval far beyond the test horizon: only Poke can trigger a check
	watchdog.Start(context.Background(), fieldSession, time.Hour)
	defer watchdog.Stop()

	watchdog.Poke()

	select {
	case <-checked:
	case <-time.After(2 * time.Second):
		t.Fatal("poke did not trigger an immediate check")
	}
}

func TestWatchdog_StopIsIdempotent(t *testing.T) {
	watchdog, gateway, _ := newWatchdogFixture(t)

	gateway.EXPECT().
		FetchActiveSessionID(gomock.Any(), gomock.Any()).
		Return(fieldSession.ID, nil).
		AnyTimes()

	require.NotPanics(t, func() {
		watchdog.Stop() // never started
		watchdog.Start(context.Background(), fieldSession, 10*time.Millisecond)
		watchdog.Stop()
		watchdog.Stop()
	})
}

func TestWatchdog_RestartReplacesLoop(t *testing.T) {
	watchdog, gateway, terminated := newWatchdogFixture(t)

	second := models.Session{ID: "SID_4_new", Email: "tech@omegaseikimobility.com"}

	// both loops see the second session id as the remote truth; the first
	// loop is replaced before it can observe a conflict
	gateway.EXPECT().
		FetchActiveSessionID(gomock.Any(), gomock.Any()).
		Return(second.ID, nil).
		AnyTimes()

	watchdog.Start(context.Background(), fieldSession, time.Hour)
	watchdog.Start(context.Background(), second, 10*time.Millisecond)
	defer watchdog.Stop()

	select {
	case <-terminated:
		t.Fatal("the replacement session matches the remote id, nothing should terminate")
	case <-time.After(100 * time.Millisecond):
	}
}
