// Package tui implements the terminal user interface: menu, login, signup
// with OTP verification, password reset, the signed-in session page, and
// the administrative registry view.
package tui

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/models"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services         *service.Services
	watchdogInterval time.Duration
	logger           *logger.Logger

	program atomic.Pointer[tea.Program]
}

func New(services *service.Services, watchdogInterval time.Duration, l *logger.Logger) *TUI {
	return &TUI{
		services:         services,
		watchdogInterval: watchdogInterval,
		logger:           l,
	}
}

// Run blocks until the user quits. When restored is non-nil the UI opens
// directly on the home page with that session active.
func (t *TUI) Run(ctx context.Context, restored *models.Session) error {
	pages := map[string]tea.Model{
		"menu":           NewMenuModel(),
		"login":          NewLoginModel(ctx, t.services.Auth),
		"signup":         NewSignupModel(ctx, t.services.Auth, t.services.NewChallenge),
		"otp":            NewOTPModel(ctx),
		"reset":          NewResetModel(ctx, t.services.Auth, t.services.NewChallenge),
		"reset-password": NewResetPasswordModel(ctx, t.services.Auth),
		"home":           NewHomeModel(ctx, t.services.Auth, t.services.Sessions),
		"admin":          NewAdminModel(ctx, t.services.Auth),
	}

	root := NewRootModel(ctx, t.services, t.watchdogInterval, pages, "menu", restored)

	// Focus reporting drives the out-of-band watchdog poke.
	program := tea.NewProgram(root, tea.WithAltScreen(), tea.WithReportFocus())
	t.program.Store(program)
	defer t.program.Store(nil)

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	if result, ok := finalModel.(RootModel); ok && result.quitByUser {
		t.logger.Info().Msg("user quit")
		return ErrUserQuit
	}
	return nil
}

// NotifySessionTerminated pushes a forced-logout message into the running
// UI. Safe to call from any goroutine, including before Run or after it
// returned.
func (t *TUI) NotifySessionTerminated(reason string) {
	if program := t.program.Load(); program != nil {
		program.Send(SessionEnded{Reason: reason, Forced: true})
	}
}
