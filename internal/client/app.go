package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/osmlabs/authkeeper/internal/adapter"
	"github.com/osmlabs/authkeeper/internal/config"
	httphandler "github.com/osmlabs/authkeeper/internal/handler/http"
	"github.com/osmlabs/authkeeper/internal/logger"
	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/internal/store"
	"github.com/osmlabs/authkeeper/internal/tui"
	"github.com/osmlabs/authkeeper/models"
)

const adminShutdownTimeout = 3 * time.Second

type App struct {
	cfg      *config.StructuredConfig
	store    store.CredentialStore
	services *service.Services
	ui       *tui.TUI
	logger   *logger.Logger
}

func NewApp(log *logger.Logger) (*App, error) {
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	gateway := adapter.NewHTTPGatewayAdapter(adapter.HTTPGatewayConfig{
		BaseURL: cfg.Gateway.URL,
		Timeout: cfg.Gateway.Timeout,
	})

	credStore, err := store.NewFileStorage(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("create credential store: %w", err)
	}

	app := &App{
		cfg:    cfg,
		store:  credStore,
		logger: log,
	}

	app.services = service.NewServices(service.Dependencies{
		Store:   credStore,
		Gateway: gateway,
		Admin: service.AdminIdentity{
			Email:          cfg.Admin.Email,
			PasswordDigest: cfg.Admin.PasswordDigest,
		},
		Challenge: service.ChallengeConfig{
			ResendCooldown: cfg.OTP.ResendCooldown,
			MaxAttempts:    cfg.OTP.MaxAttempts,
		},
		Logger: log,
		// The watchdog stops its own loop before this fires; the UI takes
		// care of clearing the local session.
		Terminate: func(reason string) {
			app.ui.NotifySessionTerminated(reason)
		},
	})

	app.ui = tui.New(app.services, cfg.Watchdog.Interval, log)
	return app, nil
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// A changed version tag drops the persisted session but keeps the
	// cached accounts.
	if err := a.store.Migrate(ctx, a.cfg.App.VersionTag); err != nil {
		return fmt.Errorf("migrate credential store: %w", err)
	}

	adminServer := a.startAdminServer()
	defer a.stopAdminServer(adminServer)

	var restored *models.Session
	if session, err := a.services.Sessions.Restore(ctx); err == nil {
		restored = &session
		a.logger.Info().Str("email", session.Email).Msg("session restored from disk")
	} else if !errors.Is(err, store.ErrLocalSessionNotFound) {
		return fmt.Errorf("restore session: %w", err)
	}

	err := a.ui.Run(ctx, restored)

	a.services.Watchdog.Stop()
	a.services.Dispatcher.Wait()

	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}

func (a *App) startAdminServer() *http.Server {
	if a.cfg.Admin.HTTPAddress == "" {
		return nil
	}

	handler := httphandler.NewHandler(a.services, a.logger)
	server := &http.Server{
		Addr:    a.cfg.Admin.HTTPAddress,
		Handler: handler.Init(),
	}

	go func() {
		a.logger.Info().Str("address", server.Addr).Msg("admin surface listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error().Err(err).Msg("admin surface failed")
		}
	}()

	return server
}

func (a *App) stopAdminServer(server *http.Server) {
	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), adminShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("admin surface shutdown")
	}
}
