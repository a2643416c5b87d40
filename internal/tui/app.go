package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/models"
)

// RootModel is the TUI router:
//  1. keeps the active page
//  2. handles global Ctrl+C quit and terminal focus reports
//  3. handles NavigateTo messages
//  4. finishes the login/signup flows by opening a session
//  5. delegates all other messages to the active page
type RootModel struct {
	ctx              context.Context
	services         *service.Services
	watchdogInterval time.Duration

	pages   map[string]tea.Model
	current tea.Model

	// restored is a session loaded from disk at startup; when set the UI
	// opens directly on the home page.
	restored *models.Session

	quitByUser bool
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(
	ctx context.Context,
	services *service.Services,
	watchdogInterval time.Duration,
	pages map[string]tea.Model,
	startPage string,
	restored *models.Session,
) RootModel {
	return RootModel{
		ctx:              ctx,
		services:         services,
		watchdogInterval: watchdogInterval,
		pages:            pages,
		current:          pages[startPage],
		restored:         restored,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.restored != nil {
		restored := *r.restored
		return func() tea.Msg { return StartSessionResult{Session: restored} }
	}
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Global hotkey for every page.
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" {
			r.quitByUser = true
			return r, tea.Quit
		}
	}

	// The terminal regaining focus is the classic moment to catch a
	// session that was superseded while the user was away.
	if _, ok := msg.(tea.FocusMsg); ok {
		r.services.Watchdog.Poke()
		return r, nil
	}

	// Cross-page navigation.
	if nav, ok := msg.(NavigateTo); ok {
		next, exists := r.pages[nav.Page]
		if !exists {
			return r, nil
		}

		r.current = next

		if nav.Payload != nil {
			return r, func() tea.Msg { return nav.Payload }
		}
		return r, r.current.Init()
	}

	switch result := msg.(type) {
	case LoginResult:
		if result.Err == nil {
			return r, r.cmdStartSession(result.Account)
		}

	case SignupVerified:
		return r, r.cmdCommitSignup(result.Pending)

	case StartSessionResult:
		if result.Err == nil {
			r.services.Watchdog.Start(r.ctx, result.Session, r.watchdogInterval)
			session := result.Session
			return r, func() tea.Msg {
				return NavigateTo{Page: "home", Payload: SessionStarted{Session: session}}
			}
		}

	case SessionEnded:
		r.services.Watchdog.Stop()
		return r, r.cmdFinishLogout(result)
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	if r.current == nil {
		return renderPage("AUTHKEEPER", "", "")
	}
	return r.current.View()
}

func (r RootModel) cmdStartSession(account models.UserRecord) tea.Cmd {
	ctx := r.ctx
	sessions := r.services.Sessions

	return func() tea.Msg {
		session, err := sessions.Issue(ctx, account)
		return StartSessionResult{Session: session, Err: err}
	}
}

func (r RootModel) cmdCommitSignup(pending service.Credentials) tea.Cmd {
	ctx := r.ctx
	auth := r.services.Auth
	sessions := r.services.Sessions

	return func() tea.Msg {
		account, err := auth.CommitSignup(ctx, pending)
		if err != nil {
			return StartSessionResult{Err: err}
		}

		session, err := sessions.Issue(ctx, account)
		return StartSessionResult{Session: session, Err: err}
	}
}

func (r RootModel) cmdFinishLogout(ended SessionEnded) tea.Cmd {
	sessions := r.services.Sessions

	return func() tea.Msg {
		_ = sessions.Logout(context.Background())

		text := "Logged out"
		if ended.Forced {
			text = ended.Reason
		}
		return NavigateTo{Page: "menu", Payload: MenuNotice{Text: text}}
	}
}
