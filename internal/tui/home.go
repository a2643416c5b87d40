package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/models"
)

const clearStatusAfter = 2 * time.Second

// HomeModel is the signed-in page. It shows the active session, relays
// support queries for attribution, and offers clipboard copy of the session
// id. The administrative account additionally gets access to the registry
// page.
type HomeModel struct {
	ctx      context.Context
	auth     service.AuthService
	sessions service.SessionService

	session models.Session
	isAdmin bool

	queryInput textinput.Model
	status     string
}

func NewHomeModel(ctx context.Context, auth service.AuthService, sessions service.SessionService) *HomeModel {
	queryInput := textinput.New()
	queryInput.Placeholder = "type a support query"
	queryInput.CharLimit = 200
	queryInput.Width = 46
	queryInput.Focus()

	return &HomeModel{
		ctx:        ctx,
		auth:       auth,
		sessions:   sessions,
		queryInput: queryInput,
	}
}

func (m *HomeModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *HomeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SessionStarted:
		m.session = msg.Session
		m.isAdmin = m.sessions.IsAdmin(msg.Session.Email)
		m.status = ""
		m.queryInput.SetValue("")
		return m, textinput.Blink

	case copiedMsg:
		m.status = "Session id copied to clipboard"
		return m, cmdClearStatus()

	case QueryRecorded:
		m.status = "Query recorded"
		m.queryInput.SetValue("")
		return m, cmdClearStatus()

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+y":
			return m, cmdCopyToClipboard(m.session.ID)
		case "ctrl+d":
			return m, func() tea.Msg { return SessionEnded{} }
		case "ctrl+u":
			if m.isAdmin {
				return m, func() tea.Msg { return NavigateTo{Page: "admin"} }
			}
			return m, nil
		case "enter":
			query := strings.TrimSpace(m.queryInput.Value())
			if query == "" {
				return m, nil
			}
			return m, m.cmdRecordQuery(query)
		}
	}

	var cmd tea.Cmd
	m.queryInput, cmd = m.queryInput.Update(msg)
	return m, cmd
}

func (m *HomeModel) View() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Signed in as │ %s <%s>\n", m.session.Name, m.session.Email))
	b.WriteString(fmt.Sprintf("Session id   │ %s\n", m.session.ID))
	b.WriteString(fmt.Sprintf("Issued at    │ %s\n", m.session.IssuedAt.Format("2006-01-02 15:04:05")))
	b.WriteString("\n")
	b.WriteString("Query │ [")
	b.WriteString(m.queryInput.View())
	b.WriteString("]\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("» " + m.status))
		b.WriteString("\n")
	}

	hotKeys := "enter: send query │ ctrl+y: copy session id │ ctrl+d: log out"
	if m.isAdmin {
		hotKeys += " │ ctrl+u: accounts"
	}
	return renderPage("SESSION", strings.TrimRight(b.String(), "\n"), hotKeys)
}

func (m *HomeModel) cmdRecordQuery(query string) tea.Cmd {
	auth := m.auth
	session := m.session

	return func() tea.Msg {
		auth.RecordQuery(session, query, false)
		return QueryRecorded{}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return clearStatusMsg{}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(clearStatusAfter, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
