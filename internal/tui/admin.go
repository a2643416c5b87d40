package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/models"
)

// AdminModel lists the locally cached account registry and revokes entries.
// Revocation is local-only: the directory keeps its copy.
type AdminModel struct {
	ctx  context.Context
	auth service.AuthService

	accounts []models.UserRecord
	idx      int
	loading  bool
	errMsg   string
	status   string
}

func NewAdminModel(ctx context.Context, auth service.AuthService) *AdminModel {
	return &AdminModel{
		ctx:     ctx,
		auth:    auth,
		loading: true,
	}
}

func (m *AdminModel) Init() tea.Cmd {
	m.loading = true
	return m.cmdLoadAccounts()
}

func (m *AdminModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AccountsLoaded:
		m.loading = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.accounts = msg.Accounts
		if m.idx >= len(m.accounts) {
			m.idx = len(m.accounts) - 1
		}
		if m.idx < 0 {
			m.idx = 0
		}
		return m, nil

	case AccountRevoked:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.status = "Revoked " + msg.Email
		return m, tea.Batch(m.cmdLoadAccounts(), cmdClearStatus())

	case clearStatusMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Page: "home"} }
		case "up", "k":
			if m.idx > 0 {
				m.idx--
			}
		case "down", "j":
			if m.idx < len(m.accounts)-1 {
				m.idx++
			}
		case "r":
			m.loading = true
			return m, m.cmdLoadAccounts()
		case "ctrl+d":
			if len(m.accounts) == 0 {
				return m, nil
			}
			return m, m.cmdRevoke(m.accounts[m.idx].Email)
		}
	}

	return m, nil
}

func (m *AdminModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString("Loading...\n")
		return renderPage("CACHED ACCOUNTS", strings.TrimRight(b.String(), "\n"), "esc: back")
	}

	if len(m.accounts) == 0 {
		b.WriteString("No cached accounts on this device.\n")
	} else {
		emailColWidth := lipgloss.Width("Email")
		for _, account := range m.accounts {
			if w := lipgloss.Width(account.Email); w > emailColWidth {
				emailColWidth = w
			}
		}

		b.WriteString(fmt.Sprintf("  %-*s │ %-20s │ %s\n", emailColWidth, "Email", "Name", "Mobile"))
		b.WriteString(strings.Repeat("─", emailColWidth+2))
		b.WriteString("─┼─")
		b.WriteString(strings.Repeat("─", 20))
		b.WriteString("─┼─")
		b.WriteString(strings.Repeat("─", 12))
		b.WriteString("\n")

		for i, account := range m.accounts {
			cursor := " "
			if i == m.idx {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %-*s │ %-20s │ %s\n",
				cursor, emailColWidth, account.Email, fitText(account.Name, 20), account.Mobile))
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render("» " + m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("CACHED ACCOUNTS", strings.TrimRight(b.String(), "\n"),
		"↑/↓: navigate │ ctrl+d: revoke │ r: refresh │ esc: back")
}

func (m *AdminModel) cmdLoadAccounts() tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		accounts, err := auth.ListAccounts(ctx)
		return AccountsLoaded{Accounts: accounts, Err: err}
	}
}

func (m *AdminModel) cmdRevoke(email string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth

	return func() tea.Msg {
		return AccountRevoked{Email: email, Err: auth.RevokeAccount(ctx, email)}
	}
}
