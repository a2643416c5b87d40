package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/models"
)

// ResetModel is the first page of the password-reset flow: it looks the
// email up in the local cache and dispatches a verification code. Unlike
// login, this flow openly reports when no account exists.
type ResetModel struct {
	ctx          context.Context
	auth         service.AuthService
	newChallenge func() service.ChallengeManager

	input      textinput.Model
	submitting bool
	errMsg     string
}

func NewResetModel(ctx context.Context, auth service.AuthService, newChallenge func() service.ChallengeManager) *ResetModel {
	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 64
	emailInput.Width = 40
	emailInput.Focus()

	return &ResetModel{
		ctx:          ctx,
		auth:         auth,
		newChallenge: newChallenge,
		input:        emailInput,
	}
}

func (m *ResetModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ResetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(ResetLookupResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeGatewayError(result.Err)
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateTo{Page: "otp", Payload: ChallengeBegun{
				Challenge: result.Challenge,
				Email:     result.Email,
			}}
		}
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "enter":
			if m.submitting {
				return m, nil
			}

			email := strings.TrimSpace(m.input.Value())
			if email == "" {
				m.errMsg = "Email is required"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdLookup(email)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *ResetModel) View() string {
	var b strings.Builder
	b.WriteString("Email │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Checking...]\n")
	} else {
		b.WriteString("\n[Send code]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("RESET PASSWORD", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: submit")
}

func (m *ResetModel) cmdLookup(email string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth
	newChallenge := m.newChallenge

	return func() tea.Msg {
		account, err := auth.LookupLocalAccount(ctx, email)
		if err != nil {
			return ResetLookupResult{Err: err}
		}

		challenge := newChallenge()
		if err = challenge.Begin(ctx, models.PurposeReset, account.Email, account.Mobile, account.Name); err != nil {
			return ResetLookupResult{Err: err}
		}

		return ResetLookupResult{Challenge: challenge, Email: account.Email}
	}
}

// ResetPasswordModel is the final page of the reset flow, reachable only
// after the challenge has been verified.
type ResetPasswordModel struct {
	ctx  context.Context
	auth service.AuthService

	email      string
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewResetPasswordModel(ctx context.Context, auth service.AuthService) *ResetPasswordModel {
	passwordInput := textinput.New()
	passwordInput.Placeholder = "new password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'
	passwordInput.Focus()

	repeatInput := textinput.New()
	repeatInput.Placeholder = "repeat password"
	repeatInput.CharLimit = 256
	repeatInput.Width = 40
	repeatInput.EchoMode = textinput.EchoPassword
	repeatInput.EchoCharacter = '*'

	return &ResetPasswordModel{
		ctx:    ctx,
		auth:   auth,
		inputs: []textinput.Model{passwordInput, repeatInput},
	}
}

func (m *ResetPasswordModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *ResetPasswordModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ResetAuthorized:
		m.email = msg.Email
		m.inputs[0].SetValue("")
		m.inputs[1].SetValue("")
		m.errMsg = ""
		return m, textinput.Blink

	case ResetResult:
		m.submitting = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateTo{Page: "menu", Payload: MenuNotice{Text: "Password updated, please log in"}}
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.submitting = false
			m.errMsg = ""
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "tab", "shift+tab":
			m.inputs[m.focus].Blur()
			m.focus = (m.focus + 1) % len(m.inputs)
			m.inputs[m.focus].Focus()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			pass := m.inputs[0].Value()
			repeat := m.inputs[1].Value()
			if pass == "" {
				m.errMsg = "Password is required"
				return m, nil
			}
			if pass != repeat {
				m.errMsg = "Passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdReset(pass)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *ResetPasswordModel) View() string {
	var b strings.Builder
	b.WriteString("Account: ")
	b.WriteString(m.email)
	b.WriteString("\n\n")
	b.WriteString("New password    │ [")
	b.WriteString(m.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Repeat password │ [")
	b.WriteString(m.inputs[1].View())
	b.WriteString("]\n")

	if m.submitting {
		b.WriteString("\n[Updating...]\n")
	} else {
		b.WriteString("\n[Update password]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("NEW PASSWORD", strings.TrimRight(b.String(), "\n"), "esc: cancel │ tab: next field │ enter: submit")
}

func (m *ResetPasswordModel) cmdReset(pass string) tea.Cmd {
	ctx := m.ctx
	auth := m.auth
	email := m.email

	return func() tea.Msg {
		return ResetResult{Err: auth.ResetPassword(ctx, email, pass)}
	}
}
