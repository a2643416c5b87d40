package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/models"
)

// SignupModel collects the registration form, pre-checks the email against
// the directory, and dispatches a verification code. On success it hands the
// pending credentials and the live challenge to the verification page via
// [ChallengeBegun].
type SignupModel struct {
	ctx          context.Context
	auth         service.AuthService
	newChallenge func() service.ChallengeManager

	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func NewSignupModel(ctx context.Context, auth service.AuthService, newChallenge func() service.ChallengeManager) *SignupModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "full name"
	nameInput.CharLimit = 64
	nameInput.Width = 40
	nameInput.Focus()

	emailInput := textinput.New()
	emailInput.Placeholder = "email"
	emailInput.CharLimit = 64
	emailInput.Width = 40

	mobileInput := textinput.New()
	mobileInput.Placeholder = "mobile"
	mobileInput.CharLimit = 15
	mobileInput.Width = 40

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.CharLimit = 256
	passwordInput.Width = 40
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.EchoCharacter = '*'

	repeatInput := textinput.New()
	repeatInput.Placeholder = "repeat password"
	repeatInput.CharLimit = 256
	repeatInput.Width = 40
	repeatInput.EchoMode = textinput.EchoPassword
	repeatInput.EchoCharacter = '*'

	return &SignupModel{
		ctx:          ctx,
		auth:         auth,
		newChallenge: newChallenge,
		inputs:       []textinput.Model{nameInput, emailInput, mobileInput, passwordInput, repeatInput},
	}
}

func (m *SignupModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(SignupResult); ok {
		m.submitting = false
		if result.Err != nil {
			m.errMsg = humanizeGatewayError(result.Err)
			return m, nil
		}
		return m, func() tea.Msg {
			return NavigateTo{Page: "otp", Payload: ChallengeBegun{
				Challenge: result.Challenge,
				Pending:   result.Pending,
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
		case "tab":
			m.focusNext()
			return m, nil
		case "shift+tab":
			m.focusPrev()
			return m, nil
		case "enter":
			if m.submitting {
				return m, nil
			}

			name := strings.TrimSpace(m.inputs[0].Value())
			email := strings.TrimSpace(m.inputs[1].Value())
			mobile := strings.TrimSpace(m.inputs[2].Value())
			pass := m.inputs[3].Value()
			repeat := m.inputs[4].Value()

			if name == "" || email == "" || pass == "" {
				m.errMsg = "Name, email and password are required"
				return m, nil
			}
			if !strings.Contains(email, "@") {
				m.errMsg = "Email looks invalid"
				return m, nil
			}
			if pass != repeat {
				m.errMsg = "Passwords do not match"
				return m, nil
			}

			m.errMsg = ""
			m.submitting = true
			return m, m.cmdBegin(service.Credentials{
				Name:     name,
				Email:    email,
				Mobile:   mobile,
				Password: pass,
			})
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *SignupModel) View() string {
	labels := []string{"Name    ", "Email   ", "Mobile  ", "Password", "Repeat  "}

	var b strings.Builder
	b.WriteString("Field    │ Value\n")
	b.WriteString("─────────┼────────────────────────────────────────────\n")
	for i, label := range labels {
		b.WriteString(label)
		b.WriteString(" │ [")
		b.WriteString(m.inputs[i].View())
		b.WriteString("]\n")
	}

	if m.submitting {
		b.WriteString("\n[Sending verification code...]\n")
	} else {
		b.WriteString("\n[Sign up]\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SIGN UP", strings.TrimRight(b.String(), "\n"), "esc: back │ tab: next field │ enter: submit")
}

func (m *SignupModel) cmdBegin(creds service.Credentials) tea.Cmd {
	ctx := m.ctx
	auth := m.auth
	newChallenge := m.newChallenge

	return func() tea.Msg {
		if err := auth.BeginSignup(ctx, creds.Email); err != nil {
			return SignupResult{Err: err}
		}

		challenge := newChallenge()
		if err := challenge.Begin(ctx, models.PurposeSignup, creds.Email, creds.Mobile, creds.Name); err != nil {
			return SignupResult{Err: err}
		}

		return SignupResult{Challenge: challenge, Pending: creds}
	}
}

func (m *SignupModel) focusNext() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *SignupModel) focusPrev() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}
