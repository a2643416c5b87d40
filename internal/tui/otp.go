package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/osmlabs/authkeeper/internal/service"
	"github.com/osmlabs/authkeeper/models"
)

// OTPModel is the verification-code page shared by the signup and reset
// flows. It owns the live challenge handed over via [ChallengeBegun], ticks
// the resend cooldown down once per second, and on a confirmed code emits
// the flow-specific completion message.
type OTPModel struct {
	ctx context.Context

	challenge service.ChallengeManager
	pending   service.Credentials
	email     string

	input  textinput.Model
	errMsg string
	status string
}

func NewOTPModel(ctx context.Context) *OTPModel {
	codeInput := textinput.New()
	codeInput.Placeholder = "4-digit code"
	codeInput.CharLimit = 4
	codeInput.Width = 12
	codeInput.Focus()

	return &OTPModel{
		ctx:   ctx,
		input: codeInput,
	}
}

func (m *OTPModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *OTPModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ChallengeBegun:
		m.challenge = msg.Challenge
		m.pending = msg.Pending
		m.email = msg.Email
		m.input.SetValue("")
		m.errMsg = ""
		m.status = ""
		return m, tea.Batch(textinput.Blink, cmdCooldownTick())

	case cooldownTickMsg:
		if m.challenge == nil {
			return m, nil
		}
		if m.challenge.CooldownRemaining() > 0 {
			return m, cmdCooldownTick()
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return NavigateTo{Page: "menu"} }
		case "r":
			return m, m.resend()
		case "enter":
			return m, m.verify()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *OTPModel) resend() tea.Cmd {
	if m.challenge == nil {
		return nil
	}

	remaining := m.challenge.CooldownRemaining()
	if remaining > 0 {
		m.errMsg = fmt.Sprintf("Please wait %d s before requesting another code", remaining)
		return nil
	}

	if err := m.challenge.Resend(m.ctx); err != nil {
		m.errMsg = humanizeGatewayError(err)
		return nil
	}

	m.errMsg = ""
	m.status = "A new code is on its way"
	return cmdCooldownTick()
}

func (m *OTPModel) verify() tea.Cmd {
	if m.challenge == nil {
		return nil
	}

	code := strings.TrimSpace(m.input.Value())
	if code == "" {
		m.errMsg = "Enter the code you received"
		return nil
	}

	if err := m.challenge.Verify(code); err != nil {
		m.errMsg = err.Error()
		m.input.SetValue("")
		return nil
	}

	m.errMsg = ""
	if m.challenge.Purpose() == models.PurposeReset {
		email := m.email
		return func() tea.Msg {
			return NavigateTo{Page: "reset-password", Payload: ResetAuthorized{Email: email}}
		}
	}

	pending := m.pending
	return func() tea.Msg { return SignupVerified{Pending: pending} }
}

func (m *OTPModel) View() string {
	target := m.email
	if m.challenge != nil {
		email, _, _ := m.challenge.Target()
		target = email
	}

	var b strings.Builder
	b.WriteString("A verification code was sent to ")
	b.WriteString(target)
	b.WriteString("\n\n")
	b.WriteString("Code │ [")
	b.WriteString(m.input.View())
	b.WriteString("]\n")

	if m.challenge != nil {
		if remaining := m.challenge.CooldownRemaining(); remaining > 0 {
			b.WriteString(fmt.Sprintf("\nResend available in %d s\n", remaining))
		} else {
			b.WriteString("\nPress r to resend the code\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + m.errMsg))
		b.WriteString("\n")
	}

	return renderPage("VERIFICATION", strings.TrimRight(b.String(), "\n"), "enter: confirm │ r: resend │ esc: cancel")
}

func cmdCooldownTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return cooldownTickMsg{}
	})
}
