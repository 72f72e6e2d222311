package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hrassistant/internal/auth"
	"hrassistant/internal/domain"
)

// AssistantPort is the TUI-facing subset of the assistant service.
type AssistantPort interface {
	HandleQuery(ctx context.Context, user domain.User, query string) string
}

// AuthPort checks credentials and refreshes user records.
type AuthPort interface {
	Authenticate(ctx context.Context, username, password string) (domain.User, error)
}

type phase int

const (
	phaseUsername phase = iota
	phasePassword
	phaseChat
	phaseLockedOut
)

// Model is the Bubble Tea model: a login flow with a bounded attempt
// counter, then a chat loop against the assistant.
type Model struct {
	assistant AssistantPort
	auth      AuthPort
	input     textinput.Model
	viewport  viewport.Model

	phase       phase
	user        domain.User
	username    string
	attempts    int
	maxAttempts int
	summary     string
	status      string
	transcript  []string
	ready       bool
}

// New creates the TUI model. summary is shown in the header; maxAttempts
// bounds failed logins before the program exits.
func New(assistant AssistantPort, authenticator AuthPort, summary string, maxAttempts int) Model {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Username"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		assistant:   assistant,
		auth:        authenticator,
		input:       ti,
		viewport:    vp,
		summary:     summary,
		maxAttempts: maxAttempts,
		status:      "Enter your username to log in.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := chatBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.phase == phaseLockedOut {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}
	switch m.phase {
	case phaseUsername:
		m.username = value
		m.phase = phasePassword
		m.input.Reset()
		m.input.Placeholder = "Password"
		m.input.EchoMode = textinput.EchoPassword
		m.status = "Enter your password."
		return m, nil
	case phasePassword:
		user, err := m.auth.Authenticate(context.Background(), m.username, value)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidCredentials) {
				m.status = "Login error: " + err.Error()
				m.phase = phaseLockedOut
				return m, nil
			}
			m.attempts++
			if m.attempts >= m.maxAttempts {
				m.status = "Too many failed attempts. Press any key to exit."
				m.phase = phaseLockedOut
				return m, nil
			}
			m.phase = phaseUsername
			m.input.Reset()
			m.input.Placeholder = "Username"
			m.input.EchoMode = textinput.EchoNormal
			m.status = fmt.Sprintf("Invalid credentials (%d/%d). Enter your username.", m.attempts, m.maxAttempts)
			return m, nil
		}
		m.user = user
		m.phase = phaseChat
		m.input.Reset()
		m.input.Placeholder = "Ask about HR policies, your balance, or apply for leave"
		m.input.EchoMode = textinput.EchoNormal
		m.status = fmt.Sprintf("Logged in as %s. Type a question and press Enter.", user.Username)
		m.transcript = append(m.transcript,
			assistantStyle.Render("Assistant: ")+fmt.Sprintf("Welcome, %s! Ask me about HR policies, check your leave balance, or apply for leave.", user.Username))
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	case phaseChat:
		reply := m.assistant.HandleQuery(context.Background(), m.user, value)
		m.transcript = append(m.transcript,
			userStyle.Render("You: ")+value,
			assistantStyle.Render("Assistant: ")+reply)
		m.input.Reset()
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil
	}
	return m, nil
}

// View renders the TUI layout for the current phase.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("HR Assistant")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := inputBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	if m.phase == phaseChat {
		chat := chatBoxStyle.Render(m.viewport.View())
		return header + "\n" + summary + "\n" + chat + "\n" + input + "\n" + status
	}
	return header + "\n" + summary + "\n\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return "No messages yet."
	}
	return strings.Join(m.transcript, "\n\n")
}

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
