package tui

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"deepchat/internal/app"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusArea int

const (
	focusInput focusArea = iota
	focusChat
	focusSessions
)

type chatResultMsg struct{ res app.ChatResult }

type titleMsg struct {
	id    string
	title string
}

type spinMsg struct{}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type MainModel struct {
	store   *app.ChatStore
	backend app.Backend
	orch    *app.Orchestrator
	cfg     app.Config
	logger  *slog.Logger

	theme Theme

	width  int
	height int
	ready  bool

	focus focusArea

	sessions   []app.ChatInfo
	sessionSel int

	messages  []app.Message
	reasoning string

	input  textarea.Model
	chatVP viewport.Model

	modelIndex int

	sending    bool
	statusText string
	spinnerPos int
	errText    string
}

func NewMainModel(store *app.ChatStore, backend app.Backend, cfg app.Config, logger *slog.Logger) *MainModel {
	ta := textarea.New()
	ta.Placeholder = "Type a message, Enter to send. Tab switches focus."
	ta.Focus()
	ta.CharLimit = 8000
	ta.SetHeight(1)
	ta.Prompt = " "
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.BlurredStyle.CursorLine = lipgloss.NewStyle()

	modelIndex := 0
	for i, name := range cfg.ChatModels {
		if name == cfg.ChatModel {
			modelIndex = i
			break
		}
	}

	m := &MainModel{
		store:   store,
		backend: backend,
		orch: &app.Orchestrator{
			Backend:      backend,
			SystemPrompt: cfg.SystemPrompt,
			MaxRetries:   cfg.MaxRetries,
			Logger:       logger,
		},
		cfg:        cfg,
		logger:     logger,
		theme:      NewTheme(),
		width:      100,
		height:     30,
		focus:      focusInput,
		input:      ta,
		modelIndex: modelIndex,
		statusText: "Ready",
	}
	m.refreshSessions()
	if active := store.Active(); active != "" {
		if msgs, err := store.Messages(active); err == nil {
			m.messages = msgs
		}
	} else if len(m.sessions) > 0 {
		// Reopened store: resume the most recently touched session.
		if msgs, err := store.Load(m.sessions[0].ID); err == nil {
			m.messages = msgs
		}
	}
	return m
}

func (m *MainModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *MainModel) currentModel() string {
	if len(m.cfg.ChatModels) == 0 {
		return m.cfg.ChatModel
	}
	return m.cfg.ChatModels[m.modelIndex%len(m.cfg.ChatModels)]
}

func (m *MainModel) refreshSessions() {
	m.sessions = sortSessions(m.store.List())
	if m.sessionSel >= len(m.sessions) {
		m.sessionSel = len(m.sessions) - 1
	}
	if m.sessionSel < 0 {
		m.sessionSel = 0
	}
}

// sortSessions orders newest-activity-first for the sidebar; the store itself
// makes no ordering promise.
func sortSessions(infos []app.ChatInfo) []app.ChatInfo {
	out := make([]app.ChatInfo, len(infos))
	copy(out, infos)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func waitForResult(ch <-chan app.ChatResult) tea.Cmd {
	return func() tea.Msg {
		return chatResultMsg{res: <-ch}
	}
}

func generateTitleCmd(backend app.Backend, model, id, firstMessage string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return titleMsg{id: id, title: app.GenerateTitle(ctx, backend, model, firstMessage)}
	}
}

func spinTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg { return spinMsg{} })
}

func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		layout := m.computeLayout()
		if !m.ready {
			m.chatVP = viewport.New(layout.chatW, layout.chatH)
			m.ready = true
		} else {
			m.chatVP.Width = layout.chatW
			m.chatVP.Height = layout.chatH
		}
		m.input.SetWidth(max(10, layout.inputW))
		m.updateChatViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.focus = (m.focus + 1) % 3
			if m.focus == focusInput {
				m.input.Focus()
			} else {
				m.input.Blur()
			}
			return m, nil
		case "ctrl+n":
			return m, m.newSession()
		case "ctrl+p":
			m.modelIndex = (m.modelIndex + 1) % max(1, len(m.cfg.ChatModels))
			m.statusText = "Model: " + m.currentModel()
			return m, nil
		case "enter":
			switch m.focus {
			case focusInput:
				return m, m.send()
			case focusSessions:
				return m, m.openSelected()
			}
		case "up", "k":
			if m.focus == focusSessions {
				if m.sessionSel > 0 {
					m.sessionSel--
				}
				return m, nil
			}
		case "down", "j":
			if m.focus == focusSessions {
				if m.sessionSel < len(m.sessions)-1 {
					m.sessionSel++
				}
				return m, nil
			}
		case "ctrl+d":
			if m.focus == focusSessions {
				return m, m.deleteSelected()
			}
		}

	case chatResultMsg:
		m.sending = false
		if msg.res.Err != nil {
			m.errText = msg.res.Err.Error()
			m.statusText = "Failed"
			m.logger.Error("exchange failed", "error", msg.res.Err)
		} else {
			m.errText = ""
			m.statusText = "Ready"
			m.reasoning = msg.res.Reasoning
			if err := m.store.Append("", app.RoleAssistant, msg.res.Answer); err != nil {
				m.errText = err.Error()
			} else {
				m.messages = append(m.messages, app.Message{
					Role:      app.RoleAssistant,
					Content:   msg.res.Answer,
					Timestamp: time.Now(),
				})
			}
			m.refreshSessions()
		}
		m.updateChatViewport()
		return m, nil

	case titleMsg:
		if err := m.store.Rename(msg.id, msg.title); err != nil {
			m.logger.Warn("title rename failed", "error", err, "chat", msg.id)
		}
		m.refreshSessions()
		return m, nil

	case spinMsg:
		if m.sending {
			m.spinnerPos = (m.spinnerPos + 1) % len(spinnerFrames)
			m.updateChatViewport()
			return m, spinTick()
		}
		return m, nil
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.focus == focusChat {
		var cmd tea.Cmd
		m.chatVP, cmd = m.chatVP.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// send persists the user message, then hands the exchange to the retry loop.
// While the loop is outstanding further sends are ignored.
func (m *MainModel) send() tea.Cmd {
	if m.sending {
		return nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	active := m.store.Active()
	if active == "" {
		if cmd := m.newSession(); cmd != nil {
			return cmd
		}
		active = m.store.Active()
	}

	history := make([]app.Message, len(m.messages))
	copy(history, m.messages)

	if err := m.store.Append("", app.RoleUser, text); err != nil {
		m.errText = err.Error()
		return nil
	}
	m.messages = append(m.messages, app.Message{Role: app.RoleUser, Content: text, Timestamp: time.Now()})
	m.input.Reset()
	m.sending = true
	m.statusText = "Thinking"
	m.errText = ""
	m.updateChatViewport()

	cmds := []tea.Cmd{
		waitForResult(m.orch.Start(context.Background(), m.currentModel(), text, history)),
		spinTick(),
	}
	if countUserMessages(m.messages) == 1 {
		cmds = append(cmds, generateTitleCmd(m.backend, m.cfg.TitleModel, active, text))
	}
	return tea.Batch(cmds...)
}

func countUserMessages(msgs []app.Message) int {
	n := 0
	for _, msg := range msgs {
		if msg.Role == app.RoleUser {
			n++
		}
	}
	return n
}

func (m *MainModel) newSession() tea.Cmd {
	if m.sending {
		return nil
	}
	if _, err := m.store.Create(); err != nil {
		m.errText = err.Error()
		return nil
	}
	m.messages = nil
	m.reasoning = ""
	m.refreshSessions()
	m.updateChatViewport()
	m.focus = focusInput
	m.input.Focus()
	return nil
}

func (m *MainModel) openSelected() tea.Cmd {
	if m.sending || m.sessionSel >= len(m.sessions) {
		return nil
	}
	id := m.sessions[m.sessionSel].ID
	msgs, err := m.store.Load(id)
	if err != nil {
		m.errText = err.Error()
		return nil
	}
	m.messages = msgs
	m.reasoning = ""
	m.updateChatViewport()
	m.focus = focusInput
	m.input.Focus()
	return nil
}

func (m *MainModel) deleteSelected() tea.Cmd {
	if m.sending || m.sessionSel >= len(m.sessions) {
		return nil
	}
	id := m.sessions[m.sessionSel].ID
	wasActive := m.store.Active() == id
	if err := m.store.Delete(id); err != nil {
		m.errText = err.Error()
		return nil
	}
	m.refreshSessions()
	if wasActive {
		m.messages = nil
		m.reasoning = ""
		if len(m.sessions) > 0 {
			if msgs, err := m.store.Load(m.sessions[0].ID); err == nil {
				m.messages = msgs
			}
		} else {
			return m.newSession()
		}
	}
	m.updateChatViewport()
	return nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("15:04")
}
