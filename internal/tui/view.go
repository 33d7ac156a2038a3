package tui

import (
	"fmt"
	"strings"

	"deepchat/internal/app"

	"github.com/charmbracelet/lipgloss"
)

type layout struct {
	sidebarW int
	chatW    int
	chatH    int
	inputW   int
}

func (m *MainModel) computeLayout() layout {
	sidebarW := 24
	if m.width < 80 {
		sidebarW = 0
	}
	chatW := m.width - sidebarW - 6
	if chatW < 20 {
		chatW = 20
	}
	chatH := m.height - 9
	if chatH < 5 {
		chatH = 5
	}
	return layout{
		sidebarW: sidebarW,
		chatW:    chatW,
		chatH:    chatH,
		inputW:   m.width - 6,
	}
}

func (m *MainModel) updateChatViewport() {
	if !m.ready {
		return
	}
	m.chatVP.SetContent(m.renderTranscript(m.chatVP.Width))
	m.chatVP.GotoBottom()
}

func (m *MainModel) renderTranscript(width int) string {
	var b strings.Builder
	for _, msg := range m.messages {
		var label lipgloss.Style
		var name string
		switch msg.Role {
		case app.RoleUser:
			label, name = m.theme.RoleYou, "You"
		case app.RoleAssistant:
			label, name = m.theme.RoleAI, "AI"
		default:
			label, name = m.theme.TopBarMeta, "System"
		}
		b.WriteString(label.Render(name) + m.theme.TopBarMeta.Render(" "+formatTimestamp(msg.Timestamp)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(msg.Content))
		b.WriteString("\n\n")
	}
	if m.sending {
		b.WriteString(m.theme.Spinner.Render(spinnerFrames[m.spinnerPos] + " waiting for reply"))
		b.WriteString("\n")
	}
	if m.errText != "" {
		b.WriteString(m.theme.RoleErr.Render("Error: " + m.errText))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *MainModel) renderSidebar(width, height int) string {
	var b strings.Builder
	b.WriteString(m.theme.PaneTitle.Render("Chats"))
	b.WriteString("\n")
	active := m.store.Active()
	for i, info := range m.sessions {
		if i >= height-2 {
			break
		}
		marker := "  "
		if info.ID == active {
			marker = "* "
		}
		line := marker + truncate(info.Title, width-4)
		if m.focus == focusSessions && i == m.sessionSel {
			b.WriteString(m.theme.SessionSel.Render(line))
		} else {
			b.WriteString(m.theme.Session.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m *MainModel) renderThoughts(width int) string {
	if m.reasoning == "" {
		return m.theme.TopBarMeta.Render("No reasoning for the last reply yet.")
	}
	return m.theme.Reasoning.Render(lipgloss.NewStyle().Width(width).Render(m.reasoning))
}

func (m *MainModel) View() string {
	if !m.ready {
		return "loading..."
	}
	l := m.computeLayout()

	title := "deepchat"
	if active := m.store.Active(); active != "" {
		if t, err := m.store.Title(active); err == nil {
			title = t
		}
	}
	top := lipgloss.JoinHorizontal(lipgloss.Center,
		m.theme.TopBarTitle.Render(title),
		m.theme.TopBarMeta.Render(fmt.Sprintf("  %s  |  %s", m.currentModel(), m.statusText)),
	)

	chatPane := m.paneStyle(focusChat).Width(l.chatW + 2).Render(m.chatVP.View())

	var body string
	if l.sidebarW > 0 {
		sidebar := m.paneStyle(focusSessions).Width(l.sidebarW).Height(l.chatH).
			Render(m.renderSidebar(l.sidebarW, l.chatH))
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, chatPane)
	} else {
		body = chatPane
	}

	thoughts := m.theme.Pane.Width(m.width - 4).Render(
		m.theme.PaneTitle.Render("Thoughts") + "\n" + m.renderThoughts(m.width-8))

	inputStyle := m.theme.InputBox
	if m.focus == focusInput {
		inputStyle = m.theme.InputBoxF
	}
	input := inputStyle.Width(l.inputW).Render(m.input.View())

	footer := m.theme.Footer.Render(
		"enter send · tab focus · ctrl+n new chat · ctrl+p model · ctrl+d delete chat · ctrl+c quit")

	return lipgloss.JoinVertical(lipgloss.Left, top, body, thoughts, input, footer)
}

func (m *MainModel) paneStyle(area focusArea) lipgloss.Style {
	if m.focus == area {
		return m.theme.PaneFocused
	}
	return m.theme.Pane
}
