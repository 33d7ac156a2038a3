package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	TextPrimary lipgloss.AdaptiveColor
	TextMuted   lipgloss.AdaptiveColor
	Accent      lipgloss.AdaptiveColor
	Error       lipgloss.AdaptiveColor
	Border      lipgloss.AdaptiveColor
	BorderHi    lipgloss.AdaptiveColor

	TopBar      lipgloss.Style
	TopBarTitle lipgloss.Style
	TopBarMeta  lipgloss.Style

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style
	Footer      lipgloss.Style
	InputBox    lipgloss.Style
	InputBoxF   lipgloss.Style
	Spinner     lipgloss.Style

	RoleYou    lipgloss.Style
	RoleAI     lipgloss.Style
	RoleErr    lipgloss.Style
	Reasoning  lipgloss.Style
	SessionSel lipgloss.Style
	Session    lipgloss.Style
}

func NewTheme() Theme {
	if os.Getenv("DEEPCHAT_NO_COLOR") == "1" {
		return newMonoTheme()
	}
	t := Theme{
		TextPrimary: lipgloss.AdaptiveColor{Light: "#1d2433", Dark: "#f2f2f2"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#4a5568", Dark: "#c7c7c7"},
		Accent:      lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#7aa2f7"},
		Error:       lipgloss.AdaptiveColor{Light: "#b91c1c", Dark: "#f7768e"},
		Border:      lipgloss.AdaptiveColor{Light: "#cbd5e0", Dark: "#3b4261"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#2563eb", Dark: "#7aa2f7"},
	}
	return t.build()
}

func newMonoTheme() Theme {
	t := Theme{
		TextPrimary: lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		TextMuted:   lipgloss.AdaptiveColor{Light: "#333333", Dark: "#dddddd"},
		Accent:      lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Error:       lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
		Border:      lipgloss.AdaptiveColor{Light: "#555555", Dark: "#777777"},
		BorderHi:    lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"},
	}
	return t.build()
}

func (t Theme) build() Theme {
	t.TopBar = lipgloss.NewStyle().Foreground(t.TextPrimary)
	t.TopBarTitle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.TopBarMeta = lipgloss.NewStyle().Foreground(t.TextMuted)

	t.Pane = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.PaneFocused = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.PaneTitle = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.Footer = lipgloss.NewStyle().Foreground(t.TextMuted)
	t.InputBox = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.Border).Padding(0, 1)
	t.InputBoxF = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderHi).Padding(0, 1)
	t.Spinner = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)

	t.RoleYou = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.RoleAI = lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary)
	t.RoleErr = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	t.Reasoning = lipgloss.NewStyle().Italic(true).Foreground(t.TextMuted)
	t.SessionSel = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	t.Session = lipgloss.NewStyle().Foreground(t.TextMuted)
	return t
}
