package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bizpilot/config"
)

type helpSection struct {
	title string
	rows  [][2]string
}

// actionRows pairs bound actions with their descriptions.
func actionRows(kb *config.KeyBindingsConfig, pairs ...string) [][2]string {
	rows := make([][2]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		rows = append(rows, [2]string{kb.DisplayActionKey(pairs[i]), pairs[i+1]})
	}
	return rows
}

func (s helpSection) render() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(accentColor).Render("## " + s.title))
	for _, r := range s.rows {
		fmt.Fprintf(&b, "\n• %-13s %s", r[0], r[1])
	}
	return b.String()
}

func (a AppView) helpSections() (left, right []helpSection) {
	kb := a.dataModel.Config.Keybindings

	left = []helpSection{
		{"Global Actions", actionRows(kb,
			"new_conversation", "New conversation",
			"dictation", "Start/stop dictation",
			"about", "About",
			"help", "Toggle this help",
			"quit", "Quit",
		)},
		{"Idea Form", [][2]string{
			{"Tab", "Next field"},
			{"Shift+Tab", "Previous field"},
			{"Up/Down", "Pick a category"},
			{"Enter", "Generate roadmap"},
		}},
	}

	follow := append([][2]string{
		{"Enter", "Ask follow-up"},
		{"Alt+Enter", "New line"},
	}, actionRows(kb,
		"yank_last_response", "Copy last answer",
		"yank_conversation", "Copy conversation",
	)...)

	right = []helpSection{
		{"Roadmap Navigation", actionRows(kb,
			"scroll_down", "Scroll down 1 line",
			"scroll_up", "Scroll up 1 line",
			"half_page_down", "Half page down",
			"half_page_up", "Half page up",
			"page_down", "Full page down",
			"page_up", "Full page up",
			"scroll_to_top", "Jump to top",
			"scroll_to_bottom", "Jump to bottom",
		)},
		{"Follow-ups", follow},
	}
	return left, right
}

func (a AppView) renderHelpModal(width, height int) string {
	left, right := a.helpSections()

	column := func(sections []helpSection) string {
		parts := make([]string, 0, len(sections))
		for _, s := range sections {
			parts = append(parts, s.render())
		}
		return lipgloss.NewStyle().Width(42).PaddingLeft(4).Render(strings.Join(parts, "\n\n"))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(successColor).
		Render("BizPilot - Keyboard Shortcuts")
	footer := lipgloss.NewStyle().Foreground(dimColor).
		Render(fmt.Sprintf("Press %s or Esc to close this help",
			a.dataModel.Config.Keybindings.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, column(left), "    ", column(right)),
		"",
		footer,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2).
		Width(96)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box.Render(content))
}
