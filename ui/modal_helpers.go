package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ModalType determines the title color of a modal
type ModalType int

const (
	ModalTypeInfo ModalType = iota
	ModalTypeWarning
	ModalTypeError
)

func (t ModalType) color() lipgloss.Color {
	switch t {
	case ModalTypeWarning:
		return warningColor
	case ModalTypeError:
		return dangerColor
	}
	return accentColor
}

// RenderAcknowledgeModal renders a modal dismissed with Enter, for notices that
// need no decision.
func RenderAcknowledgeModal(title, message string, modalType ModalType, width, height int) string {
	modalWidth := modalWidthFor(0, width)

	var lines []string
	center := lipgloss.NewStyle().Width(modalWidth).Align(lipgloss.Center)
	for _, line := range strings.Split(wordWrap(message, modalWidth-4), "\n") {
		lines = append(lines, center.Render(line))
	}

	return RenderThreeSectionModal(title, lines, "Press Enter to acknowledge", modalType, modalWidth, width, height)
}

// RenderThreeSectionModal stacks a centered title, the message and a footer,
// with a dim rule above the message and above the footer. messageLines are
// used as given, padded by one blank line on each side.
func RenderThreeSectionModal(title string, messageLines []string, footer string, modalType ModalType, desiredWidth, width, height int) string {
	w := modalWidthFor(desiredWidth, width)

	// lipgloss centering miscounts some emoji; pad by display width instead
	pad := max(w-runewidth.StringWidth(title), 0)
	heading := lipgloss.NewStyle().Bold(true).Foreground(modalType.color()).
		Render(strings.Repeat(" ", pad/2) + title + strings.Repeat(" ", pad-pad/2))

	ruled := lipgloss.NewStyle().
		Width(w).
		BorderTop(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(dimColor)

	blank := strings.Repeat(" ", w)
	body := append(append([]string{blank}, messageLines...), blank)

	content := lipgloss.JoinVertical(lipgloss.Left,
		heading,
		ruled.Render(strings.Join(body, "\n")),
		ruled.Foreground(dimColor).Align(lipgloss.Center).Render(footer),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func modalWidthFor(desired, width int) int {
	modalWidth := desired
	if modalWidth == 0 {
		modalWidth = 60
	}
	if width > 0 && width < modalWidth+10 {
		modalWidth = width - 10
	}
	if modalWidth < 10 {
		modalWidth = 10
	}
	return modalWidth
}

// wordWrap wraps text to width display cells, keeping existing newlines.
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	paragraphs := strings.Split(text, "\n")

	for i, paragraph := range paragraphs {
		if i > 0 {
			result.WriteString("\n")
		}

		words := strings.Fields(paragraph)
		if len(words) == 0 {
			continue
		}

		currentLine := words[0]
		for _, word := range words[1:] {
			if runewidth.StringWidth(currentLine)+1+runewidth.StringWidth(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine + "\n")
				currentLine = word
			}
		}
		result.WriteString(currentLine)
	}

	return result.String()
}
