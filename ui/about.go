package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const ASCIIArt = `  ___ _    ___ _ _     _
 | _ |_)__| _ (_) |___| |_
 | _ \ |_ /  _/ | / _ \  _|
 |___/_/__|_| |_|_\___/\__|`

// Features lists what the roadmap covers.
var Features = []string{
	"• Business roadmap for your idea, tuned for Bangladesh",
	"• Market analysis, legal requirements, funding and marketing",
	"• Follow-up questions in the same conversation",
	"• Dictate ideas and questions with your own speech-to-text tool",
	"• Runs against the BizPilot backend or a model provider directly",
}

func renderAboutModal(a AppView, width, height int, version, license string) string {
	var sb strings.Builder

	asciiStyle := lipgloss.NewStyle().
		Foreground(successColor).
		Bold(true)

	sb.WriteString(asciiStyle.Render(ASCIIArt))
	sb.WriteString("\n\n\n")

	featureStyle := lipgloss.NewStyle().Foreground(dimColor)
	for _, feature := range Features {
		sb.WriteString(featureStyle.Render(feature))
		sb.WriteString("\n")
	}
	sb.WriteString("\n\n")

	valueStyle := lipgloss.NewStyle().Foreground(dimColor)

	sb.WriteString(labelStyle.Render("Version: "))
	sb.WriteString(valueStyle.Render(version))
	sb.WriteString("\n")
	sb.WriteString(labelStyle.Render("License: "))
	sb.WriteString(valueStyle.Render(license))
	sb.WriteString("\n")
	if p := a.dataModel.Provider(); p != nil {
		sb.WriteString(labelStyle.Render("Provider: "))
		sb.WriteString(valueStyle.Render(p.Name() + " " + p.GetModel()))
		sb.WriteString("\n")
	}
	sb.WriteString("\n\n")

	kb := a.dataModel.Config.Keybindings
	sb.WriteString(featureStyle.Render("Press Esc or " + kb.DisplayActionKey("about") + " to close"))
	sb.WriteString("\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(sb.String()))
}
