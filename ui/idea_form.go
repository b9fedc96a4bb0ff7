package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"bizpilot/model"
)

type formField int

const (
	fieldIdea formField = iota
	fieldCategory
	fieldAudience
	fieldSubmit
	fieldCount
)

const maxSuggestions = 5

// businessCategories feeds the category suggestions. Free text is still accepted.
var businessCategories = []string{
	"Agriculture",
	"Beauty & Personal Care",
	"E-commerce",
	"Education",
	"Fashion",
	"Fintech",
	"Food & Beverage",
	"Handicrafts",
	"Healthcare",
	"Logistics & Delivery",
	"Manufacturing",
	"Media & Entertainment",
	"Real Estate",
	"Renewable Energy",
	"Software & IT Services",
	"Tourism & Hospitality",
}

// ideaForm is the first screen: the three inputs of an initial submission.
type ideaForm struct {
	inputs [fieldSubmit]textinput.Model
	focus  formField

	suggestions        []string
	selectedSuggestion int

	err string
}

func newIdeaForm() ideaForm {
	idea := textinput.New()
	idea.Placeholder = "e.g., An online shop for handmade clothing"
	idea.CharLimit = 500
	idea.Width = 60

	category := textinput.New()
	category.Placeholder = "e.g., E-commerce, Fashion"
	category.CharLimit = 80
	category.Width = 60

	audience := textinput.New()
	audience.Placeholder = "e.g., Young adults in urban areas"
	audience.CharLimit = 120
	audience.Width = 60

	f := ideaForm{inputs: [fieldSubmit]textinput.Model{idea, category, audience}}
	f.inputs[fieldIdea].Focus()
	return f
}

// Value returns what the founder has typed so far.
func (f ideaForm) Value() model.IdeaInput {
	return model.IdeaInput{
		Idea:     f.inputs[fieldIdea].Value(),
		Category: f.inputs[fieldCategory].Value(),
		Audience: f.inputs[fieldAudience].Value(),
	}
}

func (f *ideaForm) setWidth(width int) {
	w := width - 16
	if w > 70 {
		w = 70
	}
	if w < 20 {
		w = 20
	}
	for i := range f.inputs {
		f.inputs[i].Width = w
	}
}

func (f *ideaForm) setFocus(field formField) tea.Cmd {
	f.focus = field
	var cmd tea.Cmd
	for i := range f.inputs {
		if formField(i) == field {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	if field != fieldCategory {
		f.suggestions = nil
	}
	return cmd
}

func (f *ideaForm) next() tea.Cmd {
	return f.setFocus((f.focus + 1) % fieldCount)
}

func (f *ideaForm) prev() tea.Cmd {
	return f.setFocus((f.focus + fieldCount - 1) % fieldCount)
}

// Update handles a key on the form. submit is non-nil when the founder pressed
// Enter on the button with a valid idea.
func (f ideaForm) Update(msg tea.KeyMsg) (ideaForm, tea.Cmd, *model.IdeaInput) {
	switch msg.String() {
	case "tab":
		return f, f.next(), nil
	case "shift+tab":
		return f, f.prev(), nil
	case "up":
		if f.focus == fieldCategory && len(f.suggestions) > 0 {
			if f.selectedSuggestion > 0 {
				f.selectedSuggestion--
			}
			return f, nil, nil
		}
		return f, f.prev(), nil
	case "down":
		if f.focus == fieldCategory && len(f.suggestions) > 0 {
			if f.selectedSuggestion < len(f.suggestions)-1 {
				f.selectedSuggestion++
			}
			return f, nil, nil
		}
		return f, f.next(), nil
	case "enter":
		if f.focus == fieldCategory && len(f.suggestions) > 0 {
			f.inputs[fieldCategory].SetValue(f.suggestions[f.selectedSuggestion])
			f.inputs[fieldCategory].CursorEnd()
			f.suggestions = nil
			return f, f.next(), nil
		}
		if f.focus != fieldSubmit {
			return f, f.next(), nil
		}
		in := f.Value()
		if err := in.Validate(); err != nil {
			f.err = "Please describe your business idea first."
			return f, f.setFocus(fieldIdea), nil
		}
		f.err = ""
		return f, nil, &in
	}

	if f.focus == fieldSubmit {
		return f, nil, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if f.focus == fieldIdea && strings.TrimSpace(f.inputs[fieldIdea].Value()) != "" {
		f.err = ""
	}
	if f.focus == fieldCategory {
		f.suggestions = suggestCategories(f.inputs[fieldCategory].Value())
		f.selectedSuggestion = 0
	}
	return f, cmd, nil
}

// suggestCategories fuzzy-matches query against the built-in categories. An
// empty query or an exact match yields nothing.
func suggestCategories(query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	matches := fuzzy.Find(query, businessCategories)
	var out []string
	for _, m := range matches {
		if strings.EqualFold(m.Str, query) {
			return nil
		}
		out = append(out, m.Str)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

func (f ideaForm) View(width, height int) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Foreground(successColor).Bold(true).Render("AI Business Idea Validation"))
	sb.WriteString("\n")
	sb.WriteString(DimStyle.Render("Let's craft a roadmap for your next big venture. Fine-tuned for the Bangladeshi market."))
	sb.WriteString("\n\n")

	labels := [fieldSubmit]string{"Your Business Idea", "Business Category", "Target Audience"}
	for i, input := range f.inputs {
		sb.WriteString(labelStyle.Render(labels[i]))
		sb.WriteString("\n")
		style := fieldStyle
		if f.focus == formField(i) {
			style = focusedFieldStyle
		}
		sb.WriteString(style.Render(input.View()))
		sb.WriteString("\n")

		if formField(i) == fieldCategory && f.focus == fieldCategory && len(f.suggestions) > 0 {
			for j, s := range f.suggestions {
				if j == f.selectedSuggestion {
					sb.WriteString(HighlightStyle.Render("  > " + s))
				} else {
					sb.WriteString(DimStyle.Render("    " + s))
				}
				sb.WriteString("\n")
			}
		}
	}

	sb.WriteString("\n")
	label := "Generate Roadmap"
	if f.focus == fieldSubmit {
		sb.WriteString(selectedButtonStyle.Render(label))
	} else {
		sb.WriteString(buttonStyle.Render(label))
	}
	sb.WriteString("\n")

	if f.err != "" {
		sb.WriteString("\n")
		sb.WriteString(ErrorStyle.Render(f.err))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(FormatFooter("Tab", "Next field", "Shift+Tab", "Previous", "Enter", "Submit"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, sb.String())
}

// setFocusedValue replaces the focused input's text, for dictation. It
// reports false when the button has focus.
func (f *ideaForm) setFocusedValue(s string) bool {
	if f.focus == fieldSubmit {
		return false
	}
	f.inputs[f.focus].SetValue(s)
	f.inputs[f.focus].CursorEnd()
	if f.focus == fieldIdea && strings.TrimSpace(s) != "" {
		f.err = ""
	}
	return true
}
