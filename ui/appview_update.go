package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"bizpilot/config"
	appmodel "bizpilot/model"
)

const flashDuration = 2 * time.Second

// clipboardWrite is swapped out in tests; headless CI has no clipboard.
var clipboardWrite = clipboard.WriteAll

func (a AppView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

		// title (1), separator (1), textarea (3), status bar (1)
		a.viewport.Width = a.width
		a.viewport.Height = a.height - 6
		a.textarea.SetWidth(a.width)
		a.form.setWidth(a.width)

		a.ready = true
		a.updateViewportContent(true)

		// Markdown is wrapped to the terminal width, so a resize re-renders
		return a, a.renderAssistantTurns(false)

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.loadingSpinner, cmd = a.loadingSpinner.Update(msg)
		if a.dataModel.Busy() && a.dataModel.LastAssistantText() == "" {
			a.updateViewportContent(true)
		}
		return a, cmd

	case streamChunkMsg, streamErrorMsg, streamDoneMsg, markdownRenderedMsg:
		return a.handleStreamingMessage(msg)

	case pingResultMsg:
		a.pinged = true
		a.pingErr = msg.Err
		return a, nil

	case dictationTickMsg, dictationStoppedMsg:
		return a.handleDictationMessage(msg)

	case flashTickMsg:
		a.flashTicks--
		if a.flashTicks <= 0 {
			a.flashTicks = 0
			a.flash = ""
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a AppView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	kb := a.dataModel.Config.Keybindings
	pressed := msg.String()

	if a.showAcknowledgeModal {
		if pressed == "enter" || pressed == "esc" {
			a.showAcknowledgeModal = false
		}
		return a, nil
	}

	// Always-global shortcuts
	if pressed == "ctrl+c" || kb.Matches("quit", pressed) {
		config.DebugLog.Infof("[AppView] quit requested")
		a.stopDictation()
		a.dataModel.Close()
		return a, tea.Quit
	}

	if kb.Matches("help", pressed) {
		a.showHelp = !a.showHelp
		a.showAbout = false
		return a, nil
	}
	if a.showHelp {
		if pressed == "esc" {
			a.showHelp = false
		}
		return a, nil
	}

	if kb.Matches("about", pressed) {
		a.showAbout = !a.showAbout
		return a, nil
	}
	if a.showAbout {
		if pressed == "esc" {
			a.showAbout = false
		}
		return a, nil
	}

	switch {
	case kb.Matches("new_conversation", pressed):
		a.newConversation()
		return a, textarea.Blink

	case kb.Matches("dictation", pressed):
		return a.toggleDictation()

	case kb.Matches("yank_last_response", pressed):
		return a.copyToClipboard(a.dataModel.LastAssistantText(), "Copied roadmap")

	case kb.Matches("yank_conversation", pressed):
		return a.copyToClipboard(a.dataModel.TranscriptText(), "Copied conversation")
	}

	if a.dataModel.State() == appmodel.StateIdle {
		return a.handleFormKey(msg)
	}

	switch {
	case kb.Matches("scroll_down", pressed):
		a.viewport.LineDown(1)
		return a, nil
	case kb.Matches("scroll_up", pressed):
		a.viewport.LineUp(1)
		return a, nil
	case kb.Matches("half_page_down", pressed):
		a.viewport.HalfPageDown()
		return a, nil
	case kb.Matches("half_page_up", pressed):
		a.viewport.HalfPageUp()
		return a, nil
	case kb.Matches("page_down", pressed), pressed == "pgdown":
		a.viewport.PageDown()
		return a, nil
	case kb.Matches("page_up", pressed), pressed == "pgup":
		a.viewport.PageUp()
		return a, nil
	case kb.Matches("scroll_to_top", pressed):
		a.viewport.GotoTop()
		return a, nil
	case kb.Matches("scroll_to_bottom", pressed):
		a.viewport.GotoBottom()
		return a, nil
	}

	if pressed == "enter" {
		return a.sendFollowUp()
	}

	var cmd tea.Cmd
	a.textarea, cmd = a.textarea.Update(msg)
	a.dataModel.SetInput(a.textarea.Value())
	return a, cmd
}

func (a AppView) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		formCmd tea.Cmd
		submit  *appmodel.IdeaInput
	)
	a.form, formCmd, submit = a.form.Update(msg)
	if submit == nil {
		return a, formCmd
	}

	a.stopDictation()
	cmd := a.dataModel.SubmitInitial(*submit)
	if cmd == nil {
		return a, formCmd
	}
	a.textarea.Reset()
	a.textarea.Focus()
	a.updateViewportContent(true)
	return a, tea.Batch(formCmd, cmd)
}

// sendFollowUp submits the textarea. While a generation is running Enter does
// nothing and the draft stays in place.
func (a AppView) sendFollowUp() (tea.Model, tea.Cmd) {
	if a.dataModel.Busy() {
		return a, nil
	}

	a.stopDictation()
	cmd := a.dataModel.SubmitFollowUp(a.textarea.Value())
	if cmd == nil {
		return a, nil
	}
	a.textarea.Reset()
	a.updateViewportContent(true)
	return a, cmd
}

// newConversation discards the transcript and any running generation and goes
// back to the idea form.
func (a *AppView) newConversation() {
	a.stopDictation()
	a.dataModel.Reset()
	a.textarea.Reset()
	a.form = newIdeaForm()
	a.form.setWidth(a.width)
	a.flash = ""
	a.updateViewportContent(true)
}

func (a AppView) copyToClipboard(text, notice string) (tea.Model, tea.Cmd) {
	if text == "" {
		return a, a.setFlash("Nothing to copy yet")
	}
	if err := clipboardWrite(text); err != nil {
		config.DebugLog.Warnf("[AppView] clipboard: %v", err)
		a.showAcknowledge("Clipboard Unavailable", err.Error(), ModalTypeWarning)
		return a, nil
	}
	return a, a.setFlash(notice)
}

func (a *AppView) setFlash(text string) tea.Cmd {
	a.flash = text
	a.flashTicks++
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashTickMsg{}
	})
}

func (a *AppView) showAcknowledge(title, msg string, modalType ModalType) {
	a.showAcknowledgeModal = true
	a.acknowledgeModalTitle = title
	a.acknowledgeModalMsg = msg
	a.acknowledgeModalType = modalType
}
