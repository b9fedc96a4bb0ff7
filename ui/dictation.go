package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"bizpilot/config"
	"bizpilot/dictation"
	appmodel "bizpilot/model"
)

const dictationPollInterval = 200 * time.Millisecond

func dictationTick() tea.Cmd {
	return tea.Tick(dictationPollInterval, func(time.Time) tea.Msg {
		return dictationTickMsg{}
	})
}

// waitDictationDone reports when the speech program exits on its own or after
// StopListening.
func waitDictationDone(d appmodel.Dictation) tea.Cmd {
	done := d.Done()
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return dictationStoppedMsg{Err: d.Err()}
	}
}

func (a AppView) toggleDictation() (AppView, tea.Cmd) {
	if a.dictation == nil || !a.dictation.Available() {
		a.showAcknowledge("Dictation Unavailable",
			"No speech-to-text program is configured.\n\n"+
				"Set [dictation] command in config.toml to a program\n"+
				"that prints recognized speech on stdout.",
			ModalTypeInfo)
		return a, nil
	}

	if a.dictation.Listening() {
		if err := a.dictation.StopListening(); err != nil {
			config.DebugLog.Warnf("[AppView] stop dictation: %v", err)
		}
		a.applyTranscript()
		return a, nil
	}

	if err := a.dictation.StartListening(context.Background()); err != nil {
		if !errors.Is(err, dictation.ErrAlreadyListening) {
			a.showAcknowledge("Dictation Failed", err.Error(), ModalTypeError)
		}
		return a, nil
	}
	return a, tea.Batch(dictationTick(), waitDictationDone(a.dictation))
}

// stopDictation ends a running session without touching the input.
func (a *AppView) stopDictation() {
	if a.dictation == nil || !a.dictation.Listening() {
		return
	}
	if err := a.dictation.StopListening(); err != nil {
		config.DebugLog.Warnf("[AppView] stop dictation: %v", err)
	}
}

// applyTranscript mirrors the running transcript into whichever input is
// active: the focused form field before the roadmap, the follow-up box after.
func (a *AppView) applyTranscript() {
	if a.dictation == nil {
		return
	}
	t := a.dictation.Transcript()
	if t == "" {
		return
	}

	if a.dataModel.State() == appmodel.StateIdle {
		a.form.setFocusedValue(t)
		return
	}
	if a.textarea.Value() != t {
		a.textarea.SetValue(t)
		a.dataModel.SetInput(t)
	}
}

func (a AppView) handleDictationMessage(msg tea.Msg) (AppView, tea.Cmd) {
	switch msg := msg.(type) {
	case dictationTickMsg:
		if a.dictation == nil || !a.dictation.Listening() {
			return a, nil
		}
		a.applyTranscript()
		return a, dictationTick()

	case dictationStoppedMsg:
		a.applyTranscript()
		if msg.Err != nil {
			a.showAcknowledge("Dictation Stopped", msg.Err.Error(), ModalTypeWarning)
		}
		return a, nil
	}
	return a, nil
}
