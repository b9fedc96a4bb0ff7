package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"bizpilot/config"
)

// handleStreamingMessage forwards generation messages to the data model and
// redraws. Stale messages from a reset conversation are dropped by the model
// and produce no follow-up command.
func (a AppView) handleStreamingMessage(msg tea.Msg) (AppView, tea.Cmd) {
	switch msg := msg.(type) {
	case streamChunkMsg:
		cmd := a.dataModel.HandleStreamChunk(msg)
		a.updateViewportContent(true)
		return a, cmd

	case streamErrorMsg:
		cmd := a.dataModel.HandleStreamError(msg)
		if cmd != nil {
			config.DebugLog.Warnf("[AppView] generation failed: %v", msg.Err)
		}
		return a, cmd

	case streamDoneMsg:
		wasBusy := a.dataModel.Busy()
		cmd := a.dataModel.HandleStreamDone(msg)
		if !wasBusy || a.dataModel.Busy() {
			return a, cmd
		}
		a.updateViewportContent(true)
		return a, tea.Batch(cmd, a.renderAssistantTurns(true))

	case markdownRenderedMsg:
		if a.dataModel.ApplyRendered(msg) {
			a.updateViewportContent(true)
		}
		return a, nil
	}

	return a, nil
}
