package ui

import (
	"bizpilot/model"
)

type Turn = model.Turn

// Messages produced by the model package and routed through AppView.Update.
type streamChunkMsg = model.StreamChunkMsg
type streamDoneMsg = model.StreamDoneMsg
type streamErrorMsg = model.StreamErrorMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
type pingResultMsg = model.PingResultMsg
type dictationTickMsg = model.DictationTickMsg
type dictationStoppedMsg = model.DictationStoppedMsg
type flashTickMsg = model.FlashTickMsg
