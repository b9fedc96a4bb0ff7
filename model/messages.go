package model

import tea "github.com/charmbracelet/bubbletea"

// Stream messages carry the epoch of the submit that started them and the
// channel they were read from, so the handler can arm the next read.

type StreamChunkMsg struct {
	Epoch  uint64
	Chunk  string
	stream <-chan tea.Msg
}

type StreamErrorMsg struct {
	Epoch  uint64
	Err    error
	stream <-chan tea.Msg
}

type StreamDoneMsg struct {
	Epoch  uint64
	stream <-chan tea.Msg
}

type MarkdownRenderedMsg struct {
	Epoch        uint64
	MessageIndex int
	Rendered     string
}

type PingResultMsg struct {
	Err error
}

type DictationTickMsg struct{}

type DictationStoppedMsg struct {
	Err error
}

type FlashTickMsg struct{}
