package model

import "time"

// Sender identifies who authored a turn.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Turn is one entry in the transcript. The assistant turn that receives a
// generation only ever grows by appending fragments to Text.
type Turn struct {
	Sender    Sender
	Text      string
	Rendered  string // Cached terminal rendering of Text, cleared whenever Text changes
	Timestamp time.Time
}

func newTurn(sender Sender, text string) Turn {
	return Turn{Sender: sender, Text: text, Timestamp: time.Now()}
}
