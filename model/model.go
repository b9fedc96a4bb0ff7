package model

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"bizpilot/config"
)

// State is the conversation phase of the transcript controller.
type State int

const (
	StateIdle State = iota
	StateAwaitingFirstResponse
	StateReady
	StateAwaitingFollowUpResponse
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingFirstResponse:
		return "awaiting-first-response"
	case StateReady:
		return "ready"
	case StateAwaitingFollowUpResponse:
		return "awaiting-follow-up-response"
	}
	return "unknown"
}

// Model holds the transcript and drives generations. All methods must be
// called from the Bubble Tea Update loop; the only other goroutine is the one
// running the provider, and it talks to Model exclusively through messages.
type Model struct {
	Config *config.Config

	// Transcript in conversation order. Append-only until Reset.
	Messages []Turn

	// ConversationID tags log lines; regenerated on Reset.
	ConversationID string

	// LastErr is the most recent generation failure, for the status bar.
	LastErr error

	generator *Generator
	state     State
	busy      bool
	input     string

	epoch   uint64
	cancel  context.CancelFunc
	abandon chan struct{}
}

// NewModel creates a Model that generates through p.
func NewModel(cfg *config.Config, p Provider) *Model {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Model{
		Config:         cfg,
		ConversationID: uuid.NewString(),
		generator:      NewGenerator(p),
	}
}

func (m *Model) Provider() Provider { return m.generator.Provider() }

func (m *Model) State() State { return m.state }

// Busy is true from a submit until its completion is handled.
func (m *Model) Busy() bool { return m.busy }

func (m *Model) Epoch() uint64 { return m.epoch }

func (m *Model) Input() string { return m.input }

func (m *Model) SetInput(s string) { m.input = s }

// SubmitInitial starts the roadmap for an idea. It returns nil and changes
// nothing unless the conversation is idle and the idea is non-blank.
func (m *Model) SubmitInitial(in IdeaInput) tea.Cmd {
	if m.state != StateIdle || m.busy {
		config.DebugLog.Debugf("[Model] %s: initial submit rejected in state %s", m.ConversationID, m.state)
		return nil
	}
	if err := in.Validate(); err != nil {
		config.DebugLog.Debugf("[Model] %s: initial submit rejected: %v", m.ConversationID, err)
		return nil
	}

	m.appendExchange(in.UserTurnText())
	m.state = StateAwaitingFirstResponse
	config.DebugLog.Infof("[Model] %s: generating roadmap (category=%q audience=%q)", m.ConversationID, in.Category, in.Audience)
	return m.startGeneration(NewInitialRequest(in))
}

// SubmitFollowUp asks a follow-up question. It returns nil and changes nothing
// unless a roadmap is on screen, no generation is running and text is non-blank.
func (m *Model) SubmitFollowUp(text string) tea.Cmd {
	if m.state != StateReady || m.busy {
		config.DebugLog.Debugf("[Model] %s: follow-up rejected in state %s", m.ConversationID, m.state)
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	m.appendExchange(text)
	m.input = ""
	m.state = StateAwaitingFollowUpResponse
	config.DebugLog.Infof("[Model] %s: follow-up #%d", m.ConversationID, len(m.Messages)/2)
	return m.startGeneration(NewFollowUpRequest(text))
}

// appendExchange adds the user turn and the empty assistant turn that will
// receive the generation, and marks the controller busy.
func (m *Model) appendExchange(userText string) {
	m.Messages = append(m.Messages, newTurn(SenderUser, userText), newTurn(SenderAssistant, ""))
	m.busy = true
	m.LastErr = nil
}

func (m *Model) startGeneration(req GenerationRequest) tea.Cmd {
	m.epoch++

	// cancelled only by Reset or Close; providers bound their own requests
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.abandon = make(chan struct{})

	return pump(ctx, m.generator, req, m.epoch, m.abandon, cancel)
}

// HandleStreamChunk appends a fragment to the assistant turn of the current
// generation and arms the next read.
func (m *Model) HandleStreamChunk(msg StreamChunkMsg) tea.Cmd {
	if msg.Epoch != m.epoch || !m.busy {
		return nil
	}
	if n := len(m.Messages); n > 0 && m.Messages[n-1].Sender == SenderAssistant {
		last := &m.Messages[n-1]
		last.Text += msg.Chunk
		last.Rendered = ""
	}
	return WaitForStream(msg.stream)
}

// HandleStreamError records the failure. The fallback text has already arrived
// as a fragment.
func (m *Model) HandleStreamError(msg StreamErrorMsg) tea.Cmd {
	if msg.Epoch != m.epoch || !m.busy {
		return nil
	}
	m.LastErr = msg.Err
	return WaitForStream(msg.stream)
}

// HandleStreamDone clears busy and makes follow-ups possible.
func (m *Model) HandleStreamDone(msg StreamDoneMsg) tea.Cmd {
	if msg.Epoch != m.epoch || !m.busy {
		return nil
	}
	m.busy = false
	m.state = StateReady
	m.release()
	config.DebugLog.Debugf("[Model] %s: generation %d complete (%d chars)", m.ConversationID, msg.Epoch, len(m.LastAssistantText()))
	return nil
}

// ApplyRendered stores a markdown rendering if it still belongs to this
// conversation.
func (m *Model) ApplyRendered(msg MarkdownRenderedMsg) bool {
	if msg.Epoch != m.epoch || msg.MessageIndex < 0 || msg.MessageIndex >= len(m.Messages) {
		return false
	}
	m.Messages[msg.MessageIndex].Rendered = msg.Rendered
	return true
}

// Reset starts a new conversation. An in-flight generation is cancelled and
// anything it still delivers is discarded.
func (m *Model) Reset() {
	if m.busy {
		config.DebugLog.Infof("[Model] %s: cancelling generation %d", m.ConversationID, m.epoch)
	}
	m.release()
	m.epoch++
	m.Messages = nil
	m.input = ""
	m.busy = false
	m.state = StateIdle
	m.LastErr = nil
	m.ConversationID = uuid.NewString()
	if p := m.Provider(); p != nil {
		p.ResetSession()
	}
}

// Close cancels any in-flight generation. Call on application exit.
func (m *Model) Close() {
	m.release()
}

func (m *Model) release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.abandon != nil {
		close(m.abandon)
		m.abandon = nil
	}
}

// LastAssistantText returns the most recent assistant turn, or "".
func (m *Model) LastAssistantText() string {
	for i := len(m.Messages) - 1; i >= 0; i-- {
		if m.Messages[i].Sender == SenderAssistant {
			return m.Messages[i].Text
		}
	}
	return ""
}

// TranscriptText renders the whole conversation as plain text for the clipboard.
func (m *Model) TranscriptText() string {
	var b strings.Builder
	for i, t := range m.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		switch t.Sender {
		case SenderUser:
			b.WriteString("You: ")
		case SenderAssistant:
			b.WriteString("BizPilot: ")
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
