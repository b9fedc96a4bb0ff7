package model

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// streamBuffer lets the generation goroutine run ahead of the UI by a few
// fragments without blocking the provider's network read.
const streamBuffer = 64

// WaitForStream returns a command that reads exactly one message from ch.
// A closed channel yields nil, which Bubble Tea drops.
func WaitForStream(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

// pump runs one generation in its own goroutine and turns its callbacks into
// tea messages. Sends give up once abandon is closed so a reset conversation
// never leaves the goroutine blocked on a reader that is gone.
func pump(ctx context.Context, g *Generator, req GenerationRequest, epoch uint64, abandon <-chan struct{}, done func()) tea.Cmd {
	ch := make(chan tea.Msg, streamBuffer)

	send := func(msg tea.Msg) {
		select {
		case ch <- msg:
		case <-abandon:
		}
	}

	go func() {
		defer close(ch)
		defer done()

		g.Generate(ctx, req, Callbacks{
			OnStream: func(chunk string) {
				send(StreamChunkMsg{Epoch: epoch, Chunk: chunk, stream: ch})
			},
			OnError: func(err error) {
				send(StreamErrorMsg{Epoch: epoch, Err: err, stream: ch})
			},
			OnComplete: func() {
				send(StreamDoneMsg{Epoch: epoch, stream: ch})
			},
		})
	}()

	return WaitForStream(ch)
}
