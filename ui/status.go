package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	appmodel "bizpilot/model"
)

// statusInfo is everything the status bar shows, gathered from AppView so the
// formatting can be tested without a terminal.
type statusInfo struct {
	Provider  string
	Model     string
	Pinged    bool
	PingErr   error
	Busy      bool
	Listening bool
	LastErr   error
	Flash     string
	Hint      string
}

func (a AppView) statusInfo() statusInfo {
	info := statusInfo{
		Pinged:    a.pinged,
		PingErr:   a.pingErr,
		Busy:      a.dataModel.Busy(),
		Listening: a.listening(),
		LastErr:   a.dataModel.LastErr,
		Flash:     a.flash,
	}
	if p := a.dataModel.Provider(); p != nil {
		info.Provider = p.Name()
		info.Model = p.GetModel()
	}

	kb := a.dataModel.Config.Keybindings
	if kb == nil {
		return info
	}
	if a.dataModel.State() == appmodel.StateIdle {
		info.Hint = fmt.Sprintf("%s Help  %s Quit", kb.DisplayActionKey("help"), kb.DisplayActionKey("quit"))
	} else {
		info.Hint = fmt.Sprintf("Enter Send  %s Mic  %s New  %s Help",
			kb.DisplayActionKey("dictation"),
			kb.DisplayActionKey("new_conversation"),
			kb.DisplayActionKey("help"))
	}
	return info
}

// formatStatusLine lays out the status bar as plain text no wider than width.
// The left side (provider, activity, last error) is truncated first so the key
// hints stay visible.
func formatStatusLine(info statusInfo, width int) string {
	var parts []string

	provider := info.Provider
	if provider == "" {
		provider = "no provider"
	}
	if info.Model != "" {
		provider += " " + info.Model
	}
	switch {
	case !info.Pinged:
		provider += " …"
	case info.PingErr != nil:
		provider += " ✗ unreachable"
	default:
		provider += " ✓"
	}
	parts = append(parts, provider)

	if info.Listening {
		parts = append(parts, "listening")
	}

	switch {
	case info.Flash != "":
		parts = append(parts, info.Flash)
	case info.Busy:
		parts = append(parts, "generating")
	case info.LastErr != nil:
		parts = append(parts, "error: "+describeError(info.LastErr))
	}

	left := strings.Join(parts, " | ")

	if width <= 0 {
		if info.Hint == "" {
			return left
		}
		return left + "  " + info.Hint
	}

	hint := info.Hint
	hintWidth := runewidth.StringWidth(hint)
	if hintWidth+2 >= width {
		return runewidth.Truncate(left, width, "...")
	}

	room := width - hintWidth - 2
	left = runewidth.Truncate(left, room, "...")
	pad := width - runewidth.StringWidth(left) - hintWidth
	if hint == "" {
		return left
	}
	return left + strings.Repeat(" ", pad) + hint
}

// describeError shortens the typed generation errors for one status line.
func describeError(err error) string {
	var protoErr *appmodel.ProtocolError
	if errors.As(err, &protoErr) && protoErr.StatusCode != 0 {
		return fmt.Sprintf("backend returned %d", protoErr.StatusCode)
	}
	var transportErr *appmodel.TransportError
	if errors.As(err, &transportErr) {
		return "service unreachable"
	}
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return msg
}

func (a AppView) renderStatusBar() string {
	line := formatStatusLine(a.statusInfo(), a.width)
	if a.dataModel.LastErr != nil && a.flash == "" && !a.dataModel.Busy() {
		return WarningStyle.Render(line)
	}
	return StatusStyle.Render(line)
}
