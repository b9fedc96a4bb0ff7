package ui

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	markdown "github.com/MichaelMure/go-term-markdown"
	tea "github.com/charmbracelet/bubbletea"
	gomarkdown "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/parser"

	"bizpilot/config"
	appmodel "bizpilot/model"
)

const (
	streamCursor = "▋"
	codeBar      = "┃"
)

var (
	inlineCodeRegex = regexp.MustCompile(`(?s)\x1b\[44;3m(.*?)\x1b\[0m`)
	mdLinkRegex     = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^\)]+)\)`)
	urlRegex        = regexp.MustCompile(`(https?://[^\s]+)`)
)

// updateViewportContent redraws the whole transcript. Called after every
// mutation of dataModel.Messages.
func (a *AppView) updateViewportContent(gotoBottom bool) {
	msgs := a.dataModel.Messages
	if len(msgs) == 0 {
		a.viewport.SetContent("")
		return
	}

	busy := a.dataModel.Busy()
	var content strings.Builder

	for i, msg := range msgs {
		timestamp := DimStyle.Render(msg.Timestamp.Format("[15:04]"))
		streaming := busy && i == len(msgs)-1

		if msg.Sender == appmodel.SenderUser {
			content.WriteString(formatUserMessage(timestamp, UserStyle.Render("You"), msg.Text))
			continue
		}

		body := assistantBody(msg, streaming, a.loadingSpinner.View())
		content.WriteString(fmt.Sprintf("%s %s\n%s\n\n", timestamp, AssistantStyle.Render("BizPilot"), body))
	}

	a.viewport.SetContent(content.String())
	if gotoBottom {
		a.viewport.GotoBottom()
	}
}

// assistantBody picks what to show for an assistant turn: the spinner before
// the first fragment, raw text with a cursor while streaming, and the markdown
// rendering once it has arrived.
func assistantBody(msg Turn, streaming bool, spinnerView string) string {
	switch {
	case streaming && msg.Text == "":
		return spinnerView + " Thinking..."
	case streaming:
		return msg.Text + streamCursor
	case msg.Rendered != "":
		return msg.Rendered
	}
	return msg.Text
}

func formatUserMessage(timestamp, role, content string) string {
	greenBold := "\x1b[32;1m"
	reset := "\x1b[0m"
	bar := greenBold + codeBar + reset

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s %s\n", bar, timestamp, role))

	for _, line := range strings.Split(content, "\n") {
		result.WriteString(fmt.Sprintf("%s %s\n", bar, line))
	}

	result.WriteString("\n")

	return result.String()
}

func postProcessMarkdown(rendered string, width int) string {
	// Inline code: blue background becomes red text
	rendered = fixInlineCode(rendered)

	// Autolink is disabled, so URLs arrive as plain text
	rendered = fixMarkdownLinks(rendered)

	rendered = frameCodeBlocks(rendered, width)

	return rendered
}

// preprocessLinks reduces [text](url) to the bare url.
func preprocessLinks(content string) string {
	return mdLinkRegex.ReplaceAllString(content, "$2")
}

func fixInlineCode(s string) string {
	return inlineCodeRegex.ReplaceAllString(s, "\x1b[31m$1\x1b[0m")
}

func fixMarkdownLinks(s string) string {
	redColor := "\x1b[31m"
	reset := "\x1b[0m"

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		// code block lines carry the bar prefix
		if !strings.Contains(line, codeBar) {
			lines[i] = urlRegex.ReplaceAllString(line, redColor+"$1"+reset)
		}
	}

	return strings.Join(lines, "\n")
}

// frameCodeBlocks swaps the renderer's left bar for horizontal rules above and
// below the block.
func frameCodeBlocks(s string, width int) string {
	lines := strings.Split(s, "\n")
	var result []string
	var block []string
	inBlock := false

	darkGray := "\x1b[90m"
	reset := "\x1b[0m"

	ruleLen := width - 4
	if ruleLen < 8 {
		ruleLen = 8
	}
	closeBlock := func() {
		result = append(result, block...)
		result = append(result, "", darkGray+strings.Repeat("━", ruleLen)+reset, "")
		block = nil
		inBlock = false
	}

	for _, line := range lines {
		if strings.Contains(line, codeBar) {
			if !inBlock {
				inBlock = true
				label := "[code]"
				leftLen := (ruleLen - len(label)) / 2
				rightLen := ruleLen - len(label) - leftLen
				border := darkGray + strings.Repeat("━", leftLen) + reset + label + darkGray + strings.Repeat("━", rightLen) + reset
				result = append(result, "", border, "")
			}
			block = append(block, stripCodeBlockPrefix(line))
			continue
		}
		if inBlock {
			closeBlock()
		}
		result = append(result, line)
	}

	if inBlock && len(block) > 0 {
		closeBlock()
	}

	return strings.Join(result, "\n")
}

func stripCodeBlockPrefix(line string) string {
	idx := strings.Index(line, codeBar)
	if idx < 0 {
		return line
	}
	after := idx + len(codeBar)
	if after < len(line) && line[after] == ' ' {
		after++
	}
	return line[after:]
}

// renderMarkdown turns assistant text into terminal markdown at width.
func renderMarkdown(content string, width int) string {
	content = preprocessLinks(content)

	ext := markdown.Extensions() &^ parser.Autolink
	p := parser.NewWithExtensions(ext)
	r := markdown.NewRenderer(width-4, 0)
	doc := p.Parse([]byte(content))
	rendered := gomarkdown.Render(doc, r)

	return postProcessMarkdown(string(rendered), width)
}

// renderMarkdownAsync renders off the Update loop. The epoch lets the model drop
// the result if the conversation was reset meanwhile.
func (a AppView) renderMarkdownAsync(messageIndex int, content string) tea.Cmd {
	width := a.width
	epoch := a.dataModel.Epoch()
	return func() tea.Msg {
		start := time.Now()
		rendered := renderMarkdown(content, width)
		config.DebugLog.Debugf("[AppView] markdown for message %d (%d chars) rendered in %v", messageIndex, len(content), time.Since(start))

		return markdownRenderedMsg{
			Epoch:        epoch,
			MessageIndex: messageIndex,
			Rendered:     rendered,
		}
	}
}

// renderAssistantTurns renders completed assistant turns. With onlyMissing it
// skips turns that already have a rendering, otherwise it redoes all of them
// (after a resize).
func (a AppView) renderAssistantTurns(onlyMissing bool) tea.Cmd {
	var cmds []tea.Cmd
	last := len(a.dataModel.Messages) - 1
	for i, msg := range a.dataModel.Messages {
		if msg.Sender != appmodel.SenderAssistant || msg.Text == "" {
			continue
		}
		if i == last && a.dataModel.Busy() {
			continue
		}
		if onlyMissing && msg.Rendered != "" {
			continue
		}
		cmds = append(cmds, a.renderMarkdownAsync(i, msg.Text))
	}
	return tea.Batch(cmds...)
}
