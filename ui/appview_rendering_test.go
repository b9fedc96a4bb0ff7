package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizpilot/provider/testutil"
)

func TestAssistantBody(t *testing.T) {
	tests := []struct {
		name      string
		turn      Turn
		streaming bool
		want      string
	}{
		{"waiting for first fragment", Turn{}, true, "* Thinking..."},
		{"streaming shows cursor", Turn{Text: "Register with RJSC"}, true, "Register with RJSC" + streamCursor},
		{"complete prefers rendering", Turn{Text: "## Tax", Rendered: "TAX"}, false, "TAX"},
		{"complete without rendering yet", Turn{Text: "## Tax"}, false, "## Tax"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, assistantBody(tt.turn, tt.streaming, "*"))
		})
	}
}

func TestFormatUserMessage(t *testing.T) {
	out := formatUserMessage("[10:04]", "You", "line one\nline two")
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	for _, l := range lines {
		assert.Contains(t, l, codeBar)
	}
	assert.True(t, strings.HasSuffix(lines[2], "line two"))
}

func TestPreprocessLinks(t *testing.T) {
	in := "Register at [RJSC](https://roc.gov.bd) and [NBR](http://nbr.gov.bd/tin)."
	assert.Equal(t, "Register at https://roc.gov.bd and http://nbr.gov.bd/tin.", preprocessLinks(in))
}

func TestFixInlineCode(t *testing.T) {
	in := "run \x1b[44;3mgo test\x1b[0m now"
	assert.Equal(t, "run \x1b[31mgo test\x1b[0m now", fixInlineCode(in))
}

func TestFixMarkdownLinksSkipsCode(t *testing.T) {
	in := "see https://bida.gov.bd\n" + codeBar + " curl https://example.com"
	out := strings.Split(fixMarkdownLinks(in), "\n")
	assert.Contains(t, out[0], "\x1b[31mhttps://bida.gov.bd\x1b[0m")
	assert.NotContains(t, out[1], "\x1b[31m")
}

func TestFrameCodeBlocks(t *testing.T) {
	in := strings.Join([]string{
		"before",
		"  " + codeBar + " line 1",
		"  " + codeBar + " line 2",
		"after",
	}, "\n")

	out := frameCodeBlocks(in, 40)
	assert.Contains(t, out, "[code]")
	assert.NotContains(t, out, codeBar)
	assert.Contains(t, out, "\nline 1\nline 2\n")
	assert.True(t, strings.HasSuffix(out, "after"))
}

func TestFrameCodeBlocksAtEnd(t *testing.T) {
	out := frameCodeBlocks(codeBar+" tail", 20)
	assert.Contains(t, out, "tail")

	rules := 0
	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "━") {
			rules++
		}
	}
	assert.Equal(t, 2, rules, "opening and closing rules")
}

func TestStripCodeBlockPrefix(t *testing.T) {
	assert.Equal(t, "x := 1", stripCodeBlockPrefix("  "+codeBar+" x := 1"))
	assert.Equal(t, "", stripCodeBlockPrefix(codeBar))
	assert.Equal(t, "plain", stripCodeBlockPrefix("plain"))
}

func TestRenderMarkdown(t *testing.T) {
	out := renderMarkdown(testutil.SampleRoadmap, 80)
	assert.Contains(t, out, "Register a sole proprietorship with RJSC.")
	assert.Contains(t, out, "Obtain a trade license and TIN.")
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "short text", 20, "short text"},
		{"wraps", "one two three four", 9, "one two\nthree\nfour"},
		{"keeps newlines", "a\n\nb", 10, "a\n\nb"},
		{"zero width", "unchanged text", 0, "unchanged text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordWrap(tt.text, tt.width))
		})
	}
}
