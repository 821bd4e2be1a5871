package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLine(t *testing.T) {
	t.Run("plain text", func(t *testing.T) {
		got := FormatLine("just some words")
		assert.Equal(t, []TextSpan{{Content: "just some words"}}, got)
	})

	t.Run("empty line yields no spans", func(t *testing.T) {
		assert.Empty(t, FormatLine(""))
	})

	t.Run("bold", func(t *testing.T) {
		got := FormatLine("**bold** text")
		assert.Equal(t, []TextSpan{{Content: "bold", Style: StyleBold}}, got)
	})

	t.Run("italic", func(t *testing.T) {
		got := FormatLine("*slanted* rest")
		assert.Equal(t, []TextSpan{{Content: "slanted", Style: StyleItalic}}, got)
	})

	t.Run("link", func(t *testing.T) {
		got := FormatLine("[docs](https://example.com/docs)")
		assert.Equal(t, []TextSpan{{Content: "docs", Link: "https://example.com/docs"}}, got)
	})

	t.Run("unterminated bold consumes to end of line", func(t *testing.T) {
		got := FormatLine("**never closed")
		assert.Equal(t, []TextSpan{{Content: "never closed", Style: StyleBold}}, got)
	})

	t.Run("unterminated italic consumes to end of line", func(t *testing.T) {
		got := FormatLine("*never closed")
		assert.Equal(t, []TextSpan{{Content: "never closed", Style: StyleItalic}}, got)
	})

	t.Run("bracket without link syntax stays literal", func(t *testing.T) {
		got := FormatLine("[not a link")
		assert.Equal(t, []TextSpan{{Content: "[not a link"}}, got)
	})

	t.Run("bracket with missing paren stays literal", func(t *testing.T) {
		got := FormatLine("[text] trailing")
		assert.Equal(t, []TextSpan{{Content: "[text] trailing"}}, got)
	})

	t.Run("only first span is kept", func(t *testing.T) {
		got := FormatLine("start **bold** end")
		assert.Equal(t, []TextSpan{{Content: "start "}}, got)
	})
}

func TestFormatSpans(t *testing.T) {
	t.Run("mixed styles in order", func(t *testing.T) {
		got := formatSpans("a **b** c *d* [e](f)")
		want := []TextSpan{
			{Content: "a "},
			{Content: "b", Style: StyleBold},
			{Content: " c "},
			{Content: "d", Style: StyleItalic},
			{Content: " "},
			{Content: "e", Link: "f"},
		}
		assert.Equal(t, want, got)
	})

	t.Run("second half of bold marker is not italic", func(t *testing.T) {
		got := formatSpans("**x**y*z*")
		want := []TextSpan{
			{Content: "x", Style: StyleBold},
			{Content: "y"},
			{Content: "z", Style: StyleItalic},
		}
		assert.Equal(t, want, got)
	})

	t.Run("span content never keeps delimiters", func(t *testing.T) {
		for _, spans := range [][]TextSpan{
			formatSpans("**a** *b* [c](d)"),
			formatSpans("*x"),
			formatSpans("**y"),
		} {
			for _, s := range spans {
				assert.NotContains(t, s.Content, "**")
				assert.NotContains(t, s.Content, "*")
				assert.NotContains(t, s.Content, "](")
			}
		}
	})
}
