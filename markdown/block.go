// Package markdown converts Markdown source text into an ordered sequence of
// typed blocks suitable for a document-storage API. The conversion is a pure
// function of the input text: no I/O, no errors, safe for concurrent callers.
package markdown

// Style marks the formatting of a text span. Styles are mutually exclusive;
// there is no combined bold+italic.
type Style int

const (
	StylePlain Style = iota
	StyleBold
	StyleItalic
)

// TextSpan is a run of text with a uniform style. Link, when non-empty, is
// the target URL of a hyperlink span. Content never contains the marker
// characters that produced the span.
type TextSpan struct {
	Content string
	Style   Style
	Link    string
}

// BlockType tags the structural kind of a Block.
type BlockType string

const (
	BlockHeading1     BlockType = "heading_1"
	BlockHeading2     BlockType = "heading_2"
	BlockHeading3     BlockType = "heading_3"
	BlockDivider      BlockType = "divider"
	BlockQuote        BlockType = "quote"
	BlockCode         BlockType = "code"
	BlockBulletedItem BlockType = "bulleted_list_item"
	BlockNumberedItem BlockType = "numbered_list_item"
	BlockParagraph    BlockType = "paragraph"
)

// Block is one structural unit of a document. Which fields are meaningful
// depends on Type: headings, quotes, list items, and paragraphs carry Text;
// code blocks carry Language and Raw (verbatim, line breaks preserved);
// dividers carry nothing.
type Block struct {
	Type     BlockType
	Text     []TextSpan
	Language string
	Raw      string
}
