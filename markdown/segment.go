package markdown

import (
	"regexp"
	"strings"
)

// MaxBlocks is the per-conversion cap on emitted blocks, matching the
// storage API's per-request children limit. Blocks past the cap are dropped.
const MaxBlocks = 100

var numberedItemRe = regexp.MustCompile(`^\d+\. `)

// scanner walks the document's lines with a single forward cursor. Only the
// code-fence rule consumes more than one line.
type scanner struct {
	lines []string
	pos   int
}

// rule pairs a line predicate with a block builder. Rules are evaluated
// top-to-bottom and the first match wins, so order is significant.
type rule struct {
	match func(line string) bool
	apply func(s *scanner, line string) Block
}

var rules = []rule{
	{prefix("# "), heading(BlockHeading1, 2)},
	{prefix("## "), heading(BlockHeading2, 3)},
	{prefix("### "), heading(BlockHeading3, 4)},
	{isDivider, func(*scanner, string) Block {
		return Block{Type: BlockDivider}
	}},
	{prefix("> "), func(_ *scanner, line string) Block {
		// Quote content is kept raw, without inline formatting.
		return Block{Type: BlockQuote, Text: []TextSpan{{Content: line[2:]}}}
	}},
	{prefix("```"), readCodeFence},
	{trimmedPrefix("- ", "* "), func(_ *scanner, line string) Block {
		return Block{Type: BlockBulletedItem, Text: FormatLine(strings.TrimSpace(line)[2:])}
	}},
	{func(line string) bool {
		return numberedItemRe.MatchString(strings.TrimSpace(line))
	}, func(_ *scanner, line string) Block {
		text := numberedItemRe.ReplaceAllString(strings.TrimSpace(line), "")
		return Block{Type: BlockNumberedItem, Text: FormatLine(text)}
	}},
	{isTableRow, func(_ *scanner, line string) Block {
		return Block{Type: BlockParagraph, Text: FormatLine(flattenTableRow(line))}
	}},
	// Fallback: anything else is a paragraph.
	{func(string) bool { return true }, func(_ *scanner, line string) Block {
		return Block{Type: BlockParagraph, Text: FormatLine(line)}
	}},
}

// Segment converts a Markdown document into an ordered block sequence of at
// most MaxBlocks entries. It is total: malformed input degrades to a more
// generic construct (usually a paragraph) instead of failing.
func Segment(document string) []Block {
	s := &scanner{lines: strings.Split(document, "\n")}

	var blocks []Block
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]
		if strings.TrimSpace(line) == "" {
			s.pos++
			continue
		}
		for _, r := range rules {
			if !r.match(line) {
				continue
			}
			blocks = append(blocks, r.apply(s, line))
			break
		}
		s.pos++
	}

	if len(blocks) > MaxBlocks {
		blocks = blocks[:MaxBlocks]
	}
	return blocks
}

func prefix(p string) func(string) bool {
	return func(line string) bool { return strings.HasPrefix(line, p) }
}

func trimmedPrefix(prefixes ...string) func(string) bool {
	return func(line string) bool {
		trimmed := strings.TrimSpace(line)
		for _, p := range prefixes {
			if strings.HasPrefix(trimmed, p) {
				return true
			}
		}
		return false
	}
}

func heading(typ BlockType, markerLen int) func(*scanner, string) Block {
	return func(_ *scanner, line string) Block {
		return Block{Type: typ, Text: FormatLine(line[markerLen:])}
	}
}

func isDivider(line string) bool {
	switch strings.TrimSpace(line) {
	case "---", "***", "___":
		return true
	}
	return false
}

// readCodeFence consumes lines verbatim until a closing fence or end of
// input. The fence's remainder names the language, defaulting to
// "plain text". The scanner is left on the closing fence line; Segment's
// loop advances past it.
func readCodeFence(s *scanner, line string) Block {
	lang := strings.TrimSpace(line[3:])
	if lang == "" {
		lang = "plain text"
	}

	var body []string
	s.pos++
	for s.pos < len(s.lines) && !strings.HasPrefix(s.lines[s.pos], "```") {
		body = append(body, s.lines[s.pos])
		s.pos++
	}
	return Block{Type: BlockCode, Language: lang, Raw: strings.Join(body, "\n")}
}

// isTableRow matches pipe-delimited table rows. Such rows are flattened to a
// readable paragraph rather than dropped, since the storage API's table shape
// is out of scope here.
func isTableRow(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "|")
}

// flattenTableRow splits the row on pipes, drops the empty artifacts of the
// leading and trailing delimiters, and rejoins the cells as plain text.
func flattenTableRow(line string) string {
	fields := strings.Split(strings.TrimSpace(line), "|")
	if len(fields) < 2 {
		return strings.TrimSpace(line)
	}
	cells := fields[1 : len(fields)-1]
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return strings.Join(cells, " | ")
}
