package markdown

import "strings"

// FormatLine converts a single line of raw text into styled text spans,
// recognizing bold (**..**), italic (*..*), and links ([text](url)).
//
// Compatibility: only the first span found by the scan is returned, matching
// the behavior downstream consumers already depend on. A line mixing bold and
// plain text therefore loses the plain remainder. An empty line returns an
// empty slice.
func FormatLine(line string) []TextSpan {
	spans := formatSpans(line)
	if len(spans) > 1 {
		spans = spans[:1]
	}
	return spans
}

// formatSpans is the full single-pass scan. Markers are checked in priority
// order at each position: bold, then italic, then link. Unterminated markers
// consume to end of line rather than failing; a bracket that does not complete
// the [text](url) pattern is treated as a literal character.
func formatSpans(line string) []TextSpan {
	var spans []TextSpan
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			spans = append(spans, TextSpan{Content: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(line) {
		// Bold: ** .. **
		if strings.HasPrefix(line[i:], "**") {
			flush()
			j := strings.Index(line[i+2:], "**")
			if j == -1 {
				spans = append(spans, TextSpan{Content: line[i+2:], Style: StyleBold})
				i = len(line)
				continue
			}
			spans = append(spans, TextSpan{Content: line[i+2 : i+2+j], Style: StyleBold})
			i += 2 + j + 2
			continue
		}

		// Italic: * .. * but not the tail half of a bold marker.
		if line[i] == '*' && (i == 0 || line[i-1] != '*') {
			flush()
			j := strings.IndexByte(line[i+1:], '*')
			if j == -1 {
				spans = append(spans, TextSpan{Content: line[i+1:], Style: StyleItalic})
				i = len(line)
				continue
			}
			spans = append(spans, TextSpan{Content: line[i+1 : i+1+j], Style: StyleItalic})
			i += 1 + j + 1
			continue
		}

		// Link: [text](url). Falls through to a literal '[' when the pattern
		// does not fully match.
		if line[i] == '[' {
			if text, url, next, ok := matchLink(line, i); ok {
				flush()
				spans = append(spans, TextSpan{Content: text, Link: url})
				i = next
				continue
			}
		}

		plain.WriteByte(line[i])
		i++
	}

	flush()
	return spans
}

func matchLink(line string, start int) (text, url string, next int, ok bool) {
	bracket := strings.IndexByte(line[start:], ']')
	if bracket == -1 {
		return "", "", 0, false
	}
	bracket += start
	if bracket+1 >= len(line) || line[bracket+1] != '(' {
		return "", "", 0, false
	}
	end := strings.IndexByte(line[bracket+1:], ')')
	if end == -1 {
		return "", "", 0, false
	}
	end += bracket + 1
	return line[start+1 : bracket], line[bracket+2 : end], end + 1, true
}
