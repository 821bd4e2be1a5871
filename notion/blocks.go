package notion

import (
	"notion_sync/markdown"
)

// richText is the Notion rich_text entry for a single styled span.
type richText struct {
	Type        string       `json:"type"`
	Text        textPayload  `json:"text"`
	Annotations *annotations `json:"annotations,omitempty"`
}

type textPayload struct {
	Content string   `json:"content"`
	Link    *linkRef `json:"link,omitempty"`
}

type linkRef struct {
	URL string `json:"url"`
}

type annotations struct {
	Bold   bool `json:"bold,omitempty"`
	Italic bool `json:"italic,omitempty"`
}

func spanToRichText(span markdown.TextSpan) richText {
	rt := richText{
		Type: "text",
		Text: textPayload{Content: span.Content},
	}
	if span.Link != "" {
		rt.Text.Link = &linkRef{URL: span.Link}
	}
	switch span.Style {
	case markdown.StyleBold:
		rt.Annotations = &annotations{Bold: true}
	case markdown.StyleItalic:
		rt.Annotations = &annotations{Italic: true}
	}
	return rt
}

func spansToRichText(spans []markdown.TextSpan) []richText {
	out := make([]richText, 0, len(spans))
	for _, s := range spans {
		out = append(out, spanToRichText(s))
	}
	return out
}

// blockPayload serializes one converted block into the Notion block object
// shape, where the block type doubles as the key of its payload.
func blockPayload(b markdown.Block) map[string]any {
	typ := string(b.Type)
	obj := map[string]any{"object": "block", "type": typ}

	switch b.Type {
	case markdown.BlockDivider:
		obj[typ] = struct{}{}
	case markdown.BlockCode:
		obj[typ] = map[string]any{
			"language": b.Language,
			"rich_text": []richText{{
				Type: "text",
				Text: textPayload{Content: b.Raw},
			}},
		}
	default:
		obj[typ] = map[string]any{"rich_text": spansToRichText(b.Text)}
	}
	return obj
}

// blockPayloads converts Markdown source into the children array for a
// create-page or append-children request.
func blockPayloads(content string) []map[string]any {
	blocks := markdown.Segment(content)
	out := make([]map[string]any, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, blockPayload(b))
	}
	return out
}
