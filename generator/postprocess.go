package generator

import (
	"errors"
	"regexp"
	"strings"
)

var titleRe = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// PostProcess validates the raw model output and fills in the derived Draft
// fields. The title comes from the first level-one heading, the digest from
// the first body paragraph.
func PostProcess(raw string, spec NoteSpec) (Draft, error) {
	md := strings.TrimSpace(raw)
	if md == "" {
		return Draft{}, errors.New("model returned empty markdown")
	}

	title := extractTitle(md)
	if title == "" {
		title = spec.Topic
	}
	digest := extractDigest(md)
	if digest == "" {
		digest = defaultDigest(md, 120)
	}

	return Draft{
		Title:    title,
		Digest:   digest,
		Markdown: md,
	}, nil
}

func extractTitle(md string) string {
	m := titleRe.FindStringSubmatch(md)
	if len(m) >= 2 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractDigest takes the first non-heading, non-empty line.
func extractDigest(md string) string {
	for _, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		return trimmed
	}
	return ""
}

func defaultDigest(md string, limit int) string {
	joined := strings.Join(strings.Fields(md), " ")
	if len(joined) <= limit {
		return joined
	}
	return joined[:limit]
}
