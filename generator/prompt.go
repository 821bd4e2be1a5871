package generator

import (
	"fmt"
	"strings"
)

// Prompt is the message set sent to the model.
type Prompt struct {
	System  string
	User    string
	History []Message
}

// Message carries a small amount of optional history.
type Message struct {
	Role    string
	Content string
}

// BuildInitialPrompt produces the first-draft prompt. The structural rules
// mirror what the sync path understands: headings up to level three, plain
// lists, quotes, and fenced code.
func BuildInitialPrompt(spec NoteSpec) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a writing assistant. Output Markdown only, with no surrounding explanation.\n")
	sb.WriteString("Rules:\n")
	sb.WriteString("- Start with a level-one heading as the note title.\n")
	sb.WriteString("- Follow the title with a one-paragraph summary.\n")
	sb.WriteString("- Use headings no deeper than level three, flat lists, and fenced code blocks.\n")
	if spec.Words > 0 {
		fmt.Fprintf(&sb, "- Aim for roughly %d words.\n", spec.Words)
	}
	if spec.Tone != "" {
		fmt.Fprintf(&sb, "- Tone: %s.\n", spec.Tone)
	}
	if spec.Audience != "" {
		fmt.Fprintf(&sb, "- Audience: %s.\n", spec.Audience)
	}
	for _, c := range spec.Constraints {
		fmt.Fprintf(&sb, "- %s\n", c)
	}
	if len(spec.Outline) > 0 {
		sb.WriteString("- Organize the note along this outline:\n")
		for i, item := range spec.Outline {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, item)
		}
	}

	user := fmt.Sprintf("Topic: %s\nWrite the complete note as Markdown.", spec.Topic)

	return Prompt{
		System: sb.String(),
		User:   user,
	}
}

// BuildRevisionPrompt produces a prompt that applies user feedback with the
// smallest necessary change.
func BuildRevisionPrompt(spec NoteSpec, prev Draft, comment string, history []Turn) Prompt {
	var sb strings.Builder
	sb.WriteString("You are an editor. Apply the user's feedback with minimal changes, keeping the Markdown structure.\n")
	sb.WriteString("- Keep the heading levels and list formatting.\n")
	sb.WriteString("- Keep the summary paragraph at the top.\n")
	sb.WriteString("- If the feedback is unclear or unreasonable, say why and keep the original.\n")
	for _, c := range spec.Constraints {
		fmt.Fprintf(&sb, "- %s\n", c)
	}

	user := fmt.Sprintf("Current draft:\n%s\n\nFeedback: %s\nOutput the full revised Markdown.", prev.Markdown, comment)

	var msgs []Message
	for _, t := range history {
		if t.Comment == "" {
			continue
		}
		msgs = append(msgs, Message{Role: "user", Content: t.Comment})
	}

	return Prompt{
		System:  sb.String(),
		User:    user,
		History: msgs,
	}
}
