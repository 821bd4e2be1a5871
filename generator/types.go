package generator

import "time"

// NoteSpec describes the note to draft before any model call happens.
type NoteSpec struct {
	Topic       string
	Outline     []string
	Tone        string
	Audience    string
	Words       int
	Constraints []string
}

// Draft is the model's output. Title and Digest are extracted from the
// Markdown so the sync step can name the target page.
type Draft struct {
	Title    string `json:"title"`
	Digest   string `json:"digest"`
	Markdown string `json:"markdown"`
}

// Turn records one comment-driven revision.
type Turn struct {
	Comment   string
	Draft     Draft
	Summary   string
	CreatedAt time.Time
}
