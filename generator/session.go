package generator

import (
	"context"
	"time"
)

// Session holds the multi-turn drafting context for one topic.
type Session struct {
	ID      string
	Spec    NoteSpec
	Draft   Draft
	History []Turn
	agent   *Agent
}

// NewSession creates a session with no draft yet.
func NewSession(id string, spec NoteSpec, agent *Agent) *Session {
	return &Session{
		ID:    id,
		Spec:  spec,
		agent: agent,
	}
}

// Propose generates the first draft.
func (s *Session) Propose(ctx context.Context) (Draft, error) {
	draft, err := s.agent.Generate(ctx, s.Spec, nil, s.History, "")
	if err != nil {
		return Draft{}, err
	}
	s.Draft = draft
	s.appendTurn("initial draft", draft, "initial")
	return draft, nil
}

// Revise reworks the current draft from a user comment.
func (s *Session) Revise(ctx context.Context, comment string) (Draft, error) {
	draft, err := s.agent.Generate(ctx, s.Spec, &s.Draft, s.History, comment)
	if err != nil {
		return Draft{}, err
	}
	s.Draft = draft
	s.appendTurn(comment, draft, "revision")
	return draft, nil
}

func (s *Session) appendTurn(comment string, draft Draft, summary string) {
	s.History = append(s.History, Turn{
		Comment:   comment,
		Draft:     draft,
		Summary:   summary,
		CreatedAt: time.Now(),
	})
}
