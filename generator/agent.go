package generator

import (
	"context"
	"errors"
)

// Agent turns a NoteSpec plus optional history/feedback into a Draft.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	return &Agent{llm: llm}, nil
}

// Generate runs either the first-draft or the revision flow depending on
// whether prevDraft is set.
func (a *Agent) Generate(ctx context.Context, spec NoteSpec, prevDraft *Draft, history []Turn, comment string) (Draft, error) {
	var prompt Prompt
	if prevDraft == nil {
		prompt = BuildInitialPrompt(spec)
	} else {
		prompt = BuildRevisionPrompt(spec, *prevDraft, comment, history)
	}

	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return Draft{}, err
	}
	return PostProcess(raw, spec)
}
