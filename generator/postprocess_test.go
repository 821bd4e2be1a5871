package generator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostProcess(t *testing.T) {
	t.Run("extracts title and digest", func(t *testing.T) {
		draft, err := PostProcess("# My Note\n\nFirst body line.\n\nMore text.", NoteSpec{})
		require.NoError(t, err)
		assert.Equal(t, "My Note", draft.Title)
		assert.Equal(t, "First body line.", draft.Digest)
	})

	t.Run("falls back to the spec topic when no heading", func(t *testing.T) {
		draft, err := PostProcess("just a paragraph", NoteSpec{Topic: "Fallback"})
		require.NoError(t, err)
		assert.Equal(t, "Fallback", draft.Title)
	})

	t.Run("empty output is an error", func(t *testing.T) {
		_, err := PostProcess("   \n ", NoteSpec{})
		assert.Error(t, err)
	})

	t.Run("long digest is capped", func(t *testing.T) {
		draft, err := PostProcess("# T\n", NoteSpec{})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(draft.Digest), 120)
	})
}

func TestSessionFlow(t *testing.T) {
	agent, err := NewAgent(MockLLM{})
	require.NoError(t, err)

	sess := NewSession("s1", NoteSpec{Topic: "Go testing"}, agent)

	draft, err := sess.Propose(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, draft.Markdown)
	assert.Len(t, sess.History, 1)

	revised, err := sess.Revise(context.Background(), "shorter please")
	require.NoError(t, err)
	assert.NotEmpty(t, revised.Markdown)
	assert.Len(t, sess.History, 2)
	assert.Equal(t, "shorter please", sess.History[1].Comment)
}
