package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medichat/internal/domain"
)

func TestTurnsReplayIsRestartable(t *testing.T) {
	tr := New()
	tr.AppendUser("q1")
	tr.AppendAssistant("a1", []domain.SourceCitation{{Label: "a.pdf"}})
	tr.AppendUser("q2")
	tr.AppendAssistant("a2", nil)

	first := tr.Turns()
	second := tr.Turns()
	assert.Equal(t, first, second)
	require.Len(t, first, 4)
	assert.Equal(t, domain.RoleUser, first[0].Role)
	assert.Equal(t, "q1", first[0].Text)
	assert.Equal(t, domain.RoleAssistant, first[1].Role)
	assert.Len(t, first[1].Sources, 1)
}

func TestTurnsCopyDoesNotExposeInternalList(t *testing.T) {
	tr := New()
	tr.AppendUser("original")
	got := tr.Turns()
	got[0].Text = "mutated"
	assert.Equal(t, "original", tr.Turns()[0].Text)
}

func TestFailedTurnLeavesOnlyUserTurn(t *testing.T) {
	tr := New()
	tr.AppendUser("doomed question")
	// pipeline failed: no assistant turn is appended
	turns := tr.Turns()
	require.Len(t, turns, 1)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
}

func TestCiteLabels(t *testing.T) {
	passages := []domain.ScoredPassage{
		{Passage: domain.Passage{
			Body:     "Aspirin reduces fever. (source: drugs.pdf, page 3)",
			Metadata: map[string]any{"source": "drugs.pdf", "page": float64(3)},
		}},
		{Passage: domain.Passage{
			Body:     "Ibuprofen is an NSAID.",
			Metadata: map[string]any{"source": "drugs.pdf", "page": float64(7)},
		}},
		{Passage: domain.Passage{Body: "orphan passage"}},
	}
	cites := Cite(passages)
	require.Len(t, cites, 3)
	assert.Equal(t, "drugs.pdf — page 3", cites[0].Label)
	assert.Equal(t, "drugs.pdf — page 7", cites[1].Label)
	assert.Equal(t, "Unknown source", cites[2].Label)
	assert.Equal(t, "Aspirin reduces fever. (source: drugs.pdf, page 3)", cites[0].Preview)
}

func TestCitePreviewTruncated(t *testing.T) {
	body := "  " + strings.Repeat("x", 600)
	cites := Cite([]domain.ScoredPassage{{Passage: domain.Passage{Body: body}}})
	require.Len(t, cites, 1)
	assert.Equal(t, strings.Repeat("x", 398), cites[0].Preview)
}

func TestCiteEmpty(t *testing.T) {
	assert.Nil(t, Cite(nil))
	assert.Nil(t, Cite([]domain.ScoredPassage{}))
}
