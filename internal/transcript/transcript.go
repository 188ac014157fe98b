// Package transcript maintains the append-only conversation record and
// derives display citations from retrieved passages.
package transcript

import (
	"strings"

	"medichat/internal/domain"
	"medichat/internal/metadata"
)

// previewLimit caps how much of a passage body is kept in a citation.
const previewLimit = 400

// labelSeparator joins the origin identifier and the page part of a label.
const labelSeparator = " — "

// Transcript is the ordered record of one conversational session. It is
// purely additive: turns are appended and never edited or removed. Not safe
// for concurrent use; a session has a single logical thread of control.
type Transcript struct {
	turns []domain.Turn
}

// New creates an empty transcript.
func New() *Transcript { return &Transcript{} }

// AppendUser records a submitted question.
func (t *Transcript) AppendUser(text string) {
	t.turns = append(t.turns, domain.Turn{Role: domain.RoleUser, Text: text})
}

// AppendAssistant records a generated answer with its citations.
func (t *Transcript) AppendAssistant(text string, sources []domain.SourceCitation) {
	t.turns = append(t.turns, domain.Turn{Role: domain.RoleAssistant, Text: text, Sources: sources})
}

// Turns returns the ordered turns. The result is a copy backed by the owned
// list, so re-iterating yields the same sequence and callers cannot mutate
// the transcript through it.
func (t *Transcript) Turns() []domain.Turn {
	out := make([]domain.Turn, len(t.turns))
	copy(out, t.turns)
	return out
}

// Len returns the number of recorded turns.
func (t *Transcript) Len() int { return len(t.turns) }

// Cite derives display citations from the passages a pipeline run actually
// used, one per passage in retrieval rank order.
func Cite(passages []domain.ScoredPassage) []domain.SourceCitation {
	if len(passages) == 0 {
		return nil
	}
	out := make([]domain.SourceCitation, 0, len(passages))
	for _, sp := range passages {
		src, ok := metadata.Source(sp.Passage.Metadata)
		if !ok {
			src = "Unknown source"
		}
		label := src
		if page, ok := metadata.Page(sp.Passage.Metadata); ok {
			label = src + labelSeparator + "page " + page
		}
		out = append(out, domain.SourceCitation{Label: label, Preview: preview(sp.Passage.Body)})
	}
	return out
}

func preview(body string) string {
	r := []rune(body)
	if len(r) > previewLimit {
		r = r[:previewLimit]
	}
	return strings.TrimSpace(string(r))
}
