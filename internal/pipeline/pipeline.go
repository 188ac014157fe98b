// Package pipeline implements the retrieval-augmented answer flow: embed the
// question, retrieve the most similar passages, assemble one prompt, call the
// completion service once, and return the answer with the passages used.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"medichat/internal/domain"
	"medichat/internal/index"
	"medichat/internal/logger"
)

// Sentinel errors for the failure classes reported at the turn boundary.
var (
	// ErrNoCredentials means the completion API key is absent from the
	// environment. Checked before any retrieval or network activity.
	ErrNoCredentials = errors.New("completion API key not set; add it to your environment or .env file")

	// ErrIndexUnavailable means no index exists at the configured path.
	// Checked before any retrieval attempt.
	ErrIndexUnavailable = errors.New("no vector index found; build or place one at the configured path, then restart")
)

// RemoteError wraps any failure from the completion service call: network,
// auth, quota or a malformed response.
type RemoteError struct {
	Err error
}

func (e *RemoteError) Error() string { return "completion service: " + e.Err.Error() }

func (e *RemoteError) Unwrap() error { return e.Err }

const promptInstruction = "Answer the question using only the context below. " +
	"If the context does not contain enough information, say you don't know."

// Result is a generated answer together with the ordered passages that
// grounded it. Citations are derived from Passages, never invented.
type Result struct {
	Answer   string
	Passages []domain.ScoredPassage
}

// Pipeline wires the memoized index loader, the query embedder and the
// completion client into one synchronous answer flow.
type Pipeline struct {
	loader   *index.Loader
	embedder domain.Embedder
	llm      domain.Completer
}

// New creates a pipeline. A nil completer means credentials were missing at
// startup; every Answer call then reports ErrNoCredentials.
func New(loader *index.Loader, embedder domain.Embedder, llm domain.Completer) *Pipeline {
	return &Pipeline{loader: loader, embedder: embedder, llm: llm}
}

// Answer runs one full turn: retrieval, prompt assembly and a single blocking
// completion call. Any failure aborts the turn; there are no retries and no
// partial answers.
func (p *Pipeline) Answer(ctx context.Context, question string, opts domain.QueryOptions) (Result, error) {
	if p.llm == nil {
		return Result{}, ErrNoCredentials
	}
	ix, err := p.loader.Load()
	if err != nil {
		return Result{}, fmt.Errorf("loading index: %w", err)
	}
	if ix == nil {
		return Result{}, ErrIndexUnavailable
	}

	opts = opts.Clamped()
	vec, err := p.embedder.Embed(question)
	if err != nil {
		return Result{}, fmt.Errorf("embedding question: %w", err)
	}
	passages, err := ix.Search(vec, opts.TopK)
	if err != nil {
		return Result{}, fmt.Errorf("searching index: %w", err)
	}
	logger.Debug("retrieved %d/%d passages for %q", len(passages), opts.TopK, question)

	prompt := BuildPrompt(question, passages)
	answer, err := p.llm.Complete(ctx, prompt, domain.CompletionOptions{
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	})
	if err != nil {
		return Result{}, &RemoteError{Err: err}
	}
	return Result{Answer: strings.TrimSpace(answer), Passages: passages}, nil
}

// BuildPrompt combines the fixed grounding instruction, the passage bodies in
// retrieval rank order and the verbatim question into one prompt. An empty
// retrieval produces no context block; generation still proceeds.
func BuildPrompt(question string, passages []domain.ScoredPassage) string {
	var b strings.Builder
	b.WriteString(promptInstruction)
	if len(passages) > 0 {
		b.WriteString("\n\nContext:\n")
		for i, sp := range passages {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(strings.TrimSpace(sp.Passage.Body))
		}
	}
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}
