package domain

import "context"

// Passage is a text excerpt retrieved from the vector index, together with
// the arbitrary metadata record it was stored with.
type Passage struct {
	Body     string
	Metadata map[string]any
}

// ScoredPassage pairs a retrieved passage with its similarity to the query.
type ScoredPassage struct {
	Passage Passage
	Score   float64
}

// SourceCitation is the display form of a retrieved passage: a label naming
// its origin (and page, when known) plus a short content preview.
type SourceCitation struct {
	Label   string
	Preview string
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry of the conversation transcript. Sources is only
// populated on assistant turns. Turns are never mutated after creation.
type Turn struct {
	Role    Role
	Text    string
	Sources []SourceCitation
}

// Bounds for the per-session query settings.
const (
	MinTopK     = 1
	MaxTopK     = 10
	DefaultTopK = 3

	MinTemperature     = 0.0
	MaxTemperature     = 1.0
	DefaultTemperature = 0.5

	MinMaxTokens     = 128
	MaxMaxTokens     = 4096
	DefaultMaxTokens = 512
)

// QueryOptions are the session settings applied to every pipeline run until
// the user changes them.
type QueryOptions struct {
	TopK          int
	Temperature   float64
	MaxTokens     int
	ExpandSources bool
}

// Clamped returns a copy with every field forced into its valid range.
// Zero values fall back to the defaults.
func (o QueryOptions) Clamped() QueryOptions {
	if o.TopK == 0 {
		o.TopK = DefaultTopK
	}
	if o.TopK < MinTopK {
		o.TopK = MinTopK
	}
	if o.TopK > MaxTopK {
		o.TopK = MaxTopK
	}
	if o.Temperature < MinTemperature {
		o.Temperature = MinTemperature
	}
	if o.Temperature > MaxTemperature {
		o.Temperature = MaxTemperature
	}
	if o.MaxTokens == 0 {
		o.MaxTokens = DefaultMaxTokens
	}
	if o.MaxTokens < MinMaxTokens {
		o.MaxTokens = MinMaxTokens
	}
	if o.MaxTokens > MaxMaxTokens {
		o.MaxTokens = MaxMaxTokens
	}
	return o
}

// CompletionOptions are the sampling parameters for a single completion call.
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// Embedder converts free text into a numeric vector representation.
// The same embedder must be used at index build time and at query time.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(text string) ([]float64, error)
}

// Completer generates an answer for a fully assembled prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
	ModelName() string
}
