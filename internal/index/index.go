// Package index provides the persisted vector index: a directory snapshot of
// embedded passages, loaded whole into memory and queried with brute-force
// cosine similarity. The index is immutable once loaded.
package index

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"medichat/internal/domain"
)

const (
	manifestFile = "manifest.json"
	passagesFile = "passages.json"
)

type manifest struct {
	Embedder  string `json:"embedder"`
	Dimension int    `json:"dimension"`
	Count     int    `json:"count"`
}

type record struct {
	Body     string         `json:"body"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Vector   []float64      `json:"vector"`
}

// Index is an in-memory similarity index over embedded passages.
type Index struct {
	embedder  string
	dimension int
	records   []record
}

// New creates an empty index for the given embedder and dimension.
func New(embedderName string, dimension int) *Index {
	return &Index{embedder: embedderName, dimension: dimension}
}

// Add appends a passage and its vector. Vectors are expected to be
// L2-normalized so Search can rank by dot product.
func (ix *Index) Add(p domain.Passage, vector []float64) {
	ix.records = append(ix.records, record{Body: p.Body, Metadata: p.Metadata, Vector: vector})
}

// Len returns the number of stored passages.
func (ix *Index) Len() int { return len(ix.records) }

// EmbedderName returns the embedder identifier the index was built with.
func (ix *Index) EmbedderName() string { return ix.embedder }

// Dimension returns the stored vector dimension.
func (ix *Index) Dimension() int { return ix.dimension }

// Open reads an index snapshot from the given directory. A missing directory
// means no index has been built yet and returns (nil, nil); the caller is
// responsible for the user-facing message. The snapshot content is trusted:
// beyond JSON well-formedness it is not validated before use.
func Open(path string) (*Index, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	mdata, err := os.ReadFile(filepath.Join(path, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading index manifest: %w", err)
	}
	var m manifest
	if err := json.Unmarshal(mdata, &m); err != nil {
		return nil, fmt.Errorf("decoding index manifest: %w", err)
	}
	pdata, err := os.ReadFile(filepath.Join(path, passagesFile))
	if err != nil {
		return nil, fmt.Errorf("reading index passages: %w", err)
	}
	var records []record
	if err := json.Unmarshal(pdata, &records); err != nil {
		return nil, fmt.Errorf("decoding index passages: %w", err)
	}
	return &Index{embedder: m.Embedder, dimension: m.Dimension, records: records}, nil
}

// Save writes the index snapshot to the given directory, creating it as
// needed. This is the persistence counterpart of Open; building index content
// from documents happens outside this program.
func (ix *Index) Save(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return err
	}
	mdata, err := json.Marshal(manifest{Embedder: ix.embedder, Dimension: ix.dimension, Count: len(ix.records)})
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(path, manifestFile), mdata, 0o644); err != nil {
		return err
	}
	pdata, err := json.Marshal(ix.records)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(path, passagesFile), pdata, 0o644)
}

// Search returns up to topK passages ranked by descending cosine similarity
// to the query vector. Ranking is deterministic for a fixed index and query.
func (ix *Index) Search(vector []float64, topK int) ([]domain.ScoredPassage, error) {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	scores := make([]float64, len(ix.records))
	for i := range ix.records {
		scores[i] = dot(ix.records[i].Vector, vector)
	}
	idxs := argsortDesc(scores)
	if topK > len(idxs) {
		topK = len(idxs)
	}
	results := make([]domain.ScoredPassage, 0, topK)
	for i := 0; i < topK; i++ {
		j := idxs[i]
		results = append(results, domain.ScoredPassage{
			Passage: domain.Passage{Body: ix.records[j].Body, Metadata: ix.records[j].Metadata},
			Score:   scores[j],
		})
	}
	return results, nil
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func argsortDesc(vals []float64) []int {
	idxs := make([]int, len(vals))
	for i := range vals {
		idxs[i] = i
	}
	quicksort(idxs, vals, 0, len(idxs)-1)
	return idxs
}

func quicksort(idxs []int, vals []float64, lo, hi int) {
	if lo >= hi {
		return
	}
	i, j := lo, hi
	pivot := vals[idxs[(lo+hi)/2]]
	for i <= j {
		for vals[idxs[i]] > pivot { // desc order
			i++
		}
		for vals[idxs[j]] < pivot {
			j--
		}
		if i <= j {
			idxs[i], idxs[j] = idxs[j], idxs[i]
			i++
			j--
		}
	}
	if lo < j {
		quicksort(idxs, vals, lo, j)
	}
	if i < hi {
		quicksort(idxs, vals, i, hi)
	}
}
