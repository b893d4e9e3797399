// Package semantic implements the embedding-similarity tier: the in-memory
// EmbeddingIndex built from the corpus, the nearest-intent search over it and
// an optional remote vector index answering the same query.
package semantic

import (
	"context"
	"fmt"
	"sort"

	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
	"github.com/miguelAagelcruzvargas/sara-intent/internal/textnorm"
)

// buildBatchSize bounds how many phrases go to the provider per call.
const buildBatchSize = 64

// Match is the best-scoring intent for a query vector.
type Match struct {
	Label corpus.Label
	Score float32
}

// Matcher finds the intent nearest to a query vector.
type Matcher interface {
	Nearest(ctx context.Context, vector []float32) (Match, error)
}

// Index maps each intent to one embedding row per training phrase. It is
// immutable once built and safe for concurrent readers.
type Index struct {
	model   string
	dim     int
	labels  []corpus.Label
	vectors map[corpus.Label][][]float32
}

var _ Matcher = (*Index)(nil)

// NewIndex validates rows and wraps them in an Index. Every row must have
// dim components and every label at least one row.
func NewIndex(model string, dim int, rows map[corpus.Label][][]float32) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension %d", dim)
	}

	ix := &Index{
		model:   model,
		dim:     dim,
		labels:  make([]corpus.Label, 0, len(rows)),
		vectors: make(map[corpus.Label][][]float32, len(rows)),
	}
	for label, vecs := range rows {
		if len(vecs) == 0 {
			return nil, fmt.Errorf("label %s has no vectors", label)
		}
		for i, v := range vecs {
			if len(v) != dim {
				return nil, fmt.Errorf("label %s row %d has %d dimensions, expected %d", label, i, len(v), dim)
			}
		}
		ix.labels = append(ix.labels, label)
		ix.vectors[label] = vecs
	}
	sort.Slice(ix.labels, func(i, j int) bool { return ix.labels[i] < ix.labels[j] })

	return ix, nil
}

// ProgressFunc receives the number of phrases embedded so far.
type ProgressFunc func(done, total int)

// Build embeds every phrase of examples with e. Phrases are normalised the
// same way utterances are before they are encoded.
func Build(ctx context.Context, e embedding.Embedder, examples corpus.Examples, progress ProgressFunc) (*Index, error) {
	type row struct {
		label corpus.Label
		text  string
	}

	var flat []row
	for _, label := range examples.Labels() {
		for _, phrase := range examples[label] {
			flat = append(flat, row{label: label, text: textnorm.Normalize(phrase)})
		}
	}
	if len(flat) == 0 {
		return nil, fmt.Errorf("cannot build index from an empty corpus")
	}

	rows := make(map[corpus.Label][][]float32, len(examples))
	for start := 0; start < len(flat); start += buildBatchSize {
		end := min(start+buildBatchSize, len(flat))

		texts := make([]string, 0, end-start)
		for _, r := range flat[start:end] {
			texts = append(texts, r.text)
		}

		vecs, err := e.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed phrases %d-%d: %w", start, end, err)
		}
		if len(vecs) != len(texts) {
			return nil, fmt.Errorf("provider returned %d vectors for %d phrases", len(vecs), len(texts))
		}

		for i, r := range flat[start:end] {
			rows[r.label] = append(rows[r.label], vecs[i])
		}

		if progress != nil {
			progress(end, len(flat))
		}
	}

	return NewIndex(e.Model(), e.Dimension(), rows)
}

// Model returns the embedding model the rows came from.
func (ix *Index) Model() string {
	return ix.model
}

// Dimension returns the row length.
func (ix *Index) Dimension() int {
	return ix.dim
}

// Labels returns the indexed labels in ascending order.
func (ix *Index) Labels() []corpus.Label {
	return append([]corpus.Label(nil), ix.labels...)
}

// Vectors returns the rows for label. Callers must not modify them.
func (ix *Index) Vectors(label corpus.Label) [][]float32 {
	return ix.vectors[label]
}

// Len returns the total number of rows.
func (ix *Index) Len() int {
	n := 0
	for _, vecs := range ix.vectors {
		n += len(vecs)
	}
	return n
}

// Matches reports whether ix has exactly one row per phrase of examples.
func (ix *Index) Matches(examples corpus.Examples) bool {
	if len(examples) != len(ix.vectors) {
		return false
	}
	for label, phrases := range examples {
		if len(ix.vectors[label]) != len(phrases) {
			return false
		}
	}
	return true
}

// Nearest scores every intent by its best-matching row and returns the
// highest. Labels are scanned in ascending order and only a strictly higher
// score replaces the leader, so ties go to the label that sorts first.
func (ix *Index) Nearest(_ context.Context, vector []float32) (Match, error) {
	ranked := ix.Rank(vector, 1)
	if len(ranked) == 0 {
		return Match{}, nil
	}
	return ranked[0], nil
}

// Rank returns up to k intents ordered by their best row score. The order is
// stable with respect to the ascending label order.
func (ix *Index) Rank(vector []float32, k int) []Match {
	scores := make([]Match, 0, len(ix.labels))
	for _, label := range ix.labels {
		best := float32(-2)
		for _, row := range ix.vectors[label] {
			if s := Cosine(vector, row); s > best {
				best = s
			}
		}
		scores = append(scores, Match{Label: label, Score: best})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if k > 0 && k < len(scores) {
		scores = scores[:k]
	}
	return scores
}
