package embedding

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/miguelAagelcruzvargas/sara-intent/internal/textnorm"
)

const (
	ngramDefaultDim = 384
	ngramSize       = 3

	wordWeight = 1.0
	gramWeight = 0.5
)

// Ngram is a deterministic in-process embedder. Each accent-folded word and
// each character trigram of the padded word is hashed into a signed bucket,
// and the result is L2-normalised. It needs no weights or network, so it is
// the provider of last resort when no model server is reachable.
type Ngram struct {
	dim int
}

var _ Embedder = (*Ngram)(nil)

// NewNgram creates a hashed n-gram embedder. Only WithDimension is honoured.
func NewNgram(opts ...Option) *Ngram {
	cfg := config{dim: ngramDefaultDim}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.dim <= 0 {
		cfg.dim = ngramDefaultDim
	}
	return &Ngram{dim: cfg.dim}
}

// Embed returns the vector for text.
func (n *Ngram) Embed(_ context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}
	return n.vector(text), nil
}

// EmbedBatch encodes every text with the same function as Embed.
func (n *Ngram) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec, err := n.Embed(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embed text %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

// Dimension returns the vector length.
func (n *Ngram) Dimension() int {
	return n.dim
}

// Model returns an identifier that changes with the dimension.
func (n *Ngram) Model() string {
	return fmt.Sprintf("ngram-%d-%d", ngramSize, n.dim)
}

func (n *Ngram) vector(text string) []float32 {
	acc := make([]float64, n.dim)
	for _, word := range textnorm.Words(textnorm.Fold(text)) {
		n.add(acc, "w:"+word, wordWeight)

		padded := []rune(" " + word + " ")
		if len(padded) < ngramSize {
			continue
		}
		for i := 0; i+ngramSize <= len(padded); i++ {
			n.add(acc, "g:"+string(padded[i:i+ngramSize]), gramWeight)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	out := make([]float32, n.dim)
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for i, v := range acc {
		out[i] = float32(v / norm)
	}
	return out
}

func (n *Ngram) add(acc []float64, feature string, weight float64) {
	h := fnv.New64a()
	h.Write([]byte(feature))
	sum := h.Sum64()

	bucket := int(sum % uint64(n.dim))
	if sum>>63 == 1 {
		weight = -weight
	}
	acc[bucket] += weight
}
