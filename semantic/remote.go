package semantic

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
)

const (
	metadataLabel = "label"
	metadataRow   = "row"

	syncConcurrency = 8
	fetchBatch      = 100
)

// VectorMatch is a single hit from a vector store.
type VectorMatch struct {
	ID       string
	Score    float32
	Metadata map[string]any
}

// VectorStore is a remote nearest-neighbour index.
type VectorStore interface {
	Search(ctx context.Context, vector []float32, topK int) ([]VectorMatch, error)
	Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error

	// Fetch returns the stored vectors among ids, keyed by ID. Missing IDs
	// are absent from the result.
	Fetch(ctx context.Context, ids []string) (map[string]VectorMatch, error)
}

// Namespacer is implemented by stores that can be scoped to a namespace.
type Namespacer interface {
	InNamespace(namespace string) (VectorStore, error)
}

// RemoteIndex answers Nearest with a top-1 query against a VectorStore. The
// nearest row belongs to the intent with the highest per-intent maximum, so
// the result agrees with Index.Nearest up to tie order.
type RemoteIndex struct {
	store VectorStore
}

var _ Matcher = (*RemoteIndex)(nil)

// NewRemoteIndex wraps store.
func NewRemoteIndex(store VectorStore) *RemoteIndex {
	return &RemoteIndex{store: store}
}

// Namespace derives a store namespace from the corpus hash and the embedding
// model. Vectors written for another corpus or another model are never read.
func Namespace(corpusHash, model string) string {
	sum := sha256.Sum256([]byte(corpusHash + "|" + model))
	return "sara-intent-" + hex.EncodeToString(sum[:8])
}

// RowID names the vector for row i of label.
func RowID(label corpus.Label, i int) string {
	return fmt.Sprintf("%s/%d", label, i)
}

type row struct {
	id     string
	label  corpus.Label
	index  int
	vector []float32
}

// Sync makes the store hold every row of ix. Rows already stored under their
// ID with the right label are left alone, so a sync interrupted part way is
// completed by the next one and a complete index costs no writes.
func (r *RemoteIndex) Sync(ctx context.Context, ix *Index) error {
	var rows []row
	for _, label := range ix.Labels() {
		for i, vec := range ix.Vectors(label) {
			rows = append(rows, row{id: RowID(label, i), label: label, index: i, vector: vec})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	missing, err := r.missing(ctx, rows)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(syncConcurrency)
	for _, rw := range missing {
		g.Go(func() error {
			metadata := map[string]any{
				metadataLabel: string(rw.label),
				metadataRow:   float64(rw.index),
			}
			if err := r.store.Upsert(ctx, rw.id, rw.vector, metadata); err != nil {
				return fmt.Errorf("failed to upsert %s: %w", rw.id, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (r *RemoteIndex) missing(ctx context.Context, rows []row) ([]row, error) {
	var out []row
	for start := 0; start < len(rows); start += fetchBatch {
		batch := rows[start:min(start+fetchBatch, len(rows))]
		ids := make([]string, len(batch))
		for i, rw := range batch {
			ids[i] = rw.id
		}

		stored, err := r.store.Fetch(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch stored vectors: %w", err)
		}
		for _, rw := range batch {
			m, ok := stored[rw.id]
			if !ok {
				out = append(out, rw)
				continue
			}
			if label, _ := m.Metadata[metadataLabel].(string); label != string(rw.label) {
				out = append(out, rw)
			}
		}
	}
	return out, nil
}

// Nearest queries the store for the single closest row.
func (r *RemoteIndex) Nearest(ctx context.Context, vector []float32) (Match, error) {
	matches, err := r.store.Search(ctx, vector, 1)
	if err != nil {
		return Match{}, err
	}
	if len(matches) == 0 {
		return Match{}, nil
	}

	label, ok := matches[0].Metadata[metadataLabel].(string)
	if !ok {
		return Match{}, fmt.Errorf("vector %s missing label metadata", matches[0].ID)
	}

	return Match{Label: corpus.Label(label), Score: matches[0].Score}, nil
}
