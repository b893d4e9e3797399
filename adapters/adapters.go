// Package adapters connects hosted services to the classifier: Voyage AI as
// an embedding provider, Pinecone as a remote vector index and any
// OpenAI-compatible chat endpoint as the external reasoner.
package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/miguelAagelcruzvargas/sara-intent/adapters/pinecone"
	"github.com/miguelAagelcruzvargas/sara-intent/adapters/voyage"
	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// VoyageEmbedder adapts the Voyage service to embedding.Embedder. Single and
// batch calls use the same input type so their vectors agree.
type VoyageEmbedder struct {
	service interface {
		Embed(ctx context.Context, texts []string, inputType voyage.InputType) ([][]float32, error)
		Dimensions() int
		Model() string
	}
	inputType voyage.InputType
}

var _ embedding.Embedder = (*VoyageEmbedder)(nil)

// NewVoyageEmbedder creates an embedder for Voyage AI. A nil apiKey reads
// VOYAGEAI_API_KEY.
func NewVoyageEmbedder(apiKey *string, model string, dimensions int) (*VoyageEmbedder, error) {
	key, err := loadEnvVar(apiKey, "VOYAGEAI_API_KEY")
	if err != nil {
		return nil, err
	}

	service := voyage.NewService(*key)
	if model != "" {
		service.SetModel(model)
	}
	if dimensions > 0 {
		service.SetDimensions(dimensions)
	}
	return NewVoyageEmbedderWith(service), nil
}

// NewVoyageEmbedderWith wraps an existing service.
func NewVoyageEmbedderWith(service *voyage.Service) *VoyageEmbedder {
	return &VoyageEmbedder{service: service, inputType: voyage.InputTypeDefault}
}

// Embed implements embedding.Embedder
func (a *VoyageEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, embedding.ErrEmptyInput
	}
	vecs, err := a.service.Embed(ctx, []string{text}, a.inputType)
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch implements embedding.Embedder
func (a *VoyageEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, embedding.ErrEmptyInput
	}
	return a.service.Embed(ctx, texts, a.inputType)
}

// Dimension implements embedding.Embedder
func (a *VoyageEmbedder) Dimension() int {
	return a.service.Dimensions()
}

// Model implements embedding.Embedder
func (a *VoyageEmbedder) Model() string {
	return "voyage/" + a.service.Model()
}

// PineconeIndex is the part of pinecone.Index the vector store needs
type PineconeIndex interface {
	Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]pinecone.QueryMatch, error)
	Upsert(ctx context.Context, vectors []*pinecone.Vector) error
	Fetch(ctx context.Context, ids []string) (map[string]*pinecone.Vector, error)
}

// PineconeConnector opens the index scoped to namespace.
type PineconeConnector func(namespace string) (PineconeIndex, error)

// PineconeVectorStore adapts a Pinecone namespace to semantic.VectorStore
type PineconeVectorStore struct {
	index   PineconeIndex
	connect PineconeConnector
	opened  *connections
}

// connections tracks every index a store and its scoped copies opened.
type connections struct {
	mu    sync.Mutex
	conns []PineconeIndex
}

var (
	_ semantic.VectorStore = (*PineconeVectorStore)(nil)
	_ semantic.Namespacer  = (*PineconeVectorStore)(nil)
)

// NewPineconeVectorStore connects to a Pinecone index. Nil apiKey and host
// read PINECONE_API_KEY and PINECONE_HOST.
func NewPineconeVectorStore(apiKey *string, host *string, namespace string) (*PineconeVectorStore, error) {
	key, err := loadEnvVar(apiKey, "PINECONE_API_KEY")
	if err != nil {
		return nil, err
	}

	h, err := loadEnvVar(host, "PINECONE_HOST")
	if err != nil {
		return nil, err
	}

	service, err := pinecone.NewService(*key)
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone service: %w", err)
	}

	store, err := NewPineconeVectorStoreWithConnector(func(namespace string) (PineconeIndex, error) {
		return service.ForIndex(*h, namespace)
	}, namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pinecone index: %w", err)
	}
	return store, nil
}

// NewPineconeVectorStoreWith wraps an index connection. The store cannot be
// scoped to another namespace.
func NewPineconeVectorStoreWith(index PineconeIndex) *PineconeVectorStore {
	return &PineconeVectorStore{index: index, opened: &connections{}}
}

// NewPineconeVectorStoreWithConnector opens namespace through connect and
// keeps connect for InNamespace.
func NewPineconeVectorStoreWithConnector(connect PineconeConnector, namespace string) (*PineconeVectorStore, error) {
	store := &PineconeVectorStore{connect: connect, opened: &connections{}}
	index, err := store.open(namespace)
	if err != nil {
		return nil, err
	}
	store.index = index
	return store, nil
}

func (a *PineconeVectorStore) open(namespace string) (PineconeIndex, error) {
	index, err := a.connect(namespace)
	if err != nil {
		return nil, err
	}
	a.opened.mu.Lock()
	a.opened.conns = append(a.opened.conns, index)
	a.opened.mu.Unlock()
	return index, nil
}

// InNamespace implements semantic.Namespacer. The returned store shares the
// connections of a, so closing a closes it too.
func (a *PineconeVectorStore) InNamespace(namespace string) (semantic.VectorStore, error) {
	if a.connect == nil {
		return nil, errors.New("pinecone store has no connector")
	}
	index, err := a.open(namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to open pinecone namespace %q: %w", namespace, err)
	}
	return &PineconeVectorStore{index: index, connect: a.connect, opened: a.opened}, nil
}

// Close releases every index connection opened by the store.
func (a *PineconeVectorStore) Close() error {
	a.opened.mu.Lock()
	conns := a.opened.conns
	a.opened.conns = nil
	a.opened.mu.Unlock()

	var errs []error
	for _, conn := range conns {
		if c, ok := conn.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// Search implements semantic.VectorStore
func (a *PineconeVectorStore) Search(ctx context.Context, vector []float32, topK int) ([]semantic.VectorMatch, error) {
	matches, err := a.index.Search(ctx, vector, topK, nil, true)
	if err != nil {
		return nil, err
	}

	results := make([]semantic.VectorMatch, 0, len(matches))
	for _, match := range matches {
		if match.Vector == nil {
			continue
		}
		metadata := make(map[string]any)
		if match.Vector.Metadata != nil {
			metadata = match.Vector.Metadata.AsMap()
		}

		results = append(results, semantic.VectorMatch{
			ID:       match.Vector.Id,
			Score:    match.Score,
			Metadata: metadata,
		})
	}

	return results, nil
}

// Upsert implements semantic.VectorStore
func (a *PineconeVectorStore) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
	md, err := pinecone.NewMetadata(metadata)
	if err != nil {
		return err
	}

	return a.index.Upsert(ctx, []*pinecone.Vector{
		{
			Id:       id,
			Values:   vector,
			Metadata: md,
		},
	})
}

// Fetch implements semantic.VectorStore
func (a *PineconeVectorStore) Fetch(ctx context.Context, ids []string) (map[string]semantic.VectorMatch, error) {
	vectors, err := a.index.Fetch(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[string]semantic.VectorMatch, len(vectors))
	for id, vec := range vectors {
		if vec == nil {
			continue
		}
		metadata := make(map[string]any)
		if vec.Metadata != nil {
			metadata = vec.Metadata.AsMap()
		}
		found[id] = semantic.VectorMatch{ID: id, Metadata: metadata}
	}
	return found, nil
}

// loadEnvVar loads an environment variable into a pointer if no value is provided
func loadEnvVar(target *string, envKey string) (*string, error) {
	if target == nil {
		envVar := os.Getenv(envKey)
		if envVar == "" {
			return nil, fmt.Errorf("%s environment variable not set and no value provided", envKey)
		}
		return &envVar, nil
	}
	return target, nil
}
