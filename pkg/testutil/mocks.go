// Package testutil provides call-counting fakes for the classifier's
// collaborators.
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/miguelAagelcruzvargas/sara-intent/cache"
	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// MockEmbedder is a mock implementation of embedding.Embedder. Without
// overrides it delegates to an n-gram embedder so similarity scores are
// meaningful.
type MockEmbedder struct {
	EmbedFunc      func(ctx context.Context, text string) ([]float32, error)
	EmbedBatchFunc func(ctx context.Context, texts []string) ([][]float32, error)
	LoadErr        error
	Dim            int
	ModelName      string

	mu             sync.Mutex
	CallCount      int
	BatchCallCount int
	LoadCount      int
	LastText       string

	fallback *embedding.Ngram
	once     sync.Once
}

var (
	_ embedding.Embedder = (*MockEmbedder)(nil)
	_ embedding.Loader   = (*MockEmbedder)(nil)
)

func (m *MockEmbedder) ngram() *embedding.Ngram {
	m.once.Do(func() {
		var opts []embedding.Option
		if m.Dim > 0 {
			opts = append(opts, embedding.WithDimension(m.Dim))
		}
		m.fallback = embedding.NewNgram(opts...)
	})
	return m.fallback
}

func (m *MockEmbedder) Load(ctx context.Context) error {
	m.mu.Lock()
	m.LoadCount++
	m.mu.Unlock()
	return m.LoadErr
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastText = text
	m.mu.Unlock()

	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, text)
	}
	return m.ngram().Embed(ctx, text)
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	m.mu.Lock()
	m.BatchCallCount++
	m.mu.Unlock()

	if m.EmbedBatchFunc != nil {
		return m.EmbedBatchFunc(ctx, texts)
	}
	if m.EmbedFunc != nil {
		out := make([][]float32, len(texts))
		for i, text := range texts {
			vec, err := m.EmbedFunc(ctx, text)
			if err != nil {
				return nil, err
			}
			out[i] = vec
		}
		return out, nil
	}
	return m.ngram().EmbedBatch(ctx, texts)
}

func (m *MockEmbedder) Dimension() int {
	return m.ngram().Dimension()
}

func (m *MockEmbedder) Model() string {
	if m.ModelName != "" {
		return m.ModelName
	}
	return m.ngram().Model()
}

// Calls returns the number of single-text Embed calls so far.
func (m *MockEmbedder) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// MockReasoner is a mock external reasoner.
type MockReasoner struct {
	AskFunc func(ctx context.Context, prompt string) (string, string, error)

	mu         sync.Mutex
	CallCount  int
	LastPrompt string
}

func (m *MockReasoner) Ask(ctx context.Context, prompt string) (string, string, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastPrompt = prompt
	m.mu.Unlock()

	if m.AskFunc != nil {
		return m.AskFunc(ctx, prompt)
	}
	return `{"intent": "CONVERSACION", "params": {}}`, "mock", nil
}

// Calls returns the number of Ask calls so far.
func (m *MockReasoner) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// MockCache is an in-memory embedding cache.
type MockCache struct {
	LoadFunc func(ctx context.Context, hash string) (*semantic.Index, error)
	SaveFunc func(ctx context.Context, ix *semantic.Index, hash string) error

	mu        sync.Mutex
	LoadCount int
	SaveCount int
	Stored    *semantic.Index
	StoredFor string
}

func (m *MockCache) Load(ctx context.Context, hash string) (*semantic.Index, error) {
	m.mu.Lock()
	m.LoadCount++
	stored, storedFor := m.Stored, m.StoredFor
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc(ctx, hash)
	}
	if stored == nil || storedFor != hash {
		return nil, cache.ErrMiss
	}
	return stored, nil
}

func (m *MockCache) Save(ctx context.Context, ix *semantic.Index, hash string) error {
	m.mu.Lock()
	m.SaveCount++
	m.Stored = ix
	m.StoredFor = hash
	m.mu.Unlock()

	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, ix, hash)
	}
	return nil
}

// MockVectorStore is an in-memory semantic.VectorStore that ranks stored
// vectors by cosine similarity.
type MockVectorStore struct {
	SearchFunc func(ctx context.Context, vector []float32, topK int) ([]semantic.VectorMatch, error)
	UpsertFunc func(ctx context.Context, id string, vector []float32, metadata map[string]any) error
	FetchFunc  func(ctx context.Context, ids []string) (map[string]semantic.VectorMatch, error)

	mu          sync.Mutex
	CallCount   int
	UpsertCount int
	FetchCount  int
	Storage     map[string]struct {
		Vector   []float32
		Metadata map[string]any
	}
}

func NewMockVectorStore() *MockVectorStore {
	return &MockVectorStore{
		Storage: make(map[string]struct {
			Vector   []float32
			Metadata map[string]any
		}),
	}
}

func (m *MockVectorStore) Search(ctx context.Context, vector []float32, topK int) ([]semantic.VectorMatch, error) {
	m.mu.Lock()
	m.CallCount++
	matches := make([]semantic.VectorMatch, 0, len(m.Storage))
	for id, item := range m.Storage {
		matches = append(matches, semantic.VectorMatch{
			ID:       id,
			Score:    semantic.Cosine(vector, item.Vector),
			Metadata: item.Metadata,
		})
	}
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, vector, topK)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].ID < matches[j].ID
	})
	if topK < len(matches) {
		matches = matches[:topK]
	}
	return matches, nil
}

func (m *MockVectorStore) Upsert(ctx context.Context, id string, vector []float32, metadata map[string]any) error {
	m.mu.Lock()
	m.UpsertCount++
	m.mu.Unlock()

	if m.UpsertFunc != nil {
		if err := m.UpsertFunc(ctx, id, vector, metadata); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.Storage[id] = struct {
		Vector   []float32
		Metadata map[string]any
	}{Vector: vector, Metadata: metadata}
	m.mu.Unlock()
	return nil
}

func (m *MockVectorStore) Fetch(ctx context.Context, ids []string) (map[string]semantic.VectorMatch, error) {
	m.mu.Lock()
	m.FetchCount++
	found := make(map[string]semantic.VectorMatch, len(ids))
	for _, id := range ids {
		if item, ok := m.Storage[id]; ok {
			found[id] = semantic.VectorMatch{ID: id, Score: 1, Metadata: item.Metadata}
		}
	}
	m.mu.Unlock()

	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, ids)
	}
	return found, nil
}

// Len returns the number of stored vectors.
func (m *MockVectorStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Storage)
}
