// Package embedding provides the text embedding providers used by the
// semantic tier.
//
// Three providers are available:
//
//   - [Ngram]: in-process hashed n-gram vectors, always available offline
//   - [OpenAI]: any OpenAI-compatible embeddings endpoint, including local
//     servers hosting sentence-transformer models
//   - the Voyage adapter in the adapters package
//
// A provider can be wrapped in [Shared] so that one loaded instance serves
// the classifier and any other subsystem of the host application.
package embedding

import (
	"context"
	"errors"
)

// Embedder converts text into dense float32 vectors.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one vector per text, in order. Encoding a text in a
	// batch must give the same vector as encoding it alone.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the dimensionality of the output vectors.
	Dimension() int

	// Model identifies the model that produced the vectors. Cached vectors
	// are only reused for the same model.
	Model() string
}

// Loader is implemented by providers that need a warm-up step (weights,
// connections). A Load error means the provider is unusable.
type Loader interface {
	Load(ctx context.Context) error
}

var (
	// ErrEmptyInput is returned when the input text is empty.
	ErrEmptyInput = errors.New("embedding: empty input")

	// ErrNotLoaded is returned by a Shared provider whose loader failed.
	ErrNotLoaded = errors.New("embedding: provider not loaded")
)
