// Package voyage generates embeddings with the Voyage AI API.
package voyage

import (
	"context"
	"fmt"

	"github.com/austinfhunter/voyageai"
)

const (
	// DefaultModel is the embedding model used when none is set
	DefaultModel = "voyage-3.5-lite"

	// DefaultDimensions is the output dimension used when none is set
	DefaultDimensions = 1024

	// MaxBatch is the largest number of texts sent in one request
	MaxBatch = 128
)

// InputType tells Voyage whether a text is stored or searched for
type InputType string

const (
	InputTypeDocument InputType = "document"
	InputTypeQuery    InputType = "query"
	InputTypeDefault  InputType = ""
)

// EmbedFunc performs one Voyage embedding request.
type EmbedFunc func(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) ([]voyageai.EmbeddingObject, error)

// Service handles generating embeddings for text
type Service struct {
	embed      EmbedFunc
	dimensions int
	model      string
}

// NewService creates a service backed by the Voyage API
func NewService(apiKey string) *Service {
	client := voyageai.NewClient(&voyageai.VoyageClientOpts{
		Key: apiKey,
	})
	return NewServiceWith(func(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) ([]voyageai.EmbeddingObject, error) {
		resp, err := client.Embed(texts, model, opts)
		if err != nil {
			return nil, err
		}
		return resp.Data, nil
	})
}

// NewServiceWith creates a service around an arbitrary request function.
func NewServiceWith(embed EmbedFunc) *Service {
	return &Service{
		embed:      embed,
		dimensions: DefaultDimensions,
		model:      DefaultModel,
	}
}

// SetDimensions sets the output dimension
func (s *Service) SetDimensions(dimensions int) {
	s.dimensions = dimensions
}

// SetModel sets the embedding model
func (s *Service) SetModel(model string) {
	s.model = model
}

// Dimensions returns the output dimension
func (s *Service) Dimensions() int {
	return s.dimensions
}

// Model returns the embedding model
func (s *Service) Model() string {
	return s.model
}

// Embed generates embeddings for texts, splitting them into requests of at
// most MaxBatch texts. The result is in input order.
func (s *Service) Embed(ctx context.Context, texts []string, inputType InputType) ([][]float32, error) {
	dimensions := s.dimensions
	out := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += MaxBatch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+MaxBatch, len(texts))

		data, err := s.embed(texts[start:end], s.model, &voyageai.EmbeddingRequestOpts{
			InputType:       parseInputType(inputType),
			OutputDimension: &dimensions,
		})
		if err != nil {
			return nil, fmt.Errorf("could not get embeddings: %w", err)
		}
		if len(data) != end-start {
			return nil, fmt.Errorf("voyage returned %d embeddings for %d texts", len(data), end-start)
		}
		for _, obj := range data {
			out = append(out, obj.Embedding)
		}
	}
	return out, nil
}

func parseInputType(inputType InputType) *string {
	if inputType != InputTypeDefault {
		value := string(inputType)
		return &value
	}
	return nil
}
