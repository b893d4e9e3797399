// Package pinecone wraps the Pinecone SDK for the remote intent index.
package pinecone

import (
	"context"
	"errors"
	"fmt"

	"github.com/pinecone-io/go-pinecone/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// Vector represents a vector with metadata (re-exported from SDK for convenience)
type Vector = pinecone.Vector

// QueryMatch represents a match from query results (re-exported from SDK for convenience)
type QueryMatch = pinecone.ScoredVector

// Metadata represents the metadata for a vector (re-exported from SDK for convenience)
type Metadata = pinecone.Metadata

// Service provides access to Pinecone indexes
type Service struct {
	client *pinecone.Client
}

// Index provides operations on one namespace of a Pinecone index
type Index struct {
	conn *pinecone.IndexConnection
}

// NewService creates a Pinecone client
func NewService(apiKey string) (*Service, error) {
	if apiKey == "" {
		return nil, errors.New("pinecone API key is required")
	}

	client, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pinecone client: %w", err)
	}
	return &Service{client: client}, nil
}

// ForIndex connects to the index served at host, scoped to namespace
func (s *Service) ForIndex(host, namespace string) (*Index, error) {
	if host == "" {
		return nil, errors.New("pinecone index host is required")
	}

	conn, err := s.client.Index(pinecone.NewIndexConnParams{
		Host:      host,
		Namespace: namespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to pinecone index: %w", err)
	}
	return &Index{conn: conn}, nil
}

// Search performs a vector similarity search in the namespace
func (idx *Index) Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]QueryMatch, error) {
	metadataFilter, err := NewFilter(filter)
	if err != nil {
		return nil, err
	}

	resp, err := idx.conn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
		Vector:          queryVector,
		TopK:            uint32(topK),
		IncludeValues:   false,
		IncludeMetadata: includeMetadata,
		MetadataFilter:  metadataFilter,
	})
	if err != nil {
		return nil, err
	}

	matches := make([]QueryMatch, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		if match != nil {
			matches = append(matches, *match)
		}
	}
	return matches, nil
}

// Upsert stores vectors in the namespace
func (idx *Index) Upsert(ctx context.Context, vectors []*Vector) error {
	if len(vectors) == 0 {
		return nil
	}
	_, err := idx.conn.UpsertVectors(ctx, vectors)
	return err
}

// Fetch returns the stored vectors among ids, keyed by ID
func (idx *Index) Fetch(ctx context.Context, ids []string) (map[string]*Vector, error) {
	if len(ids) == 0 {
		return map[string]*Vector{}, nil
	}
	resp, err := idx.conn.FetchVectors(ctx, ids)
	if err != nil {
		return nil, err
	}
	return resp.Vectors, nil
}

// Close releases the index connection
func (idx *Index) Close() error {
	return idx.conn.Close()
}

// NewFilter converts a plain map into a metadata filter. An empty map means
// no filter.
func NewFilter(filter map[string]any) (*pinecone.MetadataFilter, error) {
	if len(filter) == 0 {
		return nil, nil
	}
	s, err := structpb.NewStruct(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata filter: %w", err)
	}
	return s, nil
}

// NewMetadata converts a plain map into vector metadata
func NewMetadata(metadata map[string]any) (*Metadata, error) {
	s, err := structpb.NewStruct(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata: %w", err)
	}
	return &Metadata{Fields: s.Fields}, nil
}
