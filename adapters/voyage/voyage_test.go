package voyage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/austinfhunter/voyageai"

	"github.com/miguelAagelcruzvargas/sara-intent/adapters/voyage"
)

type recorder struct {
	calls   [][]string
	opts    []*voyageai.EmbeddingRequestOpts
	models  []string
	failAt  int
	dropOne bool
}

func (r *recorder) embed(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) ([]voyageai.EmbeddingObject, error) {
	r.calls = append(r.calls, append([]string(nil), texts...))
	r.opts = append(r.opts, opts)
	r.models = append(r.models, model)
	if r.failAt > 0 && len(r.calls) == r.failAt {
		return nil, errors.New("quota exceeded")
	}

	out := make([]voyageai.EmbeddingObject, len(texts))
	for i, text := range texts {
		out[i].Embedding = []float32{float32(len(text)), float32(*opts.OutputDimension)}
	}
	if r.dropOne {
		out = out[1:]
	}
	return out, nil
}

func TestNewService(t *testing.T) {
	service := voyage.NewService("test-api-key")
	if service.Dimensions() != voyage.DefaultDimensions {
		t.Errorf("Expected dimensions %d, got: %d", voyage.DefaultDimensions, service.Dimensions())
	}
	if service.Model() != voyage.DefaultModel {
		t.Errorf("Expected model %s, got: %s", voyage.DefaultModel, service.Model())
	}

	service.SetDimensions(512)
	service.SetModel("voyage-3.5")
	if service.Dimensions() != 512 || service.Model() != "voyage-3.5" {
		t.Errorf("Expected setters to apply, got: %d/%s", service.Dimensions(), service.Model())
	}
}

func TestEmbedBatchesAndKeepsOrder(t *testing.T) {
	rec := &recorder{}
	service := voyage.NewServiceWith(rec.embed)
	service.SetDimensions(256)

	texts := make([]string, voyage.MaxBatch+5)
	for i := range texts {
		texts[i] = string(make([]byte, i))
	}

	vecs, err := service.Embed(context.Background(), texts, voyage.InputTypeDocument)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(rec.calls) != 2 || len(rec.calls[0]) != voyage.MaxBatch || len(rec.calls[1]) != 5 {
		t.Fatalf("Expected two requests of %d and 5, got: %d", voyage.MaxBatch, len(rec.calls))
	}
	for i, vec := range vecs {
		if vec[0] != float32(i) || vec[1] != 256 {
			t.Errorf("Expected row %d in order with dimension 256, got: %v", i, vec)
			break
		}
	}
	if rec.opts[0].InputType == nil || *rec.opts[0].InputType != "document" {
		t.Errorf("Expected input type document, got: %v", rec.opts[0].InputType)
	}
	if rec.models[0] != voyage.DefaultModel {
		t.Errorf("Expected model %s, got: %s", voyage.DefaultModel, rec.models[0])
	}
}

func TestEmbedDefaultInputType(t *testing.T) {
	rec := &recorder{}
	if _, err := voyage.NewServiceWith(rec.embed).Embed(context.Background(), []string{"hola"}, voyage.InputTypeDefault); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if rec.opts[0].InputType != nil {
		t.Errorf("Expected no input type, got: %v", *rec.opts[0].InputType)
	}
}

func TestEmbedErrors(t *testing.T) {
	tests := []struct {
		name string
		rec  *recorder
	}{
		{"request fails", &recorder{failAt: 1}},
		{"short response", &recorder{dropOne: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := voyage.NewServiceWith(tt.rec.embed).Embed(context.Background(), []string{"a", "b"}, voyage.InputTypeQuery); err == nil {
				t.Error("Expected an error, got nil")
			}
		})
	}
}

func TestEmbedCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &recorder{}
	if _, err := voyage.NewServiceWith(rec.embed).Embed(ctx, []string{"a"}, voyage.InputTypeQuery); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Errorf("Expected no requests, got: %d", len(rec.calls))
	}
}
