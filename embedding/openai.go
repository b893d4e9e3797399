package embedding

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	// ModelMiniLM is the sentence-transformer the corpus was tuned on. It is
	// the default whenever a base URL points at a local server.
	ModelMiniLM = "all-MiniLM-L6-v2"

	// ModelOpenAI3Small is OpenAI's small hosted embedding model, the default
	// against api.openai.com.
	ModelOpenAI3Small = "text-embedding-3-small"
)

const (
	miniLMDim = 384

	hostedBatch = 2048
	localBatch  = 64
)

// OpenAI implements [Embedder] against an OpenAI-compatible embeddings API.
//
// Two deployments are expected. Without a base URL it talks to the hosted
// API and asks text-embedding-3 models to shorten their output to the
// MiniLM width, so cached corpus matrices keep one shape. With a base URL it
// assumes a local sentence-transformers server, which serves MiniLM, rejects
// the dimensions field and accepts small batches.
type OpenAI struct {
	client *openai.Client
	model  string
	dim    int
	batch  int
	shrink bool
}

var _ Embedder = (*OpenAI)(nil)

// NewOpenAI creates an OpenAI-compatible embedder. apiKey may be empty for
// local servers.
func NewOpenAI(apiKey string, opts ...Option) *OpenAI {
	cfg := config{dim: miniLMDim, httpClient: http.DefaultClient}
	for _, o := range opts {
		o(&cfg)
	}

	local := cfg.baseURL != ""
	if cfg.model == "" {
		cfg.model = ModelOpenAI3Small
		if local {
			cfg.model = ModelMiniLM
		}
	}

	reqOpts := []option.RequestOption{option.WithHTTPClient(cfg.httpClient)}
	if apiKey != "" {
		reqOpts = append(reqOpts, option.WithAPIKey(apiKey))
	}
	batch := hostedBatch
	if local {
		reqOpts = append(reqOpts, option.WithBaseURL(cfg.baseURL))
		batch = localBatch
	}
	client := openai.NewClient(reqOpts...)

	return &OpenAI{
		client: &client,
		model:  cfg.model,
		dim:    cfg.dim,
		batch:  batch,
		shrink: !local && strings.HasPrefix(cfg.model, "text-embedding-3"),
	}
}

// Embed returns the embedding for a single text.
func (o *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	vecs, err := o.request(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch returns embeddings for multiple texts. Large inputs are sent in
// consecutive requests; the first failing request aborts the batch.
func (o *OpenAI) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += o.batch {
		end := min(start+o.batch, len(texts))
		vecs, err := o.request(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed texts %d-%d of %d: %w", start, end-1, len(texts), err)
		}
		out = append(out, vecs...)
	}
	return out, nil
}

// Dimension returns the configured vector dimensionality.
func (o *OpenAI) Dimension() int {
	return o.dim
}

// Model returns the model identifier.
func (o *OpenAI) Model() string {
	return o.model
}

func (o *OpenAI) request(ctx context.Context, texts []string) ([][]float32, error) {
	params := openai.EmbeddingNewParams{
		Model:          o.model,
		Input:          openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		EncodingFormat: openai.EmbeddingNewParamsEncodingFormatFloat,
	}
	if o.shrink {
		params.Dimensions = openai.Int(int64(o.dim))
	}

	resp, err := o.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, err
	}
	return o.arrange(resp.Data, len(texts))
}

// arrange orders the response items by their index and checks that every
// input got exactly one vector of the configured width.
func (o *OpenAI) arrange(items []openai.Embedding, n int) ([][]float32, error) {
	if len(items) != n {
		return nil, fmt.Errorf("server returned %d embeddings for %d inputs", len(items), n)
	}

	vecs := make([][]float32, n)
	for _, item := range items {
		i := int(item.Index)
		switch {
		case i < 0 || i >= n:
			return nil, fmt.Errorf("embedding index %d out of range", i)
		case vecs[i] != nil:
			return nil, fmt.Errorf("embedding index %d returned twice", i)
		case len(item.Embedding) != o.dim:
			return nil, fmt.Errorf("embedding %d has %d dimensions, expected %d", i, len(item.Embedding), o.dim)
		}
		vec := make([]float32, o.dim)
		for j, x := range item.Embedding {
			vec[j] = float32(x)
		}
		vecs[i] = vec
	}
	return vecs, nil
}
