package embedding_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
)

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func TestNgram_BatchMatchesSingle(t *testing.T) {
	ctx := context.Background()
	e := embedding.NewNgram()
	texts := []string{"sube el volumen", "abre chrome", "cuánto es 50 por 3"}

	batch, err := e.EmbedBatch(ctx, texts)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for i, text := range texts {
		single, err := e.Embed(ctx, text)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if len(single) != e.Dimension() {
			t.Fatalf("Expected %d dimensions, got: %d", e.Dimension(), len(single))
		}
		for j := range single {
			if single[j] != batch[i][j] {
				t.Fatalf("Batch vector %d differs from single encoding at %d", i, j)
			}
		}
	}
}

func TestNgram_Similarity(t *testing.T) {
	ctx := context.Background()
	e := embedding.NewNgram()

	a, _ := e.Embed(ctx, "súbele volumen")
	b, _ := e.Embed(ctx, "SUBELE VOLUMEN")
	if got := cosine(a, b); got < 0.9999 {
		t.Errorf("Expected accent and case insensitive vectors, got cosine %f", got)
	}

	c, _ := e.Embed(ctx, "sube el volumen")
	d, _ := e.Embed(ctx, "qué clima hace en monterrey")
	if cosine(a, c) <= cosine(a, d) {
		t.Errorf("Expected related phrase to score higher than unrelated one")
	}
}

func TestNgram_EmptyInput(t *testing.T) {
	e := embedding.NewNgram()
	if _, err := e.Embed(context.Background(), ""); !errors.Is(err, embedding.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got: %v", err)
	}
	if _, err := e.EmbedBatch(context.Background(), nil); !errors.Is(err, embedding.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got: %v", err)
	}
}

func TestNgram_ModelTracksDimension(t *testing.T) {
	a := embedding.NewNgram()
	b := embedding.NewNgram(embedding.WithDimension(128))
	if a.Model() == b.Model() {
		t.Errorf("Expected different model ids, both were %q", a.Model())
	}
	if b.Dimension() != 128 {
		t.Errorf("Expected dimension 128, got: %d", b.Dimension())
	}
}

func TestShared_LoadsOnce(t *testing.T) {
	calls := 0
	shared := embedding.NewShared(func(ctx context.Context) (embedding.Embedder, error) {
		calls++
		return embedding.NewNgram(), nil
	})

	ctx := context.Background()
	if err := shared.Load(ctx); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if _, err := shared.Embed(ctx, "hola"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	first, _ := shared.Get(ctx)
	second, _ := shared.Get(ctx)
	if first != second {
		t.Error("Expected the same provider instance on every Get")
	}
	if calls != 1 {
		t.Errorf("Expected loader to run once, got: %d", calls)
	}
}

func TestShared_RemembersFailure(t *testing.T) {
	calls := 0
	loadErr := errors.New("weights missing")
	shared := embedding.NewShared(func(ctx context.Context) (embedding.Embedder, error) {
		calls++
		return nil, loadErr
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := shared.Load(ctx); !errors.Is(err, loadErr) {
			t.Fatalf("Expected load error, got: %v", err)
		}
	}
	if _, err := shared.Embed(ctx, "hola"); !errors.Is(err, loadErr) {
		t.Errorf("Expected load error from Embed, got: %v", err)
	}
	if shared.Dimension() != 0 {
		t.Errorf("Expected dimension 0, got: %d", shared.Dimension())
	}
	if calls != 1 {
		t.Errorf("Expected loader to run once, got: %d", calls)
	}
}

// fakeEmbeddingServer answers the embeddings endpoint with vectors derived
// from the input position.
func fakeEmbeddingServer(t *testing.T, dim int, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*requests++
		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		type item struct {
			Object    string    `json:"object"`
			Index     int       `json:"index"`
			Embedding []float64 `json:"embedding"`
		}
		data := make([]item, len(req.Input))
		for i := range req.Input {
			vec := make([]float64, dim)
			for j := range vec {
				vec[j] = float64(i+1) * 0.01 * float64(j+1)
			}
			data[i] = item{Object: "embedding", Index: i, Embedding: vec}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  req.Model,
			"data":   data,
			"usage":  map[string]int{"prompt_tokens": 1, "total_tokens": 1},
		})
	}))
}

func TestOpenAI_EmbedBatch(t *testing.T) {
	requests := 0
	srv := fakeEmbeddingServer(t, 4, &requests)
	defer srv.Close()

	e := embedding.NewOpenAI("test-key",
		embedding.WithBaseURL(srv.URL),
		embedding.WithModel(embedding.ModelMiniLM),
		embedding.WithDimension(4),
	)

	vecs, err := e.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(vecs) != 3 {
		t.Fatalf("Expected 3 vectors, got: %d", len(vecs))
	}
	if math.Abs(float64(vecs[2][0])-0.03) > 1e-6 {
		t.Errorf("Expected first component 0.03, got: %f", vecs[2][0])
	}
	if requests != 1 {
		t.Errorf("Expected one request, got: %d", requests)
	}
	if e.Model() != embedding.ModelMiniLM {
		t.Errorf("Expected model %q, got: %q", embedding.ModelMiniLM, e.Model())
	}
}

func TestOpenAI_DimensionMismatch(t *testing.T) {
	requests := 0
	srv := fakeEmbeddingServer(t, 8, &requests)
	defer srv.Close()

	e := embedding.NewOpenAI("test-key",
		embedding.WithBaseURL(srv.URL),
		embedding.WithModel(embedding.ModelMiniLM),
		embedding.WithDimension(4),
	)

	if _, err := e.Embed(context.Background(), "hola"); err == nil {
		t.Error("Expected error when the server returns the wrong dimension")
	}
}

func TestOpenAI_LocalServerDefaults(t *testing.T) {
	var bodies []map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		bodies = append(bodies, body)

		inputs, _ := body["input"].([]any)
		data := make([]map[string]any, len(inputs))
		for i := range inputs {
			data[i] = map[string]any{"object": "embedding", "index": i, "embedding": make([]float64, 384)}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data})
	}))
	defer srv.Close()

	e := embedding.NewOpenAI("", embedding.WithBaseURL(srv.URL))
	if e.Model() != embedding.ModelMiniLM {
		t.Errorf("Expected model %q, got: %q", embedding.ModelMiniLM, e.Model())
	}
	if e.Dimension() != 384 {
		t.Errorf("Expected dimension 384, got: %d", e.Dimension())
	}

	texts := make([]string, 100)
	for i := range texts {
		texts[i] = "frase"
	}
	vecs, err := e.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(vecs) != 100 {
		t.Fatalf("Expected 100 vectors, got: %d", len(vecs))
	}
	if len(bodies) != 2 {
		t.Fatalf("Expected two requests, got: %d", len(bodies))
	}
	for i, body := range bodies {
		if body["model"] != embedding.ModelMiniLM {
			t.Errorf("Expected request %d for %q, got: %v", i, embedding.ModelMiniLM, body["model"])
		}
		if _, ok := body["dimensions"]; ok {
			t.Errorf("Expected request %d without a dimensions field", i)
		}
	}
}

func TestOpenAI_ShortResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float64{1, 0, 0, 0}},
			},
		})
	}))
	defer srv.Close()

	e := embedding.NewOpenAI("", embedding.WithBaseURL(srv.URL), embedding.WithDimension(4))
	if _, err := e.EmbedBatch(context.Background(), []string{"a", "b"}); err == nil {
		t.Error("Expected error when the server returns fewer embeddings than inputs")
	}
	if _, err := e.Embed(context.Background(), "   "); !errors.Is(err, embedding.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput for blank text, got: %v", err)
	}
}
