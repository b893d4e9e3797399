package adapters_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/austinfhunter/voyageai"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/miguelAagelcruzvargas/sara-intent/adapters"
	"github.com/miguelAagelcruzvargas/sara-intent/adapters/openai"
	"github.com/miguelAagelcruzvargas/sara-intent/adapters/pinecone"
	"github.com/miguelAagelcruzvargas/sara-intent/adapters/voyage"
	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
)

// Mock implementations for testing

type mockPineconeIndex struct {
	searchFunc func(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]pinecone.QueryMatch, error)
	upserted   []*pinecone.Vector
	fetchErr   error
	namespace  string
	closed     bool
}

func (m *mockPineconeIndex) Search(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]pinecone.QueryMatch, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, queryVector, topK, filter, includeMetadata)
	}
	return []pinecone.QueryMatch{}, nil
}

func (m *mockPineconeIndex) Upsert(ctx context.Context, vectors []*pinecone.Vector) error {
	m.upserted = append(m.upserted, vectors...)
	return nil
}

func (m *mockPineconeIndex) Fetch(ctx context.Context, ids []string) (map[string]*pinecone.Vector, error) {
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	found := make(map[string]*pinecone.Vector)
	for _, v := range m.upserted {
		for _, id := range ids {
			if v.Id == id {
				found[id] = v
			}
		}
	}
	return found, nil
}

func (m *mockPineconeIndex) Close() error {
	m.closed = true
	return nil
}

type mockChatClient struct {
	requests []openai.ChatCompletionRequest
	reply    *string
	err      error
}

func (m *mockChatClient) ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.reply == nil {
		return &openai.ChatCompletionResponse{}, nil
	}
	return &openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatMessage{Role: openai.MessageRoleAssistant, Content: m.reply}},
		},
	}, nil
}

func fakeVoyage(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) ([]voyageai.EmbeddingObject, error) {
	out := make([]voyageai.EmbeddingObject, len(texts))
	for i, text := range texts {
		out[i].Embedding = []float32{float32(len(text)), 1}
	}
	return out, nil
}

// Voyage embedder tests

func TestNewVoyageEmbedder_WithAPIKey(t *testing.T) {
	apiKey := "test-api-key"
	embedder, err := adapters.NewVoyageEmbedder(&apiKey, "voyage-3.5", 512)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if embedder.Dimension() != 512 {
		t.Errorf("Expected dimension 512, got: %d", embedder.Dimension())
	}
	if embedder.Model() != "voyage/voyage-3.5" {
		t.Errorf("Expected model voyage/voyage-3.5, got: %s", embedder.Model())
	}
}

func TestNewVoyageEmbedder_FromEnv(t *testing.T) {
	t.Setenv("VOYAGEAI_API_KEY", "env-api-key")

	embedder, err := adapters.NewVoyageEmbedder(nil, "", 0)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if embedder.Dimension() != voyage.DefaultDimensions {
		t.Errorf("Expected default dimension %d, got: %d", voyage.DefaultDimensions, embedder.Dimension())
	}
}

func TestNewVoyageEmbedder_MissingKey(t *testing.T) {
	t.Setenv("VOYAGEAI_API_KEY", "")

	_, err := adapters.NewVoyageEmbedder(nil, "", 0)
	if err == nil {
		t.Fatal("Expected error when API key is missing")
	}
	if !strings.Contains(err.Error(), "VOYAGEAI_API_KEY") {
		t.Errorf("Expected error to name the variable, got: %v", err)
	}
}

func TestVoyageEmbedder_Embed(t *testing.T) {
	embedder := adapters.NewVoyageEmbedderWith(voyage.NewServiceWith(fakeVoyage))

	vec, err := embedder.Embed(context.Background(), "abre chrome")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(vec) != 2 || vec[0] != float32(len("abre chrome")) {
		t.Errorf("Expected embedding for the text, got: %v", vec)
	}

	batch, err := embedder.EmbedBatch(context.Background(), []string{"a", "bb", "ccc"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	for i, v := range batch {
		if v[0] != float32(i+1) {
			t.Errorf("Expected batch order to be kept at %d, got: %v", i, v)
		}
	}
}

func TestVoyageEmbedder_EmptyInput(t *testing.T) {
	embedder := adapters.NewVoyageEmbedderWith(voyage.NewServiceWith(fakeVoyage))

	if _, err := embedder.Embed(context.Background(), ""); !errors.Is(err, embedding.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput, got: %v", err)
	}
	if _, err := embedder.EmbedBatch(context.Background(), nil); !errors.Is(err, embedding.ErrEmptyInput) {
		t.Errorf("Expected ErrEmptyInput for empty batch, got: %v", err)
	}
}

func TestVoyageEmbedder_Error(t *testing.T) {
	embedder := adapters.NewVoyageEmbedderWith(voyage.NewServiceWith(
		func(texts []string, model string, opts *voyageai.EmbeddingRequestOpts) ([]voyageai.EmbeddingObject, error) {
			return nil, errors.New("rate limited")
		},
	))

	if _, err := embedder.Embed(context.Background(), "hola"); err == nil {
		t.Fatal("Expected error to propagate")
	}
}

// Pinecone vector store tests

func TestNewPineconeVectorStore_MissingHost(t *testing.T) {
	t.Setenv("PINECONE_HOST", "")
	apiKey := "test-api-key"

	_, err := adapters.NewPineconeVectorStore(&apiKey, nil, "sara")
	if err == nil {
		t.Fatal("Expected error when host is missing")
	}
	if !strings.Contains(err.Error(), "PINECONE_HOST") {
		t.Errorf("Expected error to name the variable, got: %v", err)
	}
}

func TestNewPineconeVectorStore_MissingKey(t *testing.T) {
	t.Setenv("PINECONE_API_KEY", "")
	host := "https://sara-intents.svc.pinecone.io"

	if _, err := adapters.NewPineconeVectorStore(nil, &host, "sara"); err == nil {
		t.Fatal("Expected error when API key is missing")
	}
}

func TestPineconeVectorStore_Search(t *testing.T) {
	metadata, err := structpb.NewStruct(map[string]any{"intent": "ABRIR_APP"})
	if err != nil {
		t.Fatal(err)
	}

	index := &mockPineconeIndex{
		searchFunc: func(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]pinecone.QueryMatch, error) {
			if topK != 1 {
				t.Errorf("Expected topK 1, got: %d", topK)
			}
			if !includeMetadata {
				t.Error("Expected metadata to be requested")
			}
			return []pinecone.QueryMatch{
				{Vector: &pinecone.Vector{Id: "ABRIR_APP#0", Metadata: metadata}, Score: 0.91},
				{Vector: nil, Score: 0.5},
				{Vector: &pinecone.Vector{Id: "bare"}, Score: 0.3},
			}, nil
		},
	}
	store := adapters.NewPineconeVectorStoreWith(index)

	matches, err := store.Search(context.Background(), []float32{0.1, 0.2}, 1)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got: %d", len(matches))
	}
	if matches[0].ID != "ABRIR_APP#0" || matches[0].Score != 0.91 {
		t.Errorf("Expected first match ABRIR_APP#0/0.91, got: %+v", matches[0])
	}
	if matches[0].Metadata["intent"] != "ABRIR_APP" {
		t.Errorf("Expected intent metadata, got: %v", matches[0].Metadata)
	}
	if matches[1].Metadata == nil {
		t.Error("Expected empty metadata map for a bare vector")
	}
}

func TestPineconeVectorStore_SearchError(t *testing.T) {
	store := adapters.NewPineconeVectorStoreWith(&mockPineconeIndex{
		searchFunc: func(ctx context.Context, queryVector []float32, topK int, filter map[string]any, includeMetadata bool) ([]pinecone.QueryMatch, error) {
			return nil, errors.New("index unavailable")
		},
	})

	if _, err := store.Search(context.Background(), []float32{0.1}, 1); err == nil {
		t.Fatal("Expected error to propagate")
	}
}

func TestPineconeVectorStore_Upsert(t *testing.T) {
	index := &mockPineconeIndex{}
	store := adapters.NewPineconeVectorStoreWith(index)

	err := store.Upsert(context.Background(), "CLIMA#2", []float32{0.3, 0.4}, map[string]any{
		"intent": "CLIMA",
		"text":   "qué tiempo hace",
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(index.upserted) != 1 {
		t.Fatalf("Expected 1 vector upserted, got: %d", len(index.upserted))
	}
	v := index.upserted[0]
	if v.Id != "CLIMA#2" || len(v.Values) != 2 {
		t.Errorf("Expected vector CLIMA#2 with 2 values, got: %s/%v", v.Id, v.Values)
	}
	if v.Metadata.AsMap()["intent"] != "CLIMA" {
		t.Errorf("Expected intent metadata, got: %v", v.Metadata.AsMap())
	}
}

func TestPineconeVectorStore_UpsertInvalidMetadata(t *testing.T) {
	index := &mockPineconeIndex{}
	store := adapters.NewPineconeVectorStoreWith(index)

	err := store.Upsert(context.Background(), "x", []float32{0.1}, map[string]any{"bad": make(chan int)})
	if err == nil {
		t.Fatal("Expected error for unsupported metadata value")
	}
	if len(index.upserted) != 0 {
		t.Errorf("Expected nothing upserted, got: %d", len(index.upserted))
	}
}

// Chat reasoner tests

func TestNewChatReasoner_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	if _, err := adapters.NewChatReasoner(nil, "", "", "", nil); err == nil {
		t.Fatal("Expected error when API key is missing")
	}

	// A local server does not need a key
	if _, err := adapters.NewChatReasoner(nil, "", "", "http://localhost:11434/v1", nil); err != nil {
		t.Errorf("Expected no error with a base URL, got: %v", err)
	}
}

func TestChatReasoner_Ask(t *testing.T) {
	reply := "  {\"intent\": \"CLIMA\", \"params\": {}}\n"
	client := &mockChatClient{reply: &reply}
	temperature := float32(0)
	reasoner := adapters.NewChatReasonerWith(client, "", "gpt-4.1-nano", &temperature)

	content, kind, err := reasoner.Ask(context.Background(), "clasifica: qué tiempo hace")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if content != `{"intent": "CLIMA", "params": {}}` {
		t.Errorf("Expected trimmed reply, got: %q", content)
	}
	if kind != "chat:gpt-4.1-nano" {
		t.Errorf("Expected kind chat:gpt-4.1-nano, got: %s", kind)
	}

	req := client.requests[0]
	if len(req.Messages) != 2 || req.Messages[0].Role != openai.MessageRoleSystem {
		t.Fatalf("Expected system and user messages, got: %+v", req.Messages)
	}
	if req.Messages[1].Text() != "clasifica: qué tiempo hace" {
		t.Errorf("Expected prompt as user message, got: %s", req.Messages[1].Text())
	}
	if req.ResponseFormat == nil || req.ResponseFormat.Type != "json_object" {
		t.Errorf("Expected JSON object response format, got: %+v", req.ResponseFormat)
	}
	if req.Temperature == nil || *req.Temperature != 0 {
		t.Errorf("Expected temperature 0, got: %v", req.Temperature)
	}
}

func TestChatReasoner_Failures(t *testing.T) {
	blank := "   "
	testCases := []struct {
		name   string
		client *mockChatClient
	}{
		{"transport error", &mockChatClient{err: errors.New("connection refused")}},
		{"no choices", &mockChatClient{}},
		{"blank content", &mockChatClient{reply: &blank}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reasoner := adapters.NewChatReasonerWith(tc.client, "", "", nil)
			_, kind, err := reasoner.Ask(context.Background(), "hola")
			if err == nil {
				t.Fatal("Expected error")
			}
			if kind != "chat:gpt-4.1-mini" {
				t.Errorf("Expected default model in kind, got: %s", kind)
			}
		})
	}
}

func TestChatReasoner_OverHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected /chat/completions, got: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer local-key" {
			t.Errorf("Expected bearer token, got: %s", r.Header.Get("Authorization"))
		}
		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Expected JSON request, got: %v", err)
		}

		content := `{"intent": "ALARMA", "params": {"minutes": 10}}`
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Model: req.Model,
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatMessage{Role: openai.MessageRoleAssistant, Content: &content}},
			},
		})
	}))
	defer server.Close()

	key := "local-key"
	reasoner, err := adapters.NewChatReasoner(&key, "", "llama3", server.URL, nil)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	content, kind, err := reasoner.Ask(context.Background(), "avísame en 10 minutos")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !strings.Contains(content, "ALARMA") || kind != "chat:llama3" {
		t.Errorf("Expected ALARMA reply from llama3, got: %s/%s", content, kind)
	}
}

func TestPineconeVectorStore_Fetch(t *testing.T) {
	index := &mockPineconeIndex{}
	store := adapters.NewPineconeVectorStoreWith(index)
	ctx := context.Background()

	if err := store.Upsert(ctx, "CLIMA/0", []float32{0.3, 0.4}, map[string]any{"label": "CLIMA"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	found, err := store.Fetch(ctx, []string{"CLIMA/0", "CLIMA/1"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("Expected 1 stored vector, got: %d", len(found))
	}
	if found["CLIMA/0"].Metadata["label"] != "CLIMA" {
		t.Errorf("Expected label metadata, got: %v", found["CLIMA/0"].Metadata)
	}

	index.fetchErr = errors.New("index unavailable")
	if _, err := store.Fetch(ctx, []string{"CLIMA/0"}); err == nil {
		t.Error("Expected error to propagate")
	}
}

func TestPineconeVectorStore_InNamespace(t *testing.T) {
	var opened []*mockPineconeIndex
	connect := func(namespace string) (adapters.PineconeIndex, error) {
		if namespace == "broken" {
			return nil, errors.New("forbidden")
		}
		index := &mockPineconeIndex{namespace: namespace}
		opened = append(opened, index)
		return index, nil
	}

	store, err := adapters.NewPineconeVectorStoreWithConnector(connect, "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	scoped, err := store.InNamespace("sara-intent-abc")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if err := scoped.Upsert(context.Background(), "CLIMA/0", []float32{1}, map[string]any{"label": "CLIMA"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(opened) != 2 {
		t.Fatalf("Expected 2 connections, got: %d", len(opened))
	}
	if opened[1].namespace != "sara-intent-abc" || len(opened[1].upserted) != 1 {
		t.Errorf("Expected the upsert in namespace sara-intent-abc, got: %q with %d vectors", opened[1].namespace, len(opened[1].upserted))
	}
	if len(opened[0].upserted) != 0 {
		t.Errorf("Expected the default namespace untouched, got: %d vectors", len(opened[0].upserted))
	}

	if _, err := store.InNamespace("broken"); err == nil {
		t.Error("Expected error from a failing connection")
	}

	if err := store.Close(); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	for _, index := range opened {
		if !index.closed {
			t.Errorf("Expected namespace %q to be closed", index.namespace)
		}
	}
}

func TestPineconeVectorStore_InNamespaceWithoutConnector(t *testing.T) {
	store := adapters.NewPineconeVectorStoreWith(&mockPineconeIndex{})
	if _, err := store.InNamespace("sara-intent-abc"); err == nil {
		t.Error("Expected error for a store built from a single connection")
	}
}
