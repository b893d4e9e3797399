package cache_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/miguelAagelcruzvargas/sara-intent/cache"
	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

func smallCorpus() corpus.Examples {
	return corpus.Examples{
		corpus.Clima:    {"qué clima hace", "va a llover hoy"},
		corpus.Calcular: {"cuánto es 50 por 3"},
	}
}

func buildIndex(t *testing.T, examples corpus.Examples) *semantic.Index {
	t.Helper()
	ix, err := semantic.Build(context.Background(), embedding.NewNgram(embedding.WithDimension(32)), examples, nil)
	if err != nil {
		t.Fatalf("Failed to build index: %v", err)
	}
	return ix
}

func TestHash_Deterministic(t *testing.T) {
	if cache.Hash(smallCorpus()) != cache.Hash(smallCorpus()) {
		t.Error("Expected equal corpora to hash equally")
	}
	if cache.Hash(corpus.Default()) != cache.Hash(corpus.Default()) {
		t.Error("Expected the built-in corpus to hash equally")
	}
}

func TestHash_DetectsEdits(t *testing.T) {
	base := cache.Hash(smallCorpus())

	tests := []struct {
		name string
		edit func(e corpus.Examples)
	}{
		{"phrase changed", func(e corpus.Examples) { e[corpus.Clima][0] = "qué clima hace hoy" }},
		{"phrase added", func(e corpus.Examples) { e[corpus.Clima] = append(e[corpus.Clima], "hace frío") }},
		{"phrase moved", func(e corpus.Examples) {
			e[corpus.Calcular] = append(e[corpus.Calcular], e[corpus.Clima][1])
			e[corpus.Clima] = e[corpus.Clima][:1]
		}},
		{"phrases reordered", func(e corpus.Examples) {
			e[corpus.Clima][0], e[corpus.Clima][1] = e[corpus.Clima][1], e[corpus.Clima][0]
		}},
		{"label added", func(e corpus.Examples) { e[corpus.Alarma] = []string{"despiértame"} }},
		{"boundary shifted", func(e corpus.Examples) {
			e[corpus.Clima] = []string{"qué clima hace va a", "llover hoy"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := smallCorpus()
			tt.edit(e)
			if cache.Hash(e) == base {
				t.Error("Expected hash to change")
			}
		})
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	examples := smallCorpus()
	ix := buildIndex(t, examples)
	hash := cache.Hash(examples)

	data, err := cache.Encode(ix, hash)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	loaded, err := cache.Decode(data, hash)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !reflect.DeepEqual(ix, loaded) {
		t.Error("Expected decoded index to equal the original")
	}
}

func TestDecode_Misses(t *testing.T) {
	examples := smallCorpus()
	ix := buildIndex(t, examples)
	data, _ := cache.Encode(ix, cache.Hash(examples))

	if _, err := cache.Decode(data, "other-hash"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected ErrMiss for a stale hash, got: %v", err)
	}
	if _, err := cache.Decode([]byte("not msgpack at all"), cache.Hash(examples)); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected ErrMiss for corrupt data, got: %v", err)
	}
	if _, err := cache.Decode(data[:len(data)/2], cache.Hash(examples)); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected ErrMiss for truncated data, got: %v", err)
	}
}

func TestFile_LoadMissing(t *testing.T) {
	f := cache.NewFile(filepath.Join(t.TempDir(), "missing.cache"))
	if _, err := f.Load(context.Background(), "h"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected ErrMiss, got: %v", err)
	}
}

func TestFile_RoundTripAndInvalidation(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "embeddings.cache")
	f := cache.NewFile(path)

	examples := smallCorpus()
	ix := buildIndex(t, examples)
	hash := cache.Hash(examples)

	if err := f.Save(ctx, ix, hash); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	loaded, err := f.Load(ctx, hash)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !reflect.DeepEqual(ix, loaded) {
		t.Error("Expected loaded index to equal the saved one")
	}

	examples[corpus.Clima][0] = "qué tiempo hace"
	if _, err := f.Load(ctx, cache.Hash(examples)); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected ErrMiss after a corpus edit, got: %v", err)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("Expected only the artifact in the directory, got %d entries", len(entries))
	}
}

func TestFile_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	f := cache.NewFile(filepath.Join(t.TempDir(), "embeddings.cache"))

	first := smallCorpus()
	if err := f.Save(ctx, buildIndex(t, first), cache.Hash(first)); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	second := smallCorpus()
	second[corpus.Alarma] = []string{"pon una alarma"}
	secondIx := buildIndex(t, second)
	if err := f.Save(ctx, secondIx, cache.Hash(second)); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := f.Load(ctx, cache.Hash(first)); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected the first entry to be replaced, got: %v", err)
	}
	loaded, err := f.Load(ctx, cache.Hash(second))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !reflect.DeepEqual(secondIx, loaded) {
		t.Error("Expected loaded index to equal the second save")
	}
}

func TestFile_CorruptFileIsMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "embeddings.cache")
	if err := os.WriteFile(path, []byte{0xc1, 0x00, 0xff}, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	if _, err := cache.NewFile(path).Load(context.Background(), "h"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected ErrMiss for a corrupt file, got: %v", err)
	}
}

func TestBadger_RoundTrip(t *testing.T) {
	ctx := context.Background()
	b, err := cache.NewBadger(cache.BadgerOptions{InMemory: true})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	defer b.Close()

	examples := smallCorpus()
	hash := cache.Hash(examples)

	if _, err := b.Load(ctx, hash); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected ErrMiss on an empty store, got: %v", err)
	}

	ix := buildIndex(t, examples)
	if err := b.Save(ctx, ix, hash); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	loaded, err := b.Load(ctx, hash)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !reflect.DeepEqual(ix, loaded) {
		t.Error("Expected loaded index to equal the saved one")
	}
	if _, err := b.Load(ctx, "stale"); !errors.Is(err, cache.ErrMiss) {
		t.Errorf("Expected ErrMiss for a stale hash, got: %v", err)
	}
}

func TestNewBadger_RequiresDir(t *testing.T) {
	if _, err := cache.NewBadger(cache.BadgerOptions{}); err == nil {
		t.Error("Expected error without Dir in on-disk mode")
	}
}

func TestRedis_RoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("Invalid REDIS_URL: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	r := cache.NewRedis(client, "sara:test:embeddings", time.Minute)
	defer client.Del(ctx, "sara:test:embeddings")

	examples := smallCorpus()
	ix := buildIndex(t, examples)
	if err := r.Save(ctx, ix, cache.Hash(examples)); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	loaded, err := r.Load(ctx, cache.Hash(examples))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !reflect.DeepEqual(ix, loaded) {
		t.Error("Expected loaded index to equal the saved one")
	}
}
