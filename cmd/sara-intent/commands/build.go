package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	classifier "github.com/miguelAagelcruzvargas/sara-intent"
	"github.com/miguelAagelcruzvargas/sara-intent/adapters"
	"github.com/miguelAagelcruzvargas/sara-intent/cache"
	"github.com/miguelAagelcruzvargas/sara-intent/cmd/sara-intent/internal/config"
	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
)

// closer releases whatever buildClassifier opened.
type closer func() error

// buildClassifier turns the CLI configuration into a running classifier.
// reg may be nil when metrics are not exported.
func buildClassifier(ctx context.Context, conf *config.Config, log *zap.Logger, reg prometheus.Registerer, progress classifier.ProgressFunc) (*classifier.Classifier, closer, error) {
	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	cc := classifier.Config{
		Threshold:       conf.Threshold,
		ReasonerTimeout: conf.Reasoner.Timeout,
		BreakerFailures: conf.Reasoner.BreakerFailures,
		BreakerCooldown: conf.Reasoner.BreakerCooldown,
		Progress:        progress,
		Logger:          log,
	}

	if conf.Embedding.Provider == "none" {
		cc.DisableSemantic = true
	} else {
		cc.Embedder = newEmbedder(conf.Embedding)
	}

	store, release, err := newCache(conf.Cache, log)
	if err != nil {
		return nil, nil, err
	}
	if release != nil {
		closers = append(closers, release)
	}
	if store == nil {
		cc.DisableCache = true
	} else {
		cc.Cache = store
	}

	if conf.Reasoner.Enabled {
		reasoner, err := adapters.NewChatReasoner(optional(conf.Reasoner.APIKey), conf.Reasoner.SystemPrompt, conf.Reasoner.Model, conf.Reasoner.BaseURL, conf.Reasoner.Temperature)
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to create reasoner: %w", err)
		}
		cc.Reasoner = reasoner
	}

	if conf.Pinecone.Enabled {
		// Startup scopes the store to the namespace of the corpus and model.
		vectors, err := adapters.NewPineconeVectorStore(optional(conf.Pinecone.APIKey), optional(conf.Pinecone.Host), "")
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("failed to create vector store: %w", err)
		}
		closers = append(closers, vectors.Close)
		cc.VectorStore = vectors
	}

	if reg != nil {
		metrics, err := classifier.NewMetrics(reg)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		cc.Metrics = metrics
	}

	c, err := classifier.NewClassifier(ctx, cc)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	closers = append(closers, c.Close)

	return c, closeAll, nil
}

// newEmbedder defers provider construction to the classifier's startup so
// that a bad key disables the semantic tier instead of failing the command.
func newEmbedder(conf config.EmbeddingConfig) embedding.Embedder {
	return embedding.NewShared(func(ctx context.Context) (embedding.Embedder, error) {
		switch conf.Provider {
		case "openai":
			opts := []embedding.Option{}
			if conf.Model != "" {
				opts = append(opts, embedding.WithModel(conf.Model))
			}
			if conf.Dimension > 0 {
				opts = append(opts, embedding.WithDimension(conf.Dimension))
			}
			if conf.BaseURL != "" {
				opts = append(opts, embedding.WithBaseURL(conf.BaseURL))
			}
			return embedding.NewOpenAI(conf.APIKey, opts...), nil
		case "voyage":
			return adapters.NewVoyageEmbedder(optional(conf.APIKey), conf.Model, conf.Dimension)
		default:
			if conf.Dimension > 0 {
				return embedding.NewNgram(embedding.WithDimension(conf.Dimension)), nil
			}
			return embedding.NewNgram(), nil
		}
	})
}

// newCache returns nil for the "none" backend.
func newCache(conf config.CacheConfig, log *zap.Logger) (classifier.EmbeddingCache, func() error, error) {
	switch conf.Backend {
	case "none":
		return nil, nil, nil
	case "badger":
		b, err := cache.NewBadger(cache.BadgerOptions{Dir: conf.Dir, Key: conf.Key, Logger: log})
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case "redis":
		opts, err := redis.ParseURL(conf.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := redis.NewClient(opts)
		return cache.NewRedis(client, conf.Key, conf.TTL), client.Close, nil
	default:
		return cache.NewFile(conf.Path), nil, nil
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
