package classifier

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/miguelAagelcruzvargas/sara-intent/cache"
	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// Startup statuses reported through ProgressFunc.
const (
	StatusStarting  = "starting"
	StatusLoading   = "loading model"
	StatusCache     = "reading cache"
	StatusEmbedding = "embedding corpus"
	StatusSaving    = "saving cache"
	StatusSyncing   = "syncing vector index"
	StatusReady     = "ready"
)

// startSemantic prepares the semantic tier. Any failure leaves c.semantic
// nil, which disables the tier for the lifetime of the classifier.
func (c *Classifier) startSemantic(ctx context.Context, cfg Config) {
	progress := cfg.Progress
	if cfg.DisableSemantic {
		progress(100, StatusReady, "semantic tier disabled")
		return
	}

	progress(5, StatusLoading, "")
	if loader, ok := cfg.Embedder.(embedding.Loader); ok {
		if err := loader.Load(ctx); err != nil {
			c.log.Warn("Embedding provider unavailable, semantic tier disabled", zap.Error(err))
			progress(100, StatusReady, "semantic tier disabled")
			return
		}
	}
	model, dim := cfg.Embedder.Model(), cfg.Embedder.Dimension()
	progress(15, StatusLoading, model)

	ix := c.loadIndex(ctx, cfg, model, dim)
	if ix == nil {
		total := cfg.Examples.Size()
		progress(20, StatusEmbedding, fmt.Sprintf("0/%d", total))

		var err error
		ix, err = semantic.Build(ctx, cfg.Embedder, cfg.Examples, func(done, total int) {
			progress(20+70*done/total, StatusEmbedding, fmt.Sprintf("%d/%d", done, total))
		})
		if err != nil {
			c.log.Warn("Failed to embed corpus, semantic tier disabled", zap.Error(err))
			progress(100, StatusReady, "semantic tier disabled")
			return
		}

		if cfg.Cache != nil && !cfg.DisableCache {
			progress(92, StatusSaving, "")
			if err := cfg.Cache.Save(ctx, ix, c.hash); err != nil {
				c.log.Warn("Failed to save embedding cache", zap.Error(err))
			}
		}
	}

	var matcher semantic.Matcher = ix
	if cfg.VectorStore != nil {
		if remote := c.syncRemote(ctx, cfg.VectorStore, ix, model, progress); remote != nil {
			matcher = remote
		}
	}

	c.index = ix
	c.semantic = semantic.NewClassifier(cfg.Embedder, matcher, cfg.Threshold)
	progress(100, StatusReady, fmt.Sprintf("%d phrases indexed", ix.Len()))
}

// syncRemote scopes store to the namespace of the current corpus and model
// and uploads whatever rows it lacks. It returns nil when the remote index
// cannot be used.
func (c *Classifier) syncRemote(ctx context.Context, store semantic.VectorStore, ix *semantic.Index, model string, progress ProgressFunc) *semantic.RemoteIndex {
	namespace := semantic.Namespace(c.hash, model)
	progress(95, StatusSyncing, namespace)

	if ns, ok := store.(semantic.Namespacer); ok {
		scoped, err := ns.InNamespace(namespace)
		if err != nil {
			c.log.Warn("Failed to open vector store namespace, using in-memory index",
				zap.String("namespace", namespace), zap.Error(err))
			return nil
		}
		store = scoped
	}

	remote := semantic.NewRemoteIndex(store)
	if err := remote.Sync(ctx, ix); err != nil {
		c.log.Warn("Failed to sync remote vector index, using in-memory index",
			zap.String("namespace", namespace), zap.Error(err))
		return nil
	}
	return remote
}

// loadIndex returns the cached index when it is valid for the current
// corpus and embedder, nil otherwise.
func (c *Classifier) loadIndex(ctx context.Context, cfg Config, model string, dim int) *semantic.Index {
	if cfg.Cache == nil || cfg.DisableCache {
		return nil
	}
	cfg.Progress(17, StatusCache, "")

	ix, err := cfg.Cache.Load(ctx, c.hash)
	switch {
	case errors.Is(err, cache.ErrMiss):
		c.log.Info("Embedding cache miss", zap.String("reason", err.Error()))
		return nil
	case err != nil:
		c.log.Warn("Failed to read embedding cache, rebuilding", zap.Error(err))
		return nil
	case ix == nil:
		return nil
	case ix.Model() != model || ix.Dimension() != dim:
		c.log.Info("Embedding cache built with another model, rebuilding",
			zap.String("cached_model", ix.Model()),
			zap.Int("cached_dimension", ix.Dimension()),
		)
		return nil
	case !ix.Matches(cfg.Examples):
		c.log.Info("Embedding cache does not cover the corpus, rebuilding")
		return nil
	}

	c.log.Debug("Embedding cache hit", zap.Int("rows", ix.Len()))
	return ix
}
