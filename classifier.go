// Package classifier maps transcribed Spanish voice commands to intents
// through a cascade of keyword rules, sentence-embedding similarity and an
// optional external reasoner.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/miguelAagelcruzvargas/sara-intent/cache"
	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/internal/textnorm"
	"github.com/miguelAagelcruzvargas/sara-intent/params"
	"github.com/miguelAagelcruzvargas/sara-intent/pattern"
	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// ErrClosed is returned by Classify after Close.
var ErrClosed = errors.New("classifier is closed")

// Classifier runs the tiers in order and returns the first confident answer
type Classifier struct {
	hash      string
	labels    []corpus.Label
	patterns  *pattern.Matcher
	semantic  *semantic.Classifier
	index     *semantic.Index
	reasoner  *reasonerTier
	extractor *params.Extractor
	log       *zap.Logger
	metrics   *Metrics

	// Stats tracking
	stats     stats
	statsLock sync.RWMutex

	// In-flight tracking for graceful shutdown
	inflight     sync.WaitGroup
	shutdownOnce sync.Once
	closing      bool
	closeLock    sync.RWMutex
}

// NewClassifier creates a new Classifier with the given configuration. It
// embeds the corpus, or loads it from the cache, before returning. Problems
// with the embedding provider or the cache only disable or slow down the
// semantic tier; the returned error is reserved for invalid configuration.
func NewClassifier(ctx context.Context, cfg Config) (*Classifier, error) {
	if cfg.Threshold < 0 || cfg.Threshold > 1 {
		return nil, fmt.Errorf("threshold must be within (0, 1] or 0 for the default, got %v", cfg.Threshold)
	}
	if cfg.ReasonerTimeout < 0 {
		return nil, fmt.Errorf("reasoner timeout must not be negative, got %s", cfg.ReasonerTimeout)
	}
	cfg.applyDefaults()

	labels := cfg.Examples.Labels()
	if !cfg.Examples.Has(corpus.Fallback) {
		labels = append(labels, corpus.Fallback)
	}

	c := &Classifier{
		hash:      cache.Hash(cfg.Examples),
		labels:    labels,
		patterns:  pattern.NewMatcher(cfg.Rules...),
		extractor: params.NewExtractor(),
		log:       cfg.Logger,
		metrics:   cfg.Metrics,
	}
	if cfg.Reasoner != nil {
		c.reasoner = newReasonerTier(cfg.Reasoner, labels, cfg)
	}

	cfg.Progress(0, StatusStarting, fmt.Sprintf("%d intents", len(cfg.Examples)))
	c.startSemantic(ctx, cfg)

	c.log.Info("Intent classifier ready",
		zap.Bool("semantic", c.semantic != nil),
		zap.Bool("reasoner", c.reasoner != nil),
		zap.String("corpus_hash", c.hash),
	)
	return c, nil
}

// Classify classifies the given utterance. It never fails for content
// reasons: every problem along the cascade ends in the fallback intent. The
// only error is ErrClosed.
func (c *Classifier) Classify(ctx context.Context, utterance string) (*Result, error) {
	// Check if classifier is shutting down
	c.closeLock.RLock()
	if c.closing {
		c.closeLock.RUnlock()
		return nil, ErrClosed
	}
	c.inflight.Add(1)
	c.closeLock.RUnlock()
	defer c.inflight.Done()

	start := time.Now()
	res := c.classify(ctx, utterance)
	res.Latency = time.Since(start)

	c.record(res)
	return res, nil
}

func (c *Classifier) classify(ctx context.Context, raw string) *Result {
	text := textnorm.Normalize(raw)
	if text == "" {
		return c.fallback(raw)
	}

	// Tier 1: keyword rules
	if label, p, ok := c.patterns.Match(text); ok {
		return &Result{Intent: label, Params: p, Source: SourcePattern, Confidence: 1}
	}

	// Tier 2: nearest corpus phrase
	if c.semantic != nil {
		res, err := c.semantic.Classify(ctx, text)
		switch {
		case err != nil:
			c.log.Warn("Semantic tier failed", zap.Error(err))
		case res.Accepted:
			return &Result{
				Intent:     res.Label,
				Params:     c.extractor.Extract(text, res.Label),
				Source:     SourceML,
				Confidence: res.Score,
			}
		default:
			c.log.Debug("Semantic tier below threshold",
				zap.String("intent", string(res.Label)),
				zap.Float32("confidence", res.Score),
				zap.Float32("threshold", c.semantic.Threshold()),
			)
		}
	}

	// Tier 3: external reasoner
	if c.reasoner != nil {
		label, p, err := c.reasoner.classify(ctx, text)
		if err == nil {
			return &Result{
				Intent: label,
				Params: c.extractor.Extract(text, label).Merge(p),
				Source: SourceAI,
			}
		}
		c.log.Warn("Reasoner tier gave no answer", zap.Error(err))
	}

	return c.fallback(raw)
}

// fallback carries the caller's original text so the router can hand it to
// a conversational handler untouched.
func (c *Classifier) fallback(raw string) *Result {
	return &Result{
		Intent: corpus.Fallback,
		Params: params.Params{params.KeyText: raw},
		Source: SourceFallback,
	}
}

// record records a classification for stats and metrics
func (c *Classifier) record(res *Result) {
	c.statsLock.Lock()
	c.stats.record(res.Source)
	c.statsLock.Unlock()

	c.metrics.observe(res)
	c.log.Debug("Classified utterance",
		zap.String("intent", string(res.Intent)),
		zap.String("source", string(res.Source)),
		zap.Float32("confidence", res.Confidence),
		zap.Duration("latency", res.Latency),
	)
}

// Stats returns current classification statistics
func (c *Classifier) Stats() Stats {
	c.statsLock.RLock()
	defer c.statsLock.RUnlock()

	s := Stats{
		Total:           c.stats.total,
		BySource:        make(map[Source]int, len(c.stats.bySource)),
		SemanticEnabled: c.semantic != nil,
	}
	maps.Copy(s.BySource, c.stats.bySource)
	if c.index != nil {
		s.IndexSize = c.index.Len()
	}
	return s
}

// CorpusHash returns the fingerprint of the corpus the classifier was built from.
func (c *Classifier) CorpusHash() string {
	return c.hash
}

// Labels returns every intent the classifier can emit.
func (c *Classifier) Labels() []corpus.Label {
	return append([]corpus.Label(nil), c.labels...)
}

// Index returns the semantic index, or nil when the semantic tier is disabled.
func (c *Classifier) Index() *semantic.Index {
	return c.index
}

// Close waits for in-flight classifications and rejects new ones. It's safe
// to call Close multiple times.
func (c *Classifier) Close() error {
	c.shutdownOnce.Do(func() {
		// Mark as closing to reject new classifications
		c.closeLock.Lock()
		c.closing = true
		c.closeLock.Unlock()

		c.inflight.Wait()
		c.log.Debug("Intent classifier closed")
	})
	return nil
}
