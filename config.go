package classifier

import (
	"time"

	"go.uber.org/zap"

	"github.com/miguelAagelcruzvargas/sara-intent/cache"
	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
	"github.com/miguelAagelcruzvargas/sara-intent/pattern"
	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

const (
	// DefaultThreshold is the default similarity an utterance must exceed
	// for the semantic tier to answer
	DefaultThreshold = semantic.DefaultThreshold

	// DefaultReasonerTimeout bounds each call to the external reasoner
	DefaultReasonerTimeout = 5 * time.Second

	// DefaultBreakerFailures is the number of consecutive reasoner failures
	// that opens the circuit breaker
	DefaultBreakerFailures = 5

	// DefaultBreakerCooldown is how long an open breaker rejects calls
	DefaultBreakerCooldown = 30 * time.Second
)

// Config holds configuration for the Classifier
type Config struct {
	// Embedder encodes text for the semantic tier. If nil, uses the local n-gram embedder.
	// If it also implements embedding.Loader, Load is called once at startup and a
	// failure disables the semantic tier.
	Embedder embedding.Embedder

	// DisableSemantic turns the semantic tier off entirely.
	DisableSemantic bool

	// Cache persists the corpus index. If nil, uses a file cache at cache.DefaultFilePath.
	Cache EmbeddingCache

	// DisableCache skips cache reads and writes.
	DisableCache bool

	// VectorStore, when set, serves semantic lookups from a remote index that is
	// synced with the corpus at startup.
	VectorStore semantic.VectorStore

	// Reasoner is the optional external fallback. Nil skips straight to the fallback intent.
	Reasoner Reasoner

	// ReasonerTimeout bounds each reasoner call. If 0, uses DefaultReasonerTimeout.
	ReasonerTimeout time.Duration

	// BreakerFailures and BreakerCooldown tune the reasoner circuit breaker.
	BreakerFailures uint32
	BreakerCooldown time.Duration

	// Threshold is the semantic acceptance threshold in (0, 1]; a score must be
	// strictly greater to be accepted. 0 means unset and selects
	// DefaultThreshold, so accepting every positive similarity takes a small
	// value such as 1e-6.
	Threshold float32

	// Examples is the training corpus. If nil, uses corpus.Default().
	Examples corpus.Examples

	// Rules replaces the built-in keyword rules when not empty.
	Rules []pattern.Rule

	// Progress observes startup.
	Progress ProgressFunc

	// Logger receives structured logs. If nil, logging is disabled.
	Logger *zap.Logger

	// Metrics records Prometheus series when set. See NewMetrics.
	Metrics *Metrics
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Threshold == 0 {
		c.Threshold = DefaultThreshold
	}

	if c.ReasonerTimeout == 0 {
		c.ReasonerTimeout = DefaultReasonerTimeout
	}

	if c.BreakerFailures == 0 {
		c.BreakerFailures = DefaultBreakerFailures
	}

	if c.BreakerCooldown == 0 {
		c.BreakerCooldown = DefaultBreakerCooldown
	}

	if c.Examples == nil {
		c.Examples = corpus.Default()
	}

	if c.Embedder == nil && !c.DisableSemantic {
		c.Embedder = embedding.NewNgram()
	}

	if c.Cache == nil && !c.DisableCache {
		c.Cache = cache.NewFile(cache.DefaultFilePath)
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}

	if c.Progress == nil {
		c.Progress = func(int, string, string) {}
	}
}
