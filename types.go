package classifier

import (
	"time"

	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/params"
)

// Source names the tier that produced a result.
type Source string

const (
	SourcePattern  Source = "pattern"
	SourceML       Source = "ml"
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

// Result represents the classification result
type Result struct {
	// Intent is the label handed to the command router
	Intent corpus.Label

	// Params holds the slots extracted for Intent. It is never nil.
	Params params.Params

	// Source is the tier that answered
	Source Source

	// Confidence is the similarity score for SourceML results, 1 for
	// SourcePattern and 0 otherwise
	Confidence float32

	// Latency is the time spent inside Classify
	Latency time.Duration
}

// Tuple returns the (intent, params, source) triple consumed by the router.
func (r *Result) Tuple() (string, params.Params, string) {
	return string(r.Intent), r.Params, string(r.Source)
}

// Stats provides statistics about the classifier's state
type Stats struct {
	// Total is the number of completed classifications
	Total int

	// BySource counts classifications per answering tier
	BySource map[Source]int

	// SemanticEnabled is false when the embedding provider failed at startup
	SemanticEnabled bool

	// IndexSize is the number of corpus rows held by the semantic tier
	IndexSize int
}
