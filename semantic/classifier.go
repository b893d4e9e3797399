package semantic

import (
	"context"
	"fmt"

	"github.com/miguelAagelcruzvargas/sara-intent/embedding"
)

// DefaultThreshold is the similarity an utterance must exceed to be accepted.
const DefaultThreshold float32 = 0.65

// Result is the outcome of one semantic lookup.
type Result struct {
	Match

	// Accepted is true when Score is strictly above the threshold.
	Accepted bool
}

// Classifier encodes utterances and looks up the nearest intent.
type Classifier struct {
	embedder  embedding.Embedder
	matcher   Matcher
	threshold float32
}

// NewClassifier creates a semantic classifier. A threshold of 0 selects
// DefaultThreshold.
func NewClassifier(embedder embedding.Embedder, matcher Matcher, threshold float32) *Classifier {
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return &Classifier{
		embedder:  embedder,
		matcher:   matcher,
		threshold: threshold,
	}
}

// Threshold returns the acceptance threshold.
func (c *Classifier) Threshold() float32 {
	return c.threshold
}

// Accepts reports whether score clears the threshold. The boundary itself is
// rejected.
func (c *Classifier) Accepts(score float32) bool {
	return score > c.threshold
}

// Classify encodes utterance and returns the nearest intent.
func (c *Classifier) Classify(ctx context.Context, utterance string) (Result, error) {
	vec, err := c.embedder.Embed(ctx, utterance)
	if err != nil {
		return Result{}, fmt.Errorf("failed to embed utterance: %w", err)
	}

	match, err := c.matcher.Nearest(ctx, vec)
	if err != nil {
		return Result{}, fmt.Errorf("failed to search index: %w", err)
	}

	return Result{
		Match:    match,
		Accepted: match.Label != "" && c.Accepts(match.Score),
	}, nil
}
