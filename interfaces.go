package classifier

import (
	"context"

	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// Reasoner asks an external natural-language service to classify an
// utterance. The response is expected to carry a JSON object with "intent"
// and "params" keys, possibly wrapped in prose or markdown. Kind names the
// service that answered and is only logged.
type Reasoner interface {
	Ask(ctx context.Context, prompt string) (response, kind string, err error)
}

// ReasonerFunc adapts a plain callback to Reasoner. The callback cannot
// observe cancellation; the classifier still bounds how long it waits.
type ReasonerFunc func(prompt string) (response, kind string)

// Ask calls f(prompt).
func (f ReasonerFunc) Ask(_ context.Context, prompt string) (string, string, error) {
	response, kind := f(prompt)
	return response, kind, nil
}

// EmbeddingCache persists the corpus index between runs. Load must return
// an error wrapping cache.ErrMiss when nothing valid is stored for hash.
type EmbeddingCache interface {
	Load(ctx context.Context, hash string) (*semantic.Index, error)
	Save(ctx context.Context, ix *semantic.Index, hash string) error
}

// ProgressFunc observes startup. Percent runs from 0 to 100.
type ProgressFunc func(percent int, status, detail string)
