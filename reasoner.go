package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/params"
)

// ErrNoAnswer is returned by the reasoner tier when the external service
// failed, timed out, or replied with nothing usable.
var ErrNoAnswer = errors.New("reasoner gave no usable answer")

var fencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*(.*?)```")

type reasonerReply struct {
	Intent string
	Params map[string]any
}

// reasonerWire is the reply as sent. Params stay raw so that a reply with a
// valid intent and malformed params still counts.
type reasonerWire struct {
	Intent string          `json:"intent"`
	Params json.RawMessage `json:"params"`
}

// params decodes Params, or returns nil when they are absent or not an object.
func (w reasonerWire) params() map[string]any {
	if len(w.Params) == 0 {
		return nil
	}
	var p map[string]any
	if err := json.Unmarshal(w.Params, &p); err != nil {
		return nil
	}
	return p
}

type reasonerAnswer struct {
	response string
	kind     string
	err      error
}

// reasonerTier wraps the external Reasoner with a prompt, a timeout and a
// circuit breaker.
type reasonerTier struct {
	reasoner Reasoner
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker
	labels   []corpus.Label
	valid    map[corpus.Label]bool
	log      *zap.Logger
}

func newReasonerTier(r Reasoner, labels []corpus.Label, cfg Config) *reasonerTier {
	t := &reasonerTier{
		reasoner: r,
		timeout:  cfg.ReasonerTimeout,
		labels:   labels,
		valid:    make(map[corpus.Label]bool, len(labels)),
		log:      cfg.Logger,
	}
	for _, label := range labels {
		t.valid[label] = true
	}

	failures := cfg.BreakerFailures
	t.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sara-reasoner",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			t.log.Warn("Reasoner circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return t
}

// buildPrompt asks for a single JSON object naming one of labels.
func buildPrompt(utterance string, labels []corpus.Label) string {
	names := make([]string, len(labels))
	for i, label := range labels {
		names[i] = string(label)
	}

	var b strings.Builder
	b.WriteString("Eres el clasificador de intenciones de SARA, un asistente de voz en español.\n")
	b.WriteString("Clasifica el comando del usuario en UNA de estas intenciones:\n")
	b.WriteString(strings.Join(names, ", "))
	b.WriteString("\n\nComando: \"")
	b.WriteString(utterance)
	b.WriteString("\"\n\n")
	b.WriteString(`Responde SOLO con JSON, sin explicaciones: {"intent": "ETIQUETA", "params": {}}`)
	b.WriteString("\nSi ninguna intención encaja, usa ")
	b.WriteString(string(corpus.Fallback))
	b.WriteString(".")
	return b.String()
}

// classify returns the reasoner's label and params for utterance. Every
// failure is reported as an error wrapping ErrNoAnswer.
func (t *reasonerTier) classify(ctx context.Context, utterance string) (corpus.Label, params.Params, error) {
	prompt := buildPrompt(utterance, t.labels)

	out, err := t.breaker.Execute(func() (interface{}, error) {
		return t.call(ctx, prompt)
	})
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrNoAnswer, err)
	}

	reply, err := parseReasonerResponse(out.(string))
	if err != nil {
		return "", nil, err
	}

	label := corpus.Label(strings.ToUpper(strings.TrimSpace(reply.Intent)))
	if !t.valid[label] {
		return "", nil, fmt.Errorf("%w: unknown intent %q", ErrNoAnswer, reply.Intent)
	}

	p := params.Params(reply.Params)
	if p == nil {
		p = params.Params{}
	}
	return label, p, nil
}

// call runs the reasoner on its own goroutine so a callback that ignores
// ctx still cannot hold the caller past the timeout.
func (t *reasonerTier) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	done := make(chan reasonerAnswer, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- reasonerAnswer{err: fmt.Errorf("reasoner panicked: %v", p)}
			}
		}()
		response, kind, err := t.reasoner.Ask(ctx, prompt)
		done <- reasonerAnswer{response: response, kind: kind, err: err}
	}()

	select {
	case a := <-done:
		if a.err != nil {
			return "", a.err
		}
		t.log.Debug("Reasoner answered", zap.String("kind", a.kind), zap.Int("bytes", len(a.response)))
		return a.response, nil
	case <-ctx.Done():
		return "", fmt.Errorf("reasoner timed out after %s: %w", t.timeout, ctx.Err())
	}
}

// parseReasonerResponse pulls the JSON object out of a free-form reply.
// Markdown fences are ignored and every balanced object is tried in order of
// its opening brace, so braces in surrounding prose do not hide the answer.
// The first object that decodes with a non-empty intent wins. Malformed JSON
// is repaired once before an object is skipped.
func parseReasonerResponse(response string) (reasonerReply, error) {
	payload := response
	if m := fencePattern.FindStringSubmatch(payload); m != nil {
		payload = m[1]
	}

	candidates := jsonObjects(payload)
	if len(candidates) == 0 {
		return reasonerReply{}, fmt.Errorf("%w: no JSON object in response", ErrNoAnswer)
	}

	var firstErr error
	for _, candidate := range candidates {
		var wire reasonerWire
		if err := unmarshalJSON([]byte(candidate), &wire); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if strings.TrimSpace(wire.Intent) == "" {
			continue
		}
		return reasonerReply{Intent: wire.Intent, Params: wire.params()}, nil
	}

	if firstErr != nil {
		return reasonerReply{}, fmt.Errorf("%w: %w", ErrNoAnswer, firstErr)
	}
	return reasonerReply{}, fmt.Errorf("%w: no intent in response", ErrNoAnswer)
}

// jsonObjects returns the text of every object starting at a '{' in s, in
// order of position. Nested objects are returned after their parent. An
// object that is never closed runs to the end of s.
func jsonObjects(s string) []string {
	var objects []string
	for start := strings.IndexByte(s, '{'); start >= 0; {
		objects = append(objects, s[start:objectEnd(s, start)])

		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}
	return objects
}

// objectEnd returns the index just past the brace closing the object that
// opens at s[start], or len(s). Braces inside double-quoted strings are
// ignored.
func objectEnd(s string, start int) int {
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// unmarshalJSON retries through jsonrepair when the payload has a syntax
// error.
func unmarshalJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return err
	}
	fixed, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return fmt.Errorf("failed to repair JSON: %w", repairErr)
	}
	return json.Unmarshal([]byte(fixed), v)
}
