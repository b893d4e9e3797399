// Package benchmark measures how well the cascade labels a dataset of
// transcribed utterances and which tier answers them.
package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	classifier "github.com/miguelAagelcruzvargas/sara-intent"
	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
)

// Classifier is the part of classifier.Classifier a run needs
type Classifier interface {
	Classify(ctx context.Context, utterance string) (*classifier.Result, error)
}

// Case is one labelled utterance
type Case struct {
	Text     string
	Expected corpus.Label
}

// Outcome is the classifier's answer for one Case
type Outcome struct {
	Text     string        `json:"text"`
	Expected corpus.Label  `json:"expected"`
	Intent   corpus.Label  `json:"intent"`
	Source   string        `json:"source"`
	Correct  bool          `json:"correct"`
	Latency  time.Duration `json:"latency"`
}

// SourceMetrics counts answers given by one tier
type SourceMetrics struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
}

type Metrics struct {
	// Overall metrics
	TotalDuration time.Duration `json:"total_duration"`
	Total         int           `json:"total"`
	Correct       int           `json:"correct"`
	Accuracy      float64       `json:"accuracy"`

	// Per-tier breakdown, keyed by result source
	BySource map[string]SourceMetrics `json:"by_source"`

	// Latency inside Classify
	LatencyP50 time.Duration `json:"latency_p50"`
	LatencyP95 time.Duration `json:"latency_p95"`
	LatencyMax time.Duration `json:"latency_max"`
}

// Report is the result of a Run
type Report struct {
	Metrics  Metrics   `json:"metrics"`
	Outcomes []Outcome `json:"outcomes"`
}

// FromCorpus turns every corpus example into a Case. A healthy semantic tier
// labels all of them correctly.
func FromCorpus(examples corpus.Examples) []Case {
	var cases []Case
	for _, label := range examples.Labels() {
		for _, phrase := range examples[label] {
			cases = append(cases, Case{Text: phrase, Expected: label})
		}
	}
	return cases
}

// Run classifies every case in order. It stops at the first error.
func Run(ctx context.Context, c Classifier, cases []Case) (*Report, error) {
	start := time.Now()
	report := &Report{
		Metrics:  Metrics{BySource: make(map[string]SourceMetrics)},
		Outcomes: make([]Outcome, 0, len(cases)),
	}
	latencies := make([]time.Duration, 0, len(cases))

	for _, tc := range cases {
		res, err := c.Classify(ctx, tc.Text)
		if err != nil {
			return nil, fmt.Errorf("failed to classify %q: %w", tc.Text, err)
		}

		outcome := Outcome{
			Text:     tc.Text,
			Expected: tc.Expected,
			Intent:   res.Intent,
			Source:   string(res.Source),
			Correct:  res.Intent == tc.Expected,
			Latency:  res.Latency,
		}
		report.Outcomes = append(report.Outcomes, outcome)
		latencies = append(latencies, res.Latency)

		src := report.Metrics.BySource[outcome.Source]
		src.Total++
		report.Metrics.Total++
		if outcome.Correct {
			src.Correct++
			report.Metrics.Correct++
		}
		report.Metrics.BySource[outcome.Source] = src
	}

	m := &report.Metrics
	m.TotalDuration = time.Since(start)
	if m.Total > 0 {
		m.Accuracy = float64(m.Correct) / float64(m.Total)
	}

	slices.Sort(latencies)
	m.LatencyP50 = percentile(latencies, 50)
	m.LatencyP95 = percentile(latencies, 95)
	if len(latencies) > 0 {
		m.LatencyMax = latencies[len(latencies)-1]
	}

	return report, nil
}

// Misses returns the outcomes whose intent differs from the expected one
func (r *Report) Misses() []Outcome {
	var misses []Outcome
	for _, o := range r.Outcomes {
		if !o.Correct {
			misses = append(misses, o)
		}
	}
	return misses
}

// Save writes the report as JSON into dir and returns the file path
func (r *Report) Save(dir string) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	random := uuid.New().String()[:8]
	filename := filepath.Join(dir, fmt.Sprintf("benchmark_%s_%s.json", timestamp, random))

	jsonData, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return "", err
	}

	return filename, nil
}

// percentile uses nearest rank on sorted durations
func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := (p*len(sorted) + 99) / 100
	return sorted[max(rank, 1)-1]
}
