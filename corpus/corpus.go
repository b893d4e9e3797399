// Package corpus holds the closed set of intent labels and the static phrases
// that represent each of them.
package corpus

import (
	"slices"
	"sort"
)

// Label identifies an intent. The set is fixed at build time.
type Label string

func (l Label) String() string {
	return string(l)
}

// Fallback is the label returned when no tier recognises an utterance.
const Fallback = Conversacion

// Examples maps every label to its training phrases.
type Examples map[Label][]string

// Default returns a copy of the built-in corpus.
func Default() Examples {
	out := make(Examples, len(examples))
	for label, phrases := range examples {
		out[label] = slices.Clone(phrases)
	}
	return out
}

// Labels returns the labels of e in ascending order.
func (e Examples) Labels() []Label {
	labels := make([]Label, 0, len(e))
	for label := range e {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })
	return labels
}

// Has reports whether e has phrases for label.
func (e Examples) Has(label Label) bool {
	return len(e[label]) > 0
}

// Size returns the total number of phrases.
func (e Examples) Size() int {
	n := 0
	for _, phrases := range e {
		n += len(phrases)
	}
	return n
}

// Labels returns every built-in label in ascending order.
func Labels() []Label {
	return Examples(examples).Labels()
}

// Valid reports whether label belongs to the built-in set.
func Valid(label Label) bool {
	_, ok := examples[label]
	return ok
}
