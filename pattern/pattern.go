// Package pattern implements the keyword tier: a handful of substring rules
// for commands that must answer instantly and cannot be mistaken for anything
// else.
package pattern

import (
	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/internal/textnorm"
	"github.com/miguelAagelcruzvargas/sara-intent/params"
)

// DefaultVolumeStep is the volume change applied by the volume rules.
const DefaultVolumeStep = 10

// Rule fires when the folded utterance contains any trigger and, if Requires
// is not empty, also one of Requires.
type Rule struct {
	Label    corpus.Label
	Triggers []string
	Requires []string
	Params   func() params.Params
}

func (r Rule) matches(folded string) bool {
	if !textnorm.ContainsAny(folded, r.Triggers...) {
		return false
	}
	return len(r.Requires) == 0 || textnorm.ContainsAny(folded, r.Requires...)
}

// DefaultRules returns the built-in rules in priority order. Triggers are
// written without accents because matching runs on folded text.
func DefaultRules() []Rule {
	return []Rule{
		{
			Label:    corpus.VolumenSubir,
			Triggers: []string{"sube", "subir", "subele", "mas alto", "volumen arriba"},
			Requires: []string{"volumen", "sonido", "alto"},
			Params:   func() params.Params { return params.Params{params.KeyAmount: DefaultVolumeStep} },
		},
		{
			Label:    corpus.VolumenBajar,
			Triggers: []string{"baja", "bajar", "bajale", "mas bajo", "volumen abajo"},
			Requires: []string{"volumen", "sonido", "bajo"},
			Params:   func() params.Params { return params.Params{params.KeyAmount: DefaultVolumeStep} },
		},
		{
			Label:    corpus.Silencio,
			Triggers: []string{"silencio", "mute", "callate", "silencia"},
			Params:   func() params.Params { return params.Params{} },
		},
		{
			Label:    corpus.HoraFecha,
			Triggers: []string{"que hora", "hora actual"},
			Params:   func() params.Params { return params.Params{params.KeyType: params.TypeHora} },
		},
		{
			Label:    corpus.HoraFecha,
			Triggers: []string{"que dia", "fecha", "hoy es"},
			Params:   func() params.Params { return params.Params{params.KeyType: params.TypeFecha} },
		},
	}
}

// Matcher evaluates rules in order; the first match wins.
type Matcher struct {
	rules []Rule
}

// NewMatcher creates a matcher over rules, or over DefaultRules when rules is
// empty.
func NewMatcher(rules ...Rule) *Matcher {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Matcher{rules: rules}
}

// Match returns the label and params of the first matching rule.
func (m *Matcher) Match(utterance string) (corpus.Label, params.Params, bool) {
	folded := textnorm.Fold(utterance)
	for _, r := range m.rules {
		if r.matches(folded) {
			p := params.Params{}
			if r.Params != nil {
				p = r.Params()
			}
			return r.Label, p, true
		}
	}
	return "", nil, false
}

// Labels returns every label the matcher can emit.
func (m *Matcher) Labels() []corpus.Label {
	seen := make(map[corpus.Label]bool)
	var out []corpus.Label
	for _, r := range m.rules {
		if !seen[r.Label] {
			seen[r.Label] = true
			out = append(out, r.Label)
		}
	}
	return out
}
