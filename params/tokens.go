package params

import (
	"strings"

	"github.com/miguelAagelcruzvargas/sara-intent/internal/textnorm"
)

const edgePunct = ":;,.!?¡¿\"'()"

// utterance keeps the words of a normalized command alongside their folded
// forms so rules can match without accents but return the user's spelling.
type utterance struct {
	text   string
	words  []string
	folded []string
}

func newUtterance(text string) utterance {
	u := utterance{text: text}
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, edgePunct)
		if w == "" {
			continue
		}
		u.words = append(u.words, w)
		u.folded = append(u.folded, textnorm.Fold(w))
	}
	return u
}

// phrase is a folded multi-word trigger.
type phrase []string

func phrases(triggers ...string) []phrase {
	out := make([]phrase, len(triggers))
	for i, t := range triggers {
		out[i] = strings.Fields(textnorm.Fold(t))
	}
	return out
}

// matchAt returns the length of the trigger matching at position i, or 0.
func (u utterance) matchAt(i int, triggers []phrase) int {
	for _, p := range triggers {
		if len(p) == 0 || i+len(p) > len(u.folded) {
			continue
		}
		ok := true
		for j := range p {
			if u.folded[i+j] != p[j] {
				ok = false
				break
			}
		}
		if ok {
			return len(p)
		}
	}
	return 0
}

// strip removes every occurrence of the triggers and returns what is left.
func (u utterance) strip(triggers []phrase) []string {
	var out []string
	for i := 0; i < len(u.words); {
		if n := u.matchAt(i, triggers); n > 0 {
			i += n
			continue
		}
		out = append(out, u.words[i])
		i++
	}
	return out
}

// after returns the words following the first occurrence of any trigger.
func (u utterance) after(triggers []phrase) ([]string, bool) {
	for i := range u.words {
		if n := u.matchAt(i, triggers); n > 0 {
			return u.words[i+n:], true
		}
	}
	return nil, false
}

// has reports whether any trigger occurs.
func (u utterance) has(triggers []phrase) bool {
	for i := range u.words {
		if u.matchAt(i, triggers) > 0 {
			return true
		}
	}
	return false
}

// trimLeading drops leading filler words.
func trimLeading(words []string, fillers ...string) []string {
	set := make(map[string]bool, len(fillers))
	for _, f := range fillers {
		set[f] = true
	}
	for len(words) > 0 && set[textnorm.Fold(words[0])] {
		words = words[1:]
	}
	return words
}

func join(words []string) string {
	return strings.Join(words, " ")
}
