// Package textnorm normalizes spoken-command text before matching.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases s, trims it and collapses inner whitespace runs.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// Fold normalizes s and strips combining marks, so "súbele" and "subele"
// compare equal. The ñ is kept as n, which is how recognisers often emit it
// anyway.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, Normalize(s))
	if err != nil {
		return Normalize(s)
	}
	return folded
}

// Words splits a folded string into tokens, treating punctuation as a
// separator. Digits and the characters of arithmetic expressions are kept.
func Words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		switch r {
		case '+', '-', '*', '/', '.', ',', '(', ')', '%':
			return false
		}
		return true
	})
}

// ContainsAny reports whether s contains any of the substrings.
func ContainsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
