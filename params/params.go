// Package params extracts slot values from utterances and defines the
// parameter map handed to the command router.
package params

import (
	"maps"
	"math"
	"strconv"
)

// Parameter keys shared with the router.
const (
	KeyAmount     = "amount"
	KeyType       = "type"
	KeyData       = "data"
	KeyAppName    = "app_name"
	KeyApp        = "app"
	KeyQuery      = "query"
	KeyMinutes    = "minutes"
	KeyMessage    = "message"
	KeyText       = "text"
	KeyTargetLang = "target_lang"
	KeyExpression = "expression"
	KeyPort       = "port"
	KeyLevel      = "level"
	KeyDirection  = "direction"
	KeyCity       = "city"
	KeyGame       = "game"
	KeyName       = "name"
	KeyLanguage   = "language"
	KeyProcess    = "process"
	KeyPath       = "path"
)

// Values of KeyType for HORA_FECHA.
const (
	TypeHora  = "hora"
	TypeFecha = "fecha"
)

// Params maps parameter keys to values. Values are strings, ints or, when
// they come from the external reasoner, whatever JSON decoding produced.
type Params map[string]any

// Clone returns a shallow copy of p. A nil p yields an empty map.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// Merge returns a copy of p overlaid with other; keys in other win.
func (p Params) Merge(other Params) Params {
	out := p.Clone()
	maps.Copy(out, other)
	return out
}

// String returns the value at key if it is a string.
func (p Params) String(key string) (string, bool) {
	s, ok := p[key].(string)
	return s, ok
}

// Int returns the value at key as an int. Integral floats and numeric
// strings are accepted since reasoner output arrives as JSON.
func (p Params) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n, true
		}
	}
	return 0, false
}
