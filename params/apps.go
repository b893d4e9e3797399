package params

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/miguelAagelcruzvargas/sara-intent/internal/textnorm"
)

// Catalog resolves spoken application names to canonical ones. Speech
// recognisers mangle brand names, so lookups are fuzzy.
type Catalog struct {
	names   []string
	aliases map[string]string
}

// NewCatalog builds a catalog from alias -> canonical name pairs. Aliases
// are folded before use.
func NewCatalog(aliases map[string]string) *Catalog {
	c := &Catalog{aliases: make(map[string]string, len(aliases))}
	for alias, name := range aliases {
		key := textnorm.Fold(alias)
		c.aliases[key] = name
		c.names = append(c.names, key)
	}
	// deterministic tie-breaking in fuzzy.Find
	slices.Sort(c.names)
	return c
}

// DefaultCatalog covers the desktop applications the assistant launches.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[string]string{
		"chrome":             "chrome",
		"google chrome":      "chrome",
		"navegador":          "chrome",
		"firefox":            "firefox",
		"edge":               "msedge",
		"visual studio code": "code",
		"vscode":             "code",
		"vs code":            "code",
		"bloc de notas":      "notepad",
		"notepad":            "notepad",
		"word":               "winword",
		"excel":              "excel",
		"powerpoint":         "powerpnt",
		"calculadora":        "calc",
		"explorador":         "explorer",
		"discord":            "discord",
		"whatsapp":           "whatsapp",
		"telegram":           "telegram",
		"slack":              "slack",
		"spotify":            "spotify",
		"vlc":                "vlc",
		"terminal":           "wt",
		"steam":              "steam",
		"obs":                "obs64",
	})
}

// Resolve returns the canonical name for spoken. Exact alias matches win;
// otherwise the best fuzzy candidate is used.
func (c *Catalog) Resolve(spoken string) (string, bool) {
	key := textnorm.Fold(spoken)
	if key == "" {
		return "", false
	}
	if name, ok := c.aliases[key]; ok {
		return name, true
	}
	matches := fuzzy.Find(strings.ReplaceAll(key, " ", ""), c.names)
	if len(matches) == 0 {
		return "", false
	}
	return c.aliases[matches[0].Str], true
}
