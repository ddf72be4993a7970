// Package style holds the phrasing styles a phrase can be rendered in.
package style

import (
	"fmt"

	"github.com/daikw/rookery/internal/datafile"
	"github.com/daikw/rookery/internal/sample"
	"github.com/rs/zerolog/log"
)

// RequiredFields must be present in every style record.
var RequiredFields = []string{"description", "prompts"}

// Style is a named phrasing instruction category.
type Style struct {
	Category       string   `json:"-" yaml:"-"`
	Description    string   `json:"description" yaml:"description"`
	PhraseVariants []string `json:"prompts" yaml:"prompts"`
}

func (s Style) String() string {
	return s.Category + " - " + s.Description
}

// Catalog is the read-only set of styles keyed by category.
type Catalog struct {
	styles map[string]Style
	order  []string
}

// NewCatalog builds a catalog. Categories must be non-empty and unique.
func NewCatalog(styles ...Style) (*Catalog, error) {
	c := &Catalog{
		styles: make(map[string]Style, len(styles)),
		order:  make([]string, 0, len(styles)),
	}
	for _, s := range styles {
		if s.Category == "" {
			return nil, fmt.Errorf("style has an empty category")
		}
		if _, exists := c.styles[s.Category]; exists {
			return nil, fmt.Errorf("duplicate style category %q", s.Category)
		}
		c.styles[s.Category] = s
		c.order = append(c.order, s.Category)
	}
	return c, nil
}

// Load reads a mapping of category to style record from path. Categories
// keep the order they appear in the file.
func Load(path string) (*Catalog, error) {
	data, err := datafile.Read(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]map[string]any
	if err := datafile.Unmarshal(path, data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, datafile.Errorf(path, "expected a mapping of style records")
	}
	for category, rec := range raw {
		if key, missing := datafile.MissingKey(rec, RequiredFields...); missing {
			return nil, datafile.Errorf(path, "style %q is missing '%s'", category, key)
		}
	}

	var records map[string]Style
	if err := datafile.Unmarshal(path, data, &records); err != nil {
		return nil, err
	}
	order, err := datafile.Keys(path, data)
	if err != nil {
		return nil, err
	}

	styles := make([]Style, 0, len(order))
	for _, category := range order {
		s := records[category]
		s.Category = category
		styles = append(styles, s)
	}

	catalog, err := NewCatalog(styles...)
	if err != nil {
		return nil, &datafile.FormatError{Path: path, Err: err}
	}

	log.Debug().Str("path", path).Int("count", len(styles)).Msg("Loaded styles")
	return catalog, nil
}

// Lookup returns the style for category.
func (c *Catalog) Lookup(category string) (Style, bool) {
	s, ok := c.styles[category]
	return s, ok
}

// Categories returns every category name in the order they were loaded.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.order...)
}

// RandomInstruction picks one of the style's instruction variants.
func RandomInstruction(src sample.Source, s Style) (string, bool) {
	return sample.Pick(src, s.PhraseVariants)
}
