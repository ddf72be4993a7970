// Package persona holds the bird personas phrases are generated for.
package persona

import (
	"fmt"

	"github.com/daikw/rookery/internal/datafile"
	"github.com/daikw/rookery/internal/sample"
	"github.com/rs/zerolog/log"
)

// Store is the read-only set of known personas keyed by name.
type Store struct {
	byName map[string]Persona
	order  []string
}

// NewStore builds a store from personas. Names must be non-empty and unique.
func NewStore(personas ...Persona) (*Store, error) {
	s := &Store{
		byName: make(map[string]Persona, len(personas)),
		order:  make([]string, 0, len(personas)),
	}
	for i, p := range personas {
		if p.Name == "" {
			return nil, fmt.Errorf("persona at index %d has an empty name", i)
		}
		if _, exists := s.byName[p.Name]; exists {
			return nil, fmt.Errorf("duplicate persona name %q", p.Name)
		}
		s.byName[p.Name] = p
		s.order = append(s.order, p.Name)
	}
	return s, nil
}

// Load reads a sequence of persona records from path.
// Any read, parse or validation failure is a *datafile.FormatError.
func Load(path string) (*Store, error) {
	data, err := datafile.Read(path)
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := datafile.Unmarshal(path, data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, datafile.Errorf(path, "expected a sequence of persona records")
	}
	for i, rec := range raw {
		if key, missing := datafile.MissingKey(rec, RequiredFields...); missing {
			return nil, datafile.Errorf(path, "persona at index %d is missing '%s'", i, key)
		}
	}

	var records []Persona
	if err := datafile.Unmarshal(path, data, &records); err != nil {
		return nil, err
	}

	store, err := NewStore(records...)
	if err != nil {
		return nil, &datafile.FormatError{Path: path, Err: err}
	}

	log.Debug().Str("path", path).Int("count", store.Len()).Msg("Loaded personas")
	return store, nil
}

// Lookup returns the persona with exactly this name.
func (s *Store) Lookup(name string) (Persona, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// List returns all personas in the order they were loaded.
func (s *Store) List() []Persona {
	out := make([]Persona, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}

// Len returns the number of personas.
func (s *Store) Len() int {
	return len(s.order)
}

// RandomDescription picks one of the persona's description variants.
func RandomDescription(src sample.Source, p Persona) (string, bool) {
	return sample.Pick(src, p.PromptVariants)
}

// RandomCustomStyle picks one of the persona's fragments for styleName.
// It reports false when the persona has no custom style by that name.
func RandomCustomStyle(src sample.Source, p Persona, styleName string) (string, bool) {
	variants, ok := p.CustomStyles[styleName]
	if !ok {
		return "", false
	}
	return sample.Pick(src, variants)
}
