package phrase

import (
	"github.com/daikw/rookery/internal/persona"
	"github.com/daikw/rookery/internal/sample"
	"github.com/daikw/rookery/internal/style"
)

// Source says where a style instruction came from.
type Source int

const (
	SourceNone Source = iota
	SourceCatalog
	SourcePersona
)

func (s Source) String() string {
	switch s {
	case SourceCatalog:
		return "catalog"
	case SourcePersona:
		return "persona"
	default:
		return "none"
	}
}

// Resolution is the outcome of resolving one requested style name.
type Resolution struct {
	Style  string
	Source Source
	Text   string
}

// Found reports whether the style produced any instruction.
func (r Resolution) Found() bool {
	return r.Source != SourceNone
}

// Resolver maps style names to instruction text: the catalog first, then the
// persona's own custom styles.
type Resolver struct {
	catalog *style.Catalog
	src     sample.Source
}

// NewResolver returns a Resolver drawing variants from src.
func NewResolver(catalog *style.Catalog, src sample.Source) *Resolver {
	return &Resolver{catalog: catalog, src: src}
}

// Resolve looks styleName up for p.
func (r *Resolver) Resolve(p persona.Persona, styleName string) Resolution {
	if s, ok := r.catalog.Lookup(styleName); ok {
		if text, ok := style.RandomInstruction(r.src, s); ok {
			return Resolution{Style: styleName, Source: SourceCatalog, Text: text}
		}
	}
	if text, ok := persona.RandomCustomStyle(r.src, p, styleName); ok {
		return Resolution{Style: styleName, Source: SourcePersona, Text: text}
	}
	return Resolution{Style: styleName, Source: SourceNone}
}
