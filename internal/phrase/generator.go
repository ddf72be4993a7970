package phrase

import (
	"context"
	"fmt"
	"strings"

	"github.com/daikw/rookery/internal/persona"
	"github.com/daikw/rookery/internal/sample"
	"github.com/rs/zerolog/log"
)

// DefaultLabel is appended to every set of display labels.
// It is never resolved against the style catalog.
const DefaultLabel = "Witty"

// Request asks for a phrase from Bird in the given Styles.
type Request struct {
	Bird   string
	Styles []string
}

// Result is a generated phrase.
type Result struct {
	Bird        string
	Labels      []string
	Phrase      string
	Resolutions []Resolution
}

func (r Result) String() string {
	return fmt.Sprintf("%s [%s]: %s", r.Bird, strings.Join(r.Labels, ", "), r.Phrase)
}

// Generator runs the full flow: persona lookup, style resolution, composition.
type Generator struct {
	store    *persona.Store
	resolver *Resolver
	composer *Composer
	src      sample.Source
}

// NewGenerator wires a Generator.
func NewGenerator(store *persona.Store, resolver *Resolver, composer *Composer, src sample.Source) *Generator {
	return &Generator{
		store:    store,
		resolver: resolver,
		composer: composer,
		src:      src,
	}
}

// Generate produces a phrase for req. It reports false, without calling the
// completion backend, when the bird is unknown.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, bool, error) {
	p, ok := g.store.Lookup(req.Bird)
	if !ok {
		return Result{}, false, nil
	}

	resolutions := make([]Resolution, 0, len(req.Styles))
	instructions := make([]string, 0, len(req.Styles)+1)
	for _, name := range req.Styles {
		res := g.resolver.Resolve(p, name)
		resolutions = append(resolutions, res)
		if !res.Found() {
			log.Debug().Str("bird", p.Name).Str("style", name).Msg("Style not found, omitting")
			continue
		}
		instructions = append(instructions, res.Text)
	}
	if desc, ok := persona.RandomDescription(g.src, p); ok {
		instructions = append(instructions, desc)
	}

	labels := make([]string, 0, len(req.Styles)+1)
	labels = append(labels, req.Styles...)
	labels = append(labels, DefaultLabel)

	text, err := g.composer.Generate(ctx, p, instructions, labels)
	if err != nil {
		return Result{}, true, err
	}

	return Result{
		Bird:        req.Bird,
		Labels:      labels,
		Phrase:      text,
		Resolutions: resolutions,
	}, true, nil
}
