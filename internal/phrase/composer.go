// Package phrase composes prompts for bird personas and generates phrases from them.
package phrase

import (
	"context"
	"fmt"
	"strings"

	"github.com/daikw/rookery/internal/completion"
	"github.com/daikw/rookery/internal/persona"
	"github.com/rs/zerolog/log"
)

// BuildPrompt fills the prompt template for p. The last line opens a quote
// for the model to continue.
func BuildPrompt(p persona.Persona, instructions, labels []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Character: %s\n", p.Name)
	fmt.Fprintf(&b, "Persona: %s\n", p.Persona)
	fmt.Fprintf(&b, "Description: %s\n", p.Description)
	fmt.Fprintf(&b, "Generate a phrase for this character.  It should be %s.\n", strings.Join(instructions, ", "))
	fmt.Fprintf(&b, "%s [%s]: \"", p.Name, strings.Join(labels, ","))
	return b.String()
}

// Composer sends composed prompts to a completion backend.
type Composer struct {
	completer completion.Completer
	callOpts  []completion.CallOption
}

// NewComposer returns a Composer backed by c.
func NewComposer(c completion.Completer, opts ...completion.CallOption) *Composer {
	return &Composer{completer: c, callOpts: opts}
}

// Generate returns the raw text the backend produced for p. Errors from the
// backend are logged and returned unchanged.
func (c *Composer) Generate(ctx context.Context, p persona.Persona, instructions, labels []string) (string, error) {
	prompt := BuildPrompt(p, instructions, labels)

	text, err := c.completer.Complete(ctx, prompt, c.callOpts...)
	if err != nil {
		log.Error().Err(err).Str("bird", p.Name).Msg("Failed to generate phrase")
		return "", err
	}
	return text, nil
}
