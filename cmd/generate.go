package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/daikw/rookery/internal/completion"
	"github.com/daikw/rookery/internal/phrase"
	"github.com/daikw/rookery/internal/sample"
	"github.com/daikw/rookery/internal/voice"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

type generateOptions struct {
	bird      string
	styles    []string
	maxTokens int
	seed      *uint64
	speak     string
}

func handleGenerate(ctx context.Context, c *cli.Command) error {
	res, err := loadResourcesFor(c)
	if err != nil {
		return err
	}

	opts := generateOptions{
		bird:      c.String("name"),
		styles:    c.StringSlice("style"),
		maxTokens: int(c.Int("max-tokens")),
		speak:     c.String("speak"),
	}
	if c.IsSet("seed") {
		seed := uint64(c.Int("seed"))
		opts.seed = &seed
	}

	return runGenerate(ctx, os.Stdout, res, opts)
}

func runGenerate(ctx context.Context, w io.Writer, res *resources, opts generateOptions) error {
	var src sample.Source
	if opts.seed != nil {
		src = sample.New(*opts.seed)
	} else {
		src = sample.NewTimeSeeded()
	}

	var callOpts []completion.CallOption
	if opts.maxTokens > 0 {
		callOpts = append(callOpts, completion.WithMaxTokens(opts.maxTokens))
	}

	result, ok, err := res.generator(src, callOpts...).Generate(ctx, phrase.Request{
		Bird:   opts.bird,
		Styles: opts.styles,
	})
	if err != nil {
		return &reportedError{err: fmt.Errorf("failed to generate phrase: %w", err)}
	}
	if !ok {
		log.Error().Str("bird", opts.bird).Msg("Could not find bird")
		return nil
	}

	fmt.Fprintln(w, result.String())

	if opts.speak != "" {
		speakPhrase(ctx, res, result.Phrase, opts.speak)
	}
	return nil
}

// speakPhrase saves the phrase as audio. Failures only warn: the phrase has
// already been printed.
func speakPhrase(ctx context.Context, res *resources, text, path string) {
	synth, err := voice.New(ctx, res.config.Voice)
	if err != nil {
		log.Warn().Err(err).Msg("Voice synthesis unavailable")
		return
	}
	if closer, ok := synth.(io.Closer); ok {
		defer closer.Close()
	}

	if err := voice.SaveTo(ctx, synth, text, path, voice.OptionsFrom(res.config.Voice)); err != nil {
		log.Warn().Err(err).Str("provider", synth.Name()).Msg("Failed to synthesize phrase")
		return
	}
	fmt.Fprintf(os.Stderr, "✅ Audio saved to %s\n", path)
}
