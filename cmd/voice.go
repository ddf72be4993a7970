package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/daikw/rookery/internal/voice"
	"github.com/urfave/cli/v3"
)

func handleVoices(ctx context.Context, c *cli.Command) error {
	res, err := loadResourcesFor(c)
	if err != nil {
		return err
	}

	synth, err := voice.New(ctx, res.config.Voice)
	if err != nil {
		return fmt.Errorf("failed to configure voice provider: %w", err)
	}
	if closer, ok := synth.(io.Closer); ok {
		defer closer.Close()
	}

	return printVoices(ctx, os.Stdout, synth)
}

func printVoices(ctx context.Context, w io.Writer, synth voice.Synthesizer) error {
	voices, err := synth.ListVoices(ctx)
	if err != nil {
		return err
	}

	headingColor.Fprintf(w, "Available voices for %s:\n", synth.Name())
	for _, v := range voices {
		fmt.Fprintf(w, "  %s - %s (%s, %s)\n", nameColor.Sprint(v.ID), v.Name, v.Gender, v.Language)
	}
	return nil
}
