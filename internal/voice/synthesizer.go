// Package voice speaks generated phrases through a cloud text-to-speech service.
package voice

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Synthesizer turns text into audio.
type Synthesizer interface {
	// Name returns the provider name
	Name() string

	// ListVoices returns available voices for this provider
	ListVoices(ctx context.Context) ([]Voice, error)

	// Synthesize generates audio from text and returns an audio stream
	Synthesize(ctx context.Context, text string, options Options) (io.ReadCloser, error)
}

// Voice represents a voice option
type Voice struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	Gender      string `json:"gender,omitempty"`
	Description string `json:"description,omitempty"`
}

// Options contains options for text synthesis
type Options struct {
	Voice    string
	Format   string // mp3, ogg, pcm/wav
	Language string
	Speed    float64
}

// SaveTo synthesizes text and writes the audio to path.
func SaveTo(ctx context.Context, s Synthesizer, text, path string, options Options) error {
	audio, err := s.Synthesize(ctx, text, options)
	if err != nil {
		return err
	}
	defer audio.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audio file: %w", err)
	}

	n, err := io.Copy(f, audio)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close audio file: %w", err)
	}

	log.Debug().Str("provider", s.Name()).Str("path", path).Int64("bytes", n).Msg("Saved synthesized audio")
	return nil
}
