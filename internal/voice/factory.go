package voice

import (
	"context"
	"fmt"
	"strings"

	"github.com/daikw/rookery/internal/config"
)

const (
	ProviderPolly = "polly"
	ProviderGCP   = "gcp"
)

// Providers lists the supported provider names.
func Providers() []string {
	return []string{ProviderPolly, ProviderGCP}
}

// New creates the synthesizer described by cfg.
func New(ctx context.Context, cfg *config.Voice) (Synthesizer, error) {
	if cfg == nil || cfg.Provider == "" {
		return nil, fmt.Errorf("no voice provider configured")
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderPolly:
		return NewPollySynthesizer(ctx, cfg.Region, cfg.Voice)
	case ProviderGCP:
		return NewGCPSynthesizer(ctx, cfg.Voice, cfg.Language, cfg.ProjectID)
	default:
		return nil, fmt.Errorf("unknown voice provider: %s (supported: %s)", cfg.Provider, strings.Join(Providers(), ", "))
	}
}

// OptionsFrom builds synthesis options from cfg.
func OptionsFrom(cfg *config.Voice) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		Voice:    cfg.Voice,
		Format:   cfg.Format,
		Language: cfg.Language,
		Speed:    cfg.Speed,
	}
}
