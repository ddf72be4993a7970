package main

import (
	"github.com/daikw/rookery/internal/completion"
	"github.com/daikw/rookery/internal/config"
	"github.com/daikw/rookery/internal/persona"
	"github.com/daikw/rookery/internal/phrase"
	"github.com/daikw/rookery/internal/sample"
	"github.com/daikw/rookery/internal/style"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// resources are the components every command is built from.
type resources struct {
	config  *config.Config
	store   *persona.Store
	catalog *style.Catalog
	client  *completion.Client
}

// loadResources loads the configuration and the data it points at.
// Any failure here is fatal for the command.
func loadResources(configPath string) (*resources, error) {
	cfg, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		return nil, err
	}

	store, err := persona.Load(cfg.BirdDataPath)
	if err != nil {
		return nil, err
	}

	catalog, err := style.Load(cfg.PromptDataPath)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("birds", store.Len()).
		Int("styles", len(catalog.Categories())).
		Msg("Loaded resources")

	return &resources{
		config:  cfg,
		store:   store,
		catalog: catalog,
		client:  completion.New(cfg.Endpoint, cfg.APIKey, cfg.MaxTokens),
	}, nil
}

func loadResourcesFor(c *cli.Command) (*resources, error) {
	return loadResources(c.Root().String("config"))
}

// generator wires a phrase generator drawing variants from src.
func (r *resources) generator(src sample.Source, opts ...completion.CallOption) *phrase.Generator {
	return phrase.NewGenerator(
		r.store,
		phrase.NewResolver(r.catalog, src),
		phrase.NewComposer(r.client, opts...),
		src,
	)
}
