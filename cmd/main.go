package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

var (
	version  = "dev"
	revision = "none"
)

func main() {
	// Setup logger
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:  "rookery",
		Usage: "Generate in-character phrases for bird personas",
		Description: `rookery combines bird personas and phrasing styles into a prompt
and asks a text-completion endpoint to finish the bird's line.`,
		Version: fmt.Sprintf("%s (rev: %s)", version, revision),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"V"},
				Usage:   "Enable verbose logging",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file (default: $ROOKERY_CONFIG or config/config.json)",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "Generate a phrase for a bird",
				Action: handleGenerate,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Name of the bird",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:     "style",
						Aliases:  []string{"s"},
						Usage:    "Style of the phrase. Can specify multiple styles",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-tokens",
						Usage: "Token budget for this request (default: max_tokens from config)",
					},
					&cli.IntFlag{
						Name:  "seed",
						Usage: "Seed for variant selection, for reproducible prompts",
					},
					&cli.StringFlag{
						Name:  "speak",
						Usage: "Also synthesize the phrase to this audio file using the configured voice provider",
					},
				},
			},
			{
				Name:   "list_birds",
				Usage:  "List available birds",
				Action: handleListBirds,
			},
			{
				Name:   "list_styles",
				Usage:  "List available styles",
				Action: handleListStyles,
			},
			{
				Name:   "voices",
				Usage:  "List voices of the configured voice provider",
				Action: handleVoices,
			},
			{
				Name:   "serve",
				Usage:  "Serve phrase generation as MCP tools over stdio",
				Action: handleServe,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) error {
			if err := godotenv.Load(); err != nil {
				log.Debug().Err(err).Msg("No .env file loaded")
			}
			if c.Bool("verbose") {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if !alreadyReported(err) {
			log.Error().Err(err).Msg("Failed to run application")
		}
		os.Exit(1)
	}
}

// reportedError wraps an error that was logged where it happened.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

func alreadyReported(err error) bool {
	var reported *reportedError
	return errors.As(err, &reported)
}
