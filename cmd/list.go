package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/daikw/rookery/internal/persona"
	"github.com/daikw/rookery/internal/style"
	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

var (
	headingColor = color.New(color.Bold)
	nameColor    = color.New(color.FgCyan)
)

func handleListBirds(ctx context.Context, c *cli.Command) error {
	res, err := loadResourcesFor(c)
	if err != nil {
		return err
	}
	printBirds(os.Stdout, res.store)
	return nil
}

func handleListStyles(ctx context.Context, c *cli.Command) error {
	res, err := loadResourcesFor(c)
	if err != nil {
		return err
	}
	printStyles(os.Stdout, res.catalog)
	return nil
}

func printBirds(w io.Writer, store *persona.Store) {
	headingColor.Fprintln(w, "Available Birds:")
	for _, p := range store.List() {
		fmt.Fprintf(w, "- %s (Species: %s, Persona: %s)\n", nameColor.Sprint(p.Name), p.Species, p.Persona)
	}
}

func printStyles(w io.Writer, catalog *style.Catalog) {
	headingColor.Fprintln(w, "Available Styles:")
	for _, name := range catalog.Categories() {
		fmt.Fprintf(w, "- %s\n", nameColor.Sprint(name))
	}
}
