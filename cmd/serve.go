package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/daikw/rookery/internal/completion"
	"github.com/daikw/rookery/internal/phrase"
	"github.com/daikw/rookery/internal/sample"
	"github.com/fatih/color"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func handleServe(ctx context.Context, c *cli.Command) error {
	res, err := loadResourcesFor(c)
	if err != nil {
		return err
	}

	// stdout carries the protocol
	color.NoColor = true

	log.Info().Int("birds", res.store.Len()).Msg("Serving MCP tools over stdio")
	return server.ServeStdio(newMCPServer(res, sample.Locked(sample.NewTimeSeeded())))
}

func newMCPServer(res *resources, src sample.Source) *server.MCPServer {
	s := server.NewMCPServer("rookery", version, server.WithToolCapabilities(false))
	tools := &toolHandlers{res: res, gen: res.generator(src)}

	s.AddTool(mcp.NewTool("generate_phrase",
		mcp.WithDescription("Generate an in-character phrase for a bird persona"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name of the bird"),
		),
		mcp.WithArray("styles",
			mcp.Required(),
			mcp.Description("Styles of the phrase"),
			mcp.WithStringItems(),
		),
		mcp.WithNumber("max_tokens",
			mcp.Description("Token budget for this request"),
		),
	), tools.generatePhrase)

	s.AddTool(mcp.NewTool("list_birds",
		mcp.WithDescription("List available birds"),
	), tools.listBirds)

	s.AddTool(mcp.NewTool("list_styles",
		mcp.WithDescription("List available styles"),
	), tools.listStyles)

	return s
}

type toolHandlers struct {
	res *resources
	gen *phrase.Generator
}

func (h *toolHandlers) generatePhrase(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	styles := req.GetStringSlice("styles", nil)
	if len(styles) == 0 {
		return mcp.NewToolResultError("at least one style is required"), nil
	}

	gen := h.gen
	if n := req.GetInt("max_tokens", 0); n > 0 {
		gen = h.res.generator(sample.Locked(sample.NewTimeSeeded()), completion.WithMaxTokens(n))
	}

	result, ok, err := gen.Generate(ctx, phrase.Request{Bird: name, Styles: styles})
	if err != nil {
		var reqErr *completion.RequestError
		if errors.As(err, &reqErr) {
			return mcp.NewToolResultError(reqErr.Error()), nil
		}
		return nil, err
	}
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Could not find bird with name %s", name)), nil
	}
	return mcp.NewToolResultText(result.String()), nil
}

func (h *toolHandlers) listBirds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	printBirds(&buf, h.res.store)
	return mcp.NewToolResultText(buf.String()), nil
}

func (h *toolHandlers) listStyles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	printStyles(&buf, h.res.catalog)
	return mcp.NewToolResultText(buf.String()), nil
}
