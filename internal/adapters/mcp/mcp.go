// Package mcp exposes briefings and team profiles as Model Context Protocol
// tools so agent clients can request them over streamable HTTP.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/okian/scoutbrief/internal/domain/model"
	"github.com/okian/scoutbrief/pkg/logger"
)

// Tool names.
const (
	ToolMatchBriefing = "match_briefing"
	ToolTeamProfile   = "team_profile"
)

// Dependencies are the service operations the tools call.
type Dependencies interface {
	BuildBriefing(ctx context.Context, match int, alliance string) (model.Briefing, error)
	Profile(ctx context.Context, team string, before int) (model.TeamProfile, error)
}

// BriefingArgs is the input schema for match_briefing.
type BriefingArgs struct {
	Match         int    `json:"match" jsonschema:"Qualification match number (required)"`
	Alliance      string `json:"alliance,omitempty" jsonschema:"Alliance to brief: red or blue (default blue)"`
	IncludePrompt bool   `json:"include_prompt,omitempty" jsonschema:"Include the prompt sent to the model"`
}

// ProfileArgs is the input schema for team_profile.
type ProfileArgs struct {
	Team   string `json:"team" jsonschema:"Team number, with or without the frc prefix (required)"`
	Before int    `json:"before,omitempty" jsonschema:"Only count matches before this one (0 = whole log)"`
}

// Tools holds the tool handlers.
type Tools struct {
	deps   Dependencies
	logger logger.Logger
}

// NewTools creates the tool set.
func NewTools(deps Dependencies) *Tools {
	return &Tools{deps: deps, logger: logger.Get().Named("mcp")}
}

// NewServer registers every tool on a fresh MCP server.
func NewServer(deps Dependencies, version string) *sdk.Server {
	server := sdk.NewServer(&sdk.Implementation{
		Name:    "scoutbrief",
		Version: version,
	}, nil)

	t := NewTools(deps)
	sdk.AddTool(server, &sdk.Tool{
		Name:        ToolMatchBriefing,
		Description: "Pre-match briefing for one alliance: rosters, per-team historic profiles and a drive-coach recommendation",
	}, t.MatchBriefing)
	sdk.AddTool(server, &sdk.Tool{
		Name:        ToolTeamProfile,
		Description: "Average scoring, climb and auto-move rates for a team over matches before a cutoff",
	}, t.TeamProfile)
	return server
}

// Handler serves server over streamable HTTP with plain JSON responses.
func Handler(server *sdk.Server) http.Handler {
	return sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return server
	}, &sdk.StreamableHTTPOptions{JSONResponse: true})
}

// MatchBriefing handles match_briefing.
func (t *Tools) MatchBriefing(ctx context.Context, _ *sdk.CallToolRequest, args BriefingArgs) (*sdk.CallToolResult, any, error) {
	if args.Match < 1 {
		return toolError(fmt.Errorf("match must be a positive integer")), nil, nil
	}
	b, err := t.deps.BuildBriefing(ctx, args.Match, args.Alliance)
	if err != nil {
		t.logger.Warn(ctx, "tool call failed", logger.String("tool", ToolMatchBriefing), logger.Error(err))
		return toolError(err), nil, nil
	}
	out := struct {
		model.Briefing
		Prompt string `json:"prompt,omitempty"`
	}{Briefing: b}
	if args.IncludePrompt {
		out.Prompt = b.Prompt
	}
	return toolJSON(out)
}

// TeamProfile handles team_profile.
func (t *Tools) TeamProfile(ctx context.Context, _ *sdk.CallToolRequest, args ProfileArgs) (*sdk.CallToolResult, any, error) {
	if model.NormalizeTeamID(args.Team) == "" {
		return toolError(fmt.Errorf("team is required")), nil, nil
	}
	if args.Before < 0 {
		return toolError(fmt.Errorf("before must not be negative")), nil, nil
	}
	p, err := t.deps.Profile(ctx, args.Team, args.Before)
	if err != nil {
		t.logger.Warn(ctx, "tool call failed", logger.String("tool", ToolTeamProfile), logger.Error(err))
		return toolError(err), nil, nil
	}
	return toolJSON(p)
}

func toolJSON(v any) (*sdk.CallToolResult, any, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return toolError(err), nil, nil
	}
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: string(b)}},
	}, nil, nil
}

func toolError(err error) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		IsError: true,
		Content: []sdk.Content{
			&sdk.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
