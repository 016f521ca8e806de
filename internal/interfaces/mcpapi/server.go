// Package mcpapi exposes the tactical use cases as Model Context Protocol tools.
package mcpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/usecase"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "tacticai-mcp"

type recommender interface {
	Recommend(ctx context.Context, input usecase.RecommendationInput) (usecase.RecommendationResult, error)
	Vocabulary(ctx context.Context) usecase.Vocabulary
}

type analyzer interface {
	Summary(ctx context.Context, query usecase.TeamQuery) (usecase.TeamSummary, error)
	Simulate(ctx context.Context, query usecase.PairQuery) (usecase.Simulation, error)
}

type RecommendFormationArgs struct {
	Strengths  []string `json:"strengths,omitempty" jsonschema:"Own team strength tags, e.g. StrongWings"`
	Weaknesses []string `json:"weaknesses,omitempty" jsonschema:"Opponent weakness tags, e.g. WeakFullbacks"`
}

type ListTacticalTagsArgs struct{}

type TeamSummaryArgs struct {
	CompetitionID int64  `json:"competition_id" jsonschema:"StatsBomb competition id (required)"`
	SeasonID      int64  `json:"season_id" jsonschema:"StatsBomb season id (required)"`
	Team          string `json:"team" jsonschema:"Team name as listed by StatsBomb (required)"`
	Matches       int    `json:"matches,omitempty" jsonschema:"Most recent matches to load (default 4, max 10)"`
}

type WinProbabilityArgs struct {
	CompetitionID int64  `json:"competition_id" jsonschema:"StatsBomb competition id (required)"`
	SeasonID      int64  `json:"season_id" jsonschema:"StatsBomb season id (required)"`
	Own           string `json:"own" jsonschema:"Own team name (required)"`
	Rival         string `json:"rival" jsonschema:"Rival team name (required)"`
	Matches       int    `json:"matches,omitempty" jsonschema:"Most recent matches per team (default 4, max 10)"`
}

type tools struct {
	recommendations recommender
	analysis        analyzer
	logger          *logging.Logger
}

// NewServer registers recommend_formation, list_tactical_tags, team_summary and win_probability.
func NewServer(recommendations recommender, analysis analyzer, version string, logger *logging.Logger) *mcp.Server {
	if logger == nil {
		logger = logging.Default()
	}
	t := &tools{recommendations: recommendations, analysis: analysis, logger: logger}

	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "recommend_formation",
		Description: "Rule-based formation suggestions for own strengths against opponent weaknesses",
	}, t.recommendFormation)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tactical_tags",
		Description: "Strength and weakness vocabularies accepted by recommend_formation",
	}, t.listTacticalTags)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "team_summary",
		Description: "Event count, shots, xG and formations over a team's most recent matches",
	}, t.teamSummary)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "win_probability",
		Description: "xG based win probability of own against rival",
	}, t.winProbability)

	return server
}

// Handler serves the server over streamable HTTP with plain JSON responses.
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func (t *tools) recommendFormation(ctx context.Context, _ *mcp.CallToolRequest, args RecommendFormationArgs) (*mcp.CallToolResult, any, error) {
	result, err := t.recommendations.Recommend(ctx, usecase.RecommendationInput{
		Strengths:  args.Strengths,
		Weaknesses: args.Weaknesses,
	})
	if err != nil {
		return t.toolError(ctx, "recommend_formation", err), nil, nil
	}
	return toolJSON(result), nil, nil
}

func (t *tools) listTacticalTags(ctx context.Context, _ *mcp.CallToolRequest, _ ListTacticalTagsArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(t.recommendations.Vocabulary(ctx)), nil, nil
}

func (t *tools) teamSummary(ctx context.Context, _ *mcp.CallToolRequest, args TeamSummaryArgs) (*mcp.CallToolResult, any, error) {
	summary, err := t.analysis.Summary(ctx, usecase.TeamQuery{
		CompetitionID: args.CompetitionID,
		SeasonID:      args.SeasonID,
		Team:          args.Team,
		MaxMatches:    args.Matches,
	})
	if err != nil {
		return t.toolError(ctx, "team_summary", err), nil, nil
	}
	return toolJSON(summary), nil, nil
}

func (t *tools) winProbability(ctx context.Context, _ *mcp.CallToolRequest, args WinProbabilityArgs) (*mcp.CallToolResult, any, error) {
	simulation, err := t.analysis.Simulate(ctx, usecase.PairQuery{
		CompetitionID: args.CompetitionID,
		SeasonID:      args.SeasonID,
		Own:           args.Own,
		Rival:         args.Rival,
		MaxMatches:    args.Matches,
	})
	if err != nil {
		return t.toolError(ctx, "win_probability", err), nil, nil
	}
	return toolJSON(simulation), nil, nil
}

func (t *tools) toolError(ctx context.Context, tool string, err error) *mcp.CallToolResult {
	t.logger.WarnContext(ctx, "mcp tool failed", "tool", tool, "error", err)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}

func toolJSON(v any) *mcp.CallToolResult {
	b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return &mcp.CallToolResult{
			IsError: true,
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("error: encode result: %v", err)}},
		}
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}
