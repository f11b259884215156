package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hackcheck/hackcheck/internal/adapters/outbound/configstore"
	"github.com/hackcheck/hackcheck/internal/application"
	"github.com/hackcheck/hackcheck/internal/domain"
	"github.com/hackcheck/hackcheck/internal/domain/rules"
)

// registerTools registers all hackcheck MCP tools on the given server.
func registerTools(s *server.MCPServer, validator *application.ValidateService, store *configstore.Store, engine *rules.Engine) {
	// 1. hackcheck_validate
	s.AddTool(
		mcplib.NewTool("hackcheck_validate",
			mcplib.WithDescription("Validate a hackathon submission's GitHub repository and return the scored verdict as JSON"),
			mcplib.WithString("github_url",
				mcplib.Required(),
				mcplib.Description("GitHub repository URL of the submission"),
			),
			mcplib.WithString("devpost_url",
				mcplib.Description("DevPost submission page URL"),
			),
			mcplib.WithString("config",
				mcplib.Description("Name of a stored hackathon config"),
			),
			mcplib.WithString("start",
				mcplib.Description("Hackathon start (RFC 3339) when no config is given"),
			),
			mcplib.WithString("end",
				mcplib.Description("Hackathon end (RFC 3339) when no config is given"),
			),
		),
		handleValidate(validator, store),
	)

	// 2. hackcheck_rules
	s.AddTool(
		mcplib.NewTool("hackcheck_rules",
			mcplib.WithDescription("Returns the active code-quality rule set, defaults and custom rules, as JSON"),
		),
		handleRules(engine),
	)

	// 3. hackcheck_configs
	s.AddTool(
		mcplib.NewTool("hackcheck_configs",
			mcplib.WithDescription("Lists the stored hackathon config names"),
		),
		handleConfigs(store),
	)
}

func handleValidate(validator *application.ValidateService, store *configstore.Store) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		githubURL, err := request.RequireString("github_url")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		devpostURL := request.GetString("devpost_url", "")

		cfg, err := resolveConfig(store, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		result := validator.Validate(ctx, cfg, githubURL, devpostURL)
		return jsonResult(result)
	}
}

func handleRules(engine *rules.Engine) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(map[string]any{
			"rules":  engine.AllRules(),
			"custom": engine.CustomRules(),
		})
	}
}

func handleConfigs(store *configstore.Store) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		names, err := store.ListConfigs()
		if err != nil {
			return errorResult(fmt.Sprintf("list configs: %v", err)), nil
		}
		return jsonResult(names)
	}
}

// resolveConfig picks the stored config when named, otherwise builds an
// ad-hoc one from the start/end arguments.
func resolveConfig(store *configstore.Store, request mcplib.CallToolRequest) (domain.HackathonConfig, error) {
	if name := request.GetString("config", ""); name != "" {
		return store.LoadConfig(name)
	}

	start := request.GetString("start", "")
	end := request.GetString("end", "")
	if start == "" || end == "" {
		return domain.HackathonConfig{}, fmt.Errorf("either config or both start and end are required")
	}

	cfg := domain.HackathonConfig{
		Name:         "ad-hoc",
		ScoreWeights: domain.DefaultWeights(),
		Thresholds:   domain.DefaultThresholds(),
	}
	var err error
	if cfg.StartDate, err = time.Parse(time.RFC3339, start); err != nil {
		return cfg, fmt.Errorf("parse start: %w", err)
	}
	if cfg.EndDate, err = time.Parse(time.RFC3339, end); err != nil {
		return cfg, fmt.Errorf("parse end: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
