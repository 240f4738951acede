package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fonoteca/internal/application"
	"fonoteca/internal/application/commands"
	"fonoteca/internal/catalog"
	"fonoteca/internal/domain"
	"fonoteca/internal/ports"
)

// Tools exposes the catalog to MCP clients
type Tools struct {
	api    ports.CatalogAPI
	engine *catalog.Engine

	// tool calls share one engine view; list and search hold this while
	// they set criteria and read the resulting page
	viewMu sync.Mutex
}

// NewTools creates the tool set. engine should read from api.
func NewTools(api ports.CatalogAPI, engine *catalog.Engine) *Tools {
	return &Tools{api: api, engine: engine}
}

// RegisterReadTools adds all read-only catalog tools to the MCP server.
func (t *Tools) RegisterReadTools(s *server.MCPServer) {
	s.AddTool(listTool(), t.listHandler)
	s.AddTool(searchTool(), t.searchHandler)
	s.AddTool(getTool(), t.getHandler)
	s.AddTool(statsTool(), t.statsHandler)
	s.AddTool(typesTool(), t.typesHandler)
}

func filterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("type",
			mcp.Description("Asset type"),
			mcp.Enum(typeNames()...),
		),
		mcp.WithString("tag",
			mcp.Description("Case-insensitive substring of any tag"),
		),
		mcp.WithNumber("min_duration",
			mcp.Description("Minimum duration in seconds (inclusive)"),
			mcp.Min(0),
		),
		mcp.WithNumber("max_duration",
			mcp.Description("Maximum duration in seconds (inclusive)"),
			mcp.Min(0),
		),
		mcp.WithNumber("page",
			mcp.Description("Page number, starting at 1"),
			mcp.Min(1),
		),
		mcp.WithNumber("page_size",
			mcp.Description("Assets per page"),
			mcp.Min(1),
		),
	}
}

func typeNames() []string {
	names := make([]string, len(domain.AssetTypes))
	for i, t := range domain.AssetTypes {
		names[i] = string(t)
	}
	return names
}

// criteriaFrom reads the structural filter arguments
func criteriaFrom(req mcp.CallToolRequest) (domain.FilterCriteria, error) {
	args := req.GetArguments()
	bound := func(key string) string {
		if _, ok := args[key]; !ok {
			return ""
		}
		return fmt.Sprint(req.GetInt(key, 0))
	}
	return application.ParseCriteria(
		req.GetString("type", ""),
		req.GetString("tag", ""),
		bound("min_duration"),
		bound("max_duration"),
	)
}

// --- list ---

func listTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("List audio assets, optionally filtered by type, tag and duration. Results are paginated."),
	}, filterOptions()...)
	return mcp.NewTool("list", opts...)
}

func (t *Tools) listHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	criteria, err := criteriaFrom(req)
	if err != nil {
		return toolError(err)
	}

	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	cmd := commands.NewListCommand(t.engine, criteria, req.GetInt("page", 1), req.GetInt("page_size", 0))
	page, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(formatPage(page)), nil
}

// --- search ---

func searchTool() mcp.Tool {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Semantic search over audio assets. Structural filters narrow the search. If the search service is down, local filter results are returned with a warning."),
		mcp.WithString("query",
			mcp.Description("Free-text query, e.g. \"heavy rain on a tin roof\""),
			mcp.Required(),
		),
	}, filterOptions()...)
	return mcp.NewTool("search", opts...)
}

func (t *Tools) searchHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if strings.TrimSpace(query) == "" {
		return toolError(fmt.Errorf("query is required"))
	}
	criteria, err := criteriaFrom(req)
	if err != nil {
		return toolError(err)
	}

	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	cmd := commands.NewSearchCommand(t.engine, query, criteria)
	cmd.Page = req.GetInt("page", 1)
	cmd.PageSize = req.GetInt("page_size", 0)
	page, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(formatPage(page)), nil
}

// --- get ---

func getTool() mcp.Tool {
	return mcp.NewTool("get",
		mcp.WithDescription("Show a single audio asset by ID."),
		mcp.WithNumber("id",
			mcp.Description("Asset ID"),
			mcp.Required(),
		),
	)
}

func (t *Tools) getHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a, err := commands.NewGetCommand(t.api, int64(req.GetInt("id", 0))).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(formatAssetDetail(a)), nil
}

// --- stats ---

func statsTool() mcp.Tool {
	return mcp.NewTool("stats",
		mcp.WithDescription("Collection statistics: total count, count per type, and the accepted asset types."),
	)
}

func (t *Tools) statsHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := commands.NewStatsCommand(t.api).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(formatStats(res)), nil
}

// --- types ---

// typesTool lists the types the backend accepts, which may differ from the
// built-in list when talking to a newer server
func typesTool() mcp.Tool {
	return mcp.NewTool("types",
		mcp.WithDescription("List the asset types the backend accepts."),
	)
}

func (t *Tools) typesHandler(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types, err := t.api.Types(ctx)
	if err != nil {
		return toolError(err)
	}
	return formatEntities(types, func(s string) string { return s })
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatAsset(a domain.Asset) string {
	line := fmt.Sprintf("%d  %-10s  %7s  %s", a.ID, a.Type, domain.FormatDuration(a.Duration), a.Description)
	if len(a.Tags) > 0 {
		line += "  [" + strings.Join(a.Tags, ", ") + "]"
	}
	return line
}

func formatAssetDetail(a domain.Asset) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "id:          %d\n", a.ID)
	fmt.Fprintf(&sb, "type:        %s\n", a.Type)
	fmt.Fprintf(&sb, "description: %s\n", a.Description)
	fmt.Fprintf(&sb, "tags:        %s\n", strings.Join(a.Tags, ", "))
	fmt.Fprintf(&sb, "duration:    %s (%ds)\n", domain.FormatDuration(a.Duration), a.Duration)
	fmt.Fprintf(&sb, "path:        %s\n", a.Path)
	return sb.String()
}

func formatPage(p *commands.Page) string {
	var sb strings.Builder
	if p.Warning != "" {
		fmt.Fprintf(&sb, "warning: %s\n\n", p.Warning)
	}
	if len(p.Items) == 0 {
		sb.WriteString("No results.\n")
		return sb.String()
	}
	for _, a := range p.Items {
		sb.WriteString(formatAsset(a))
		sb.WriteByte('\n')
	}

	ps := p.Pagination
	fmt.Fprintf(&sb, "\n%s: %d assets, page %d/%d", p.View, ps.TotalItems, ps.CurrentPage, max(1, ps.TotalPages))
	if len(p.Window) > 0 {
		markers := make([]string, len(p.Window))
		for i, m := range p.Window {
			markers[i] = m.String()
		}
		fmt.Fprintf(&sb, "  [%s]", strings.Join(markers, " "))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func formatStats(res *commands.StatsResult) string {
	var sb strings.Builder
	if res.Stats.CollectionName != "" {
		fmt.Fprintf(&sb, "collection: %s\n", res.Stats.CollectionName)
	}
	fmt.Fprintf(&sb, "total: %d\n", res.Stats.TotalCount)

	types := make([]string, 0, len(res.Stats.TypeCounts))
	for t := range res.Stats.TypeCounts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Fprintf(&sb, "  %-10s %d\n", t, res.Stats.TypeCounts[t])
	}
	fmt.Fprintf(&sb, "types: %s\n", strings.Join(res.Types, ", "))
	return sb.String()
}
