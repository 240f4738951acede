package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"fonoteca/internal/application/commands"
)

// RegisterWriteTools adds all catalog mutation tools to the MCP server.
func (t *Tools) RegisterWriteTools(s *server.MCPServer) {
	s.AddTool(createTool(), t.createHandler)
	s.AddTool(updateTool(), t.updateHandler)
	s.AddTool(deleteTool(), t.deleteHandler)
}

// observer returns the engine as a MutationObserver, or nil without one
func (t *Tools) observer() commands.MutationObserver {
	if t.engine == nil {
		return nil
	}
	return t.engine
}

func mutationText(message, warning string) string {
	if warning != "" {
		return message + "\nwarning: " + warning
	}
	return message
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Register an audio file as a new asset. The description defaults to one derived from the file name."),
		mcp.WithString("path",
			mcp.Description("Path of the audio file"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("Asset type"),
			mcp.Enum(typeNames()...),
			mcp.Required(),
		),
		mcp.WithString("description",
			mcp.Description("Description of the sound"),
		),
		mcp.WithArray("tags",
			mcp.Description("Tags"),
			mcp.WithStringItems(),
		),
		mcp.WithNumber("duration",
			mcp.Description("Duration in seconds. Omit to let the backend detect it."),
			mcp.Min(1),
		),
	)
}

func (t *Tools) createHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := commands.NewCreateCommand(t.api, t.observer(), req.GetString("path", ""), req.GetString("type", ""))
	cmd.Description = req.GetString("description", "")
	cmd.Tags = req.GetStringSlice("tags", nil)
	cmd.Duration = req.GetInt("duration", 0)

	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	result, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(mutationText(result.Message, result.Warning)), nil
}

// --- update ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update",
		mcp.WithDescription("Change type, description or tags of an asset. Omitted fields keep their value; an empty tags list clears the tags."),
		mcp.WithNumber("id",
			mcp.Description("Asset ID"),
			mcp.Required(),
		),
		mcp.WithString("type",
			mcp.Description("New asset type"),
			mcp.Enum(typeNames()...),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithArray("tags",
			mcp.Description("New tag list, replacing the current one"),
			mcp.WithStringItems(),
		),
	)
}

func (t *Tools) updateHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := commands.NewUpdateCommand(t.api, t.observer(), int64(req.GetInt("id", 0)))

	args := req.GetArguments()
	if _, ok := args["type"]; ok {
		v := req.GetString("type", "")
		cmd.Type = &v
	}
	if _, ok := args["description"]; ok {
		v := req.GetString("description", "")
		cmd.Description = &v
	}
	if _, ok := args["tags"]; ok {
		v := req.GetStringSlice("tags", []string{})
		cmd.Tags = &v
	}

	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	result, err := cmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultText(mutationText(result.Message, result.Warning)), nil
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete an asset. This cannot be undone."),
		mcp.WithNumber("id",
			mcp.Description("Asset ID"),
			mcp.Required(),
		),
	)
}

func (t *Tools) deleteHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64(req.GetInt("id", 0))

	t.viewMu.Lock()
	defer t.viewMu.Unlock()

	result, err := commands.NewDeleteCommand(t.api, t.observer(), id).Execute(ctx)
	if err != nil {
		return toolError(fmt.Errorf("asset %d: %w", id, err))
	}
	return mcp.NewToolResultText(mutationText(result.Message, result.Warning)), nil
}
