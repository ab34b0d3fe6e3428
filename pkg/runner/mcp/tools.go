package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListSeriesTool(srv, svc)
	registerListPagesTool(srv, svc)
	registerGetMarkerTool(srv, svc)
	registerSetMarkerTool(srv, svc)
	registerMoveMarkerTool(srv, svc)
}

func registerListSeriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_series",
		mcp.WithDescription("List every series with a stored reading position."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summaries, err := svc.ListSeries(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"series": summaries,
			"count":  len(summaries),
		})
	})
}

func registerListPagesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_pages",
		mcp.WithDescription("List the pages of a series in reading order."),
		mcp.WithString("series",
			mcp.Required(),
			mcp.Description("Series whose pages should be listed."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("series")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		pages, err := svc.ListPages(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"series": name,
			"pages":  pages,
			"count":  len(pages),
		})
	})
}

func registerGetMarkerTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_marker",
		mcp.WithDescription("Fetch the stored reading position of a series."),
		mcp.WithString("series",
			mcp.Required(),
			mcp.Description("Series to look up."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("series")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.GetMarker(ctx, name)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSetMarkerTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_marker",
		mcp.WithDescription("Store a new reading position for a series."),
		mcp.WithString("series",
			mcp.Required(),
			mcp.Description("Series to update."),
		),
		mcp.WithString("marker",
			mcp.Required(),
			mcp.Description("Page token such as 0012-004, 0012.5-001 or 00120. It must name an existing page."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Series string `json:"series"`
			Marker string `json:"marker"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.SetMarker(ctx, args.Series, args.Marker)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMoveMarkerTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"move_marker",
		mcp.WithDescription("Move the reading position of a series forward or back by whole pages."),
		mcp.WithString("series",
			mcp.Required(),
			mcp.Description("Series to update."),
		),
		mcp.WithNumber("delta",
			mcp.Description("Pages to move; negative values move back. Defaults to 1."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name, err := request.RequireString("series")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		delta := request.GetInt("delta", 1)

		dto, err := svc.MoveMarker(ctx, name, delta)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
