package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerSeriesResource(srv, svc)
	registerSeriesTemplate(srv, svc)
}

func registerSeriesResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"viewer://series",
		"Series",
		mcp.WithResourceDescription("All series with a stored reading position."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListSeries(ctx)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"series": summaries,
			"count":  len(summaries),
		})
	})
}

func registerSeriesTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"viewer://series/{name}",
		"Series Pages",
		mcp.WithTemplateDescription("Reading order and current position of one series."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		name, _ := request.Params.Arguments["name"].(string)
		if name == "" {
			return nil, fmt.Errorf("series name is required")
		}

		marker, err := svc.GetMarker(ctx, name)
		if err != nil {
			return nil, err
		}
		pages, err := svc.ListPages(ctx, name)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"marker": marker,
			"pages":  pages,
			"count":  len(pages),
		})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
