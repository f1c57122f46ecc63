package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) currentWeek(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	doc, err := h.ds.Schedule(ctx, "")
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, doc)
}

func (h *handlers) weekIndex(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	weeks, err := h.ds.ListWeeks(ctx, 0)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, weeks)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
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
