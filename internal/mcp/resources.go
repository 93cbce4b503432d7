package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/wodlog/internal/movement"
)

const recentWorkoutLimit = 14

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

func (h *handlers) recentWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.RecentWorkouts(ctx, recentWorkoutLimit)
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, workouts)
}

type catalogEntry struct {
	Name    string   `json:"name"`
	URL     string   `json:"url"`
	Aliases []string `json:"aliases"`
}

func (h *handlers) movementCatalog(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	byMovement := map[movement.Movement][]string{}
	for _, a := range movement.Aliases() {
		m, err := movement.Resolve(a)
		if err != nil {
			continue
		}
		byMovement[m] = append(byMovement[m], a)
	}

	var entries []catalogEntry
	for _, m := range movement.All() {
		entries = append(entries, catalogEntry{Name: m.String(), URL: m.URL(), Aliases: byMovement[m]})
	}
	return jsonContents(req.Params.URI, entries)
}
