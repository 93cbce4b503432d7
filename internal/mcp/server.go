package mcp

import (
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("wodlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("wodlog workout log. Render workout notation to markdown, log workouts, and query past workouts and movement statistics. "+
			"Notation starts with a kind (ft, 5rd, amrap-20, emom-12-3m-r1m, wl) followed by comma separated movements, e.g. 'ft 21-15-9 pull up, thruster @43/30kg'."),
	)

	h := newHandlers(ds, log)

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolRenderWorkout, Handler: h.renderWorkout},
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolGetWorkouts, Handler: h.getWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolListMovements, Handler: h.listMovements},
		server.ServerTool{Tool: toolResolveMovement, Handler: h.resolveMovement},
		server.ServerTool{Tool: toolGetMovementStats, Handler: h.getMovementStats},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkouts},
		server.ServerResource{Resource: resMovementCatalog, Handler: h.movementCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
	now func() time.Time
}

func newHandlers(ds DataSource, log *slog.Logger) *handlers {
	return &handlers{ds: ds, log: log, now: time.Now}
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"wod://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The last 14 logged workouts with their rendered markdown"),
	mcp.WithMIMEType("application/json"),
)

var resMovementCatalog = mcp.NewResource(
	"wod://movement_catalog",
	"Movement Catalog",
	mcp.WithResourceDescription("Every known movement with its display name, reference URL and accepted aliases"),
	mcp.WithMIMEType("application/json"),
)
