package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/wodlog/internal/models"
	"github.com/meltforce/wodlog/internal/movement"
	"github.com/meltforce/wodlog/internal/storage"
	"github.com/meltforce/wodlog/internal/workout"
)

// defaultTimeRange returns start/end defaulting to the last 7 days.
func defaultTimeRange(startStr, endStr string, now time.Time) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = now
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -7)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolRenderWorkout = mcp.NewTool("render_workout",
	mcp.WithDescription("Compile workout notation to markdown without storing it. Returns the markdown, the token stream and any warnings."),
	mcp.WithString("notation", mcp.Required(), mcp.Description("Workout notation, e.g. 'ft 21-15-9 pull up, thruster @43/30kg' or 'emom-12-3m-r1m 15cal row, 12 t2b'")),
	mcp.WithString("comments", mcp.Description("Free text notes, one italic line each")),
	mcp.WithString("name", mcp.Description("Workout name shown above the header (e.g. 'Fran')")),
)

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Compile workout notation and store it in the log."),
	mcp.WithString("notation", mcp.Required(), mcp.Description("Workout notation")),
	mcp.WithString("comments", mcp.Description("Free text notes")),
	mcp.WithString("name", mcp.Description("Workout name")),
	mcp.WithString("logged_at", mcp.Description("When the workout was done (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
)

var toolGetWorkouts = mcp.NewTool("get_workouts",
	mcp.WithDescription("Query logged workouts with an optional movement filter. Returns notation, rendered markdown and movement names."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("movement", mcp.Description("Only workouts containing this movement (display name or alias, e.g. 'thruster', 't2b')")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Fetch a single logged workout by ID."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout UUID")),
)

var toolListMovements = mcp.NewTool("list_movements",
	mcp.WithDescription("List known movements sorted by name, one page at a time, with reference URLs."),
	mcp.WithNumber("page", mcp.Description("1-based page number. Defaults to 1.")),
)

var toolResolveMovement = mcp.NewTool("resolve_movement",
	mcp.WithDescription("Check whether a movement name is recognised. Returns its display name and URL, or the closest known name."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Movement name or alias")),
)

var toolGetMovementStats = mcp.NewTool("get_movement_stats",
	mcp.WithDescription("Count how often each movement was logged over a time range, most frequent first."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

// --- Tool handlers ---

type renderResult struct {
	Markdown string   `json:"markdown"`
	Tokens   []string `json:"tokens"`
	Warnings []string `json:"warnings,omitempty"`
}

func notationError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("invalid notation: " + err.Error())
}

func jsonResult(v any) *mcp.CallToolResult {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed")
	}
	return result
}

func (h *handlers) renderWorkout(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notation, err := req.RequireString("notation")
	if err != nil {
		return mcp.NewToolResultError("notation parameter is required"), nil
	}

	md, w, err := workout.Compile(notation, req.GetString("comments", ""), req.GetString("name", ""))
	if err != nil {
		return notationError(err), nil
	}

	tokens := make([]string, len(w.Tokens))
	for i, t := range w.Tokens {
		tokens[i] = t.String()
	}
	return jsonResult(renderResult{Markdown: md, Tokens: tokens, Warnings: w.Warnings()}), nil
}

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notation, err := req.RequireString("notation")
	if err != nil {
		return mcp.NewToolResultError("notation parameter is required"), nil
	}

	loggedAt := h.now()
	if s := req.GetString("logged_at", ""); s != "" {
		if loggedAt, err = parseFlexTime(s); err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
	}

	md, w, err := workout.Compile(notation, req.GetString("comments", ""), req.GetString("name", ""))
	if err != nil {
		return notationError(err), nil
	}
	for _, warn := range w.Warnings() {
		h.log.Warn("mcp log_workout rendered with loss", "notation", notation, "warning", warn)
	}

	row := models.NewWorkoutRow(notation, w, md, loggedAt)
	if _, err := h.ds.InsertWorkout(ctx, row); err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError("store failed: " + err.Error()), nil
	}

	return jsonResult(map[string]any{"id": row.ID, "markdown": md, "warnings": w.Warnings()}), nil
}

func (h *handlers) getWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	// Aliases are resolved so "t2b" matches stored "Toes To Bar".
	filter := req.GetString("movement", "")
	if filter != "" {
		m, err := movement.Resolve(filter)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		filter = m.String()
	}

	workouts, err := h.ds.QueryWorkouts(ctx, start, end, filter)
	if err != nil {
		h.log.Error("mcp get_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if workouts == nil {
		workouts = []models.WorkoutRow{}
	}
	return jsonResult(workouts), nil
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID"), nil
	}

	row, err := h.ds.GetWorkout(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("workout not found"), nil
	}
	if err != nil {
		h.log.Error("mcp get_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(row), nil
}

func (h *handlers) listMovements(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := req.GetInt("page", 1)
	rows, pages := movement.Page(page, movement.DefaultPageSize)
	if rows == nil {
		rows = []movement.Listing{}
	}
	return jsonResult(map[string]any{"page": page, "pages": pages, "movements": rows}), nil
}

func (h *handlers) resolveMovement(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	m, err := movement.Resolve(name)
	var unknown *movement.UnknownError
	if errors.As(err, &unknown) {
		return jsonResult(map[string]any{"known": false, "suggestion": unknown.Suggestion}), nil
	}
	return jsonResult(map[string]any{"known": true, "name": m.String(), "url": m.URL()}), nil
}

func (h *handlers) getMovementStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""), h.now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	stats, err := h.ds.MovementCounts(ctx, start, end)
	if err != nil {
		h.log.Error("mcp get_movement_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(stats), nil
}
