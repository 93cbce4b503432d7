package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meltforce/wodlog/internal/models"
	"github.com/meltforce/wodlog/internal/movement"
	"github.com/meltforce/wodlog/internal/storage"
	"github.com/meltforce/wodlog/internal/workout"
)

// renderRequest is the JSON body for render and log requests.
type renderRequest struct {
	Notation string `json:"notation"`
	Comments string `json:"comments"`
	Name     string `json:"name"`
	LoggedAt string `json:"logged_at,omitempty"`
}

type renderResponse struct {
	Markdown string   `json:"markdown"`
	Tokens   []string `json:"tokens"`
	Warnings []string `json:"warnings,omitempty"`
}

// compile runs the notation pipeline and writes a 422 on failure.
func compile(w http.ResponseWriter, req renderRequest) (string, *workout.Workout, bool) {
	if req.Notation == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "notation is required"})
		return "", nil, false
	}
	md, wk, err := workout.Compile(req.Notation, req.Comments, req.Name)
	if err != nil {
		writeNotationError(w, err)
		return "", nil, false
	}
	return md, wk, true
}

func writeNotationError(w http.ResponseWriter, err error) {
	body := map[string]string{"error": err.Error()}
	var unknown *movement.UnknownError
	if errors.As(err, &unknown) {
		body["suggestion"] = unknown.Suggestion
	}
	writeJSON(w, http.StatusUnprocessableEntity, body)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	md, wk, ok := compile(w, req)
	if !ok {
		return
	}

	tokens := make([]string, len(wk.Tokens))
	for i, t := range wk.Tokens {
		tokens[i] = t.String()
	}
	writeJSON(w, http.StatusOK, renderResponse{Markdown: md, Tokens: tokens, Warnings: wk.Warnings()})
}

func (s *Server) handleLogWorkout(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	loggedAt := s.now()
	if req.LoggedAt != "" {
		t, err := parseTime(req.LoggedAt)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid logged_at: " + err.Error()})
			return
		}
		loggedAt = t
	}

	md, wk, ok := compile(w, req)
	if !ok {
		return
	}
	for _, warn := range wk.Warnings() {
		s.log.Warn("workout rendered with loss", "notation", req.Notation, "warning", warn)
	}

	row := models.NewWorkoutRow(req.Notation, wk, md, loggedAt)
	if _, err := s.db.InsertWorkout(r.Context(), row); err != nil {
		s.log.Error("storing workout", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       row.ID,
		"markdown": md,
	})
}

func (s *Server) handleQueryWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	filter := r.URL.Query().Get("movement")
	workouts, err := s.db.QueryWorkouts(r.Context(), start, end, filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if workouts == nil {
		workouts = []models.WorkoutRow{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleRecentWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.db.RecentWorkouts(r.Context(), queryInt(r, "limit", 10))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if workouts == nil {
		workouts = []models.WorkoutRow{}
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid workout ID"})
		return
	}

	row, err := s.db.GetWorkout(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (s *Server) handleListMovements(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	size := queryInt(r, "size", movement.DefaultPageSize)
	rows, pages := movement.Page(page, size)
	if rows == nil {
		rows = []movement.Listing{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"page":      page,
		"pages":     pages,
		"movements": rows,
	})
}

func (s *Server) handleMovementStats(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	stats, err := s.db.MovementCounts(r.Context(), start, end)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func queryInt(r *http.Request, key string, def int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTime accepts RFC3339 or a bare date.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Parse("2006-01-02", s)
	}
	return t, nil
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 7 days
		end = time.Now()
		start = end.AddDate(0, 0, -7)
		return
	}

	start, err = parseTime(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse("2006-01-02", endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}
