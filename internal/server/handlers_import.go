package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/meltforce/wodlog/internal/models"
	"github.com/meltforce/wodlog/internal/storage"
	"github.com/meltforce/wodlog/internal/wodfile"
	"github.com/meltforce/wodlog/internal/workout"
)

// maxImportBytes caps the batch body.
const maxImportBytes = 1 << 20

// importLine is the outcome of one batch line.
type importLine struct {
	Line  int    `json:"line"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type importResult struct {
	Received int          `json:"received"`
	Inserted int          `json:"inserted"`
	Failed   int          `json:"failed"`
	Lines    []importLine `json:"lines"`
}

// handleImport stores every valid line of a batch file body. Bad lines are
// reported and skipped.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	source := r.URL.Query().Get("source")
	if source == "" {
		source = "api"
	}
	loggedAt := s.now()
	if v := r.URL.Query().Get("date"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date: " + err.Error()})
			return
		}
		loggedAt = t
	}

	entries, lineErrs, err := wodfile.Read(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		s.logImport(source, importResult{}, err, time.Since(started))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res := importResult{Received: len(entries) + len(lineErrs), Lines: []importLine{}}
	for _, lerr := range lineErrs {
		var le *wodfile.LineError
		if errors.As(lerr, &le) {
			res.Lines = append(res.Lines, importLine{Line: le.Line, Error: le.Error()})
		}
		res.Failed++
	}

	var storeErr error
	for _, e := range entries {
		md, wk, err := workout.Compile(e.Notation, e.Comments, e.Name)
		if err != nil {
			s.log.Warn("skipping batch line", "source", source, "line", e.Line, "error", err)
			res.Lines = append(res.Lines, importLine{Line: e.Line, Error: err.Error()})
			res.Failed++
			continue
		}
		row := models.NewWorkoutRow(e.Notation, wk, md, loggedAt)
		if _, err := s.db.InsertWorkout(r.Context(), row); err != nil {
			storeErr = err
			break
		}
		res.Lines = append(res.Lines, importLine{Line: e.Line, ID: row.ID.String()})
		res.Inserted++
	}

	s.logImport(source, res, storeErr, time.Since(started))
	if storeErr != nil {
		s.log.Error("storing batch", "source", source, "error", storeErr)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": storeErr.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := s.db.QueryImportLogs(r.Context(), queryInt(r, "limit", 50))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if logs == nil {
		logs = []storage.ImportLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// logImport records an import operation's result to the import_logs table.
func (s *Server) logImport(source string, res importResult, importErr error, elapsed time.Duration) {
	status := "success"
	var errMsg *string
	switch {
	case importErr != nil:
		status = "error"
		msg := importErr.Error()
		errMsg = &msg
	case res.Failed > 0:
		status = "partial"
		var msgs []string
		for _, l := range res.Lines {
			if l.Error != "" {
				msgs = append(msgs, l.Error)
			}
		}
		msg := strings.Join(msgs, "; ")
		errMsg = &msg
	}

	durationMs := int(elapsed.Milliseconds())
	log := storage.ImportLog{
		Source:        source,
		Status:        status,
		LinesReceived: res.Received,
		LinesInserted: res.Inserted,
		LinesFailed:   res.Failed,
		DurationMs:    &durationMs,
		ErrorMessage:  errMsg,
	}

	ctx, cancel := contextWithTimeout()
	defer cancel()

	if _, err := s.db.InsertImportLog(ctx, log); err != nil {
		s.log.Error("failed to log import", "source", source, "error", err)
	}
}

// contextWithTimeout returns a background context with a 5-second timeout for import logging.
func contextWithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second) //nolint:mnd
}
