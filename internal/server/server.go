package server

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meltforce/wodlog/internal/models"
	"github.com/meltforce/wodlog/internal/storage"
)

// Store is the workout log the handlers read and write.
type Store interface {
	InsertWorkout(ctx context.Context, row models.WorkoutRow) (bool, error)
	QueryWorkouts(ctx context.Context, start, end time.Time, movement string) ([]models.WorkoutRow, error)
	RecentWorkouts(ctx context.Context, limit int) ([]models.WorkoutRow, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.WorkoutRow, error)
	MovementCounts(ctx context.Context, start, end time.Time) (*storage.LogStats, error)
	InsertImportLog(ctx context.Context, log storage.ImportLog) (int64, error)
	QueryImportLogs(ctx context.Context, limit int) ([]storage.ImportLog, error)
}

var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	db     Store
	log    *slog.Logger
	apiKey string
	router chi.Router
	pages  *template.Template
	now    func() time.Time

	corsOrigins []string
}

// Option configures a Server.
type Option func(*Server)

// WithCORSOrigins restricts cross-origin requests to the given origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) { s.corsOrigins = origins }
}

// New creates a new Server with all routes configured.
func New(db Store, apiKey string, log *slog.Logger, opts ...Option) *Server {
	s := &Server{
		db:     db,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS(s.corsOrigins))

	// Write endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/workouts", s.handleLogWorkout)
		r.Post("/api/v1/import", s.handleImport)
	})

	// Read endpoints (no auth, tsnet handles access)
	s.router.Post("/api/v1/render", s.handleRender)
	s.router.Get("/api/v1/workouts", s.handleQueryWorkouts)
	s.router.Get("/api/v1/workouts/recent", s.handleRecentWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/movements", s.handleListMovements)
	s.router.Get("/api/v1/movements/stats", s.handleMovementStats)
	s.router.Get("/api/v1/import-logs", s.handleImportLogs)
}

// SetFrontend parses the form templates from webFS and mounts the HTML
// notation form at / and /render.
func (s *Server) SetFrontend(webFS fs.FS) error {
	pages, err := template.ParseFS(webFS, "*.html")
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}
	s.pages = pages
	s.router.Get("/", s.handleForm)
	s.router.Post("/render", s.handleFormRender)
	return nil
}
