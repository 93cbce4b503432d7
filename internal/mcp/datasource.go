package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/wodlog/internal/models"
	"github.com/meltforce/wodlog/internal/storage"
)

// DataSource abstracts the workout log for MCP tools. Both *storage.DB (local)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	InsertWorkout(ctx context.Context, row models.WorkoutRow) (bool, error)
	QueryWorkouts(ctx context.Context, start, end time.Time, movement string) ([]models.WorkoutRow, error)
	RecentWorkouts(ctx context.Context, limit int) ([]models.WorkoutRow, error)
	GetWorkout(ctx context.Context, id uuid.UUID) (*models.WorkoutRow, error)
	MovementCounts(ctx context.Context, start, end time.Time) (*storage.LogStats, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
