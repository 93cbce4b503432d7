package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meltforce/wodlog/internal/models"
)

// ErrNotFound is returned when a workout ID has no row.
var ErrNotFound = errors.New("workout not found")

// InsertWorkout stores a workout and its movements in one transaction.
// Returns true if inserted, false if the ID already existed.
func (db *DB) InsertWorkout(ctx context.Context, row models.WorkoutRow) (bool, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`INSERT INTO workouts (id, notation, kind, name, comments, markdown, logged_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)
		 ON CONFLICT DO NOTHING`,
		row.ID, row.Notation, row.Kind, row.Name, row.Comments, row.Markdown, row.LoggedAt)
	if err != nil {
		return false, fmt.Errorf("inserting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if len(row.Movements) > 0 {
		query := `INSERT INTO workout_movements (workout_id, position, movement) VALUES `
		args := make([]any, 0, len(row.Movements)*3)
		valueStrings := make([]string, 0, len(row.Movements))
		for i, m := range row.Movements {
			base := i * 3
			valueStrings = append(valueStrings, fmt.Sprintf("($%d,$%d,$%d)", base+1, base+2, base+3))
			args = append(args, row.ID, i, m)
		}
		query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return false, fmt.Errorf("inserting workout movements: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("committing workout: %w", err)
	}
	return true, nil
}

const workoutColumns = `w.id, w.notation, w.kind, w.name, w.comments, w.markdown, w.logged_at, w.created_at,
	ARRAY(SELECT m.movement FROM workout_movements m WHERE m.workout_id = w.id ORDER BY m.position)`

// QueryWorkouts retrieves workouts logged in [start, end), newest first. A
// non-empty movement restricts the result to workouts containing it.
func (db *DB) QueryWorkouts(ctx context.Context, start, end time.Time, movement string) ([]models.WorkoutRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+`
		 FROM workouts w
		 WHERE w.logged_at >= $1 AND w.logged_at < $2
		   AND ($3::text = '' OR EXISTS (
		     SELECT 1 FROM workout_movements f
		     WHERE f.workout_id = w.id AND lower(f.movement) = lower($3)))
		 ORDER BY w.logged_at DESC`,
		start, end, movement)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkoutRows(rows)
}

// RecentWorkouts returns the latest workouts regardless of date.
func (db *DB) RecentWorkouts(ctx context.Context, limit int) ([]models.WorkoutRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT `+workoutColumns+` FROM workouts w ORDER BY w.logged_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent workouts: %w", err)
	}
	defer rows.Close()

	return scanWorkoutRows(rows)
}

// GetWorkout retrieves a single workout by ID.
func (db *DB) GetWorkout(ctx context.Context, id uuid.UUID) (*models.WorkoutRow, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT `+workoutColumns+` FROM workouts w WHERE w.id = $1`, id)

	var w models.WorkoutRow
	err := row.Scan(&w.ID, &w.Notation, &w.Kind, &w.Name, &w.Comments, &w.Markdown,
		&w.LoggedAt, &w.CreatedAt, &w.Movements)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying workout: %w", err)
	}
	return &w, nil
}

func scanWorkoutRows(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]models.WorkoutRow, error) {
	var result []models.WorkoutRow
	for rows.Next() {
		var w models.WorkoutRow
		if err := rows.Scan(&w.ID, &w.Notation, &w.Kind, &w.Name, &w.Comments, &w.Markdown,
			&w.LoggedAt, &w.CreatedAt, &w.Movements); err != nil {
			return nil, fmt.Errorf("scanning workout: %w", err)
		}
		result = append(result, w)
	}
	return result, rows.Err()
}
