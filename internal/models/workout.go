package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/wodlog/internal/workout"
)

// WorkoutRow is a row of the workouts table plus its ordered movement names.
type WorkoutRow struct {
	ID        uuid.UUID `json:"id"`
	Notation  string    `json:"notation"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name,omitempty"`
	Comments  string    `json:"comments,omitempty"`
	Markdown  string    `json:"markdown"`
	Movements []string  `json:"movements"`
	LoggedAt  time.Time `json:"logged_at"`
	CreatedAt time.Time `json:"created_at"`
}

// NewWorkoutRow builds a row for a compiled workout with a fresh ID.
func NewWorkoutRow(notation string, w *workout.Workout, markdown string, loggedAt time.Time) WorkoutRow {
	names := w.MovementNames()
	if names == nil {
		names = []string{}
	}
	return WorkoutRow{
		ID:        uuid.New(),
		Notation:  notation,
		Kind:      w.Kind.Type.String(),
		Name:      w.Name,
		Comments:  w.Comments,
		Markdown:  markdown,
		Movements: names,
		LoggedAt:  loggedAt,
	}
}
