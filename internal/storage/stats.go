package storage

import (
	"context"
	"fmt"
	"time"
)

// MovementStat counts how often a movement was logged.
type MovementStat struct {
	Movement string    `json:"movement"`
	Count    int64     `json:"count"`
	LastDone time.Time `json:"last_done"`
}

// LogStats holds aggregate statistics about the workout log.
type LogStats struct {
	TotalWorkouts  int64          `json:"total_workouts"`
	EarliestLogged *time.Time     `json:"earliest_logged"`
	LatestLogged   *time.Time     `json:"latest_logged"`
	Movements      []MovementStat `json:"movements"`
}

// MovementCounts returns per-movement counts for workouts logged in
// [start, end), most frequent first.
func (db *DB) MovementCounts(ctx context.Context, start, end time.Time) (*LogStats, error) {
	stats := &LogStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(logged_at), MAX(logged_at)
		 FROM workouts WHERE logged_at >= $1 AND logged_at < $2`,
		start, end,
	).Scan(&stats.TotalWorkouts, &stats.EarliestLogged, &stats.LatestLogged)
	if err != nil {
		return nil, fmt.Errorf("counting workouts: %w", err)
	}

	rows, err := db.Pool.Query(ctx,
		`SELECT m.movement, COUNT(DISTINCT w.id), MAX(w.logged_at)
		 FROM workout_movements m
		 JOIN workouts w ON w.id = m.workout_id
		 WHERE w.logged_at >= $1 AND w.logged_at < $2
		 GROUP BY m.movement
		 ORDER BY COUNT(DISTINCT w.id) DESC, m.movement`,
		start, end)
	if err != nil {
		return nil, fmt.Errorf("querying movement counts: %w", err)
	}
	defer rows.Close()

	stats.Movements = []MovementStat{}
	for rows.Next() {
		var s MovementStat
		if err := rows.Scan(&s.Movement, &s.Count, &s.LastDone); err != nil {
			return nil, fmt.Errorf("scanning movement stat: %w", err)
		}
		stats.Movements = append(stats.Movements, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}
