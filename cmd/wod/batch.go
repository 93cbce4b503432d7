package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/meltforce/wodlog/internal/history"
	"github.com/meltforce/wodlog/internal/wodfile"
	"github.com/meltforce/wodlog/internal/workout"
)

type batchOptions struct {
	Source string
	Log    *wodfile.Log
	Date   time.Time
	// Force rewrites the front matter and ignores the history.
	Force bool
}

type batchStats struct {
	Lines    int
	Appended int
	Failed   int
	Skipped  bool
}

// runBatch appends every valid line of opts.Source to the log. Bad lines are
// logged and counted; they never stop the batch.
func runBatch(opts batchOptions, hist *history.DB, log *slog.Logger) (*batchStats, error) {
	source, err := filepath.Abs(opts.Source)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", opts.Source, err)
	}
	output, err := filepath.Abs(opts.Log.Paths[0])
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", opts.Log.Paths[0], err)
	}

	hash, err := history.HashFile(source)
	if err != nil {
		return nil, fmt.Errorf("hashing %s: %w", source, err)
	}

	stats := &batchStats{}
	if !opts.Force {
		done, err := hist.IsProcessed(source, output, hash)
		if err != nil {
			return nil, err
		}
		if done {
			log.Info("batch already appended, skipping", "source", source, "output", output)
			stats.Skipped = true
			return stats, nil
		}
	}

	entries, lineErrs, err := wodfile.ReadFile(source)
	if err != nil {
		return nil, err
	}
	stats.Lines = len(entries) + len(lineErrs)
	for _, lerr := range lineErrs {
		log.Warn("skipping malformed line", "error", lerr)
		stats.Failed++
	}

	if _, err := opts.Log.Init(opts.Date, opts.Force); err != nil {
		return nil, err
	}

	for _, e := range entries {
		md, w, err := workout.Compile(e.Notation, e.Comments, e.Name)
		if err != nil {
			log.Warn("skipping invalid workout", "line", e.Line, "notation", e.Notation, "error", err)
			stats.Failed++
			continue
		}
		for _, warn := range w.Warnings() {
			log.Warn("workout rendered with loss", "line", e.Line, "warning", warn)
		}
		if err := opts.Log.Append(md); err != nil {
			return stats, err
		}
		stats.Appended++
	}

	err = hist.MarkProcessed(history.Record{
		Source:   source,
		Output:   output,
		Hash:     hash,
		Appended: stats.Appended,
		Failed:   stats.Failed,
	})
	if err != nil {
		return stats, err
	}
	log.Info("batch appended", "source", source, "files", opts.Log.Paths,
		"appended", stats.Appended, "failed", stats.Failed)
	return stats, nil
}
