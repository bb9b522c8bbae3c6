package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mhagedorn/wachplan/pkg/core/importer"
	"github.com/mhagedorn/wachplan/pkg/core/model"
	"github.com/mhagedorn/wachplan/pkg/db"
)

// ImportStore defines the database operations needed for a roster import
type ImportStore interface {
	Persons(ctx context.Context) ([]model.Person, error)
	Apprentices(ctx context.Context) ([]model.Apprentice, error)
	BulkUpsert(ctx context.Context, entries []model.DutyRosterEntry) (db.BulkResult, error)
}

// ImportResult contains the outcome of one roster import run
type ImportResult struct {
	RunID     string
	Success   bool
	Message   string
	Total     int
	Matched   int
	Imported  int
	Skipped   int
	Unmatched []string
}

// ImportDutyRoster parses the planning spreadsheet and writes all
// resolved entries in one transactional bulk upsert. Rows that fail
// inside the batch are counted and skipped; only a fatal store error
// fails the whole import.
func ImportDutyRoster(
	ctx context.Context,
	store ImportStore,
	src importer.Source,
	opts importer.Options,
	logger *zap.Logger,
) (*ImportResult, error) {
	runID := uuid.NewString()
	logger.Info("Starting roster import",
		zap.String("run_id", runID),
		zap.Int("year", opts.Year),
		zap.Int("month", int(opts.Month)))

	staff, err := store.Persons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	apprentices, err := store.Apprentices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch apprentices: %w", err)
	}

	parsed, err := importer.Parse(ctx, src, staff, apprentices, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	logger.Debug("Roster parsed",
		zap.String("run_id", runID),
		zap.Int("rows", parsed.Total),
		zap.Int("matched", parsed.Matched),
		zap.Int("entries", len(parsed.Entries)))

	bulk, err := store.BulkUpsert(ctx, parsed.Entries)
	if err != nil {
		return &ImportResult{
			RunID:   runID,
			Success: false,
			Message: fmt.Sprintf("import failed: %v", err),
		}, nil
	}

	result := &ImportResult{
		RunID:     runID,
		Success:   true,
		Message:   fmt.Sprintf("imported %d entries", bulk.Imported),
		Total:     parsed.Total,
		Matched:   parsed.Matched,
		Imported:  bulk.Imported,
		Skipped:   bulk.Skipped,
		Unmatched: parsed.Unmatched,
	}
	logger.Info("Roster import finished",
		zap.String("run_id", runID),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
		zap.Strings("unmatched", result.Unmatched))
	return result, nil
}

// PreviewStore defines the database operations needed for a dry run
type PreviewStore interface {
	Persons(ctx context.Context) ([]model.Person, error)
	Apprentices(ctx context.Context) ([]model.Apprentice, error)
	EntriesForYear(ctx context.Context, year int) ([]model.DutyRosterEntry, error)
}

// PreviewResult contains the dry-run figures of a roster import
type PreviewResult struct {
	RunID          string
	Total          int
	Matched        int
	UnmatchedNames []string
	Overwrites     int
}

// PreviewDutyRoster performs the same resolution as an import without
// writing anything, and counts how many parsed entries would overwrite
// an existing record for the same person and date.
func PreviewDutyRoster(
	ctx context.Context,
	store PreviewStore,
	src importer.Source,
	opts importer.Options,
	logger *zap.Logger,
) (*PreviewResult, error) {
	runID := uuid.NewString()

	staff, err := store.Persons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}
	apprentices, err := store.Apprentices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch apprentices: %w", err)
	}

	parsed, err := importer.Parse(ctx, src, staff, apprentices, opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}

	existing, err := store.EntriesForYear(ctx, opts.Year)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch existing entries: %w", err)
	}
	occupied := make(map[string]bool, len(existing))
	for _, e := range existing {
		// A record with only a slot assignment still counts; the import
		// replaces it just like one holding a duty value.
		if e.Value != "" || e.SlotID != "" {
			occupied[e.Ref.String()+"@"+e.Date] = true
		}
	}

	overwrites := 0
	seen := make(map[string]bool)
	for _, e := range parsed.Entries {
		key := e.Ref.String() + "@" + e.Date
		if occupied[key] && !seen[key] {
			overwrites++
			seen[key] = true
		}
	}

	logger.Debug("Roster preview finished",
		zap.String("run_id", runID),
		zap.Int("matched", parsed.Matched),
		zap.Int("overwrites", overwrites))

	return &PreviewResult{
		RunID:          runID,
		Total:          parsed.Total,
		Matched:        parsed.Matched,
		UnmatchedNames: parsed.Unmatched,
		Overwrites:     overwrites,
	}, nil
}
