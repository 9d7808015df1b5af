package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/lapwatch/internal/trace"
)

const eventColumns = `seq, run_id, action, applied, state, elapsed_ms, display, lap_count, lap_seq, split_ms`

// ReadAll returns every event in seq order.
// Returns an empty slice (not nil) for an empty journal.
func (s *Store) ReadAll(ctx context.Context) ([]trace.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	return scanEvents(rows)
}

// ReadRun returns the events of one run in seq order.
func (s *Store) ReadRun(ctx context.Context, runID string) ([]trace.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run %s: %w", runID, err)
	}
	return scanEvents(rows)
}

// Runs returns run IDs in the order their first event was journaled.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id
		FROM events
		GROUP BY run_id
		ORDER BY MIN(seq) ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// Payloads returns the stored canonical JSON of each event in seq order.
// An empty runID selects the whole journal.
func (s *Store) Payloads(ctx context.Context, runID string) ([]string, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if runID == "" {
		rows, err = s.db.QueryContext(ctx, `SELECT payload FROM events ORDER BY seq ASC`)
	} else {
		rows, err = s.db.QueryContext(ctx, `SELECT payload FROM events WHERE run_id = ? ORDER BY seq ASC`, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query payloads: %w", err)
	}
	defer rows.Close()

	payloads := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan payload: %w", err)
		}
		payloads = append(payloads, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payloads: %w", err)
	}

	return payloads, nil
}

func scanEvents(rows *sql.Rows) ([]trace.Event, error) {
	defer rows.Close()

	events := []trace.Event{}
	for rows.Next() {
		var ev trace.Event
		if err := rows.Scan(
			&ev.Seq,
			&ev.RunID,
			&ev.Action,
			&ev.Applied,
			&ev.State,
			&ev.ElapsedMS,
			&ev.Display,
			&ev.LapCount,
			&ev.LapSeq,
			&ev.SplitMS,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}
