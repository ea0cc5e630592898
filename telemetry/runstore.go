package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

// RunStore persists per-generation summaries to a SQLite database so runs
// can be compared after the fact. A nil store is a disabled store.
type RunStore struct {
	db    *sql.DB
	runID int64
}

// OpenRunStore opens the run database at path, creating the schema if
// needed, and registers a new run row. Returns nil if path is empty
// (persistence disabled).
func OpenRunStore(ctx context.Context, path, label string, seed int64) (*RunStore, error) {
	if path == "" {
		return nil, nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	res, err := db.ExecContext(ctx, `
		INSERT INTO runs (label, seed, started_at)
		VALUES (?, ?, ?)
	`, label, seed, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	runID, err := res.LastInsertId()
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &RunStore{db: db, runID: runID}, nil
}

// RunID returns the identifier of the active run row.
func (rs *RunStore) RunID() int64 {
	if rs == nil {
		return 0
	}
	return rs.runID
}

// SaveStats inserts a generation summary row for the active run.
func (rs *RunStore) SaveStats(ctx context.Context, stats GenerationStats) error {
	if rs == nil {
		return nil
	}

	_, err := rs.db.ExecContext(ctx, `
		INSERT INTO generations (
			run_id, generation, ticks, survivors, deaths, meals,
			spawn_fallbacks, best_fitness, mean_fitness, p50_fitness,
			p90_fitness, mean_energy, min_energy
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rs.runID, stats.Generation, stats.Ticks, stats.Survivors, stats.Deaths,
		stats.Meals, stats.SpawnFallbacks, stats.BestFitness, stats.MeanFitness,
		stats.P50Fitness, stats.P90Fitness, stats.MeanEnergy, stats.MinEnergy)
	return err
}

// LoadStats returns the stored summaries for runID in generation order.
// The boolean reports whether the run row exists.
func (rs *RunStore) LoadStats(ctx context.Context, runID int64) ([]GenerationStats, bool, error) {
	if rs == nil {
		return nil, false, errors.New("run store is disabled")
	}

	var label string
	err := rs.db.QueryRowContext(ctx, `SELECT label FROM runs WHERE id = ?`, runID).Scan(&label)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	rows, err := rs.db.QueryContext(ctx, `
		SELECT generation, ticks, survivors, deaths, meals, spawn_fallbacks,
			best_fitness, mean_fitness, p50_fitness, p90_fitness,
			mean_energy, min_energy
		FROM generations
		WHERE run_id = ?
		ORDER BY generation
	`, runID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	var out []GenerationStats
	for rows.Next() {
		var gs GenerationStats
		if err := rows.Scan(
			&gs.Generation, &gs.Ticks, &gs.Survivors, &gs.Deaths, &gs.Meals,
			&gs.SpawnFallbacks, &gs.BestFitness, &gs.MeanFitness,
			&gs.P50Fitness, &gs.P90Fitness, &gs.MeanEnergy, &gs.MinEnergy,
		); err != nil {
			return nil, false, err
		}
		out = append(out, gs)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return out, true, nil
}

// FinishRun stamps the active run row as completed.
func (rs *RunStore) FinishRun(ctx context.Context, generations int) error {
	if rs == nil {
		return nil
	}
	_, err := rs.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, generations = ? WHERE id = ?
	`, time.Now().UTC().Format(time.RFC3339), generations, rs.runID)
	return err
}

// Close closes the underlying database.
func (rs *RunStore) Close() error {
	if rs == nil || rs.db == nil {
		return nil
	}
	err := rs.db.Close()
	rs.db = nil
	return err
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			label TEXT NOT NULL,
			seed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			generations INTEGER
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id INTEGER NOT NULL,
			generation INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			survivors INTEGER NOT NULL,
			deaths INTEGER NOT NULL,
			meals INTEGER NOT NULL,
			spawn_fallbacks INTEGER NOT NULL,
			best_fitness REAL NOT NULL,
			mean_fitness REAL NOT NULL,
			p50_fitness REAL NOT NULL,
			p90_fitness REAL NOT NULL,
			mean_energy REAL NOT NULL,
			min_energy REAL NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
	`)
	return err
}
