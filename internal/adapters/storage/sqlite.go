package storage

// sqlite.go — persistencia de runs de análisis.
//
// Estrategia:
//   - `runs`: una fila por ejecución del analyzer, con sus parámetros y
//     el total de usuarios al cerrar.
//   - `user_summaries`: una fila por usuario y run (UPSERT) — reanalizar
//     un usuario dentro del mismo run sobreescribe su fila.
//   - Prune automático al arrancar: runs (y sus resúmenes) > 90 días.

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/VitalyChait/MetaBet/internal/domain"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
-- Una fila por ejecución del analyzer
CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    started_at  DATETIME NOT NULL,
    finished_at DATETIME,
    params      TEXT NOT NULL DEFAULT '',
    users       INTEGER NOT NULL DEFAULT 0
);

-- Una fila por usuario y run, sin duplicados
CREATE TABLE IF NOT EXISTS user_summaries (
    run_id             TEXT NOT NULL REFERENCES runs(id),
    wallet             TEXT NOT NULL,
    name               TEXT NOT NULL DEFAULT '',
    profile_url        TEXT NOT NULL DEFAULT '',
    wins               INTEGER NOT NULL DEFAULT 0,
    losses             INTEGER NOT NULL DEFAULT 0,
    total_won          REAL    NOT NULL DEFAULT 0,
    total_lost         REAL    NOT NULL DEFAULT 0,
    duplicated_bets    INTEGER NOT NULL DEFAULT 0,
    diff_outcome_count INTEGER NOT NULL DEFAULT 0,
    diff_outcome_notes TEXT    NOT NULL DEFAULT '',
    partial            INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (run_id, wallet)
);

CREATE INDEX IF NOT EXISTS idx_runs_started    ON runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_summaries_run   ON user_summaries(run_id);
`

// runs: 90 días de histórico es más que suficiente para comparar scans
const retentionRuns = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.SummaryStorage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia runs antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// BeginRun registra un run nuevo y devuelve su id.
func (s *SQLiteStorage) BeginRun(ctx context.Context, startedAt time.Time, params string) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, params) VALUES (?, ?, ?)`,
		id, startedAt.UTC(), params,
	); err != nil {
		return "", fmt.Errorf("storage.BeginRun: %w", err)
	}
	return id, nil
}

// SaveSummary hace upsert del resumen de un usuario dentro de un run.
func (s *SQLiteStorage) SaveSummary(ctx context.Context, runID string, sum domain.UserSummary) error {
	partial := 0
	if sum.Partial {
		partial = 1
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO user_summaries
			(run_id, wallet, name, profile_url, wins, losses, total_won,
			 total_lost, duplicated_bets, diff_outcome_count, diff_outcome_notes, partial)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, wallet) DO UPDATE SET
			name               = excluded.name,
			profile_url        = excluded.profile_url,
			wins               = excluded.wins,
			losses             = excluded.losses,
			total_won          = excluded.total_won,
			total_lost         = excluded.total_lost,
			duplicated_bets    = excluded.duplicated_bets,
			diff_outcome_count = excluded.diff_outcome_count,
			diff_outcome_notes = excluded.diff_outcome_notes,
			partial            = excluded.partial
	`,
		runID, sum.Wallet, sum.Name, sum.ProfileURL,
		sum.Wins, sum.Losses, sum.TotalWon, sum.TotalLost,
		sum.DuplicatedBets, sum.DiffOutcomeCount, sum.Notes(), partial,
	); err != nil {
		return fmt.Errorf("storage.SaveSummary: upsert %s: %w", sum.Wallet, err)
	}
	return nil
}

// FinishRun marca el run como terminado con su total de usuarios.
func (s *SQLiteStorage) FinishRun(ctx context.Context, runID string, users int) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, users = ? WHERE id = ?`,
		time.Now().UTC(), users, runID,
	); err != nil {
		return fmt.Errorf("storage.FinishRun: %w", err)
	}
	return nil
}

// GetRunSummaries devuelve los resúmenes de un run, ordenados por total
// ganado desc — los mejores primero.
func (s *SQLiteStorage) GetRunSummaries(ctx context.Context, runID string) ([]domain.UserSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, wallet, profile_url, wins, losses, total_won, total_lost,
		       duplicated_bets, diff_outcome_count, diff_outcome_notes, partial
		FROM user_summaries
		WHERE run_id = ?
		ORDER BY total_won DESC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage.GetRunSummaries: query: %w", err)
	}
	defer rows.Close()

	var summaries []domain.UserSummary
	for rows.Next() {
		var sum domain.UserSummary
		var notes string
		var partial int

		if err := rows.Scan(
			&sum.Name, &sum.Wallet, &sum.ProfileURL,
			&sum.Wins, &sum.Losses, &sum.TotalWon, &sum.TotalLost,
			&sum.DuplicatedBets, &sum.DiffOutcomeCount, &notes, &partial,
		); err != nil {
			return nil, fmt.Errorf("storage.GetRunSummaries: scan row: %w", err)
		}

		if notes != "" {
			sum.DiffOutcomeDetails = strings.Split(notes, "; ")
		}
		sum.Partial = partial == 1
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// pruneOld elimina runs antiguos (y sus resúmenes) para mantener la DB ligera.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	s.db.ExecContext(ctx,
		`DELETE FROM user_summaries WHERE run_id IN (SELECT id FROM runs WHERE started_at < ?)`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
}
