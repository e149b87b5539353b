package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS simulation_runs (
	id         UUID PRIMARY KEY,
	algorithm  TEXT NOT NULL,
	seed       BIGINT NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists simulation runs in Postgres, with the run result
// stored as JSONB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(url string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *SimulationRun) error {
	result, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO simulation_runs (id, algorithm, seed, result, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Algorithm, run.Seed, result, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*SimulationRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, algorithm, seed, result, created_at
		 FROM simulation_runs WHERE id = $1`, id)

	var run SimulationRun
	var result []byte
	err := row.Scan(&run.ID, &run.Algorithm, &run.Seed, &result, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning run: %w", err)
	}
	if err := json.Unmarshal(result, &run.Result); err != nil {
		return nil, fmt.Errorf("decoding result: %w", err)
	}
	return &run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]*SimulationRun, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, algorithm, seed, result, created_at
		 FROM simulation_runs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*SimulationRun
	for rows.Next() {
		var run SimulationRun
		var result []byte
		if err := rows.Scan(&run.ID, &run.Algorithm, &run.Seed, &result, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if err := json.Unmarshal(result, &run.Result); err != nil {
			return nil, fmt.Errorf("decoding result: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
