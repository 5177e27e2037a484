// Package sweepstore persists parameter sweep results in SQLite.
package sweepstore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Result is one evaluated parameter set.
type Result struct {
	ID           int64
	Sweep        string
	Mu           float64
	Sigma        float64
	DT           float64
	Steps        int
	Seed         int64
	Alive        int
	Clusters     int
	Largest      int
	MeanAutonomy float64
	Score        float64
	CreatedAt    time.Time
}

// Store persists sweep results in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts r and returns its row id. A zero CreatedAt is stamped with the
// current time.
func (s *Store) Save(ctx context.Context, r Result) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(r.Sweep) == "" {
		return 0, fmt.Errorf("sweep name is required")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	res, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO sweep_results (
		   sweep, mu, sigma, dt, steps, seed,
		   alive, clusters, largest, mean_autonomy, score, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Sweep, r.Mu, r.Sigma, r.DT, r.Steps, r.Seed,
		r.Alive, r.Clusters, r.Largest, r.MeanAutonomy, r.Score,
		r.CreatedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("save sweep result: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save sweep result: %w", err)
	}
	return id, nil
}

// Top returns up to limit results of sweep, best score first.
func (s *Store) Top(ctx context.Context, sweep string, limit int) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, sweep, mu, sigma, dt, steps, seed,
		        alive, clusters, largest, mean_autonomy, score, created_at
		   FROM sweep_results
		  WHERE sweep = ?
		  ORDER BY score DESC, id ASC
		  LIMIT ?`,
		sweep, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sweep results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		var createdAt int64
		if err := rows.Scan(
			&r.ID, &r.Sweep, &r.Mu, &r.Sigma, &r.DT, &r.Steps, &r.Seed,
			&r.Alive, &r.Clusters, &r.Largest, &r.MeanAutonomy, &r.Score, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan sweep result: %w", err)
		}
		r.CreatedAt = time.UnixMilli(createdAt).UTC()
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sweep results: %w", err)
	}
	return out, nil
}
