// Package store persists forecast rows in a local SQLite file. The table is
// append-only: the ingestor writes once at cold start and everything after
// that is read-only.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/couchcryptid/agri-weather-dashboard/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS weather (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  location    TEXT,
  min_temp    REAL,
  max_temp    REAL,
  description TEXT
);
`

// Version identifies the content of the store for cache invalidation:
// row count plus the database file's last-modified marker. ModTime is zero
// for in-memory databases.
type Version struct {
	Rows    int64
	ModTime time.Time
}

// Store wraps the SQLite handle for the weather table.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens (creating if absent) the SQLite database at path. ":memory:"
// opens an in-memory database, used by tests.
func Open(path string, logger *slog.Logger) (*Store, error) {
	dsn, err := buildDSN(path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection sidesteps table-lock contention; the workload is
	// one writer at startup and sequential reads after.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &Store{db: db, path: path, logger: logger}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the weather table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// CountForecasts returns the number of stored forecast rows.
func (s *Store) CountForecasts(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM weather`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count forecasts: %w", err)
	}
	return n, nil
}

// InsertForecasts writes all records in a single transaction, so a failure
// mid-batch leaves no partial table state. IDs are assigned by SQLite.
func (s *Store) InsertForecasts(ctx context.Context, records []domain.ForecastRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			s.logger.Error("rollback insert", "error", err)
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO weather (location, min_temp, max_temp, description) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.Location, rec.MinTemp, rec.MaxTemp, rec.Description); err != nil {
			return fmt.Errorf("insert forecast %q: %w", rec.Location, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// ListForecasts returns every stored row ordered by id.
func (s *Store) ListForecasts(ctx context.Context) ([]domain.ForecastRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, location, min_temp, max_temp, description FROM weather ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list forecasts: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			s.logger.Error("close forecast rows", "error", err)
		}
	}()

	var out []domain.ForecastRecord
	for rows.Next() {
		var rec domain.ForecastRecord
		if err := rows.Scan(&rec.ID, &rec.Location, &rec.MinTemp, &rec.MaxTemp, &rec.Description); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Version reports the current content version for enrichment caching.
func (s *Store) Version(ctx context.Context) (Version, error) {
	rows, err := s.CountForecasts(ctx)
	if err != nil {
		return Version{}, err
	}
	v := Version{Rows: rows}
	if info, err := os.Stat(s.path); err == nil {
		v.ModTime = info.ModTime()
	}
	return v, nil
}

// buildDSN produces a file DSN with pragmas suited to a read-mostly local
// database: WAL journaling and a busy timeout for the one-time write burst.
func buildDSN(path string) (string, error) {
	if path == ":memory:" {
		return ":memory:", nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	params := []string{
		"_busy_timeout=5000",
		"_journal_mode=WAL",
	}
	if strings.HasPrefix(path, "file:") {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + strings.Join(params, "&"), nil
	}
	return fmt.Sprintf("file:%s?%s", path, strings.Join(params, "&")), nil
}
