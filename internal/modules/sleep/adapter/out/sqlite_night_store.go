package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sleeptracker/internal/modules/sleep/domain"
	apperrors "sleeptracker/internal/platform/errors"

	_ "modernc.org/sqlite"
)

type SQLiteNightStore struct {
	db       *sql.DB
	watchers watchers
}

func NewSQLiteNightStore(dbPath string) (*SQLiteNightStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteNightStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteNightStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteNightStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS daily_sleep_quality_table (
  night_id INTEGER PRIMARY KEY AUTOINCREMENT,
  start_time_milli INTEGER NOT NULL,
  end_time_milli INTEGER NOT NULL,
  quality_rating INTEGER NOT NULL DEFAULT -1
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create nights table: %w", err)
	}
	return nil
}

func (s *SQLiteNightStore) Insert(ctx context.Context, night domain.Night) (domain.Night, error) {
	res, err := s.db.ExecContext(ctx, `
INSERT INTO daily_sleep_quality_table (start_time_milli, end_time_milli, quality_rating)
VALUES (?, ?, ?);
`, night.StartTimeMilli, night.EndTimeMilli, night.Quality)
	if err != nil {
		return domain.Night{}, fmt.Errorf("insert night: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Night{}, fmt.Errorf("read night id: %w", err)
	}
	night.ID = id
	s.watchers.notify()
	return night, nil
}

func (s *SQLiteNightStore) Update(ctx context.Context, night domain.Night) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE daily_sleep_quality_table
SET start_time_milli = ?, end_time_milli = ?, quality_rating = ?
WHERE night_id = ?;
`, night.StartTimeMilli, night.EndTimeMilli, night.Quality, night.ID)
	if err != nil {
		return fmt.Errorf("update night: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update night: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("night %d: %w", night.ID, apperrors.ErrNotFound)
	}
	s.watchers.notify()
	return nil
}

func (s *SQLiteNightStore) Get(ctx context.Context, id int64) (domain.Night, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT night_id, start_time_milli, end_time_milli, quality_rating
FROM daily_sleep_quality_table
WHERE night_id = ?;
`, id)
	return scanNight(row)
}

func (s *SQLiteNightStore) Latest(ctx context.Context) (domain.Night, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT night_id, start_time_milli, end_time_milli, quality_rating
FROM daily_sleep_quality_table
ORDER BY night_id DESC
LIMIT 1;
`)
	return scanNight(row)
}

func (s *SQLiteNightStore) List(ctx context.Context) ([]domain.Night, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT night_id, start_time_milli, end_time_milli, quality_rating
FROM daily_sleep_quality_table
ORDER BY night_id DESC;
`)
	if err != nil {
		return nil, fmt.Errorf("list nights: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Night, 0)
	for rows.Next() {
		n := domain.Night{}
		if err := rows.Scan(&n.ID, &n.StartTimeMilli, &n.EndTimeMilli, &n.Quality); err != nil {
			return nil, fmt.Errorf("scan night: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nights: %w", err)
	}
	return out, nil
}

func (s *SQLiteNightStore) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM daily_sleep_quality_table;`)
	if err != nil {
		return 0, fmt.Errorf("clear nights: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear nights: %w", err)
	}
	s.watchers.notify()
	return n, nil
}

func (s *SQLiteNightStore) Watch(fn func()) func() {
	return s.watchers.add(fn)
}

func scanNight(row *sql.Row) (domain.Night, error) {
	n := domain.Night{}
	err := row.Scan(&n.ID, &n.StartTimeMilli, &n.EndTimeMilli, &n.Quality)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Night{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.Night{}, fmt.Errorf("scan night: %w", err)
	}
	return n, nil
}
