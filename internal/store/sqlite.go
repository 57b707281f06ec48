package store

import (
    "context"
    "database/sql"
    "embed"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    "github.com/golang-migrate/migrate/v4"
    _ "github.com/golang-migrate/migrate/v4/database/sqlite3"
    "github.com/golang-migrate/migrate/v4/source/iofs"
    "github.com/jmoiron/sqlx"
    _ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type sqlite struct {
    db *sqlx.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema migrations.
func OpenSQLite(path string) (BestScores, error) {
    if dir := filepath.Dir(path); dir != "." && dir != "" {
        if err := os.MkdirAll(dir, 0o755); err != nil {
            return nil, fmt.Errorf("mkdir %s: %w", dir, err)
        }
    }
    if err := migrateUp(path); err != nil {
        return nil, err
    }
    db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
    if err != nil {
        return nil, fmt.Errorf("open %s: %w", path, err)
    }
    if err := db.Ping(); err != nil {
        _ = db.Close()
        return nil, fmt.Errorf("ping %s: %w", path, err)
    }
    return &sqlite{db: db}, nil
}

func migrateUp(path string) error {
    src, err := iofs.New(migrations, "migrations")
    if err != nil {
        return fmt.Errorf("load migrations: %w", err)
    }
    m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+path)
    if err != nil {
        return fmt.Errorf("init migrations: %w", err)
    }
    defer m.Close()
    if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
        return fmt.Errorf("apply migrations: %w", err)
    }
    return nil
}

func (s *sqlite) Best(ctx context.Context, key string) (int, bool, error) {
    var moves int
    err := s.db.GetContext(ctx, &moves, `SELECT moves FROM best_scores WHERE key = ?`, key)
    if errors.Is(err, sql.ErrNoRows) {
        return 0, false, nil
    }
    if err != nil {
        return 0, false, fmt.Errorf("query best %s: %w", key, err)
    }
    return moves, true, nil
}

func (s *sqlite) Record(ctx context.Context, key string, moves int) (bool, error) {
    if moves <= 0 {
        return false, fmt.Errorf("%w: %d", ErrInvalidScore, moves)
    }
    res, err := s.db.ExecContext(ctx, `
        INSERT INTO best_scores (key, moves, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET moves = excluded.moves, updated_at = excluded.updated_at
        WHERE excluded.moves < best_scores.moves`,
        key, moves, time.Now().UTC(),
    )
    if err != nil {
        return false, fmt.Errorf("record best %s: %w", key, err)
    }
    n, err := res.RowsAffected()
    if err != nil {
        return false, fmt.Errorf("record best %s: %w", key, err)
    }
    return n > 0, nil
}

func (s *sqlite) Close() error { return s.db.Close() }
