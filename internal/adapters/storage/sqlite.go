package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
	_ "modernc.org/sqlite"
)

// sqliteStore implements ports.TaskStore with one SQLite table. Row order
// is kept in the position column.
type sqliteStore struct {
	db   *sql.DB
	path string
}

// Ensure sqliteStore implements ports.TaskStore.
var _ ports.TaskStore = (*sqliteStore)(nil)

// NewSQLiteStore opens (or creates) the SQLite database at path.
func NewSQLiteStore(path string) (ports.TaskStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	store := &sqliteStore{db: db, path: path}
	if err := store.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// NewMemoryStore creates an in-memory SQLite store for testing.
func NewMemoryStore() (ports.TaskStore, error) {
	return NewSQLiteStore(":memory:")
}

// Migrate creates the database schema.
func (s *sqliteStore) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		title TEXT NOT NULL,
		pomodoros_expected INTEGER NOT NULL DEFAULT 0,
		pomodoros_completed INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Load returns all tasks ordered by position. Query failures yield an
// empty list.
func (s *sqliteStore) Load(ctx context.Context) []domain.Task {
	tasks, err := s.load(ctx)
	if err != nil {
		slog.Debug("task database not loaded, starting empty", "path", s.path, "err", err)
		return []domain.Task{}
	}
	return tasks
}

func (s *sqliteStore) load(ctx context.Context) ([]domain.Task, error) {
	query := `
		SELECT title, pomodoros_expected, pomodoros_completed, completed
		FROM tasks
		ORDER BY position
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.Title, &t.PomodorosExpected, &t.PomodorosCompleted, &t.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if t.PomodorosExpected < 0 {
			t.PomodorosExpected = 0
		}
		if t.PomodorosCompleted < 0 {
			t.PomodorosCompleted = 0
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	return tasks, nil
}

// Save replaces every stored row with tasks inside one transaction.
func (s *sqliteStore) Save(ctx context.Context, tasks []domain.Task) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	insert := `
		INSERT INTO tasks (id, position, title, pomodoros_expected, pomodoros_completed, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	for i, t := range tasks {
		if _, err := tx.ExecContext(ctx, insert,
			uuid.New().String(),
			i,
			t.Title,
			t.PomodorosExpected,
			t.PomodorosCompleted,
			t.Completed,
		); err != nil {
			return fmt.Errorf("failed to save task %q: %w", t.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}
	return nil
}

// Location returns the database path.
func (s *sqliteStore) Location() string {
	return s.path
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}
