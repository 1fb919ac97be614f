package storage

import (
	"path/filepath"
	"strings"

	"github.com/xvierd/pomo-cli/internal/ports"
)

// Open picks a task store for path by its extension: .db, .sqlite and
// .sqlite3 use SQLite, anything else is a flat task file.
func Open(path string) (ports.TaskStore, error) {
	if IsDatabasePath(path) {
		return NewSQLiteStore(path)
	}
	return NewFileStore(path), nil
}

// IsDatabasePath reports whether path names a SQLite task database.
func IsDatabasePath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
