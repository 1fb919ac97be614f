// Package storage provides the task stores: the human-readable flat task
// file and a SQLite table for users who prefer a database file.
package storage

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xvierd/pomo-cli/internal/domain"
	"github.com/xvierd/pomo-cli/internal/ports"
)

// recordDelimiter separates task records in the task file.
const recordDelimiter = "---"

// Task file keys, in the order they are written.
const (
	keyTitle              = "title"
	keyPomodorosExpected  = "pomodoros_expected"
	keyPomodorosCompleted = "pomodoros_completed"
	keyCompleted          = "completed"
)

// fileStore implements ports.TaskStore on the flat task file format.
type fileStore struct {
	path string
}

// Ensure fileStore implements ports.TaskStore.
var _ ports.TaskStore = (*fileStore)(nil)

// NewFileStore creates a store backed by the task file at path.
func NewFileStore(path string) ports.TaskStore {
	return &fileStore{path: path}
}

// Load reads and parses the task file. A missing or unreadable file yields
// an empty list.
func (s *fileStore) Load(ctx context.Context) []domain.Task {
	data, err := os.ReadFile(s.path)
	if err != nil {
		slog.Debug("task file not loaded, starting empty", "path", s.path, "err", err)
		return []domain.Task{}
	}
	return ParseTasks(string(data))
}

// Save serializes tasks and replaces the task file in one rename.
func (s *fileStore) Save(ctx context.Context, tasks []domain.Task) error {
	if err := writeFileAtomic(s.path, []byte(FormatTasks(tasks))); err != nil {
		return fmt.Errorf("failed to save tasks to %s: %w", s.path, err)
	}
	return nil
}

// Location returns the task file path.
func (s *fileStore) Location() string {
	return s.path
}

// Close is a no-op for the file store.
func (s *fileStore) Close() error {
	return nil
}

// ParseTasks parses the task file format. Records are separated by lines
// holding only "---"; each line inside a record is "key: value", split on
// the first colon. Numbers and booleans that fail to parse become zero.
func ParseTasks(content string) []domain.Task {
	tasks := []domain.Task{}

	var (
		current domain.Task
		fields  int
	)
	flush := func() {
		if fields > 0 {
			tasks = append(tasks, current)
		}
		current = domain.Task{}
		fields = 0
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == recordDelimiter {
			flush()
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case keyTitle:
			current.Title = value
		case keyPomodorosExpected:
			current.PomodorosExpected = parseCount(value)
		case keyPomodorosCompleted:
			current.PomodorosCompleted = parseCount(value)
		case keyCompleted:
			current.Completed, _ = strconv.ParseBool(value)
		default:
			continue
		}
		fields++
	}
	flush()

	return tasks
}

// FormatTasks serializes tasks in the task file format, ending with a
// final delimiter line. An empty list serializes to the delimiter alone.
func FormatTasks(tasks []domain.Task) string {
	var b strings.Builder
	for _, t := range tasks {
		fmt.Fprintf(&b, "%s\n%s: %s\n%s: %d\n%s: %d\n%s: %t\n",
			recordDelimiter,
			keyTitle, singleLine(t.Title),
			keyPomodorosExpected, t.PomodorosExpected,
			keyPomodorosCompleted, t.PomodorosCompleted,
			keyCompleted, t.Completed,
		)
	}
	b.WriteString(recordDelimiter)
	return b.String()
}

// parseCount parses a non-negative count, defaulting to zero.
func parseCount(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// lineBreaks are flattened so a title cannot break its record.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func singleLine(s string) string {
	return lineBreaks.Replace(s)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmpName, info.Mode().Perm())
	} else {
		_ = os.Chmod(tmpName, 0o644)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
