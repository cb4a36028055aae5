// Package history remembers which repository paths were searched so the
// search box can offer them again. Only paths are stored; fetched issue data
// is never written to disk.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	appErrors "issuedeck/internal/errors"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// FileName is the default database file name under the config directory.
const FileName = "history.db"

const schema = `
CREATE TABLE IF NOT EXISTS searches (
	path       TEXT PRIMARY KEY,
	last_used  INTEGER NOT NULL,
	use_count  INTEGER NOT NULL DEFAULT 1
)`

// Entry is one remembered repository path.
type Entry struct {
	Path     string
	LastUsed time.Time
	Uses     int
}

// Store is a sqlite-backed list of recently searched repository paths.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates (or opens) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, historyError("history path is empty", nil)
	}
	//nolint:gosec // G301: User config directory needs standard permissions
	if err := os.MkdirAll(filepath.Dir(trimmed), 0755); err != nil {
		return nil, historyError("create history directory", err)
	}

	db, err := sql.Open("sqlite", buildDSN(trimmed))
	if err != nil {
		return nil, historyError("open history db", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, historyError("ping history db", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, historyError("create history schema", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// buildDSN creates a read-write WAL DSN for the given path.
func buildDSN(dbPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(dbPath),
	}
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record marks path as used now.
func (s *Store) Record(ctx context.Context, path string) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (path, last_used, use_count) VALUES (?, ?, 1)
		ON CONFLICT(path) DO UPDATE SET
			last_used = excluded.last_used,
			use_count = searches.use_count + 1
	`, trimmed, s.now().UnixNano())
	if err != nil {
		return historyError(fmt.Sprintf("record %s", trimmed), err)
	}
	return nil
}

// Recent returns up to limit paths, most recently used first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, last_used, use_count
		FROM searches
		ORDER BY last_used DESC, path
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, historyError("query recent searches", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entries []Entry
	for rows.Next() {
		var (
			e    Entry
			nano int64
		)
		if err := rows.Scan(&e.Path, &nano, &e.Uses); err != nil {
			return nil, historyError("scan recent search", err)
		}
		e.LastUsed = time.Unix(0, nano)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, historyError("iterate recent searches", err)
	}
	return entries, nil
}

// Prune keeps only the keep most recent paths.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM searches
		WHERE path NOT IN (
			SELECT path FROM searches ORDER BY last_used DESC, path LIMIT ?
		)
	`, keep)
	if err != nil {
		return historyError("prune searches", err)
	}
	return nil
}

// Paths is a convenience wrapper around Recent returning just the paths.
func (s *Store) Paths(ctx context.Context, limit int) ([]string, error) {
	entries, err := s.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	return paths, nil
}

func historyError(msg string, err error) error {
	return appErrors.New(appErrors.CodeHistoryFailed, msg, err)
}
