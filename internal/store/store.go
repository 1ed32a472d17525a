// Package store persists organizations, projects, tasks and comments in SQLite.
//
// Two drivers are supported: "sqlite3" (mattn/go-sqlite3, cgo) and "sqlite"
// (modernc.org/sqlite, pure Go). Both see the same schema. Timestamps are
// stored as fixed-width UTC text so that ordering by column is chronological
// on either driver.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"minipm/internal/logging"
)

var (
	// ErrNotFound is returned when a row does not exist or is outside the
	// caller's organization.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when an organization identifier matches
	// several organizations by name.
	ErrAmbiguous = errors.New("multiple organizations match")
	// ErrDuplicate is returned when a unique column would be violated.
	ErrDuplicate = errors.New("already exists")
)

const (
	timeLayout = "2006-01-02T15:04:05.000000000Z"
	dateLayout = "2006-01-02"
)

// Store is the SQLite-backed repository.
type Store struct {
	db     *sql.DB
	driver string
	path   string
	now    func() time.Time

	migration *MigrationResult
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for created/updated stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open opens (creating if needed) the database at path with the named driver
// and brings the schema up to date.
func Open(driver, path string, opts ...Option) (*Store, error) {
	timer := logging.StartTimer(logging.CategoryStore, "store.Open")
	defer timer.Stop()

	if driver == "" {
		driver = "sqlite3"
	}
	logging.Store("Opening %s database at %s", driver, path)

	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps :memory: databases alive and serialises writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			if strings.Contains(pragma, "foreign_keys") {
				db.Close()
				return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
			}
			logging.StoreDebug("%s failed: %v", pragma, err)
		}
	}

	s := &Store{db: db, driver: driver, path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	result, err := RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.migration = result

	logging.Store("Store ready (%s)", path)
	return s, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migration reports the migration run performed by Open.
func (s *Store) Migration() *MigrationResult {
	return s.migration
}

func (s *Store) initialize() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	logging.StoreDebug("Schema initialized (%d statements)", len(schema))
	return nil
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		// Rows written by hand or by older builds may use plain RFC 3339.
		return time.Parse(time.RFC3339Nano, v)
	}
	return t, nil
}

func nullTime(t *time.Time, layout string) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(layout), Valid: true}
}

func parseNullTime(v sql.NullString, layout string) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := time.Parse(layout, v.String)
	if err != nil && layout == timeLayout {
		t, err = time.Parse(time.RFC3339Nano, v.String)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid stored time %q: %w", v.String, err)
	}
	return &t, nil
}

// isUniqueViolation matches the constraint error text of both drivers.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type scanner interface {
	Scan(dest ...interface{}) error
}
