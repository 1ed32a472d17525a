package store

import (
	"database/sql"
	"fmt"
	"time"

	"minipm/internal/logging"
)

// Schema versions:
// v1: organizations, projects, tasks, task_comments
// v2: organizations.contact_email
// v3: tasks.updated_at, tasks.assignee
const CurrentSchemaVersion = 3

// MigrationResult holds the result of a migration run.
type MigrationResult struct {
	FromVersion   int
	ToVersion     int
	MigrationsRun int
	Duration      time.Duration
}

// Migration adds one column to a table that predates it.
type Migration struct {
	Version int
	Table   string
	Column  string
	Def     string
}

// pendingMigrations handle databases whose tables exist but are missing
// newer columns. CREATE TABLE in schema.go already has them all.
var pendingMigrations = []Migration{
	{2, "organizations", "contact_email", "TEXT NOT NULL DEFAULT ''"},
	{3, "tasks", "updated_at", "TEXT NOT NULL DEFAULT ''"},
	{3, "tasks", "assignee", "TEXT NOT NULL DEFAULT ''"},
}

// RunMigrations applies outstanding column migrations and records the
// resulting schema version.
func RunMigrations(db *sql.DB) (*MigrationResult, error) {
	timer := logging.StartTimer(logging.CategoryStore, "RunMigrations")
	defer timer.Stop()

	start := time.Now()
	from, err := SchemaVersion(db)
	if err != nil {
		return nil, err
	}
	result := &MigrationResult{FromVersion: from, ToVersion: from}

	for _, m := range pendingMigrations {
		if !tableExists(db, m.Table) {
			logging.StoreDebug("Table missing, skipping migration: %s.%s", m.Table, m.Column)
			continue
		}
		if columnExists(db, m.Table, m.Column) {
			continue
		}
		query := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.Table, m.Column, m.Def)
		logging.StoreDebug("Executing migration: %s", query)
		if _, err := db.Exec(query); err != nil {
			return nil, fmt.Errorf("migration %s.%s failed: %w", m.Table, m.Column, err)
		}
		logging.Store("Migration applied: added %s.%s", m.Table, m.Column)
		result.MigrationsRun++
	}

	// Backfill rows written before updated_at existed.
	if _, err := db.Exec(`UPDATE tasks SET updated_at = created_at WHERE updated_at = ''`); err != nil {
		return nil, fmt.Errorf("failed to backfill tasks.updated_at: %w", err)
	}

	if from < CurrentSchemaVersion {
		if _, err := db.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
			CurrentSchemaVersion, formatTime(time.Now())); err != nil {
			return nil, fmt.Errorf("failed to record schema version: %w", err)
		}
		result.ToVersion = CurrentSchemaVersion
	}

	result.Duration = time.Since(start)
	logging.Store("Schema migrations complete: v%d -> v%d, applied=%d",
		result.FromVersion, result.ToVersion, result.MigrationsRun)
	return result, nil
}

// SchemaVersion returns the highest recorded schema version, 0 if none.
func SchemaVersion(db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// columnExists checks if a column exists in a table using PRAGMA table_info.
func columnExists(db *sql.DB, table, column string) bool {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		logging.StoreDebug("PRAGMA table_info(%s) failed: %v", table, err)
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var cid, notnull, pk int
		var name, ctype string
		var dflt interface{}
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false
		}
		if name == column {
			return true
		}
	}
	return false
}

// tableExists checks sqlite_master for a table.
func tableExists(db *sql.DB, table string) bool {
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
	return err == nil
}
