//go:build !wasm

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// dialect holds what differs between the SQL backends.
type dialect struct {
	name string
	// serial is the column type of an auto-incrementing key.
	serial string
	// numbered placeholders ($1, $2) instead of ?.
	numbered bool
}

var (
	sqliteDialect   = dialect{name: "sqlite", serial: "INTEGER PRIMARY KEY AUTOINCREMENT"}
	postgresDialect = dialect{name: "postgres", serial: "BIGSERIAL PRIMARY KEY", numbered: true}
)

// bind rewrites ? placeholders for the dialect.
func (d dialect) bind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB, d dialect) error {
	if err := createSchemaVersionTable(db, d); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	statements := []struct{ what, sql string }{
		{"documents table", `
			CREATE TABLE IF NOT EXISTS documents (
				id TEXT PRIMARY KEY NOT NULL,
				size BIGINT NOT NULL
			)`},
		{"messages table", `
			CREATE TABLE IF NOT EXISTS messages (
				document_id TEXT NOT NULL REFERENCES documents(id),
				seq INTEGER NOT NULL,
				line INTEGER NOT NULL,
				col INTEGER NOT NULL,
				kind TEXT NOT NULL,
				severity TEXT NOT NULL,
				params_json TEXT NOT NULL,
				PRIMARY KEY (document_id, seq)
			)`},
		{"provenance table", fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS provenance (
				id %s,
				document_id TEXT NOT NULL REFERENCES documents(id),
				type TEXT NOT NULL,
				path TEXT NOT NULL,
				data_json TEXT NOT NULL,
				UNIQUE(document_id, type, data_json)
			)`, d.serial)},
		{"provenance index", `CREATE INDEX IF NOT EXISTS idx_provenance_document_id ON provenance(document_id)`},
	}
	for _, s := range statements {
		if _, err := db.Exec(s.sql); err != nil {
			return fmt.Errorf("creating %s: %w", s.what, err)
		}
	}
	return nil
}

func createSchemaVersionTable(db *sql.DB, d dialect) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	var version int
	err = db.QueryRow("SELECT version FROM schema_version").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.Exec(d.bind("INSERT INTO schema_version (version) VALUES (?)"), SchemaVersion)
		return err
	case err != nil:
		return err
	case version != SchemaVersion:
		return fmt.Errorf("database has schema version %d, want %d", version, SchemaVersion)
	}
	return nil
}
