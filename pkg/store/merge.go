//go:build !wasm

package store

import (
	"database/sql"
	"fmt"
	"os"
)

// MergeConfig configures the merge operation.
type MergeConfig struct {
	// SourcePaths are the SQLite database files to merge from.
	SourcePaths []string
	// DestPath is the destination database file, created if missing.
	DestPath string
}

// MergeStats tracks merge operation statistics.
type MergeStats struct {
	DocumentsMerged  int
	MessagesMerged   int
	ProvenanceMerged int
	SourcesProcessed int
}

// Merge combines several result databases into one. Rows already present in
// the destination are skipped, so merging the same source twice is harmless.
func Merge(cfg MergeConfig) (*MergeStats, error) {
	if len(cfg.SourcePaths) == 0 {
		return nil, fmt.Errorf("no source databases specified")
	}
	if cfg.DestPath == "" {
		return nil, fmt.Errorf("destination path is required")
	}

	dest, err := NewSQLite(cfg.DestPath)
	if err != nil {
		return nil, fmt.Errorf("opening destination database: %w", err)
	}
	defer dest.Close()

	stats := &MergeStats{}
	for _, sourcePath := range cfg.SourcePaths {
		sourceStats, err := mergeFrom(dest.db, sourcePath)
		if err != nil {
			return stats, fmt.Errorf("merging from %s: %w", sourcePath, err)
		}
		stats.DocumentsMerged += sourceStats.DocumentsMerged
		stats.MessagesMerged += sourceStats.MessagesMerged
		stats.ProvenanceMerged += sourceStats.ProvenanceMerged
		stats.SourcesProcessed++
	}
	return stats, nil
}

// mergeFrom copies one source database into the destination in a single transaction.
func mergeFrom(destDB *sql.DB, sourcePath string) (*MergeStats, error) {
	// sql.Open would silently create an empty database.
	if _, err := os.Stat(sourcePath); err != nil {
		return nil, err
	}
	sourceDB, err := sql.Open("sqlite", sourcePath)
	if err != nil {
		return nil, fmt.Errorf("opening source database: %w", err)
	}
	defer sourceDB.Close()

	tx, err := destDB.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	stats := &MergeStats{}
	steps := []struct {
		table  string
		query  string
		insert string
		count  *int
	}{
		{
			"documents",
			"SELECT id, size FROM documents",
			"INSERT INTO documents (id, size) VALUES (?, ?) ON CONFLICT DO NOTHING",
			&stats.DocumentsMerged,
		},
		{
			"messages",
			"SELECT document_id, seq, line, col, kind, severity, params_json FROM messages",
			`INSERT INTO messages (document_id, seq, line, col, kind, severity, params_json)
			 VALUES (?, ?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
			&stats.MessagesMerged,
		},
		{
			"provenance",
			"SELECT document_id, type, path, data_json FROM provenance",
			"INSERT INTO provenance (document_id, type, path, data_json) VALUES (?, ?, ?, ?) ON CONFLICT DO NOTHING",
			&stats.ProvenanceMerged,
		},
	}
	for _, step := range steps {
		n, err := copyRows(tx, sourceDB, step.query, step.insert)
		if err != nil {
			return nil, fmt.Errorf("merging %s: %w", step.table, err)
		}
		*step.count = n
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	return stats, nil
}

// copyRows runs query on the source and feeds every row to insert, returning
// how many rows were actually inserted.
func copyRows(tx *sql.Tx, sourceDB *sql.DB, query, insert string) (int, error) {
	rows, err := sourceDB.Query(query)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(insert)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}

	count := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return count, err
		}
		result, err := stmt.Exec(values...)
		if err != nil {
			return count, err
		}
		affected, _ := result.RowsAffected()
		if affected > 0 {
			count++
		}
	}
	return count, rows.Err()
}
