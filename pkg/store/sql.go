//go:build !wasm

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// sqlStore implements Store over database/sql. SQLiteStore and
// PostgresStore differ only in driver and dialect.
type sqlStore struct {
	db *sql.DB
	d  dialect
}

func (s *sqlStore) exec(query string, args ...any) (sql.Result, error) {
	return s.db.Exec(s.d.bind(query), args...)
}

// AddDocument stores a document record.
func (s *sqlStore) AddDocument(id types.BlobID, size int64) error {
	_, err := s.exec("INSERT INTO documents (id, size) VALUES (?, ?) ON CONFLICT DO NOTHING", id.Hex(), size)
	if err != nil {
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// DocumentExists checks if a document has already been linted.
func (s *sqlStore) DocumentExists(id types.BlobID) (bool, error) {
	var count int
	err := s.db.QueryRow(s.d.bind("SELECT COUNT(*) FROM documents WHERE id = ?"), id.Hex()).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking document existence: %w", err)
	}
	return count > 0, nil
}

// AddProvenance associates provenance with a document.
func (s *sqlStore) AddProvenance(id types.BlobID, prov types.Provenance) error {
	kind, path, data, err := encodeProvenance(prov)
	if err != nil {
		return err
	}
	_, err = s.exec(`
		INSERT INTO provenance (document_id, type, path, data_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, id.Hex(), kind, path, data)
	if err != nil {
		return fmt.Errorf("inserting provenance: %w", err)
	}
	return nil
}

// AddMessages replaces the messages of a document in one transaction.
func (s *sqlStore) AddMessages(id types.BlobID, messages []types.Message) error {
	exists, err := s.DocumentExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("adding messages for %s: %w", id.Short(), ErrNotFound)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(s.d.bind("DELETE FROM messages WHERE document_id = ?"), id.Hex()); err != nil {
		return fmt.Errorf("clearing messages: %w", err)
	}

	stmt, err := tx.Prepare(s.d.bind(`
		INSERT INTO messages (document_id, seq, line, col, kind, severity, params_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range messages {
		params, err := json.Marshal(m.Params)
		if err != nil {
			return fmt.Errorf("marshaling params: %w", err)
		}
		_, err = stmt.Exec(id.Hex(), i, m.Position.Line, m.Position.Column, m.Kind.Name(), m.Severity.String(), string(params))
		if err != nil {
			return fmt.Errorf("inserting message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetMessages retrieves the messages of a document in report order.
func (s *sqlStore) GetMessages(id types.BlobID) ([]types.Message, error) {
	exists, err := s.DocumentExists(id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("document %s: %w", id.Short(), ErrNotFound)
	}

	rows, err := s.db.Query(s.d.bind(`
		SELECT line, col, kind, severity, params_json
		FROM messages
		WHERE document_id = ?
		ORDER BY seq
	`), id.Hex())
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	messages := []types.Message{}
	for rows.Next() {
		var (
			m                      types.Message
			kind, severity, params string
		)
		if err := rows.Scan(&m.Position.Line, &m.Position.Column, &kind, &severity, &params); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		if err := m.Kind.UnmarshalText([]byte(kind)); err != nil {
			return nil, fmt.Errorf("parsing message kind: %w", err)
		}
		if m.Severity, err = types.ParseSeverity(severity); err != nil {
			return nil, fmt.Errorf("parsing message severity: %w", err)
		}
		if err := json.Unmarshal([]byte(params), &m.Params); err != nil {
			return nil, fmt.Errorf("unmarshaling params: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return messages, nil
}

// GetDocuments lists every document with its message counts.
func (s *sqlStore) GetDocuments() ([]Document, error) {
	rows, err := s.db.Query(s.d.bind(`
		SELECT d.id, d.size,
		       COUNT(m.seq),
		       COALESCE(SUM(CASE WHEN m.severity = ? THEN 1 ELSE 0 END), 0)
		FROM documents d
		LEFT JOIN messages m ON m.document_id = d.id
		GROUP BY d.id, d.size
		ORDER BY d.id
	`), types.SeverityError.String())
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Size, &doc.Messages, &doc.Errors); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// GetProvenance retrieves every provenance record of a document.
func (s *sqlStore) GetProvenance(id types.BlobID) ([]types.Provenance, error) {
	rows, err := s.db.Query(s.d.bind(`
		SELECT type, data_json FROM provenance WHERE document_id = ? ORDER BY id
	`), id.Hex())
	if err != nil {
		return nil, fmt.Errorf("querying provenance: %w", err)
	}
	defer rows.Close()

	var provs []types.Provenance
	for rows.Next() {
		var kind, data string
		if err := rows.Scan(&kind, &data); err != nil {
			return nil, fmt.Errorf("scanning provenance: %w", err)
		}
		prov, err := decodeProvenance(kind, data)
		if err != nil {
			return nil, err
		}
		provs = append(provs, prov)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating provenance: %w", err)
	}
	if len(provs) == 0 {
		return nil, fmt.Errorf("provenance of %s: %w", id.Short(), ErrNotFound)
	}
	return provs, nil
}

// Stats summarizes the store.
func (s *sqlStore) Stats() (Stats, error) {
	stats := Stats{BySeverity: make(map[types.Severity]int)}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&stats.Documents); err != nil {
		return stats, fmt.Errorf("counting documents: %w", err)
	}

	rows, err := s.db.Query("SELECT severity, COUNT(*) FROM messages GROUP BY severity")
	if err != nil {
		return stats, fmt.Errorf("counting messages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return stats, fmt.Errorf("scanning message count: %w", err)
		}
		sev, err := types.ParseSeverity(name)
		if err != nil {
			return stats, err
		}
		stats.BySeverity[sev] = count
		stats.Messages += count
	}
	return stats, rows.Err()
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	return s.db.Close()
}

// newSQLStore creates the schema on an opened database.
func newSQLStore(db *sql.DB, d dialect) (*sqlStore, error) {
	if err := CreateSchema(db, d); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &sqlStore{db: db, d: d}, nil
}
