package store

import (
	"errors"
	"strings"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// ErrNotFound is returned when a document is not in the store.
var ErrNotFound = errors.New("not found")

// MemoryPath selects the in-memory store.
const MemoryPath = ":memory:"

// IsPostgresURL reports whether path is a PostgreSQL connection URL.
func IsPostgresURL(path string) bool {
	return strings.HasPrefix(path, "postgres://") || strings.HasPrefix(path, "postgresql://")
}

// Store provides persistence for lint results.
// This interface abstracts the underlying storage implementation,
// allowing for different backends (memory, SQLite, PostgreSQL).
type Store interface {
	// AddDocument records a linted document. Adding it again is a no-op.
	AddDocument(id types.BlobID, size int64) error

	// DocumentExists checks if a document has already been linted.
	DocumentExists(id types.BlobID) (bool, error)

	// AddProvenance associates a location with a document.
	AddProvenance(id types.BlobID, prov types.Provenance) error

	// AddMessages replaces the messages of a document.
	AddMessages(id types.BlobID, messages []types.Message) error

	// GetMessages returns the messages of a document in report order.
	GetMessages(id types.BlobID) ([]types.Message, error)

	// GetDocuments lists every document with its message counts, ordered by id.
	GetDocuments() ([]Document, error)

	// GetProvenance returns every location a document was found at.
	GetProvenance(id types.BlobID) ([]types.Provenance, error)

	// Stats summarizes the store.
	Stats() (Stats, error)

	// Close releases the backend.
	Close() error
}

// Document is a stored document with message counts.
type Document struct {
	ID       types.BlobID
	Size     int64
	Messages int
	Errors   int // messages with Error severity
}

// Stats summarizes a store.
type Stats struct {
	Documents  int
	Messages   int
	BySeverity map[types.Severity]int
}

// Config for store initialization.
type Config struct {
	// Path selects the backend:
	//   ":memory:"                in-process maps
	//   "postgres://..."          PostgreSQL
	//   anything else             a SQLite database file
	Path string
}
