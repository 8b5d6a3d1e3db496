package explore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/praetorian-inc/html5lint/pkg/store"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// DefaultStoreName is the file looked up when a directory is explored.
const DefaultStoreName = "html5lint.db"

// exploreData holds all loaded data for the TUI.
type exploreData struct {
	store     store.Store
	documents []*documentRow
}

// documentRow is one linted document with its messages.
type documentRow struct {
	ID         types.BlobID
	Size       int64
	Path       string
	Provenance []types.Provenance
	Messages   []types.Message
	counts     map[types.Severity]int
}

// count returns the number of messages visible under filter.
func (d *documentRow) count(filter severityFilter) int {
	if filter == filterAll {
		return len(d.Messages)
	}
	return d.counts[filter.severity()]
}

// loadData opens a result store. storePath may be a database file, a
// postgres URL or a directory holding DefaultStoreName.
func loadData(storePath string) (*exploreData, error) {
	if !store.IsPostgresURL(storePath) {
		info, err := os.Stat(storePath)
		if err != nil {
			return nil, fmt.Errorf("result store not found: %s", storePath)
		}
		if info.IsDir() {
			storePath = filepath.Join(storePath, DefaultStoreName)
		}
	}

	s, err := store.New(store.Config{Path: storePath})
	if err != nil {
		return nil, fmt.Errorf("opening result store: %w", err)
	}

	data, err := loadFromStore(s)
	if err != nil {
		s.Close()
		return nil, err
	}
	return data, nil
}

// loadFromStore reads every document of s. The store is owned by the
// returned data afterwards.
func loadFromStore(s store.Store) (*exploreData, error) {
	docs, err := s.GetDocuments()
	if err != nil {
		return nil, fmt.Errorf("retrieving documents: %w", err)
	}

	rows := make([]*documentRow, 0, len(docs))
	for _, doc := range docs {
		messages, err := s.GetMessages(doc.ID)
		if err != nil {
			return nil, fmt.Errorf("retrieving messages of %s: %w", doc.ID.Short(), err)
		}
		provs, err := s.GetProvenance(doc.ID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("retrieving provenance of %s: %w", doc.ID.Short(), err)
		}

		row := &documentRow{
			ID:         doc.ID,
			Size:       doc.Size,
			Path:       doc.ID.Short(),
			Provenance: provs,
			Messages:   messages,
			counts:     make(map[types.Severity]int),
		}
		if len(provs) > 0 {
			row.Path = provs[0].Path()
		}
		for _, m := range messages {
			row.counts[m.Severity]++
		}
		rows = append(rows, row)
	}

	return &exploreData{store: s, documents: rows}, nil
}

func (d *exploreData) close() error {
	return d.store.Close()
}
