package store

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
// It backs ":memory:" runs and WASM builds.
type MemoryStore struct {
	mu         sync.RWMutex
	sizes      map[types.BlobID]int64
	messages   map[types.BlobID][]types.Message
	provenance map[types.BlobID][]types.Provenance
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		sizes:      make(map[types.BlobID]int64),
		messages:   make(map[types.BlobID][]types.Message),
		provenance: make(map[types.BlobID][]types.Provenance),
	}
}

// AddDocument stores a document record.
func (m *MemoryStore) AddDocument(id types.BlobID, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sizes[id]; exists {
		return nil
	}
	m.sizes[id] = size
	return nil
}

// DocumentExists checks if a document has already been linted.
func (m *MemoryStore) DocumentExists(id types.BlobID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.sizes[id]
	return exists, nil
}

// AddProvenance associates provenance with a document. Identical records are kept once.
func (m *MemoryStore) AddProvenance(id types.BlobID, prov types.Provenance) error {
	if _, _, _, err := encodeProvenance(prov); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sizes[id]; !exists {
		return fmt.Errorf("adding provenance for %s: %w", id.Short(), ErrNotFound)
	}
	if slices.ContainsFunc(m.provenance[id], func(p types.Provenance) bool { return sameProvenance(p, prov) }) {
		return nil
	}
	m.provenance[id] = append(m.provenance[id], prov)
	return nil
}

// sameProvenance compares through the JSON form, since GitProvenance holds a pointer.
func sameProvenance(a, b types.Provenance) bool {
	ka, _, da, errA := encodeProvenance(a)
	kb, _, db, errB := encodeProvenance(b)
	return errA == nil && errB == nil && ka == kb && da == db
}

// AddMessages replaces the messages of a document.
func (m *MemoryStore) AddMessages(id types.BlobID, messages []types.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sizes[id]; !exists {
		return fmt.Errorf("adding messages for %s: %w", id.Short(), ErrNotFound)
	}
	m.messages[id] = slices.Clone(messages)
	return nil
}

// GetMessages retrieves the messages of a document.
func (m *MemoryStore) GetMessages(id types.BlobID) ([]types.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, exists := m.sizes[id]; !exists {
		return nil, fmt.Errorf("document %s: %w", id.Short(), ErrNotFound)
	}
	result := slices.Clone(m.messages[id])
	if result == nil {
		result = []types.Message{}
	}
	return result, nil
}

// GetDocuments lists documents ordered by id.
func (m *MemoryStore) GetDocuments() ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := slices.SortedFunc(maps.Keys(m.sizes), func(a, b types.BlobID) int {
		return bytes.Compare(a[:], b[:])
	})
	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		doc := Document{ID: id, Size: m.sizes[id], Messages: len(m.messages[id])}
		for _, msg := range m.messages[id] {
			if msg.Severity == types.SeverityError {
				doc.Errors++
			}
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// GetProvenance retrieves every provenance record of a document.
func (m *MemoryStore) GetProvenance(id types.BlobID) ([]types.Provenance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	provs := m.provenance[id]
	if len(provs) == 0 {
		return nil, fmt.Errorf("provenance of %s: %w", id.Short(), ErrNotFound)
	}
	return slices.Clone(provs), nil
}

// Stats summarizes the store.
func (m *MemoryStore) Stats() (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := Stats{Documents: len(m.sizes), BySeverity: make(map[types.Severity]int)}
	for _, msgs := range m.messages {
		stats.Messages += len(msgs)
		for _, msg := range msgs {
			stats.BySeverity[msg.Severity]++
		}
	}
	return stats, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
