package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// These tests build with and without the wasm tag.

func TestNew_Memory(t *testing.T) {
	s, err := New(Config{Path: MemoryPath})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &MemoryStore{}, s)

	id := types.ComputeBlobID([]byte("<br/>"))
	require.NoError(t, s.AddDocument(id, 5))
	exists, err := s.DocumentExists(id)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIsPostgresURL(t *testing.T) {
	assert.True(t, IsPostgresURL("postgres://user@localhost/db"))
	assert.True(t, IsPostgresURL("postgresql://localhost/db"))
	assert.False(t, IsPostgresURL("results.db"))
	assert.False(t, IsPostgresURL(MemoryPath))
}
