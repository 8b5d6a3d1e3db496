package explore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/html5lint/pkg/store"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

var (
	docA = types.ComputeBlobID([]byte("a"))
	docB = types.ComputeBlobID([]byte("b"))
	docC = types.ComputeBlobID([]byte("c"))
)

// seedStore fills s with three documents:
// a.html with an error and an info message, b.html with one warning
// and c, which has no provenance and no messages.
func seedStore(t *testing.T, s store.Store) {
	t.Helper()
	add := func(id types.BlobID, path string, msgs ...types.Message) {
		require.NoError(t, s.AddDocument(id, 100))
		if path != "" {
			require.NoError(t, s.AddProvenance(id, types.FileProvenance{FilePath: path}))
		}
		require.NoError(t, s.AddMessages(id, msgs))
	}
	add(docA, "a.html",
		types.NewMessage(types.KindDocumentType, types.Start, types.Params{Value: "<!doctype html5>"}),
		types.NewMessage(types.KindOptionalTag, types.Position{Line: 2, Column: 1}, types.Params{Tag: "html", Opening: true}),
	)
	add(docB, "b.html",
		types.NewMessage(types.KindProtocol, types.Position{Line: 3, Column: 10}, types.Params{Value: "http"}),
	)
	add(docC, "")
}

func newSeededData(t *testing.T) *exploreData {
	t.Helper()
	s, err := store.New(store.Config{Path: store.MemoryPath})
	require.NoError(t, err)
	seedStore(t, s)

	data, err := loadFromStore(s)
	require.NoError(t, err)
	t.Cleanup(func() { data.close() })
	return data
}

func rowByID(rows []*documentRow, id types.BlobID) *documentRow {
	for _, r := range rows {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func TestLoadFromStore(t *testing.T) {
	data := newSeededData(t)
	require.Len(t, data.documents, 3)

	a := rowByID(data.documents, docA)
	require.NotNil(t, a)
	assert.Equal(t, "a.html", a.Path)
	assert.Len(t, a.Messages, 2)
	assert.Equal(t, 1, a.count(filterError))
	assert.Equal(t, 1, a.count(filterInfo))
	assert.Equal(t, 2, a.count(filterAll))

	c := rowByID(data.documents, docC)
	require.NotNil(t, c)
	assert.Equal(t, docC.Short(), c.Path, "documents without provenance show their blob id")
	assert.Empty(t, c.Messages)
}

func TestLoadData_SQLite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultStoreName)

	s, err := store.NewSQLite(path)
	require.NoError(t, err)
	seedStore(t, s)
	require.NoError(t, s.Close())

	// A directory resolves to the default database name.
	data, err := loadData(dir)
	require.NoError(t, err)
	defer data.close()
	assert.Len(t, data.documents, 3)
}

func TestLoadData_Missing(t *testing.T) {
	_, err := loadData(filepath.Join(t.TempDir(), "missing.db"))
	assert.ErrorContains(t, err, "result store not found")
}

func TestSeverityFilter(t *testing.T) {
	data := newSeededData(t)

	assert.Equal(t, filterError, filterAll.next())
	assert.Equal(t, filterAll, filterInfo.next())
	assert.Equal(t, "All", filterAll.label())
	assert.Equal(t, "Warning", filterWarning.label())

	assert.Len(t, filterAll.visibleDocuments(data.documents), 3)

	warnings := filterWarning.visibleDocuments(data.documents)
	require.Len(t, warnings, 1)
	assert.Equal(t, docB, warnings[0].ID)

	a := rowByID(data.documents, docA)
	infos := filterInfo.visibleMessages(a)
	require.Len(t, infos, 1)
	assert.Equal(t, types.KindOptionalTag, infos[0].Kind)
	assert.Nil(t, filterAll.visibleMessages(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "index.html", truncate("index.html", 20))
	assert.Equal(t, "…/index.html", truncate("site/pages/index.html", 12))
}
