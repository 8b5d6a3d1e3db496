package enum

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// staticEnumerator yields fixed documents under fixed paths.
type staticEnumerator struct {
	docs [][2]string // path, content
	err  error
}

func (s staticEnumerator) Enumerate(ctx context.Context, callback func([]byte, types.BlobID, types.Provenance) error) error {
	for _, d := range s.docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		content := []byte(d[1])
		if err := callback(content, types.ComputeBlobID(content), types.FileProvenance{FilePath: d[0]}); err != nil {
			return err
		}
	}
	return s.err
}

func TestCombinedEnumerator_Empty(t *testing.T) {
	c := newCollector()
	require.NoError(t, NewCombinedEnumerator().Enumerate(context.Background(), c.callback(t)))
	assert.Empty(t, c.paths)
}

func TestCombinedEnumerator_DeduplicatesByBlobID(t *testing.T) {
	first := staticEnumerator{docs: [][2]string{{"a.html", "<p>same"}, {"b.html", "<p>b"}}}
	second := staticEnumerator{docs: [][2]string{{"copy/a.html", "<p>same"}, {"c.html", "<p>c"}}}

	combined := NewCombinedEnumerator(first, second)
	c := newCollector()
	require.NoError(t, combined.Enumerate(context.Background(), c.callback(t)))

	assert.Equal(t, []string{"a.html", "b.html", "c.html"}, c.paths)
	assert.Equal(t, 1, combined.Duplicates())

	// A second run starts from scratch.
	c = newCollector()
	require.NoError(t, combined.Enumerate(context.Background(), c.callback(t)))
	assert.Len(t, c.paths, 3)
	assert.Equal(t, 1, combined.Duplicates())
}

func TestCombinedEnumerator_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	combined := NewCombinedEnumerator(
		staticEnumerator{docs: [][2]string{{"a.html", "<p>a"}}, err: boom},
		staticEnumerator{docs: [][2]string{{"b.html", "<p>b"}}},
	)
	c := newCollector()
	err := combined.Enumerate(context.Background(), c.callback(t))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"a.html"}, c.paths)
}

func TestCombinedEnumerator_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	combined := NewCombinedEnumerator(staticEnumerator{docs: [][2]string{{"a.html", "<p>"}}})
	err := combined.Enumerate(ctx, newCollector().callback(t))
	assert.ErrorIs(t, err, context.Canceled)
}
