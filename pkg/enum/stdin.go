package enum

import (
	"context"
	"fmt"
	"io"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// StdinPath is the path that names standard input on the command line.
const StdinPath = "-"

// ReaderEnumerator yields a single document read from r, such as stdin.
// The content is linted whatever its extension or markers.
type ReaderEnumerator struct {
	r    io.Reader
	name string
}

// NewReaderEnumerator reads one document from r and reports it under name.
func NewReaderEnumerator(r io.Reader, name string) *ReaderEnumerator {
	return &ReaderEnumerator{r: r, name: name}
}

// Enumerate implements Enumerator.
func (e *ReaderEnumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	content, err := io.ReadAll(e.r)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.name, err)
	}
	return callback(content, types.ComputeBlobID(content), types.FileProvenance{FilePath: e.name})
}
