package enum

import (
	"context"
	"log/slog"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// Enumerator discovers HTML documents in a source.
type Enumerator interface {
	// Enumerate yields documents from the source.
	// The callback receives document content, its ID, and provenance information.
	Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// MaxFileSize is the maximum file size to process (0 = no limit).
	MaxFileSize int64

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// SniffContent also accepts files without an HTML extension when their
	// first kilobyte looks like an HTML document.
	SniffContent bool

	// ExtractArchives lints HTML members of zip, epub, jar and 7z archives.
	ExtractArchives bool

	// ExcludePaths are gitignore-style patterns, relative to Root.
	ExcludePaths []string

	// Workers is the number of files read and handed to the callback at
	// once by the filesystem walker (0 = one per CPU).
	Workers int

	// Logger receives skipped files and read errors. Nil discards them.
	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// tooLarge reports whether size exceeds the configured limit.
func (c Config) tooLarge(size int64) bool {
	return c.MaxFileSize > 0 && size > c.MaxFileSize
}
