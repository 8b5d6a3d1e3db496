package enum

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// FilesystemEnumerator enumerates HTML files below a directory, or a single file.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

// Enumerate walks the filesystem and yields HTML documents.
// Phase 1: Walk directory tree and collect candidate paths (fast, sequential).
// Phase 2: Read files and invoke callback in parallel.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	ignore := e.ignoreMatcher()
	log := e.config.logger()

	// Phase 1: Walk and collect candidate paths
	var files []string
	err := filepath.Walk(e.config.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path != e.config.Root && ignore != nil {
			relPath, err := filepath.Rel(e.config.Root, path)
			if err != nil {
				return err
			}
			if ignore.MatchesPath(relPath) {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if info.IsDir() {
			if path != e.config.Root && !e.config.IncludeHidden && isHidden(info.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode()&os.ModeSymlink != 0 && !e.config.FollowSymlinks {
			return nil
		}
		if !e.config.IncludeHidden && isHidden(info.Name()) {
			return nil
		}
		if e.config.tooLarge(info.Size()) {
			log.Debug("skipping large file", "path", path, "size", info.Size())
			return nil
		}
		if !e.candidate(path) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return err
	}

	// Phase 2: Read and process files in parallel
	numReaders := e.config.Workers
	if numReaders <= 0 {
		numReaders = max(runtime.NumCPU(), 1)
	}

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	pathsCh := make(chan string, numReaders*2)

	g.Go(func() error {
		defer close(pathsCh)
		for _, f := range files {
			select {
			case pathsCh <- f:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range numReaders {
		g.Go(func() error {
			for path := range pathsCh {
				if err := e.processFile(ctx, path, callback); err != nil {
					return err
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// If the caller's context was cancelled but all goroutines finished
	// before noticing, propagate the cancellation.
	return origCtx.Err()
}

// ignoreMatcher combines Root/.gitignore with the configured exclude patterns.
func (e *FilesystemEnumerator) ignoreMatcher() *gitignore.GitIgnore {
	gitignorePath := filepath.Join(e.config.Root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		ignore, err := gitignore.CompileIgnoreFileAndLines(gitignorePath, e.config.ExcludePaths...)
		if err == nil {
			return ignore
		}
		e.config.logger().Warn("ignoring unreadable .gitignore", "path", gitignorePath, "error", err)
	}
	if len(e.config.ExcludePaths) == 0 {
		return nil
	}
	return gitignore.CompileIgnoreLines(e.config.ExcludePaths...)
}

// candidate reports whether a path is worth reading at all.
func (e *FilesystemEnumerator) candidate(path string) bool {
	if HasHTMLExtension(path) || e.config.SniffContent {
		return true
	}
	return e.config.ExtractArchives && IsArchive(path)
}

// processFile reads a single file and invokes the callback for it, or for
// each HTML member when it is an archive. Read errors are logged and skipped.
func (e *FilesystemEnumerator) processFile(ctx context.Context, path string, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	log := e.config.logger()
	content, err := os.ReadFile(path)
	if err != nil {
		log.Warn("skipping unreadable file", "path", path, "error", err)
		return nil
	}

	if e.config.ExtractArchives && IsArchive(path) {
		extracted, err := ExtractHTML(path, content, e.config)
		if err != nil {
			log.Warn("skipping unreadable archive", "path", path, "error", err)
			return nil
		}
		for _, ec := range extracted {
			prov := types.ArchiveProvenance{
				ArchivePath: path,
				MemberPath:  ec.Name,
			}
			if err := callback(ec.Content, types.ComputeBlobID(ec.Content), prov); err != nil {
				return err
			}
		}
		return nil
	}

	if !e.config.IsHTML(path, content) {
		log.Debug("skipping non-HTML file", "path", path)
		return nil
	}

	return callback(content, types.ComputeBlobID(content), types.FileProvenance{FilePath: path})
}
