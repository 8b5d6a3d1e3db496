package enum

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// GitEnumerator enumerates HTML blobs from a git repository.
type GitEnumerator struct {
	config Config
	// CommitRef is the revision whose tree is walked (defaults to HEAD).
	CommitRef string
	// WalkAll visits every commit reachable from any ref instead of one tree.
	WalkAll bool
}

// NewGitEnumerator creates a new git enumerator.
func NewGitEnumerator(config Config) *GitEnumerator {
	return &GitEnumerator{
		config:    config,
		CommitRef: "HEAD",
	}
}

// Enumerate yields each HTML blob once. With WalkAll, the provenance names
// the newest commit the blob appears in.
func (e *GitEnumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	repo, err := git.PlainOpen(e.config.Root)
	if err != nil {
		return fmt.Errorf("failed to open git repository: %w", err)
	}

	w := &treeWalker{
		config: e.config,
		seen:   make(map[plumbing.Hash]bool),
	}
	if len(e.config.ExcludePaths) > 0 {
		w.ignore = gitignore.CompileIgnoreLines(e.config.ExcludePaths...)
	}

	if !e.WalkAll {
		ref, err := repo.ResolveRevision(plumbing.Revision(e.CommitRef))
		if err != nil {
			return fmt.Errorf("failed to resolve ref %s: %w", e.CommitRef, err)
		}
		commit, err := repo.CommitObject(*ref)
		if err != nil {
			return fmt.Errorf("failed to get commit: %w", err)
		}
		return w.walk(ctx, commit, callback)
	}

	commits, err := repo.Log(&git.LogOptions{All: true})
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// No commits yet.
			return nil
		}
		return fmt.Errorf("failed to read history: %w", err)
	}
	defer commits.Close()

	return commits.ForEach(func(commit *object.Commit) error {
		return w.walk(ctx, commit, callback)
	})
}

// treeWalker yields unseen HTML blobs from commit trees.
type treeWalker struct {
	config Config
	ignore *gitignore.GitIgnore
	seen   map[plumbing.Hash]bool
}

func (w *treeWalker) walk(ctx context.Context, commit *object.Commit, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("failed to get tree of %s: %w", commit.Hash, err)
	}

	meta := &types.CommitMetadata{
		CommitID:        commit.Hash.String(),
		AuthorName:      commit.Author.Name,
		AuthorEmail:     commit.Author.Email,
		AuthorTimestamp: commit.Author.When,
		Message:         commit.Message,
	}
	repoPath := w.config.Root

	err = tree.Files().ForEach(func(f *object.File) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if w.seen[f.Hash] {
			return nil
		}
		w.seen[f.Hash] = true

		if w.ignore != nil && w.ignore.MatchesPath(f.Name) {
			return nil
		}
		if !w.config.IncludeHidden && isHidden(path.Base(f.Name)) {
			return nil
		}
		if w.config.tooLarge(f.Size) {
			return nil
		}
		archive := w.config.ExtractArchives && IsArchive(f.Name)
		if !archive && !HasHTMLExtension(f.Name) && !w.config.SniffContent {
			return nil
		}

		contents, err := f.Contents()
		if err != nil {
			w.config.logger().Warn("skipping unreadable blob", "path", f.Name, "error", err)
			return nil
		}
		content := []byte(contents)

		if archive {
			extracted, err := ExtractHTML(f.Name, content, w.config)
			if err != nil {
				w.config.logger().Warn("skipping unreadable archive", "path", f.Name, "error", err)
				return nil
			}
			for _, ec := range extracted {
				prov := types.ArchiveProvenance{ArchivePath: f.Name, MemberPath: ec.Name}
				if err := callback(ec.Content, types.ComputeBlobID(ec.Content), prov); err != nil {
					return err
				}
			}
			return nil
		}

		if !w.config.IsHTML(f.Name, content) {
			return nil
		}

		// The git object id is the BlobID; both hash "blob <len>\x00<content>".
		prov := types.GitProvenance{
			RepoPath: repoPath,
			Commit:   meta,
			BlobPath: f.Name,
		}
		return callback(content, types.BlobID(f.Hash), prov)
	})
	if err != nil {
		return fmt.Errorf("failed to walk tree: %w", err)
	}
	return nil
}
