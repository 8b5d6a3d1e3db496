package enum

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

type testRepo struct {
	t    *testing.T
	root string
	repo *git.Repository
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	root := t.TempDir()
	repo, err := git.PlainInit(root, false)
	require.NoError(t, err)
	return &testRepo{t: t, root: root, repo: repo}
}

// commit writes files (an empty content deletes the file) and commits them.
func (r *testRepo) commit(msg string, files map[string]string) {
	r.t.Helper()
	for name, content := range files {
		path := filepath.Join(r.root, filepath.FromSlash(name))
		if content == "" {
			require.NoError(r.t, os.Remove(path))
			continue
		}
		require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
	}

	wt, err := r.repo.Worktree()
	require.NoError(r.t, err)
	require.NoError(r.t, wt.AddWithOptions(&git.AddOptions{All: true}))
	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(r.t, err)
}

func TestGitEnumerator(t *testing.T) {
	r := newTestRepo(t)
	r.commit("initial", map[string]string{
		"index.html":       "<!DOCTYPE html>",
		"docs/guide.htm":   "<p>guide",
		"README.md":        "# readme",
		"assets/logo.html": "<p>\x00",
	})

	c := newCollector()
	err := NewGitEnumerator(Config{Root: r.root}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"docs/guide.htm", "index.html"}, c.sorted())
	for _, prov := range c.provs {
		gp, ok := prov.(types.GitProvenance)
		require.True(t, ok, "got %T", prov)
		assert.Equal(t, r.root, gp.RepoPath)
		require.NotNil(t, gp.Commit)
		assert.Equal(t, "test@example.com", gp.Commit.AuthorEmail)
		assert.Equal(t, "initial", strings.TrimSpace(gp.Commit.Message))
	}
}

func TestGitEnumerator_HeadOnly(t *testing.T) {
	r := newTestRepo(t)
	r.commit("first", map[string]string{"old.html": "<p>old", "keep.html": "<p>keep"})
	r.commit("second", map[string]string{"old.html": ""})

	c := newCollector()
	err := NewGitEnumerator(Config{Root: r.root}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"keep.html"}, c.sorted())
}

func TestGitEnumerator_WalkAll(t *testing.T) {
	r := newTestRepo(t)
	r.commit("first", map[string]string{"old.html": "<p>old", "keep.html": "<p>keep"})
	r.commit("second", map[string]string{"old.html": "", "copy.html": "<p>keep"})

	e := NewGitEnumerator(Config{Root: r.root})
	e.WalkAll = true

	c := newCollector()
	require.NoError(t, e.Enumerate(context.Background(), c.callback(t)))

	// copy.html has the same blob as keep.html, so it is yielded once.
	assert.Len(t, c.paths, 2)
	assert.Contains(t, c.paths, "old.html")
	assert.Equal(t, "<p>old", c.docs["old.html"])
}

func TestGitEnumerator_MaxFileSize(t *testing.T) {
	r := newTestRepo(t)
	r.commit("initial", map[string]string{
		"small.html": "<p>",
		"large.html": "<p>" + strings.Repeat("a", 64),
	})

	c := newCollector()
	err := NewGitEnumerator(Config{Root: r.root, MaxFileSize: 10}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"small.html"}, c.paths)
}

func TestGitEnumerator_ExcludePaths(t *testing.T) {
	r := newTestRepo(t)
	r.commit("initial", map[string]string{
		"index.html":      "<p>index",
		"vendor/lib.html": "<p>lib",
	})

	c := newCollector()
	err := NewGitEnumerator(Config{Root: r.root, ExcludePaths: []string{"vendor/"}}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html"}, c.paths)
}

func TestGitEnumerator_NotARepository(t *testing.T) {
	err := NewGitEnumerator(Config{Root: t.TempDir()}).Enumerate(context.Background(), newCollector().callback(t))
	assert.ErrorContains(t, err, "failed to open git repository")
}

func TestGitEnumerator_ContextCancellation(t *testing.T) {
	r := newTestRepo(t)
	r.commit("initial", map[string]string{"index.html": "<p>"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewGitEnumerator(Config{Root: r.root}).Enumerate(ctx, newCollector().callback(t))
	assert.ErrorIs(t, err, context.Canceled)
}
