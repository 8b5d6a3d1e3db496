package enum

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemEnumerator(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.html":        "<!DOCTYPE html>",
		"about.htm":         "<p>about</p>",
		"sub/page.xhtml":    "<p>page</p>",
		"notes.txt":         "<html> in a text file",
		"style.css":         "body {}",
		".hidden/skip.html": "<p>hidden</p>",
	})

	c := newCollector()
	err := NewFilesystemEnumerator(Config{Root: root}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "about.htm"),
		filepath.Join(root, "index.html"),
		filepath.Join(root, "sub", "page.xhtml"),
	}, c.sorted())
	for _, prov := range c.provs {
		assert.Equal(t, "file", prov.Kind())
	}
}

func TestFilesystemEnumerator_Sniff(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"template.tmpl": "<!doctype html>\n<html>",
		"readme.md":     "# readme",
	})

	c := newCollector()
	err := NewFilesystemEnumerator(Config{Root: root, SniffContent: true}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "template.tmpl")}, c.sorted())
}

func TestFilesystemEnumerator_HiddenFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"visible.html":    "<p>",
		".dot.html":       "<p>",
		".dir/inner.html": "<p>",
	})

	c := newCollector()
	err := NewFilesystemEnumerator(Config{Root: root, IncludeHidden: true}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Len(t, c.paths, 3)
}

func TestFilesystemEnumerator_MaxFileSize(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"small.html": "<p>",
		"large.html": strings.Repeat("<p>", 100),
	})

	c := newCollector()
	err := NewFilesystemEnumerator(Config{Root: root, MaxFileSize: 50}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "small.html")}, c.sorted())
}

func TestFilesystemEnumerator_BinaryFiles(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"text.html":   "<p>",
		"binary.html": "<p>\x00\x01\x02",
	})

	c := newCollector()
	err := NewFilesystemEnumerator(Config{Root: root}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "text.html")}, c.sorted())
}

func TestFilesystemEnumerator_Gitignore(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		".gitignore":        "build/\n*.min.html\n",
		"index.html":        "<p>",
		"app.min.html":      "<p>",
		"build/out.html":    "<p>",
		"vendor/lib.html":   "<p>",
		"vendor/keep.shtml": "<p>",
	})

	c := newCollector()
	cfg := Config{Root: root, ExcludePaths: []string{"vendor/*.html"}}
	err := NewFilesystemEnumerator(cfg).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "index.html"),
		filepath.Join(root, "vendor", "keep.shtml"),
	}, c.sorted())
}

func TestFilesystemEnumerator_SingleFile(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"one.html": "<p>one"})
	path := filepath.Join(root, "one.html")

	c := newCollector()
	err := NewFilesystemEnumerator(Config{Root: path}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Equal(t, []string{path}, c.paths)
}

func TestFilesystemEnumerator_Archives(t *testing.T) {
	root := t.TempDir()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"OEBPS/chapter1.xhtml": "<p>one</p>",
		"OEBPS/style.css":      "p {}",
	} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(filepath.Join(root, "book.epub"), buf.Bytes(), 0o644))

	c := newCollector()
	err := NewFilesystemEnumerator(Config{Root: root}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	assert.Empty(t, c.paths, "archives are skipped unless extraction is enabled")

	c = newCollector()
	err = NewFilesystemEnumerator(Config{Root: root, ExtractArchives: true}).Enumerate(context.Background(), c.callback(t))
	require.NoError(t, err)
	require.Len(t, c.provs, 1)
	assert.Equal(t, "archive", c.provs[0].Kind())
	assert.Equal(t, filepath.Join(root, "book.epub")+":OEBPS/chapter1.xhtml", c.paths[0])
}

func TestFilesystemEnumerator_ContextCancellation(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.html": "<p>", "b.html": "<p>"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewFilesystemEnumerator(Config{Root: root}).Enumerate(ctx, newCollector().callback(t))
	assert.ErrorIs(t, err, context.Canceled)
}
