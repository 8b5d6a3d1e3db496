package enum

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestIsArchive(t *testing.T) {
	for name, want := range map[string]bool{
		"a.zip":     true,
		"book.EPUB": true,
		"app.jar":   true,
		"site.war":  true,
		"bundle.7z": true,
		"a.tar.gz":  false,
		"a.html":    false,
	} {
		assert.Equal(t, want, IsArchive(name), name)
	}
}

func TestExtractHTML_Zip(t *testing.T) {
	content := buildZip(t, map[string]string{
		"index.html":        "<p>index</p>",
		"docs/guide.htm":    "<p>guide</p>",
		"docs/":             "",
		"notes.txt":         "<!DOCTYPE html>",
		"images/logo.png":   "\x89PNG\x00",
		"broken/page.xhtml": "<p>\x00</p>",
	})

	got, err := ExtractHTML("site.zip", content, Config{})
	require.NoError(t, err)

	names := make(map[string]string)
	for _, ec := range got {
		names[ec.Name] = string(ec.Content)
	}
	assert.Equal(t, map[string]string{
		"index.html":     "<p>index</p>",
		"docs/guide.htm": "<p>guide</p>",
	}, names)
}

func TestExtractHTML_Sniff(t *testing.T) {
	content := buildZip(t, map[string]string{
		"notes.txt":  "<!DOCTYPE html>",
		"readme.txt": "plain",
	})

	got, err := ExtractHTML("site.jar", content, Config{SniffContent: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "notes.txt", got[0].Name)
}

func TestExtractHTML_MaxFileSize(t *testing.T) {
	content := buildZip(t, map[string]string{
		"small.html": "<p>",
		"large.html": strings.Repeat("<p>", 100),
	})

	got, err := ExtractHTML("site.zip", content, Config{MaxFileSize: 10})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "small.html", got[0].Name)
}

func TestExtractHTML_Errors(t *testing.T) {
	_, err := ExtractHTML("site.tar", nil, Config{})
	assert.ErrorContains(t, err, "unsupported archive type")

	_, err = ExtractHTML("site.zip", []byte("not a zip"), Config{})
	assert.ErrorContains(t, err, "failed to open zip")

	_, err = ExtractHTML("site.7z", []byte("not a 7z"), Config{})
	assert.ErrorContains(t, err, "failed to open 7z")
}
