package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/html5lint/pkg/serve"
	"github.com/praetorian-inc/html5lint/pkg/store"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

func outputCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	return cmd, &buf
}

// lintInto lints dir into a SQLite store at dbPath.
func lintInto(t *testing.T, dir, dbPath string) {
	t.Helper()
	_, err := execute(t, newLintCmd(), "", "--format", "text", "--exit-zero", "--output", dbPath, dir)
	require.NoError(t, err)
}

func TestReport(t *testing.T) {
	dir := writeSite(t)
	outDir := t.TempDir()
	lintInto(t, dir, filepath.Join(outDir, "html5lint.db"))

	linted, err := execute(t, newLintCmd(), "", "--format", "json", "--exit-zero", dir)
	require.NoError(t, err)

	reportStore, reportFormat, reportColor = outDir, "json", "never"
	cmd, buf := outputCmd()
	require.NoError(t, runReport(cmd, nil))

	want, got := decodeResults(t, linted), decodeResults(t, buf.String())
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Path, got[i].Path)
		assert.Equal(t, want[i].BlobID, got[i].BlobID)
		assert.Len(t, got[i].Messages, len(want[i].Messages))
	}
}

func TestReport_Errors(t *testing.T) {
	reportFormat, reportColor = "json", "never"

	reportStore = store.MemoryPath
	cmd, _ := outputCmd()
	assert.ErrorContains(t, runReport(cmd, nil), "in-memory")

	reportStore = filepath.Join(t.TempDir(), "missing.db")
	assert.ErrorContains(t, runReport(cmd, nil), "result store not found")
}

func TestLoadResults_NoProvenance(t *testing.T) {
	s, err := store.New(store.Config{Path: store.MemoryPath})
	require.NoError(t, err)
	defer s.Close()

	id := types.ComputeBlobID([]byte("<br/>"))
	require.NoError(t, s.AddDocument(id, 5))

	results, err := loadResults(s)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, id.Hex(), results[0].Path)
}

func TestMerge(t *testing.T) {
	tmp := t.TempDir()
	first := writeSite(t)
	second := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(second, "other.html"), []byte("<P>"), 0o644))

	a, b := filepath.Join(tmp, "a.db"), filepath.Join(tmp, "b.db")
	lintInto(t, first, a)
	lintInto(t, second, b)

	mergeOutput = filepath.Join(tmp, "merged.db")
	cmd, buf := outputCmd()
	require.NoError(t, runMerge(cmd, []string{a, b}))
	assert.Contains(t, buf.String(), "Sources processed: 2")
	assert.Contains(t, buf.String(), "Documents merged: 3")

	s, err := store.NewSQLite(mergeOutput)
	require.NoError(t, err)
	defer s.Close()
	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Documents)
}

func TestRulesList(t *testing.T) {
	rulesInclude, rulesExclude = "", ""

	rulesFormat = "table"
	cmd, buf := outputCmd()
	require.NoError(t, runRulesList(cmd, nil))
	assert.Contains(t, buf.String(), "trailing_whitespace")

	rulesFormat = "json"
	cmd, buf = outputCmd()
	require.NoError(t, runRulesList(cmd, nil))
	var checks []checkJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &checks))
	assert.Len(t, checks, len(types.AllKinds()))

	rulesInclude = "^tab"
	cmd, buf = outputCmd()
	require.NoError(t, runRulesList(cmd, nil))
	checks = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &checks))
	require.Len(t, checks, 1)
	assert.Equal(t, "tabs", checks[0].Name)
	rulesInclude = ""

	rulesFormat = "xml"
	cmd, _ = outputCmd()
	assert.ErrorContains(t, runRulesList(cmd, nil), "unknown output format")
}

func TestRulesets(t *testing.T) {
	cmd, buf := outputCmd()
	require.NoError(t, runRulesets(cmd, nil))
	assert.Contains(t, buf.String(), "google")
	assert.Contains(t, buf.String(), "optimizing")
}

func TestServe(t *testing.T) {
	serveDisable = "optional_tag"

	input := `{"type":"lint","payload":{"content":"<a href='x'>","source":"inline"}}` + "\n" +
		`{"type":"close"}` + "\n"

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&buf)
	require.NoError(t, runServe(cmd, nil))

	var responses []serve.Response
	dec := json.NewDecoder(&buf)
	for dec.More() {
		var r serve.Response
		require.NoError(t, dec.Decode(&r))
		responses = append(responses, r)
	}
	require.Len(t, responses, 2)
	assert.Equal(t, "ready", responses[0].Type)
	assert.Equal(t, serve.RequestLint, responses[1].Type)
	assert.True(t, responses[1].Success, responses[1].Error)

	var ready serve.ReadyData
	require.NoError(t, json.Unmarshal(responses[0].Data, &ready))
	assert.NotContains(t, ready.Checks, "optional_tag")
	assert.Contains(t, ready.Checks, "quotation")
}
