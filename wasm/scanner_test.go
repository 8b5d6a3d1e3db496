//go:build wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/html5lint/pkg/scanner"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

func newHandle(t *testing.T, disableJSON string) int {
	t.Helper()
	result, ok := newLinter(js.Value{}, []js.Value{js.ValueOf(disableJSON)}).(map[string]interface{})
	require.True(t, ok)
	require.NotContains(t, result, "error")
	handle := result["handle"].(int)
	t.Cleanup(func() { closeLinter(js.Value{}, []js.Value{js.ValueOf(handle)}) })
	return handle
}

func TestNewLinter_InvalidDisable(t *testing.T) {
	result, ok := newLinter(js.Value{}, []js.Value{js.ValueOf(`["nope"]`)}).(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, result["error"], "nope")
}

func TestLint(t *testing.T) {
	handle := newHandle(t, `["optional_tag"]`)

	out := lint(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf("<!DOCTYPE html>\n<a href='x'>"), js.ValueOf("page.html")})
	raw, ok := out.(string)
	require.True(t, ok, "%v", out)

	var result scanner.LintResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	assert.Equal(t, "page.html", result.Source)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, types.KindQuotation, result.Messages[0].Kind)
}

func TestLintBatch(t *testing.T) {
	handle := newHandle(t, `["optional_tag"]`)

	items := `[{"source":"a.html","content":"<br/>"},{"source":"b.html","content":"<!DOCTYPE html>\n"}]`
	out := lintBatch(js.Value{}, []js.Value{js.ValueOf(handle), js.ValueOf(items)})
	raw, ok := out.(string)
	require.True(t, ok, "%v", out)

	var result scanner.BatchLintResult
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	assert.Equal(t, 2, result.Total)
	assert.NotEmpty(t, result.Results[0].Messages)
	assert.Empty(t, result.Results[1].Messages)
}

func TestInvalidHandle(t *testing.T) {
	out := lint(js.Value{}, []js.Value{js.ValueOf(-1), js.ValueOf("<p>")})
	assert.Equal(t, map[string]interface{}{"error": "invalid linter handle"}, out)

	out = closeLinter(js.Value{}, []js.Value{js.ValueOf(-1)})
	assert.Equal(t, map[string]interface{}{"error": "invalid linter handle"}, out)
}

func TestChecks(t *testing.T) {
	raw, ok := checks(js.Value{}, nil).(string)
	require.True(t, ok)

	var all []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &all))
	assert.Len(t, all, len(types.AllKinds()))
}
