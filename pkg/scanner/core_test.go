package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/html5lint/pkg/rule"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

const page = "<!DOCTYPE html>\n<a href='x'>"

func kinds(messages []types.Message) []types.Kind {
	out := make([]types.Kind, len(messages))
	for i, m := range messages {
		out[i] = m.Kind
	}
	return out
}

func TestNewCore(t *testing.T) {
	for _, input := range []string{"", "  ", "[]", `["optional_tag"]`} {
		core, err := NewCore(input, nil)
		require.NoError(t, err, input)
		core.Close()
	}
}

func TestNewCore_Errors(t *testing.T) {
	_, err := NewCore("{not json", nil)
	assert.Error(t, err)

	_, err = NewCore(`["no_such_check"]`, nil)
	assert.ErrorIs(t, err, rule.ErrUnknownCheck)
}

func TestCore_Lint(t *testing.T) {
	core, err := NewCore("", nil)
	require.NoError(t, err)
	defer core.Close()

	result, err := core.Lint(page, "inline:1")
	require.NoError(t, err)

	assert.Equal(t, "inline:1", result.Source)
	assert.Equal(t, types.ComputeBlobID([]byte(page)), result.BlobID)
	assert.Contains(t, kinds(result.Messages), types.KindQuotation)
}

func TestCore_LintDisabled(t *testing.T) {
	core, err := NewCore(`["quotation"]`, nil)
	require.NoError(t, err)
	defer core.Close()

	result, err := core.Lint(page, "inline:1")
	require.NoError(t, err)
	assert.NotContains(t, kinds(result.Messages), types.KindQuotation)
}

func TestCore_LintCleanDocument(t *testing.T) {
	core, err := NewCore(`["optional_tag"]`, nil)
	require.NoError(t, err)
	defer core.Close()

	result, err := core.Lint("<!DOCTYPE html>\n", "clean")
	require.NoError(t, err)
	assert.NotNil(t, result.Messages)
	assert.Empty(t, result.Messages)
}

func TestCore_LintTwiceReusesResult(t *testing.T) {
	core, err := NewCore("", nil)
	require.NoError(t, err)
	defer core.Close()

	first, err := core.Lint(page, "a")
	require.NoError(t, err)
	second, err := core.Lint(page, "b")
	require.NoError(t, err)

	assert.Equal(t, first.Messages, second.Messages)
	assert.Equal(t, "b", second.Source)

	stats, err := core.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Documents)
	assert.Equal(t, len(first.Messages), stats.Messages)
}

func TestCore_LintBatch(t *testing.T) {
	core, err := NewCore("", nil)
	require.NoError(t, err)
	defer core.Close()

	batch, err := core.LintBatch([]ContentItem{
		{Source: "s1", Content: page},
		{Source: "s2", Content: "<!DOCTYPE html>\n<br/>"},
	})
	require.NoError(t, err)
	require.Len(t, batch.Results, 2)

	assert.Equal(t, "s1", batch.Results[0].Source)
	assert.Equal(t, "s2", batch.Results[1].Source)
	assert.Contains(t, kinds(batch.Results[1].Messages), types.KindVoidElement)
	assert.Equal(t, len(batch.Results[0].Messages)+len(batch.Results[1].Messages), batch.Total)
}

func TestChecks(t *testing.T) {
	checks, err := Checks()
	require.NoError(t, err)
	assert.Len(t, checks, len(types.AllKinds()))
}
