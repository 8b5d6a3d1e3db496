package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
disable: [optional_tag, extra_whitespace]
format: json
sniff: true
max_file_size: 2048
exclude_paths:
  - vendor/
  - "*.min.html"
color: never
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"optional_tag", "extra_whitespace"}, cfg.Disable)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.SniffEnabled())
	assert.False(t, cfg.ArchivesEnabled())
	assert.Equal(t, int64(2048), cfg.MaxFileSize)
	assert.Equal(t, []string{"vendor/", "*.min.html"}, cfg.ExcludePaths)
	assert.Equal(t, "never", cfg.Color)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestParse_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":    "colour: always\n",
		"unknown check":  "disable: [tabs, nope]\n",
		"unknown format": "format: xml\n",
		"unknown color":  "color: sometimes\n",
		"negative size":  "max_file_size: -1\n",
		"bad yaml":       "disable: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lint.yml")
	require.NoError(t, os.WriteFile(path, []byte("format: text\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Format)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestLoad_DefaultFileMayBeMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestMerge(t *testing.T) {
	on := true
	base := Default()
	merged := base.Merge(Config{Format: "sarif", Sniff: &on, Disable: []string{"tabs"}})

	assert.Equal(t, "sarif", merged.Format)
	assert.True(t, merged.SniffEnabled())
	assert.Equal(t, []string{"tabs"}, merged.Disable)
	assert.Equal(t, base.MaxFileSize, merged.MaxFileSize)
	assert.Equal(t, "auto", merged.Color)
	assert.Equal(t, "human", base.Format, "merge does not modify the receiver")
}
