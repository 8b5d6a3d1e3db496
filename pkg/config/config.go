// Package config loads the optional .html5lint.yml project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/praetorian-inc/html5lint/pkg/rule"
)

// FileName is looked up in the working directory when no path is given.
const FileName = ".html5lint.yml"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid configuration")

// Formats lists the accepted output formats.
var Formats = []string{"human", "text", "json", "sarif"}

// Config is the project configuration. Zero values mean "not set".
type Config struct {
	Disable         []string `yaml:"disable"`
	Ruleset         string   `yaml:"ruleset"`
	Format          string   `yaml:"format"`
	Sniff           *bool    `yaml:"sniff"`
	MaxFileSize     int64    `yaml:"max_file_size"`
	ExtractArchives *bool    `yaml:"extract_archives"`
	ExcludePaths    []string `yaml:"exclude_paths"`
	Color           string   `yaml:"color"`
}

// Default returns the built-in defaults.
func Default() Config {
	f := false
	return Config{
		Format:          "human",
		Sniff:           &f,
		MaxFileSize:     10 * 1024 * 1024,
		ExtractArchives: &f,
		Color:           "auto",
	}
}

// Load reads path. An empty path means FileName in the working directory,
// which may be missing; an explicit path must exist.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document. Unknown keys are
// rejected.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that have a fixed set of choices.
func (c Config) Validate() error {
	if c.Format != "" && !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%w: unknown color mode %q", ErrInvalid, c.Color)
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must not be negative", ErrInvalid)
	}
	for _, name := range c.Disable {
		if _, err := rule.ParseNames(name); err != nil {
			return fmt.Errorf("%w: disable: %w", ErrInvalid, err)
		}
	}
	return nil
}

// Merge returns c with every field that is set in o replacing its own.
func (c Config) Merge(o Config) Config {
	if o.Disable != nil {
		c.Disable = o.Disable
	}
	if o.Ruleset != "" {
		c.Ruleset = o.Ruleset
	}
	if o.Format != "" {
		c.Format = o.Format
	}
	if o.Sniff != nil {
		c.Sniff = o.Sniff
	}
	if o.MaxFileSize != 0 {
		c.MaxFileSize = o.MaxFileSize
	}
	if o.ExtractArchives != nil {
		c.ExtractArchives = o.ExtractArchives
	}
	if o.ExcludePaths != nil {
		c.ExcludePaths = o.ExcludePaths
	}
	if o.Color != "" {
		c.Color = o.Color
	}
	return c
}

// SniffEnabled reports whether content sniffing is on.
func (c Config) SniffEnabled() bool { return c.Sniff != nil && *c.Sniff }

// ArchivesEnabled reports whether archive members are linted.
func (c Config) ArchivesEnabled() bool { return c.ExtractArchives != nil && *c.ExtractArchives }
