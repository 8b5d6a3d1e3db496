package scanner

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/praetorian-inc/html5lint"
	"github.com/praetorian-inc/html5lint/pkg/logs"
	"github.com/praetorian-inc/html5lint/pkg/store"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// Core wraps a linter and an in-memory store for the serve loop and the
// WASM build. Identical documents are linted once.
type Core struct {
	linter *html5lint.Linter
	store  store.Store
	logger *slog.Logger
	mu     sync.Mutex
}

// NewCore creates a Core. disableJSON is "" or a JSON array of check names
// to disable, e.g. `["optional_tag","tabs"]`.
func NewCore(disableJSON string, logger *slog.Logger) (*Core, error) {
	if logger == nil {
		logger = logs.Discard()
	}

	disabled, err := parseDisabled(disableJSON)
	if err != nil {
		logger.Debug("parsing disable list failed", "error", err)
		return nil, err
	}

	l, err := html5lint.NewLinter(
		html5lint.WithDisabled(disabled...),
		html5lint.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("linter created", "checks", len(l.Checks()), "disabled", len(disabled))

	s, err := store.New(store.Config{Path: store.MemoryPath})
	if err != nil {
		return nil, fmt.Errorf("creating store: %w", err)
	}

	return &Core{
		linter: l,
		store:  s,
		logger: logger,
	}, nil
}

func parseDisabled(disableJSON string) ([]string, error) {
	if strings.TrimSpace(disableJSON) == "" {
		return nil, nil
	}
	var names []string
	if err := json.Unmarshal([]byte(disableJSON), &names); err != nil {
		return nil, fmt.Errorf("parsing disable list: %w", err)
	}
	return names, nil
}

// Lint lints a single document.
func (c *Core) Lint(content, source string) (*LintResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lint(ContentItem{Source: source, Content: content})
}

// LintBatch lints several documents. An item that fails is logged and left
// out of the result.
func (c *Core) LintBatch(items []ContentItem) (*BatchLintResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	batch := &BatchLintResult{Results: []LintResult{}}
	for _, item := range items {
		result, err := c.lint(item)
		if err != nil {
			c.logger.Warn("lint failed", "source", item.Source, "error", err)
			continue
		}
		batch.Results = append(batch.Results, *result)
		batch.Total += len(result.Messages)
	}
	return batch, nil
}

func (c *Core) lint(item ContentItem) (*LintResult, error) {
	content := []byte(item.Content)
	id := types.ComputeBlobID(content)

	exists, err := c.store.DocumentExists(id)
	if err != nil {
		return nil, err
	}

	var messages []types.Message
	if exists {
		messages, err = c.store.GetMessages(id)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("document already linted", "source", item.Source, "blob_id", id.Short())
	} else {
		messages = c.linter.LintBytes(content)
		if err := c.store.AddDocument(id, int64(len(content))); err != nil {
			return nil, err
		}
		if err := c.store.AddMessages(id, messages); err != nil {
			return nil, err
		}
	}

	if item.Source != "" {
		if err := c.store.AddProvenance(id, types.FileProvenance{FilePath: item.Source}); err != nil {
			return nil, err
		}
	}

	if messages == nil {
		messages = []types.Message{}
	}
	return &LintResult{
		Source:   item.Source,
		BlobID:   id,
		Messages: messages,
	}, nil
}

// Stats summarizes every document linted so far.
func (c *Core) Stats() (store.Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Stats()
}

// Close releases scanner resources
func (c *Core) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Checks returns the whole check catalogue.
func Checks() ([]*types.Check, error) {
	return html5lint.LoadBuiltinChecks()
}
