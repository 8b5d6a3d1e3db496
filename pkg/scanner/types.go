package scanner

import "github.com/praetorian-inc/html5lint/pkg/types"

// ContentItem is one document to lint
type ContentItem struct {
	Source   string            `json:"source"` // e.g. "page:https://example.com/"
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// LintResult holds the messages of a single document
type LintResult struct {
	Source   string          `json:"source"`
	BlobID   types.BlobID    `json:"blob_id"`
	Messages []types.Message `json:"messages"`
}

// BatchLintResult holds the results of a batch
type BatchLintResult struct {
	Results []LintResult `json:"results"`
	Total   int          `json:"total"`
}
