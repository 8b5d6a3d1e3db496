package serve

import (
	"encoding/json"

	"github.com/praetorian-inc/html5lint/pkg/scanner"
)

// Request types
const (
	RequestLint      = "lint"
	RequestLintBatch = "lint_batch"
	RequestClose     = "close"
)

// Request represents an incoming NDJSON request
type Request struct {
	Type    string          `json:"type"` // "lint" | "lint_batch" | "close"
	Payload json.RawMessage `json:"payload"`
}

// LintPayload is the payload for "lint" requests
type LintPayload struct {
	Content string `json:"content"`
	Source  string `json:"source"`
}

// LintBatchPayload is the payload for "lint_batch" requests
type LintBatchPayload struct {
	Items []scanner.ContentItem `json:"items"`
}

// Response represents an outgoing NDJSON response
type Response struct {
	Success bool            `json:"success"`
	Type    string          `json:"type"` // "ready" | "lint" | "lint_batch" | "decode" | "unknown"
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ReadyData is the data field for "ready" responses
type ReadyData struct {
	Version string   `json:"version"`
	Checks  []string `json:"checks"`
}
