package enum

import (
	"bytes"
	"path"
	"strings"

	"github.com/praetorian-inc/html5lint/pkg/prefilter"
)

// HTMLExtensions are the extensions linted without looking at content.
var HTMLExtensions = []string{".html", ".htm", ".xhtml", ".shtml"}

var sniffer = prefilter.New()

// HasHTMLExtension reports whether name ends in one of HTMLExtensions.
// The comparison ignores case.
func HasHTMLExtension(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range HTMLExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// IsHTML decides whether a document should be linted.
func (c Config) IsHTML(name string, content []byte) bool {
	if isBinary(content) {
		return false
	}
	if HasHTMLExtension(name) {
		return true
	}
	return c.SniffContent && sniffer.IsHTML(content)
}

// isBinary detects if content is binary by checking first 8KB for null bytes.
func isBinary(content []byte) bool {
	checkSize := min(len(content), 8192)
	return bytes.IndexByte(content[:checkSize], 0) != -1
}

// isHidden checks if a filename is hidden (starts with .).
// The special entries "." and ".." are NOT considered hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}
