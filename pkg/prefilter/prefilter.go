// Package prefilter recognizes HTML documents by content, for files whose
// extension says nothing.
package prefilter

import (
	"bytes"

	"github.com/cloudflare/ahocorasick"
)

// SniffLength is how much of a document is looked at.
const SniffLength = 1024

// DefaultMarkers are the lowercase strings that identify an HTML document.
var DefaultMarkers = []string{"<!doctype", "<html", "<head", "<body"}

// Prefilter uses Aho-Corasick to find any of a set of markers.
type Prefilter struct {
	matcher *ahocorasick.Matcher
	markers []string // marker at each index
}

// New creates a prefilter. Markers are matched case-insensitively and must
// be given in lowercase. With no markers DefaultMarkers are used.
func New(markers ...string) *Prefilter {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}
	return &Prefilter{
		matcher: ahocorasick.NewStringMatcher(markers),
		markers: markers,
	}
}

// Matches returns the markers found in the first SniffLength bytes of
// content.
func (pf *Prefilter) Matches(content []byte) []string {
	if len(content) > SniffLength {
		content = content[:SniffLength]
	}
	hits := pf.matcher.Match(bytes.ToLower(content))

	found := make([]string, 0, len(hits))
	for _, hit := range hits {
		found = append(found, pf.markers[hit])
	}
	return found
}

// IsHTML reports whether content looks like an HTML document.
func (pf *Prefilter) IsHTML(content []byte) bool {
	return len(pf.Matches(content)) > 0
}
