package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProvenanceKindsAndPaths(t *testing.T) {
	when := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		prov     Provenance
		wantKind string
		wantPath string
	}{
		{"file", FileProvenance{FilePath: "site/index.html"}, "file", "site/index.html"},
		{"stdin", FileProvenance{FilePath: "-"}, "file", "-"},
		{
			"git with commit",
			GitProvenance{
				RepoPath: "/src/site",
				BlobPath: "templates/base.html",
				Commit:   &CommitMetadata{CommitID: "abc123", AuthorName: "Sam", AuthorTimestamp: when},
			},
			"git", "templates/base.html",
		},
		{"archive", ArchiveProvenance{ArchivePath: "book.epub", MemberPath: "OEBPS/ch1.xhtml"}, "archive", "book.epub:OEBPS/ch1.xhtml"},
		{"github", RemoteProvenance{Provider: "github", Container: "acme/site", ObjectPath: "docs/a.html"}, "github", "acme/site/docs/a.html"},
		{"s3 without container", RemoteProvenance{Provider: "s3", ObjectPath: "a.html"}, "s3", "a.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.prov.Kind())
			assert.Equal(t, tt.wantPath, tt.prov.Path())
		})
	}
}
