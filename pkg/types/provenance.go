package types

import "time"

// Provenance records where a document was found.
type Provenance interface {
	Kind() string
	// Path returns a displayable location for the document.
	Path() string
}

// FileProvenance is a file on the local filesystem, or "-" for stdin.
type FileProvenance struct {
	FilePath string
}

func (f FileProvenance) Kind() string { return "file" }
func (f FileProvenance) Path() string { return f.FilePath }

// GitProvenance is a blob in a git repository.
type GitProvenance struct {
	RepoPath string
	Commit   *CommitMetadata // nil when only the tree was walked
	BlobPath string          // path within the repository
}

func (g GitProvenance) Kind() string { return "git" }
func (g GitProvenance) Path() string { return g.BlobPath }

// CommitMetadata describes the commit a blob was first seen in.
type CommitMetadata struct {
	CommitID        string
	AuthorName      string
	AuthorEmail     string
	AuthorTimestamp time.Time
	Message         string
}

// ArchiveProvenance is a member extracted from an archive (zip, epub, 7z).
type ArchiveProvenance struct {
	ArchivePath string
	MemberPath  string
}

func (a ArchiveProvenance) Kind() string { return "archive" }
func (a ArchiveProvenance) Path() string { return a.ArchivePath + ":" + a.MemberPath }

// RemoteProvenance is an object fetched from a hosted service.
type RemoteProvenance struct {
	Provider   string // "github", "gitlab", "azure" or "s3"
	Container  string // repository, project, blob container or bucket
	ObjectPath string
	Revision   string // commit, ref or object version, if known
	URL        string
}

func (r RemoteProvenance) Kind() string { return r.Provider }

// Path returns "container/object".
func (r RemoteProvenance) Path() string {
	if r.Container == "" {
		return r.ObjectPath
	}
	return r.Container + "/" + r.ObjectPath
}
