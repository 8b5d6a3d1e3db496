package enum

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ExtractedContent is one HTML member of an archive.
type ExtractedContent struct {
	Name    string // path within the archive (e.g., "OEBPS/chapter1.xhtml")
	Content []byte
}

// archiveExtensions maps archive extensions to their readers.
var archiveExtensions = map[string]func(content []byte, limits memberLimits) ([]ExtractedContent, error){
	".zip":  extractZip,
	".epub": extractZip,
	".jar":  extractZip,
	".war":  extractZip,
	".7z":   extract7z,
}

// IsArchive reports whether path has an extension ExtractHTML can open.
func IsArchive(path string) bool {
	_, ok := archiveExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// memberLimits bounds what is read out of a single archive.
type memberLimits struct {
	config     Config
	maxMembers int
}

// maxArchiveMembers caps how many members are linted per archive.
const maxArchiveMembers = 10000

// ExtractHTML returns the HTML members of a zip, epub, jar, war or 7z archive.
// Members are accepted by the same rules as plain files.
func ExtractHTML(path string, content []byte, config Config) ([]ExtractedContent, error) {
	ext := strings.ToLower(filepath.Ext(path))
	extract, ok := archiveExtensions[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported archive type: %s", ext)
	}
	return extract(content, memberLimits{config: config, maxMembers: maxArchiveMembers})
}

// member is the part of zip.File and sevenzip.File the extractor needs.
type member interface {
	Open() (io.ReadCloser, error)
}

func (l memberLimits) read(name string, info fs.FileInfo, m member, out []ExtractedContent) ([]ExtractedContent, error) {
	if info.IsDir() || len(out) >= l.maxMembers {
		return out, nil
	}
	if l.config.tooLarge(info.Size()) {
		return out, nil
	}
	// Members without an HTML extension are only read when sniffing.
	if !HasHTMLExtension(name) && !l.config.SniffContent {
		return out, nil
	}

	rc, err := m.Open()
	if err != nil {
		return out, fmt.Errorf("opening %s: %w", name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return out, fmt.Errorf("reading %s: %w", name, err)
	}
	if !l.config.IsHTML(name, data) {
		return out, nil
	}
	return append(out, ExtractedContent{Name: name, Content: data}), nil
}

func extractZip(content []byte, limits memberLimits) ([]ExtractedContent, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}

	var results []ExtractedContent
	for _, f := range zr.File {
		results, err = limits.read(f.Name, f.FileInfo(), f, results)
		if err != nil {
			limits.config.logger().Debug("skipping archive member", "member", f.Name, "error", err)
		}
	}
	return results, nil
}

func extract7z(content []byte, limits memberLimits) ([]ExtractedContent, error) {
	zr, err := sevenzip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
	}

	var results []ExtractedContent
	for _, f := range zr.File {
		results, err = limits.read(f.Name, f.FileInfo(), f, results)
		if err != nil {
			limits.config.logger().Debug("skipping archive member", "member", f.Name, "error", err)
		}
	}
	return results, nil
}
