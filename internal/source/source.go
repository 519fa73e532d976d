// Package source binds a root directory to a selection expression and
// copies the matched files into a backup destination.
package source

import (
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"filebak/internal/expr"
)

// ErrEmptyRoot indicates a source was declared without a root directory.
var ErrEmptyRoot = errors.New("source root is required")

// Source is an immutable pair of a root directory and a selection
// expression. It is created once at registration and never mutated.
type Source struct {
	root     string
	selector expr.Expr
}

// New creates a Source rooted at root, selecting files with sel.
func New(root string, sel expr.Expr) (*Source, error) {
	if root == "" {
		return nil, ErrEmptyRoot
	}
	if sel == nil {
		return nil, errors.New("source selector is required")
	}
	return &Source{root: filepath.Clean(root), selector: sel}, nil
}

// Root returns the source's root directory.
func (s *Source) Root() string {
	return s.root
}

// FileRecord describes one file copied into the destination.
type FileRecord struct {
	// OriginalPath is the path of the file in the source tree.
	OriginalPath string `json:"original_path"`

	// RelPath is the file's path within the pass directory.
	RelPath string `json:"rel_path"`

	// SHA256Hash is the hex-encoded SHA256 hash of the copied contents.
	SHA256Hash string `json:"sha256_hash"`

	// Mode is the file's permission bits.
	Mode fs.FileMode `json:"mode"`

	// Size is the number of bytes copied.
	Size int64 `json:"size"`
}

// FileFailure records a file that was selected but could not be copied.
type FileFailure struct {
	Path string `json:"path"`
	Err  string `json:"error"`
}

// Report summarizes one source's contribution to a backup pass.
type Report struct {
	Root     string        `json:"root"`
	Files    []FileRecord  `json:"files"`
	Failures []FileFailure `json:"failures,omitempty"`
}

// Backup evaluates the selection expression against the source root and
// copies every matched file under destRoot, mirroring the original path
// (an absolute source path becomes the same path appended under destRoot).
//
// A failure to copy one file is recorded in the report and logged; it does
// not abort the remaining copies. The returned error is reserved for
// conditions that prevent the backup as a whole, such as an unwritable
// destination root. The source tree is never mutated.
func (s *Source) Backup(fsys afero.Fs, destRoot string, logger *slog.Logger) (*Report, error) {
	if destRoot == "" {
		return nil, errors.New("destination root is required")
	}

	matched := s.selector.Evaluate(fsys, s.root)
	report := &Report{Root: s.root}

	for _, path := range matched.Sorted() {
		rel := mirrorRelPath(path)
		dst := filepath.Join(destRoot, rel)

		if err := fsys.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", rel)
		}

		hash, mode, size, err := copyFile(fsys, path, dst)
		if err != nil {
			// The file may have vanished or become unreadable between
			// selection and copy. Record and keep going.
			logger.Warn("copy failed", "source", path, "error", err)
			report.Failures = append(report.Failures, FileFailure{
				Path: path,
				Err:  err.Error(),
			})
			continue
		}

		report.Files = append(report.Files, FileRecord{
			OriginalPath: path,
			RelPath:      rel,
			SHA256Hash:   hash,
			Mode:         mode,
			Size:         size,
		})
	}

	return report, nil
}

// mirrorRelPath converts a matched path into the relative path it occupies
// under the pass directory. Absolute paths keep their full shape with the
// leading separator stripped, so /home/u/a.txt lands at
// <pass>/home/u/a.txt and restores round-trip unambiguously.
func mirrorRelPath(path string) string {
	clean := filepath.Clean(path)

	if vol := filepath.VolumeName(clean); vol != "" {
		clean = clean[len(vol):]
	}
	for len(clean) > 0 && clean[0] == filepath.Separator {
		clean = clean[1:]
	}

	return clean
}
