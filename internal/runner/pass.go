package runner

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"

	"filebak/internal/source"
)

// ManifestVersion is the pass manifest format version for forward compatibility.
const ManifestVersion = 1

// ManifestName is the manifest file written into each pass directory.
const ManifestName = "manifest.json"

// ErrNoPassesFound indicates the destination holds no completed passes.
var ErrNoPassesFound = errors.New("no passes found")

// SourceFailure records a source whose backup failed as a whole.
type SourceFailure struct {
	Root string `json:"root"`
	Err  string `json:"error"`
}

// Pass describes one completed backup pass. It is stored as manifest.json
// in the pass directory; a directory without a manifest is an incomplete
// pass and is ignored by listing and pruning.
type Pass struct {
	// Version is the manifest format version.
	Version int `json:"version"`

	// CreatedAt is when the pass started, in UTC.
	CreatedAt time.Time `json:"created_at"`

	// Reports holds one entry per source that completed, in registration order.
	Reports []*source.Report `json:"reports"`

	// SourceFailures lists sources that failed as a whole.
	SourceFailures []SourceFailure `json:"source_failures,omitempty"`

	// FilebakVersion is the version of filebak that wrote the pass.
	FilebakVersion string `json:"filebak_version"`

	// ID is the pass directory name (timestamp format: 20240101T120000).
	// Populated when loading from disk but not stored in JSON.
	ID string `json:"-"`

	// Dir is the absolute pass directory. Not stored in JSON.
	Dir string `json:"-"`
}

// FileCount returns the number of files copied across all sources.
func (p *Pass) FileCount() int {
	n := 0
	for _, rep := range p.Reports {
		n += len(rep.Files)
	}
	return n
}

// FailureCount returns the number of per-file copy failures plus the
// number of sources that failed outright.
func (p *Pass) FailureCount() int {
	n := len(p.SourceFailures)
	for _, rep := range p.Reports {
		n += len(rep.Failures)
	}
	return n
}

// Passes returns every completed pass under the destination root, newest
// first. Directories without a readable manifest are skipped.
func (r *Runner) Passes() ([]Pass, error) {
	dest := r.Destination()
	if dest == "" {
		return nil, ErrNoDestination
	}

	entries, err := afero.ReadDir(r.fsys, dest)
	if err != nil {
		if exists, _ := afero.DirExists(r.fsys, dest); !exists {
			return nil, ErrNoPassesFound
		}
		return nil, errors.Wrap(err, "reading destination root")
	}

	passes := make([]Pass, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		pass, err := r.loadPass(entry.Name())
		if err != nil {
			// Incomplete or foreign directory.
			continue
		}
		passes = append(passes, *pass)
	}

	if len(passes) == 0 {
		return nil, ErrNoPassesFound
	}

	// Sort by creation time, newest first
	slices.SortFunc(passes, func(a, b Pass) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return passes, nil
}

// Prune removes the oldest passes beyond keep from the destination root.
func (r *Runner) Prune(keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	passes, err := r.Passes()
	if err != nil {
		if errors.Is(err, ErrNoPassesFound) {
			return nil // Nothing to prune
		}
		return err
	}

	// Already sorted newest first, delete everything beyond 'keep'
	for i := keep; i < len(passes); i++ {
		if err := r.fsys.RemoveAll(passes[i].Dir); err != nil {
			return errors.Wrapf(err, "removing pass %s", passes[i].ID)
		}
		r.logger.Info("pruned pass", "pass", passes[i].ID)
	}

	return nil
}

// loadPass reads the manifest of the pass directory named id.
func (r *Runner) loadPass(id string) (*Pass, error) {
	dir := filepath.Join(r.Destination(), id)
	data, err := afero.ReadFile(r.fsys, filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, errors.Wrapf(ErrNoPassesFound, "pass %s has no manifest", id)
	}

	var pass Pass
	if err := json.Unmarshal(data, &pass); err != nil {
		return nil, errors.Wrap(err, "parsing pass manifest")
	}

	pass.ID = id
	pass.Dir = dir
	return &pass, nil
}
