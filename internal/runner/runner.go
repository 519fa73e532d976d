package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"filebak/internal/expr"
	"filebak/internal/source"
	"filebak/pkg/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// DefaultIntervalMinutes is the pass interval used when none is configured.
const DefaultIntervalMinutes = 60

// passIDFormat is the timestamp layout for pass directory names.
// It contains no path separators or characters illegal in directory names.
const passIDFormat = "20060102T150405"

// Sentinel errors for configuration and scheduling.
var (
	// ErrInvalidInterval indicates a non-positive pass interval.
	ErrInvalidInterval = errors.New("interval must be positive")

	// ErrNoDestination indicates no destination root is configured.
	ErrNoDestination = errors.New("destination root is required")

	// ErrNoSources indicates a pass was requested with nothing registered.
	ErrNoSources = errors.New("no sources registered")
)

// Runner owns the backup configuration and executes passes.
type Runner struct {
	mu       sync.Mutex // guards configuration fields
	passMu   sync.Mutex // serializes passes; at most one active
	fsys     afero.Fs
	logger   *slog.Logger
	clock    func() time.Time
	dest     string
	interval time.Duration
	parallel bool
	sources  []*source.Source
}

// Option configures a Runner.
type Option func(*Runner)

// WithFs sets the filesystem the runner reads sources from and writes
// backups to. Defaults to the OS filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(r *Runner) {
		r.fsys = fsys
	}
}

// WithLogger sets the runner's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithClock overrides the time source used for pass timestamps.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// WithParallel enables concurrent per-source copying within a pass.
// Sources must have non-overlapping roots for this to be safe. The pass
// still completes only after every source has finished.
func WithParallel(parallel bool) Option {
	return func(r *Runner) {
		r.parallel = parallel
	}
}

// New creates a Runner with the default interval and an OS filesystem.
func New(opts ...Option) *Runner {
	r := &Runner{
		fsys:     afero.NewOsFs(),
		logger:   slog.Default(),
		clock:    time.Now,
		interval: DefaultIntervalMinutes * time.Minute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register appends a source rooted at root selecting files with sel.
// Registration order is the execution order within a pass.
func (r *Runner) Register(root string, sel expr.Expr) error {
	src, err := source.New(root, sel)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, src)
	return nil
}

// SetDestination sets the root directory pass subdirectories are created
// under. An empty path is rejected.
func (r *Runner) SetDestination(path string) error {
	if path == "" {
		return ErrNoDestination
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.dest = filepath.Clean(path)
	return nil
}

// SetInterval sets the delay between passes in minutes.
// Non-positive values are rejected, never coerced.
func (r *Runner) SetInterval(minutes int) error {
	if minutes <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "got %d minutes", minutes)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = time.Duration(minutes) * time.Minute
	return nil
}

// setIntervalDuration is the test hook for sub-minute intervals.
func (r *Runner) setIntervalDuration(d time.Duration) error {
	if d <= 0 {
		return errors.Wrapf(ErrInvalidInterval, "got %s", d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.interval = d
	return nil
}

// Destination returns the configured destination root.
func (r *Runner) Destination() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dest
}

// Interval returns the configured pass interval.
func (r *Runner) Interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.interval
}

// snapshot copies the configuration a pass runs against, so configuration
// calls during a pass affect the next pass, not the current one.
func (r *Runner) snapshot() (string, []*source.Source, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sources := make([]*source.Source, len(r.sources))
	copy(sources, r.sources)
	return r.dest, sources, r.parallel
}

// RunOnce executes a single backup pass: a fresh timestamped directory
// under the destination root, then every registered source in registration
// order. A source failure is recorded in the returned Pass and does not
// stop the remaining sources. The pass manifest is written last, so a pass
// directory without a manifest is by definition incomplete.
func (r *Runner) RunOnce(ctx context.Context) (*Pass, error) {
	r.passMu.Lock()
	defer r.passMu.Unlock()

	dest, sources, parallel := r.snapshot()
	if dest == "" {
		return nil, ErrNoDestination
	}
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	id, dir, err := r.newPassDir(dest)
	if err != nil {
		return nil, err
	}

	r.logger.Info("starting backup pass", "pass", id, "sources", len(sources))

	pass := &Pass{
		Version:        ManifestVersion,
		CreatedAt:      r.clock().UTC(),
		FilebakVersion: Version,
		ID:             id,
		Dir:            dir,
	}

	reports := make([]*source.Report, len(sources))
	failures := make([]SourceFailure, len(sources))

	if parallel {
		g, _ := errgroup.WithContext(ctx)
		for i, src := range sources {
			g.Go(func() error {
				reports[i], failures[i] = r.backupSource(src, dir)
				return nil
			})
		}
		// Sources never return errors through the group; waiting only
		// enforces that the pass completes after all of them.
		_ = g.Wait()
	} else {
		for i, src := range sources {
			reports[i], failures[i] = r.backupSource(src, dir)
		}
	}

	for i := range sources {
		if failures[i].Root != "" {
			pass.SourceFailures = append(pass.SourceFailures, failures[i])
			continue
		}
		pass.Reports = append(pass.Reports, reports[i])
	}

	manifestPath := filepath.Join(dir, ManifestName)
	if err := fileutil.AtomicWriteJSON(r.fsys, manifestPath, pass); err != nil {
		return nil, errors.Wrap(err, "writing pass manifest")
	}

	r.logger.Info("backup pass complete",
		"pass", id,
		"files", pass.FileCount(),
		"failures", pass.FailureCount())

	return pass, nil
}

// backupSource runs one source and translates an error into a recorded
// failure, keeping the pass alive for the remaining sources.
func (r *Runner) backupSource(src *source.Source, dir string) (*source.Report, SourceFailure) {
	report, err := src.Backup(r.fsys, dir, r.logger)
	if err != nil {
		r.logger.Error("source backup failed", "root", src.Root(), "error", err)
		return nil, SourceFailure{Root: src.Root(), Err: err.Error()}
	}
	return report, SourceFailure{}
}

// newPassDir creates a fresh timestamped pass directory under dest and
// returns its ID and path. If a directory for the current timestamp already
// exists (two passes within one second), a numeric suffix disambiguates.
func (r *Runner) newPassDir(dest string) (string, string, error) {
	if err := r.fsys.MkdirAll(dest, 0o755); err != nil {
		return "", "", errors.Wrap(err, "creating destination root")
	}

	base := r.clock().UTC().Format(passIDFormat)
	id := base
	for n := 2; ; n++ {
		dir := filepath.Join(dest, id)
		exists, err := afero.DirExists(r.fsys, dir)
		if err != nil {
			return "", "", errors.Wrap(err, "checking pass directory")
		}
		if !exists {
			if err := r.fsys.MkdirAll(dir, 0o755); err != nil {
				return "", "", errors.Wrap(err, "creating pass directory")
			}
			return id, dir, nil
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// Run executes passes until ctx is cancelled: one pass immediately, then
// the full interval of rest after each pass, however long the pass took.
// A failed pass is logged and the loop continues; the schedule survives
// bad passes. Cancellation is honored between passes.
func (r *Runner) Run(ctx context.Context) error {
	r.mu.Lock()
	dest, nsources, interval := r.dest, len(r.sources), r.interval
	r.mu.Unlock()

	if dest == "" {
		return ErrNoDestination
	}
	if nsources == 0 {
		return ErrNoSources
	}

	r.logger.Info("backup schedule started", "interval", interval, "destination", dest)

	for {
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.Error("backup pass failed", "error", err)
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			r.logger.Info("backup schedule stopped")
			return ctx.Err()
		case <-timer.C:
		}
	}
}
