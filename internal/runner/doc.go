// Package runner holds the backup schedule and drives repeated passes.
//
// A [Runner] is the single mutable piece of the system: it owns the
// destination root, the pass interval, and the ordered list of registered
// sources. It is constructed explicitly by the driver and threaded through;
// there is no package-level instance.
//
// # Passes
//
// One pass copies every registered source's matches into a fresh
// timestamped subdirectory of the destination root:
//
//	<destination>/
//	└── 20240101T120000/
//	    ├── manifest.json
//	    └── {mirrored files...}
//
// [Runner.RunOnce] executes a single pass and is the unit tests drive.
// [Runner.Run] loops: pass, then wait out the interval or the context,
// whichever ends first. Cancellation takes effect between passes; a copy is
// never aborted mid-file. Passes are mutually exclusive, and a pass
// directory is complete only once its manifest.json exists.
//
// # Failure Isolation
//
// A source that fails during a pass is recorded in the pass manifest and
// logged; the remaining sources still run. Within a source, individual copy
// failures are likewise recorded per file. Only configuration problems
// (no destination, no sources, unusable pass directory) fail a pass
// outright.
package runner
