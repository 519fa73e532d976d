package logging

import "log/slog"

// LevelTrace is a custom level below Debug for very fine-grained output,
// such as per-file copy decisions during a backup pass.
const LevelTrace = slog.LevelDebug - 4

// LevelFromVerbosity maps a -v flag count to a log level.
// 0 is quiet-ish (warnings only), 1 adds info, 2 adds debug,
// and 3 or more enables trace output.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}
