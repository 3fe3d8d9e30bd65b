package pretok

import "go.uber.org/zap"

// logger backs the single diagnostic line Split may emit on a regex
// fallback compile/execution failure (spec §7). It is a no-op until a
// caller opts in with SetLogger, keeping the library silent on every
// hot path by default, the way ollama-ollama's zap wiring leaves
// library code quiet unless a caller configures a real logger.
var logger = zap.NewNop().Sugar()

// SetLogger installs l as the destination for Split's regex-fallback
// diagnostics. Passing nil restores the no-op logger.
func SetLogger(l *zap.SugaredLogger) {
	if l == nil {
		logger = zap.NewNop().Sugar()
		return
	}
	logger = l
}
